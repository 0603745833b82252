package ui

import (
	"log"

	"github.com/decker502/virtuallab/pkg/config"
	"github.com/decker502/virtuallab/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// fadePhase 弹窗淡入淡出阶段
type fadePhase int

const (
	phaseHidden fadePhase = iota
	phaseFadingIn
	phaseShown
	phaseFadingOut
)

// InstructionPopup 居中的步骤说明弹窗与顶部步骤栏
//
// 实现 sequencer.StepUI：
//   - ShowStep/ShowCompletion 显示弹窗并同步更新步骤栏
//   - Hide 淡出弹窗，步骤栏保持
//
// 弹窗上的 "OK" 按钮调用 OnAcknowledge。
type InstructionPopup struct {
	fonts      *Fonts
	completion config.CompletionMessage

	title string
	text  string
	lines []string // 按弹窗宽度换行后的正文

	banner string

	phase   fadePhase
	elapsed float64
	alpha   float64

	bounds Rect
	ok     Button

	// OnAcknowledge "OK" 按钮回调
	OnAcknowledge func()
}

// NewInstructionPopup 创建弹窗，fonts 为 nil 时不绘制文字（测试使用）
func NewInstructionPopup(fonts *Fonts, completion config.CompletionMessage) *InstructionPopup {
	return &InstructionPopup{
		fonts:      fonts,
		completion: completion,
		ok:         Button{Label: "OK"},
	}
}

// ShowStep 显示步骤说明，步骤栏同步显示该步骤正文
func (p *InstructionPopup) ShowStep(title, body string) {
	p.setContent(title, body)
	p.banner = body
	p.fadeIn()
}

// ShowCompletion 显示实验完成信息
func (p *InstructionPopup) ShowCompletion() {
	p.setContent(p.completion.Title, p.completion.Text)
	p.banner = p.completion.Title
	p.fadeIn()
}

// Hide 淡出弹窗
func (p *InstructionPopup) Hide() {
	if p.phase == phaseHidden || p.phase == phaseFadingOut {
		return
	}
	p.phase = phaseFadingOut
	p.elapsed = 0
}

// ShowBanner 设置顶部步骤栏文字
func (p *InstructionPopup) ShowBanner(banner string) {
	p.banner = banner
}

// SetCompletion 替换完成信息（步骤文件热重载时使用）
func (p *InstructionPopup) SetCompletion(completion config.CompletionMessage) {
	p.completion = completion
}

// Visible 弹窗是否可见（包括淡入淡出过程）
func (p *InstructionPopup) Visible() bool {
	return p.phase != phaseHidden
}

// Alpha 当前不透明度
func (p *InstructionPopup) Alpha() float64 {
	return p.alpha
}

// Title 当前弹窗标题
func (p *InstructionPopup) Title() string {
	return p.title
}

// Text 当前弹窗正文
func (p *InstructionPopup) Text() string {
	return p.text
}

// Banner 当前步骤栏文字
func (p *InstructionPopup) Banner() string {
	return p.banner
}

// Bounds 弹窗矩形
func (p *InstructionPopup) Bounds() Rect {
	return p.bounds
}

// OKButton "OK" 按钮
func (p *InstructionPopup) OKButton() Button {
	return p.ok
}

// Contains 点是否落在弹窗上，淡出中的弹窗不再拦截指针
func (p *InstructionPopup) Contains(x, y float64) bool {
	if p.phase == phaseHidden || p.phase == phaseFadingOut {
		return false
	}
	return p.bounds.Contains(x, y)
}

// HandleHover 更新按钮悬停状态
func (p *InstructionPopup) HandleHover(x, y float64) {
	p.ok.Hovered = p.Contains(x, y) && p.ok.Bounds.Contains(x, y)
}

// HandleClick 处理点击，点中 "OK" 按钮时返回 true
func (p *InstructionPopup) HandleClick(x, y float64) bool {
	if !p.Contains(x, y) || !p.ok.Bounds.Contains(x, y) {
		return false
	}
	log.Printf("[InstructionPopup] OK clicked (%s)", p.title)
	if p.OnAcknowledge != nil {
		p.OnAcknowledge()
	} else {
		p.Hide()
	}
	return true
}

// Update 推进淡入淡出
func (p *InstructionPopup) Update(dt float64) {
	switch p.phase {
	case phaseFadingIn:
		p.elapsed += dt
		t := utils.Clamp01(p.elapsed / config.PopupFadeDuration)
		p.alpha = utils.EaseOutCubic(t)
		if t >= 1 {
			p.phase = phaseShown
		}
	case phaseFadingOut:
		p.elapsed += dt
		t := utils.Clamp01(p.elapsed / config.PopupFadeDuration)
		p.alpha = 1 - utils.EaseOutCubic(t)
		if t >= 1 {
			p.phase = phaseHidden
			p.alpha = 0
		}
	}
}

// Draw 绘制步骤栏与弹窗
func (p *InstructionPopup) Draw(screen *ebiten.Image) {
	p.drawBanner(screen)
	if p.phase == phaseHidden {
		return
	}

	fillRect(screen, p.bounds, panelColor, p.alpha)
	strokeRect(screen, p.bounds, 2, panelBorderColor, p.alpha)

	titleFace, bodyFace, buttonFace := p.faces()
	cx := p.bounds.X + p.bounds.W/2
	y := p.bounds.Y + config.PopupPadding
	drawText(screen, p.title, titleFace, cx, y, true, titleColor, p.alpha)
	y += lineHeight(titleFace, config.PopupTitleFontSize) + config.PopupPadding/2

	bodyLine := lineHeight(bodyFace, config.PopupTextFontSize)
	for _, line := range p.lines {
		drawText(screen, line, bodyFace, p.bounds.X+config.PopupPadding, y, false, bodyColor, p.alpha)
		y += bodyLine
	}

	drawButton(screen, &p.ok, buttonFace, p.alpha)
}

func (p *InstructionPopup) drawBanner(screen *ebiten.Image) {
	if p.banner == "" {
		return
	}
	bar := Rect{W: config.GameWindowWidth, H: config.BannerHeight}
	fillRect(screen, bar, bannerColor, 1)

	var face *text.GoTextFace
	if p.fonts != nil {
		face = p.fonts.Banner
	}
	textHeight := lineHeight(face, config.BannerFontSize) / config.PopupLineSpacing
	drawText(screen, p.banner, face, bar.W/2, (bar.H-textHeight)/2, true, bannerTextColor, 1)
}

func (p *InstructionPopup) faces() (title, body, button *text.GoTextFace) {
	if p.fonts == nil {
		return nil, nil, nil
	}
	return p.fonts.Title, p.fonts.Body, p.fonts.Button
}

func (p *InstructionPopup) setContent(title, body string) {
	p.title = title
	p.text = body
	p.layout()
}

func (p *InstructionPopup) fadeIn() {
	if p.phase == phaseShown {
		return
	}
	// 从当前不透明度继续淡入
	p.elapsed = p.alpha * config.PopupFadeDuration
	p.phase = phaseFadingIn
}

// layout 根据正文行数计算弹窗与按钮位置，弹窗在逻辑屏幕居中
func (p *InstructionPopup) layout() {
	titleFace, bodyFace, _ := p.faces()
	contentWidth := config.PopupWidth - 2*config.PopupPadding
	p.lines = utils.WrapText(p.text, bodyFace, contentWidth)

	height := config.PopupPadding +
		lineHeight(titleFace, config.PopupTitleFontSize) + config.PopupPadding/2 +
		float64(len(p.lines))*lineHeight(bodyFace, config.PopupTextFontSize) +
		config.PopupPadding + config.PopupButtonHeight + config.PopupPadding

	p.bounds = Rect{
		X: (config.GameWindowWidth - config.PopupWidth) / 2,
		Y: (config.GameWindowHeight - height) / 2,
		W: config.PopupWidth,
		H: height,
	}
	p.ok.Bounds = Rect{
		X: p.bounds.X + (p.bounds.W-config.PopupButtonWidth)/2,
		Y: p.bounds.Y + p.bounds.H - config.PopupPadding - config.PopupButtonHeight,
		W: config.PopupButtonWidth,
		H: config.PopupButtonHeight,
	}
}
