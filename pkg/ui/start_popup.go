package ui

import (
	"github.com/decker502/virtuallab/pkg/config"
	"github.com/decker502/virtuallab/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// StartPopup 开始界面：实验简介与 "Start Experiment" 按钮
type StartPopup struct {
	fonts *Fonts
	title string
	lines []string

	bounds Rect
	start  Button

	// OnStart 点击开始按钮后调用
	OnStart func()
}

// NewStartPopup 创建开始界面
func NewStartPopup(fonts *Fonts, title, intro string) *StartPopup {
	p := &StartPopup{
		fonts: fonts,
		title: title,
		start: Button{Label: "Start Experiment"},
	}

	titleFace, bodyFace := p.faces()
	p.lines = utils.WrapText(intro, bodyFace, config.PopupWidth-2*config.PopupPadding)

	height := config.PopupPadding +
		lineHeight(titleFace, config.PopupTitleFontSize) + config.PopupPadding/2 +
		float64(len(p.lines))*lineHeight(bodyFace, config.PopupTextFontSize) +
		config.PopupPadding + config.StartButtonHeight + config.PopupPadding
	p.bounds = Rect{
		X: (config.GameWindowWidth - config.PopupWidth) / 2,
		Y: (config.GameWindowHeight - height) / 2,
		W: config.PopupWidth,
		H: height,
	}
	p.start.Bounds = Rect{
		X: p.bounds.X + (p.bounds.W-config.StartButtonWidth)/2,
		Y: p.bounds.Y + p.bounds.H - config.PopupPadding - config.StartButtonHeight,
		W: config.StartButtonWidth,
		H: config.StartButtonHeight,
	}
	return p
}

// StartButton 开始按钮
func (p *StartPopup) StartButton() Button {
	return p.start
}

// HandleHover 更新按钮悬停状态
func (p *StartPopup) HandleHover(x, y float64) {
	p.start.Hovered = p.start.Bounds.Contains(x, y)
}

// HandleClick 点中开始按钮时调用 OnStart 并返回 true
func (p *StartPopup) HandleClick(x, y float64) bool {
	if !p.start.Bounds.Contains(x, y) {
		return false
	}
	if p.OnStart != nil {
		p.OnStart()
	}
	return true
}

// Draw 绘制开始界面
func (p *StartPopup) Draw(screen *ebiten.Image) {
	fillRect(screen, p.bounds, panelColor, 1)
	strokeRect(screen, p.bounds, 2, panelBorderColor, 1)

	titleFace, bodyFace := p.faces()
	y := p.bounds.Y + config.PopupPadding
	drawText(screen, p.title, titleFace, p.bounds.X+p.bounds.W/2, y, true, titleColor, 1)
	y += lineHeight(titleFace, config.PopupTitleFontSize) + config.PopupPadding/2

	for _, line := range p.lines {
		drawText(screen, line, bodyFace, p.bounds.X+config.PopupPadding, y, false, bodyColor, 1)
		y += lineHeight(bodyFace, config.PopupTextFontSize)
	}

	var buttonFace *text.GoTextFace
	if p.fonts != nil {
		buttonFace = p.fonts.Button
	}
	drawButton(screen, &p.start, buttonFace, 1)
}

func (p *StartPopup) faces() (title, body *text.GoTextFace) {
	if p.fonts == nil {
		return nil, nil
	}
	return p.fonts.Title, p.fonts.Body
}
