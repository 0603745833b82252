package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	panelColor       = color.NRGBA{R: 0xfa, G: 0xfa, B: 0xfa, A: 0xf0}
	panelBorderColor = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
	titleColor       = color.NRGBA{R: 0x1a, G: 0x1a, B: 0x1a, A: 0xff}
	bodyColor        = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
	buttonColor      = color.NRGBA{R: 0x4c, G: 0xaf, B: 0x50, A: 0xff}
	buttonHoverColor = color.NRGBA{R: 0x45, G: 0xa0, B: 0x49, A: 0xff}
	buttonTextColor  = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	bannerColor      = color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xb3}
	bannerTextColor  = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// Rect 屏幕矩形
type Rect struct {
	X, Y, W, H float64
}

// Contains 点是否在矩形内
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// Button 文字按钮
type Button struct {
	Label   string
	Bounds  Rect
	Hovered bool
}

// withAlpha 按透明度缩放颜色
func withAlpha(c color.NRGBA, alpha float64) color.NRGBA {
	c.A = uint8(float64(c.A) * alpha)
	return c
}

func fillRect(screen *ebiten.Image, r Rect, c color.NRGBA, alpha float64) {
	vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), withAlpha(c, alpha), true)
}

func strokeRect(screen *ebiten.Image, r Rect, width float32, c color.NRGBA, alpha float64) {
	vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), width, withAlpha(c, alpha), true)
}

// drawText 绘制单行文本，centered 为 true 时 x 为水平中心
func drawText(screen *ebiten.Image, s string, face *text.GoTextFace, x, y float64, centered bool, c color.NRGBA, alpha float64) {
	if face == nil || s == "" {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	op.ColorScale.ScaleAlpha(float32(alpha))
	if centered {
		op.PrimaryAlign = text.AlignCenter
	}
	text.Draw(screen, s, face, op)
}

// drawButton 绘制按钮：圆角以普通矩形代替
func drawButton(screen *ebiten.Image, b *Button, face *text.GoTextFace, alpha float64) {
	bg := buttonColor
	if b.Hovered {
		bg = buttonHoverColor
	}
	fillRect(screen, b.Bounds, bg, alpha)

	op := &text.DrawOptions{}
	op.GeoM.Translate(b.Bounds.X+b.Bounds.W/2, b.Bounds.Y+b.Bounds.H/2)
	op.ColorScale.ScaleWithColor(buttonTextColor)
	op.ColorScale.ScaleAlpha(float32(alpha))
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	if face != nil {
		text.Draw(screen, b.Label, face, op)
	}
}
