// Package ui 实现覆盖在 3D 场景上方的二维界面：指令弹窗、顶部步骤栏、开始界面
package ui

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/decker502/virtuallab/pkg/config"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// Fonts 界面使用的字体
type Fonts struct {
	Title  *text.GoTextFace
	Body   *text.GoTextFace
	Banner *text.GoTextFace
	Button *text.GoTextFace
}

var loadSource = sync.OnceValues(func() (*text.GoTextFaceSource, error) {
	return text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
})

// LoadFonts 加载内置字体（Go Regular）
func LoadFonts() (*Fonts, error) {
	source, err := loadSource()
	if err != nil {
		return nil, fmt.Errorf("failed to load UI font: %w", err)
	}
	return &Fonts{
		Title:  &text.GoTextFace{Source: source, Size: config.PopupTitleFontSize},
		Body:   &text.GoTextFace{Source: source, Size: config.PopupTextFontSize},
		Banner: &text.GoTextFace{Source: source, Size: config.BannerFontSize},
		Button: &text.GoTextFace{Source: source, Size: config.PopupTextFontSize},
	}, nil
}

// lineHeight 字体行高；face 为 nil 时按字号估算
func lineHeight(face *text.GoTextFace, size float64) float64 {
	if face == nil {
		return size * config.PopupLineSpacing
	}
	m := face.Metrics()
	return (m.HAscent + m.HDescent) * config.PopupLineSpacing
}
