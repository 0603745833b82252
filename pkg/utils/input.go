// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerSample 一帧的指针状态
// 鼠标与触摸统一为一个指针，优先使用触摸
type PointerSample struct {
	X, Y    float64
	Pressed bool

	// Wheel 滚轮纵向增量（正值向上）
	Wheel float64

	// IsTouch 本帧是否来自触摸
	IsTouch bool
}

// 最后一次触摸位置（触摸释放后 ebiten 不再报告该触点的位置）
var lastTouchX, lastTouchY int

// ReadPointer 读取当前帧的指针状态
func ReadPointer() PointerSample {
	_, wheelY := ebiten.Wheel()

	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		lastTouchX, lastTouchY = ebiten.TouchPosition(touchIDs[0])
		return PointerSample{
			X:       float64(lastTouchX),
			Y:       float64(lastTouchY),
			Pressed: true,
			Wheel:   wheelY,
			IsTouch: true,
		}
	}

	// 触摸刚释放：报告最后位置，Pressed 为 false
	if len(inpututil.AppendJustReleasedTouchIDs(nil)) > 0 {
		return PointerSample{
			X:       float64(lastTouchX),
			Y:       float64(lastTouchY),
			Wheel:   wheelY,
			IsTouch: true,
		}
	}

	x, y := ebiten.CursorPosition()
	return PointerSample{
		X:       float64(x),
		Y:       float64(y),
		Pressed: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		Wheel:   wheelY,
	}
}

// IsPointerJustReleased 检查是否刚刚释放指针（触摸或鼠标）
// 返回是否释放以及释放位置
func IsPointerJustReleased() (bool, int, int) {
	if len(inpututil.AppendJustReleasedTouchIDs(nil)) > 0 {
		return true, lastTouchX, lastTouchY
	}

	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return true, x, y
	}

	return false, 0, 0
}
