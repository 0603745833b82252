package config

import "testing"

// TestPopupLayoutFitsWindow 弹窗与按钮尺寸必须能放进逻辑屏幕
func TestPopupLayoutFitsWindow(t *testing.T) {
	if PopupWidth > GameWindowWidth {
		t.Errorf("popup width %v exceeds window width %d", PopupWidth, GameWindowWidth)
	}
	if PopupButtonWidth > PopupWidth-2*PopupPadding {
		t.Errorf("OK button does not fit inside the popup")
	}
	if StartButtonWidth > PopupWidth-2*PopupPadding {
		t.Errorf("start button does not fit inside the popup")
	}
	if BannerHeight >= GameWindowHeight/4 {
		t.Errorf("banner height %v takes too much of the screen", BannerHeight)
	}
}
