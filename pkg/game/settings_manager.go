package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// LabSettings 全局设置
type LabSettings struct {
	// 显示设置
	Fullscreen bool `yaml:"fullscreen"` // 启动时是否全屏
	ShowGrid   bool `yaml:"showGrid"`   // 是否绘制地面网格

	// 镜头设置
	OrbitSensitivity float64 `yaml:"orbitSensitivity"` // 环绕旋转灵敏度倍数 0.1 ~ 3.0
}

// DefaultSettings 返回默认设置
func DefaultSettings() *LabSettings {
	return &LabSettings{
		Fullscreen:       false,
		ShowGrid:         true,
		OrbitSensitivity: 1.0,
	}
}

// SettingsManager 设置管理器
// 负责设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *LabSettings
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "global"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 加载失败不是致命错误，使用默认设置。
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}
	return sm
}

// Load 从 gdata 加载设置
// gdataManager 为 nil 或文件不存在时使用默认设置
func (sm *SettingsManager) Load() error {
	sm.settings = DefaultSettings()

	data, found, err := loadProp(sm.gdataManager, settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	if !found {
		return nil
	}

	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	loaded.OrbitSensitivity = clampSensitivity(loaded.OrbitSensitivity)

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
// gdataManager 为 nil 时返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if err := saveProp(sm.gdataManager, settingsObject, settingsProperty, sm.settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *LabSettings {
	return sm.settings
}

// SetFullscreen 设置全屏模式
// 仅修改内存中的设置，需调用 Save() 持久化
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

// SetShowGrid 设置是否绘制地面网格
func (sm *SettingsManager) SetShowGrid(enabled bool) {
	sm.settings.ShowGrid = enabled
}

// SetOrbitSensitivity 设置环绕旋转灵敏度，值被限制在 0.1 ~ 3.0
func (sm *SettingsManager) SetOrbitSensitivity(v float64) {
	sm.settings.OrbitSensitivity = clampSensitivity(v)
}

func clampSensitivity(v float64) float64 {
	if v < 0.1 {
		return 0.1
	}
	if v > 3.0 {
		return 3.0
	}
	return v
}
