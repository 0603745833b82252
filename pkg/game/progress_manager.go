package game

import (
	"fmt"
	"log"
	"time"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// LabProgress 实验完成记录
type LabProgress struct {
	CompletedRuns int       `yaml:"completedRuns"`
	FastestRun    float64   `yaml:"fastestRun"` // 最快完成用时（秒），0 表示尚无记录
	LastCompleted time.Time `yaml:"lastCompleted"`
}

// ProgressManager 管理实验完成记录
// gdata 不可用时仅在内存中记录
type ProgressManager struct {
	gdataManager *gdata.Manager
	progress     LabProgress

	// now 当前时间，测试中替换
	now func() time.Time
}

const (
	progressObject   = "progress"
	progressProperty = "lab"
)

// NewProgressManager 创建进度管理器并加载已保存的记录
func NewProgressManager(gdataManager *gdata.Manager) *ProgressManager {
	pm := &ProgressManager{
		gdataManager: gdataManager,
		now:          time.Now,
	}
	if err := pm.Load(); err != nil {
		log.Printf("[ProgressManager] Warning: Failed to load progress: %v (starting fresh)", err)
	}
	return pm
}

// Load 从 gdata 加载记录
func (pm *ProgressManager) Load() error {
	pm.progress = LabProgress{}

	data, found, err := loadProp(pm.gdataManager, progressObject, progressProperty)
	if err != nil {
		return fmt.Errorf("failed to load progress: %w", err)
	}
	if !found {
		return nil
	}

	var loaded LabProgress
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to unmarshal progress: %w", err)
	}
	pm.progress = loaded
	return nil
}

// RecordCompletion 记录一次完成，duration 为本次实验用时（秒）
// 记录立即保存；保存失败只影响持久化，内存记录仍然更新
func (pm *ProgressManager) RecordCompletion(duration float64) error {
	pm.progress.CompletedRuns++
	pm.progress.LastCompleted = pm.now()
	if duration > 0 && (pm.progress.FastestRun == 0 || duration < pm.progress.FastestRun) {
		pm.progress.FastestRun = duration
	}

	log.Printf("[ProgressManager] Completion recorded: run #%d in %.1fs", pm.progress.CompletedRuns, duration)

	if err := saveProp(pm.gdataManager, progressObject, progressProperty, pm.progress); err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}
	return nil
}

// Progress 返回当前记录
func (pm *ProgressManager) Progress() LabProgress {
	return pm.progress
}
