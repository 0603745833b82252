package config

import (
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"
)

// CompleteFlag 实验全部完成时通知场景使用的保留标志
// 步骤配置中不允许使用此标志
const CompleteFlag = "complete"

// StepDescriptor 单个实验步骤
// 启动时从 steps.yaml 加载一次，之后只读
type StepDescriptor struct {
	Flag  string `yaml:"flag"`  // 步骤标志，如 "step1"，必须唯一
	Title string `yaml:"title"` // 弹窗标题
	Text  string `yaml:"text"`  // 弹窗正文，确认后也显示在顶部步骤栏
}

// CompletionMessage 实验完成时的弹窗内容
type CompletionMessage struct {
	Title string `yaml:"title"`
	Text  string `yaml:"text"`
}

// StepsConfig 实验步骤配置
type StepsConfig struct {
	Steps      []StepDescriptor  `yaml:"steps"`
	Completion CompletionMessage `yaml:"completion"`
}

// LoadStepsConfig 从文件系统加载步骤配置
//
// 参数：
//   - fsys: 文件系统（嵌入资源或磁盘目录）
//   - path: 配置文件路径，如 "data/steps.yaml"
//
// 返回：
//   - *StepsConfig: 解析并校验后的配置
//   - error: 读取、解析或校验失败
func LoadStepsConfig(fsys fs.FS, path string) (*StepsConfig, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read steps config file %s: %w", path, err)
	}

	cfg, err := ParseStepsConfig(data)
	if err != nil {
		return nil, fmt.Errorf("invalid steps config in %s: %w", path, err)
	}
	return cfg, nil
}

// ParseStepsConfig 解析 YAML 格式的步骤配置
func ParseStepsConfig(data []byte) (*StepsConfig, error) {
	var cfg StepsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse steps YAML: %w", err)
	}

	applyStepsDefaults(&cfg)

	if err := validateStepsConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyStepsDefaults 为缺失的完成提示设置默认文本
func applyStepsDefaults(cfg *StepsConfig) {
	if cfg.Completion.Title == "" {
		cfg.Completion.Title = "Experiment Complete!"
	}
	if cfg.Completion.Text == "" {
		cfg.Completion.Text = "You have successfully completed all steps of the experiment."
	}
}

// validateStepsConfig 校验步骤配置
func validateStepsConfig(cfg *StepsConfig) error {
	if len(cfg.Steps) == 0 {
		return fmt.Errorf("at least one step is required")
	}

	seen := make(map[string]int, len(cfg.Steps))
	for i, step := range cfg.Steps {
		if step.Flag == "" {
			return fmt.Errorf("step %d: flag is required", i)
		}
		if step.Flag == CompleteFlag {
			return fmt.Errorf("step %d: flag %q is reserved", i, CompleteFlag)
		}
		if prev, dup := seen[step.Flag]; dup {
			return fmt.Errorf("step %d: duplicate flag %q (first used by step %d)", i, step.Flag, prev)
		}
		seen[step.Flag] = i

		if step.Title == "" {
			return fmt.Errorf("step %d (%s): title is required", i, step.Flag)
		}
	}
	return nil
}

// Flags 返回按顺序排列的步骤标志
func (c *StepsConfig) Flags() []string {
	flags := make([]string, len(c.Steps))
	for i, s := range c.Steps {
		flags[i] = s.Flag
	}
	return flags
}

// SameFlags 两份配置的步骤标志序列是否完全一致（热更新只允许修改文本）
func (c *StepsConfig) SameFlags(other *StepsConfig) bool {
	if other == nil || len(c.Steps) != len(other.Steps) {
		return false
	}
	for i := range c.Steps {
		if c.Steps[i].Flag != other.Steps[i].Flag {
			return false
		}
	}
	return true
}
