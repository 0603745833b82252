package config

import (
	"fmt"
	"io/fs"

	"github.com/decker502/virtuallab/pkg/types"
	"gopkg.in/yaml.v3"
)

// GateConfig 单个步骤的门控规则
// 当前步骤为 Flag 时，只有点击 Identity 对应的道具才会触发 Effect
type GateConfig struct {
	Flag     string               `yaml:"flag"`     // 被门控的步骤标志
	Identity types.ObjectIdentity `yaml:"identity"` // 解锁此步骤的道具身份
	Effect   types.GateEffect     `yaml:"effect"`   // 命中后的转场效果

	// DragTarget 拖拽目标（仅 armDrag 效果使用）
	// 被拖拽道具与目标包围盒重叠时推进步骤
	DragTarget types.ObjectIdentity `yaml:"dragTarget"`
}

// GateTable 步骤 → 门控规则映射表
type GateTable struct {
	gates  []GateConfig
	byFlag map[string]GateConfig
}

type gateFile struct {
	Gates []GateConfig `yaml:"gates"`
}

// LoadGateTable 从文件系统加载门控表
func LoadGateTable(fsys fs.FS, path string) (*GateTable, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read gate config file %s: %w", path, err)
	}

	table, err := ParseGateTable(data)
	if err != nil {
		return nil, fmt.Errorf("invalid gate config in %s: %w", path, err)
	}
	return table, nil
}

// ParseGateTable 解析 YAML 格式的门控表
func ParseGateTable(data []byte) (*GateTable, error) {
	var file gateFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse gates YAML: %w", err)
	}
	return NewGateTable(file.Gates)
}

// NewGateTable 由门控规则列表构建门控表并校验
func NewGateTable(gates []GateConfig) (*GateTable, error) {
	table := &GateTable{
		gates:  gates,
		byFlag: make(map[string]GateConfig, len(gates)),
	}

	for i, g := range gates {
		if g.Flag == "" {
			return nil, fmt.Errorf("gate %d: flag is required", i)
		}
		if _, dup := table.byFlag[g.Flag]; dup {
			return nil, fmt.Errorf("gate %d: duplicate flag %q", i, g.Flag)
		}
		if g.Identity == types.IdentityUnknown {
			return nil, fmt.Errorf("gate %d (%s): identity is required", i, g.Flag)
		}
		if g.Effect == types.EffectNone {
			return nil, fmt.Errorf("gate %d (%s): effect is required", i, g.Flag)
		}
		if g.Effect == types.EffectArmDrag {
			if g.DragTarget == types.IdentityUnknown {
				return nil, fmt.Errorf("gate %d (%s): armDrag requires dragTarget", i, g.Flag)
			}
			if g.DragTarget == g.Identity {
				return nil, fmt.Errorf("gate %d (%s): dragTarget must differ from identity", i, g.Flag)
			}
		}
		table.byFlag[g.Flag] = g
	}

	return table, nil
}

// Lookup 查询步骤的门控规则
func (t *GateTable) Lookup(flag string) (GateConfig, bool) {
	g, ok := t.byFlag[flag]
	return g, ok
}

// Gates 返回全部门控规则（按配置顺序）
func (t *GateTable) Gates() []GateConfig {
	return t.gates
}

// ValidateAgainst 校验门控表引用的步骤都存在
// 返回没有门控规则的步骤标志（这些步骤只能通过其他途径推进）
func (t *GateTable) ValidateAgainst(steps *StepsConfig) (ungated []string, err error) {
	known := make(map[string]bool, len(steps.Steps))
	for _, s := range steps.Steps {
		known[s.Flag] = true
	}

	for _, g := range t.gates {
		if !known[g.Flag] {
			return nil, fmt.Errorf("gate for unknown step %q", g.Flag)
		}
	}

	for _, s := range steps.Steps {
		if _, ok := t.byFlag[s.Flag]; !ok {
			ungated = append(ungated, s.Flag)
		}
	}
	return ungated, nil
}
