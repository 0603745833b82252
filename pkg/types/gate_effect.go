package types

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// GateEffect 门控步骤被点击命中后执行的转场效果
type GateEffect int

const (
	// EffectNone 无效果（配置缺失时的零值）
	EffectNone GateEffect = iota
	// EffectAdvance 直接推进到下一步
	EffectAdvance
	// EffectWearGloves 戴上手套（手套开始跟随镜头）并推进到下一步
	EffectWearGloves
	// EffectArmDrag 使道具变为可拖拽，由拖拽碰撞推进步骤
	EffectArmDrag
)

var effectNames = map[GateEffect]string{
	EffectAdvance:    "advance",
	EffectWearGloves: "wearGloves",
	EffectArmDrag:    "armDrag",
}

// String 返回效果名称
func (e GateEffect) String() string {
	if name, ok := effectNames[e]; ok {
		return name
	}
	return "none"
}

// AdvancesOnClick 点击命中后是否立即推进步骤
func (e GateEffect) AdvancesOnClick() bool {
	return e == EffectAdvance || e == EffectWearGloves
}

// ParseGateEffect 从配置字符串解析效果（大小写不敏感）
func ParseGateEffect(s string) (GateEffect, error) {
	for e, name := range effectNames {
		if strings.EqualFold(name, s) {
			return e, nil
		}
	}
	return EffectNone, fmt.Errorf("unknown gate effect %q", s)
}

// UnmarshalYAML 支持在 YAML 中直接书写效果名称
func (e *GateEffect) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseGateEffect(s)
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}
