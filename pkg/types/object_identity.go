// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ObjectIdentity 定义实验台上可交互道具的身份
// 身份在道具资源加载完成时分配一次，之后不再改变
type ObjectIdentity int

const (
	// IdentityUnknown 未知道具（零值，不参与任何门控）
	IdentityUnknown ObjectIdentity = iota
	// IdentityGloves 手套
	IdentityGloves
	// IdentityStriker 打火器（火石点火器）
	IdentityStriker
	// IdentityToothpick 牙签（接种工具）
	IdentityToothpick
	// IdentityPetriDish 培养皿
	IdentityPetriDish
	// IdentityBurner 本生灯（拖拽目标）
	IdentityBurner
	// IdentityFinalResult 实验结果模型（完成后显示）
	IdentityFinalResult
)

// identityNames 身份与配置文件中名称的对应关系
var identityNames = map[ObjectIdentity]string{
	IdentityGloves:      "gloves",
	IdentityStriker:     "striker",
	IdentityToothpick:   "toothpick",
	IdentityPetriDish:   "petriDish",
	IdentityBurner:      "burner",
	IdentityFinalResult: "finalResult",
}

// String 返回道具身份的字符串表示（与 YAML 配置中的写法一致）
func (id ObjectIdentity) String() string {
	if name, ok := identityNames[id]; ok {
		return name
	}
	return "unknown"
}

// ParseObjectIdentity 从配置字符串解析道具身份（大小写不敏感）
func ParseObjectIdentity(s string) (ObjectIdentity, error) {
	for id, name := range identityNames {
		if strings.EqualFold(name, s) {
			return id, nil
		}
	}
	return IdentityUnknown, fmt.Errorf("unknown object identity %q", s)
}

// UnmarshalYAML 支持在 YAML 中直接书写身份名称
func (id *ObjectIdentity) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseObjectIdentity(s)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// MarshalYAML 以名称形式写出身份
func (id ObjectIdentity) MarshalYAML() (interface{}, error) {
	return id.String(), nil
}

// AllIdentities 返回所有有效身份（按声明顺序）
func AllIdentities() []ObjectIdentity {
	return []ObjectIdentity{
		IdentityGloves,
		IdentityStriker,
		IdentityToothpick,
		IdentityPetriDish,
		IdentityBurner,
		IdentityFinalResult,
	}
}
