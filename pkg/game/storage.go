package game

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// OpenStorage 打开 gdata 存储
// 失败时返回 nil 和错误，调用方以降级模式（仅内存）继续
func OpenStorage(appName string) (*gdata.Manager, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("failed to open storage for %s: %w", appName, err)
	}
	return m, nil
}

// loadProp 读取对象属性，属性不存在时 found 为 false
func loadProp(m *gdata.Manager, object, prop string) (data []byte, found bool, err error) {
	if m == nil || !m.ObjectPropExists(object, prop) {
		return nil, false, nil
	}
	data, err = m.LoadObjectProp(object, prop)
	if err != nil {
		return nil, true, err
	}
	return data, true, nil
}

// saveProp 以 YAML 序列化并保存对象属性，m 为 nil 时什么也不做
func saveProp(m *gdata.Manager, object, prop string, v any) error {
	if m == nil {
		return nil
	}
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s/%s: %w", object, prop, err)
	}
	return m.SaveObjectProp(object, prop, data)
}
