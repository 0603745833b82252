// Package assets 负责道具模型资源的解析与异步加载
//
// 模型文件为 YAML 格式（data/models/<name>.yaml），由若干长方体部件组成：
//
//	name: flint_striker
//	parts:
//	  - name: handle
//	    center: [0, 0.015, 0]
//	    size: [0.14, 0.03, 0.05]
//	    color: 0x3a3a3a
package assets

import (
	"fmt"

	"github.com/decker502/virtuallab/pkg/config"
	"github.com/decker502/virtuallab/pkg/math3d"
	"github.com/decker502/virtuallab/pkg/scene"
	"gopkg.in/yaml.v3"
)

// PartSpec 模型文件中的单个部件
type PartSpec struct {
	Name     string        `yaml:"name"`
	Center   config.Vector `yaml:"center"`
	Size     config.Vector `yaml:"size"`
	Color    uint32        `yaml:"color"`
	Emissive uint32        `yaml:"emissive"`
}

// ModelFile 模型文件
type ModelFile struct {
	Name  string     `yaml:"name"`
	Parts []PartSpec `yaml:"parts"`
}

// ParseModel 解析模型文件并构造场景模型
func ParseModel(data []byte) (*scene.Model, error) {
	var file ModelFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse model YAML: %w", err)
	}

	if file.Name == "" {
		return nil, fmt.Errorf("model name is required")
	}
	if len(file.Parts) == 0 {
		return nil, fmt.Errorf("model %s: at least one part is required", file.Name)
	}

	parts := make([]*scene.Part, 0, len(file.Parts))
	for i, spec := range file.Parts {
		size := spec.Size.Vec3()
		if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
			return nil, fmt.Errorf("model %s, part %d: size must be positive, got %+v", file.Name, i, size)
		}
		name := spec.Name
		if name == "" {
			name = fmt.Sprintf("%s_part%d", file.Name, i)
		}
		parts = append(parts, &scene.Part{
			Name:     name,
			Bounds:   math3d.BoxFromCenterSize(spec.Center.Vec3(), size),
			Color:    scene.Color(spec.Color),
			Emissive: scene.Color(spec.Emissive),
		})
	}

	return scene.NewModel(file.Name, parts), nil
}
