package config

import (
	"fmt"
	"io/fs"
	"log"
	"path"
)

// 数据目录中的文件名
const (
	StepsFile  = "steps.yaml"
	GatesFile  = "gates.yaml"
	LayoutFile = "layout.yaml"
	ModelsDir  = "models"
)

// LabData 实验运行所需的全部数据文件
type LabData struct {
	FS  fs.FS  // 数据所在文件系统
	Dir string // 数据目录（FS 内路径），如 "data" 或 "."

	Steps  *StepsConfig
	Gates  *GateTable
	Layout *LabLayoutConfig
}

// LoadLabData 加载并交叉校验步骤、门控表与布局
//
// 门控表中的标志必须都是已知步骤；没有门控的步骤只记录警告
// （这样的步骤无法通过点击推进）。
func LoadLabData(fsys fs.FS, dir string) (*LabData, error) {
	steps, err := LoadStepsConfig(fsys, path.Join(dir, StepsFile))
	if err != nil {
		return nil, err
	}

	gates, err := LoadGateTable(fsys, path.Join(dir, GatesFile))
	if err != nil {
		return nil, err
	}
	ungated, err := gates.ValidateAgainst(steps)
	if err != nil {
		return nil, fmt.Errorf("gates do not match steps: %w", err)
	}
	for _, flag := range ungated {
		log.Printf("[Config] Warning: step %s has no gate and cannot be advanced by clicking", flag)
	}

	layout, err := LoadLabLayoutConfig(fsys, path.Join(dir, LayoutFile))
	if err != nil {
		return nil, err
	}

	return &LabData{FS: fsys, Dir: dir, Steps: steps, Gates: gates, Layout: layout}, nil
}

// ModelsPath 模型目录在 FS 中的路径
func (d *LabData) ModelsPath() string {
	return path.Join(d.Dir, ModelsDir)
}
