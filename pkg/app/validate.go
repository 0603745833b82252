package app

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"sort"

	"github.com/decker502/virtuallab/pkg/assets"
	"github.com/decker502/virtuallab/pkg/config"
	"golang.org/x/sync/errgroup"
)

// ValidationReport 数据校验结果
type ValidationReport struct {
	Steps  int
	Gates  int
	Props  int
	Models []string // 校验通过的模型
}

// Validate 校验数据目录：步骤、门控表、布局，以及布局引用的每个模型文件
// 模型并发解析，返回遇到的第一个错误
func Validate(ctx context.Context, fsys fs.FS, dir string) (*ValidationReport, error) {
	data, err := config.LoadLabData(fsys, dir)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var models []string
	for _, prop := range data.Layout.Props {
		if !seen[prop.Asset] {
			seen[prop.Asset] = true
			models = append(models, prop.Asset)
		}
	}
	sort.Strings(models)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(loadLimit)
	for _, name := range models {
		name := name
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			file := path.Join(data.ModelsPath(), name+".yaml")
			raw, err := fs.ReadFile(fsys, file)
			if err != nil {
				return fmt.Errorf("model %s: %w", name, err)
			}
			if _, err := assets.ParseModel(raw); err != nil {
				return fmt.Errorf("model %s: %w", file, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &ValidationReport{
		Steps:  len(data.Steps.Steps),
		Gates:  len(data.Gates.Gates()),
		Props:  len(data.Layout.Props),
		Models: models,
	}, nil
}

// loadLimit 校验时并发解析的模型数
const loadLimit = 4
