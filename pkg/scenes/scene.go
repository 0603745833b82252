// Package scenes 实现应用的各个场景：开始界面与 3D 实验室
package scenes

import (
	"github.com/decker502/virtuallab/pkg/game"
)

// Scene is a type alias for game.Scene.
type Scene = game.Scene

// 场景注册名
const (
	SceneStart = "start"
	SceneLab   = "lab"
)
