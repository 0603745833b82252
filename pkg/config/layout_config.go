package config

import (
	"fmt"
	"io/fs"
	"math"

	"github.com/decker502/virtuallab/pkg/math3d"
	"github.com/decker502/virtuallab/pkg/types"
	"gopkg.in/yaml.v3"
)

// 实验室布局配置
// 所有坐标使用世界坐标（米），Y 轴向上，实验台台面高度约 0.53

// Vector YAML 中以 [x, y, z] 书写的三维向量
type Vector struct {
	X, Y, Z float64
}

// UnmarshalYAML 解析 [x, y, z] 序列
func (v *Vector) UnmarshalYAML(value *yaml.Node) error {
	var xs []float64
	if err := value.Decode(&xs); err != nil {
		return err
	}
	if len(xs) != 3 {
		return fmt.Errorf("vector must have 3 components, got %d", len(xs))
	}
	v.X, v.Y, v.Z = xs[0], xs[1], xs[2]
	return nil
}

// Vec3 转换为 math3d 向量
func (v Vector) Vec3() math3d.Vec3 {
	return math3d.Vec3{X: v.X, Y: v.Y, Z: v.Z}
}

// EulerQuat 将以角度书写的欧拉角转换为四元数
func (v Vector) EulerQuat() math3d.Quat {
	const deg = math.Pi / 180
	return math3d.QuatFromEuler(v.X*deg, v.Y*deg, v.Z*deg)
}

// CameraConfig 镜头与环绕控制参数
type CameraConfig struct {
	Position    Vector  `yaml:"position"`
	Target      Vector  `yaml:"target"`
	FOV         float64 `yaml:"fov"`
	Near        float64 `yaml:"near"`
	Far         float64 `yaml:"far"`
	MinDistance float64 `yaml:"minDistance"` // 镜头离观察点的最近距离
	MaxDistance float64 `yaml:"maxDistance"` // 镜头离观察点的最远距离
	Damping     bool    `yaml:"damping"`
	BoundsMin   Vector  `yaml:"boundsMin"` // 镜头位置被限制在房间包围盒内
	BoundsMax   Vector  `yaml:"boundsMax"`
}

// Bounds 镜头活动范围
func (c CameraConfig) Bounds() math3d.Box3 {
	return math3d.Box3{Min: c.BoundsMin.Vec3(), Max: c.BoundsMax.Vec3()}
}

// RoomConfig 实验室房间（墙、地板、天花板）参数
type RoomConfig struct {
	Width        float64 `yaml:"width"`  // 墙宽（正方形房间边长）
	Height       float64 `yaml:"height"` // 墙高
	FloorY       float64 `yaml:"floorY"`
	WallColor    uint32  `yaml:"wallColor"`
	FloorColor   uint32  `yaml:"floorColor"`
	CeilingColor uint32  `yaml:"ceilingColor"`
	GridColor    uint32  `yaml:"gridColor"`
	GridSize     float64 `yaml:"gridSize"`
	GridDivision int     `yaml:"gridDivisions"`
}

// FollowConfig 道具跟随镜头时的镜头空间偏移（戴上手套后使用）
type FollowConfig struct {
	Offset   Vector `yaml:"offset"`   // 镜头空间位置偏移
	Rotation Vector `yaml:"rotation"` // 镜头空间旋转偏移（角度，XYZ 顺序）
}

// PropConfig 单个道具的摆放
type PropConfig struct {
	Asset    string               `yaml:"asset"`    // 模型资源名，对应 data/models/<asset>.yaml
	Name     string               `yaml:"name"`     // 场景节点名称（默认使用模型名）
	Identity types.ObjectIdentity `yaml:"identity"` // 可交互身份；为空表示纯装饰（如实验台）
	Position Vector               `yaml:"position"`
	Rotation Vector               `yaml:"rotation"` // 角度，XYZ 顺序
	Scale    float64              `yaml:"scale"`    // 等比缩放，默认 1
	Hidden   bool                 `yaml:"hidden"`   // 初始隐藏（实验结果）
	Follow   *FollowConfig        `yaml:"follow"`   // 可选：跟随镜头参数
}

// Interactive 是否注册为可交互道具
func (p PropConfig) Interactive() bool {
	return p.Identity != types.IdentityUnknown
}

// LabLayoutConfig 实验室布局
type LabLayoutConfig struct {
	Camera CameraConfig `yaml:"camera"`
	Room   RoomConfig   `yaml:"room"`

	// DragPlaneY 拖拽参考平面高度，被拖拽道具保持在此高度
	DragPlaneY float64 `yaml:"dragPlaneY"`

	HighlightColor uint32 `yaml:"highlightColor"` // 悬停高亮颜色
	ArmedColor     uint32 `yaml:"armedColor"`     // 可拖拽提示颜色

	Props []PropConfig `yaml:"props"`
}

// LoadLabLayoutConfig 从文件系统加载实验室布局
func LoadLabLayoutConfig(fsys fs.FS, path string) (*LabLayoutConfig, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout config file %s: %w", path, err)
	}

	var cfg LabLayoutConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse layout YAML from %s: %w", path, err)
	}

	applyLayoutDefaults(&cfg)

	if err := validateLayoutConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid layout config in %s: %w", path, err)
	}
	return &cfg, nil
}

// applyLayoutDefaults 为缺失的可选字段设置默认值
func applyLayoutDefaults(cfg *LabLayoutConfig) {
	if cfg.Camera.FOV == 0 {
		cfg.Camera.FOV = 65
	}
	if cfg.Camera.Near == 0 {
		cfg.Camera.Near = 0.1
	}
	if cfg.Camera.Far == 0 {
		cfg.Camera.Far = 1000
	}
	if cfg.Camera.MaxDistance == 0 {
		cfg.Camera.MaxDistance = 3
	}

	if cfg.Room.Width == 0 {
		cfg.Room.Width = 8
	}
	if cfg.Room.Height == 0 {
		cfg.Room.Height = 4
	}
	if cfg.Room.GridDivision == 0 {
		cfg.Room.GridDivision = 30
	}
	if cfg.Room.GridSize == 0 {
		cfg.Room.GridSize = cfg.Room.Width
	}

	if cfg.HighlightColor == 0 {
		cfg.HighlightColor = 0xff0000
	}
	if cfg.ArmedColor == 0 {
		cfg.ArmedColor = 0x00ff00
	}

	for i := range cfg.Props {
		if cfg.Props[i].Scale == 0 {
			cfg.Props[i].Scale = 1
		}
	}
}

// validateLayoutConfig 校验布局配置
func validateLayoutConfig(cfg *LabLayoutConfig) error {
	if cfg.Camera.MinDistance < 0 || cfg.Camera.MinDistance > cfg.Camera.MaxDistance {
		return fmt.Errorf("camera: minDistance %.2f must be within [0, maxDistance %.2f]",
			cfg.Camera.MinDistance, cfg.Camera.MaxDistance)
	}
	if size := cfg.Camera.Bounds().Size(); size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
		return fmt.Errorf("camera: bounds must have a positive size")
	}

	if len(cfg.Props) == 0 {
		return fmt.Errorf("at least one prop is required")
	}
	for i, p := range cfg.Props {
		if p.Asset == "" {
			return fmt.Errorf("prop %d: asset is required", i)
		}
		if p.Scale < 0 {
			return fmt.Errorf("prop %d (%s): scale cannot be negative", i, p.Asset)
		}
		if p.Follow != nil && !p.Interactive() {
			return fmt.Errorf("prop %d (%s): follow requires an identity", i, p.Asset)
		}
	}
	return nil
}

// PropsWith 返回指定身份的所有道具摆放
func (c *LabLayoutConfig) PropsWith(id types.ObjectIdentity) []PropConfig {
	var out []PropConfig
	for _, p := range c.Props {
		if p.Identity == id {
			out = append(out, p)
		}
	}
	return out
}
