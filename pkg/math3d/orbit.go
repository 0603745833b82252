package math3d

import "math"

// OrbitControls 环绕观察控制器
// 镜头围绕 Target 旋转和缩放，Enabled 为 false 时忽略所有输入
type OrbitControls struct {
	Camera *PerspectiveCamera

	Enabled       bool
	EnableDamping bool
	DampingFactor float64
	RotateSpeed   float64
	ZoomSpeed     float64
	MinDistance   float64
	MaxDistance   float64

	deltaTheta float64
	deltaPhi   float64
	scale      float64
}

// NewOrbitControls 创建控制器，默认参数与常见网页 3D 查看器一致
func NewOrbitControls(camera *PerspectiveCamera) *OrbitControls {
	return &OrbitControls{
		Camera:        camera,
		Enabled:       true,
		DampingFactor: 0.05,
		RotateSpeed:   1.0,
		ZoomSpeed:     1.0,
		MinDistance:   0,
		MaxDistance:   math.Inf(1),
		scale:         1,
	}
}

// SetEnabled 启用或禁用控制器（拖拽道具期间禁用）
func (o *OrbitControls) SetEnabled(enabled bool) {
	o.Enabled = enabled
}

// Rotate 按指针位移（像素）旋转
func (o *OrbitControls) Rotate(dx, dy float64) {
	if !o.Enabled || o.Camera.Height <= 0 {
		return
	}
	o.deltaTheta -= 2 * math.Pi * dx / o.Camera.Height * o.RotateSpeed
	o.deltaPhi -= 2 * math.Pi * dy / o.Camera.Height * o.RotateSpeed
}

// Zoom 按滚轮增量缩放（正值拉近）
func (o *OrbitControls) Zoom(wheel float64) {
	if !o.Enabled || wheel == 0 {
		return
	}
	o.scale *= math.Pow(0.95, o.ZoomSpeed*wheel)
}

// Update 应用累计的旋转与缩放，每帧调用一次
func (o *OrbitControls) Update() {
	cam := o.Camera
	offset := cam.Position.Sub(cam.Target)

	radius := offset.Length()
	if radius < Epsilon {
		return
	}
	theta := math.Atan2(offset.X, offset.Z)
	phi := math.Acos(math.Max(-1, math.Min(1, offset.Y/radius)))

	if o.EnableDamping {
		theta += o.deltaTheta * o.DampingFactor
		phi += o.deltaPhi * o.DampingFactor
	} else {
		theta += o.deltaTheta
		phi += o.deltaPhi
	}

	const eps = 1e-6
	phi = math.Max(eps, math.Min(math.Pi-eps, phi))

	radius *= o.scale
	radius = math.Max(o.MinDistance, math.Min(o.MaxDistance, radius))

	sinPhi := math.Sin(phi)
	offset = Vec3{
		X: radius * sinPhi * math.Sin(theta),
		Y: radius * math.Cos(phi),
		Z: radius * sinPhi * math.Cos(theta),
	}
	cam.Position = cam.Target.Add(offset)

	if o.EnableDamping {
		o.deltaTheta *= 1 - o.DampingFactor
		o.deltaPhi *= 1 - o.DampingFactor
	} else {
		o.deltaTheta = 0
		o.deltaPhi = 0
	}
	o.scale = 1
}
