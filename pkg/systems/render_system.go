package systems

import (
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/decker502/virtuallab/pkg/components"
	"github.com/decker502/virtuallab/pkg/ecs"
	"github.com/decker502/virtuallab/pkg/math3d"
	"github.com/decker502/virtuallab/pkg/scene"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// EnvQuad 房间环境（墙、地板、天花板）的一个平面块
type EnvQuad struct {
	Corners [4]math3d.Vec3
	Color   scene.Color
}

// GridLine 地面网格线段
type GridLine struct {
	From, To math3d.Vec3
	Color    scene.Color
}

// Light 平行光 + 环境光
type Light struct {
	Direction math3d.Vec3 // 指向光源的方向
	Ambient   float64
	Diffuse   float64
}

// DefaultLight 场景默认光照
func DefaultLight() Light {
	return Light{
		Direction: math3d.V3(0.4, 1, 0.6).Normalize(),
		Ambient:   0.55,
		Diffuse:   0.5,
	}
}

// face 投影到屏幕的四边形面
type face struct {
	pts   [4][2]float32
	depth float64
	clr   color.RGBA
}

// 长方体六个面：顶点索引（见 math3d.Box3.Corners）与局部法线
var boxFaces = [6]struct {
	idx    [4]int
	normal math3d.Vec3
}{
	{[4]int{0, 1, 2, 3}, math3d.Vec3{X: 0, Y: -1, Z: 0}},
	{[4]int{4, 5, 6, 7}, math3d.Vec3{X: 0, Y: 1, Z: 0}},
	{[4]int{0, 1, 5, 4}, math3d.Vec3{X: 0, Y: 0, Z: -1}},
	{[4]int{3, 2, 6, 7}, math3d.Vec3{X: 0, Y: 0, Z: 1}},
	{[4]int{0, 3, 7, 4}, math3d.Vec3{X: -1, Y: 0, Z: 0}},
	{[4]int{1, 2, 6, 5}, math3d.Vec3{X: 1, Y: 0, Z: 0}},
}

// 1x1 白色纹理，DrawTriangles 以顶点颜色着色
var (
	whiteImage    *ebiten.Image
	whiteSubImage *ebiten.Image
)

func flatTexture() *ebiten.Image {
	if whiteSubImage == nil {
		whiteImage = ebiten.NewImage(3, 3)
		whiteImage.Fill(color.White)
		whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteSubImage
}

// RenderSystem 3D 场景渲染
//
// 画家算法：先画房间环境和地面网格，再把所有可见道具部件的面
// 按视线深度从远到近排序绘制。不做深度缓冲，部件相互穿插时可能出现错误遮挡。
type RenderSystem struct {
	entityManager *ecs.EntityManager
	camera        *math3d.PerspectiveCamera
	light         Light

	Background  color.RGBA
	environment []EnvQuad
	grid        []GridLine

	faces    []face          // 复用，避免每帧分配
	vertices []ebiten.Vertex // 复用
	indices  []uint16        // 复用
}

// NewRenderSystem 创建渲染系统
func NewRenderSystem(em *ecs.EntityManager, camera *math3d.PerspectiveCamera) *RenderSystem {
	return &RenderSystem{
		entityManager: em,
		camera:        camera,
		light:         DefaultLight(),
		Background:    color.RGBA{R: 0x20, G: 0x24, B: 0x2a, A: 0xff},
		faces:         make([]face, 0, 512),
		vertices:      make([]ebiten.Vertex, 0, 2048),
		indices:       make([]uint16, 0, 3072),
	}
}

// SetEnvironment 设置房间环境面与地面网格
func (s *RenderSystem) SetEnvironment(quads []EnvQuad, grid []GridLine) {
	s.environment = quads
	s.grid = grid
}

// Draw 绘制一帧
func (s *RenderSystem) Draw(screen *ebiten.Image) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	s.camera.SetViewport(float64(w), float64(h))
	screen.Fill(s.Background)

	s.faces = s.collectEnvironmentFaces(s.faces[:0])
	s.drawFaces(screen, s.faces)

	s.drawGrid(screen)

	s.faces = s.collectPropFaces(s.faces[:0])
	s.drawFaces(screen, s.faces)
}

// collectEnvironmentFaces 投影环境面，按深度从远到近排序
func (s *RenderSystem) collectEnvironmentFaces(dst []face) []face {
	for _, q := range s.environment {
		normal := q.Corners[1].Sub(q.Corners[0]).Cross(q.Corners[3].Sub(q.Corners[0])).Normalize()
		pts, depth, ok := projectQuad(s.camera, q.Corners)
		if !ok {
			continue
		}
		// 环境面双面可见
		lambert := math.Abs(normal.Dot(s.light.Direction))
		dst = append(dst, face{pts: pts, depth: depth, clr: shade(q.Color, 0, lambert, s.light)})
	}
	sortFaces(dst)
	return dst
}

// collectPropFaces 投影所有可见道具的部件面，剔除背面，按深度从远到近排序
func (s *RenderSystem) collectPropFaces(dst []face) []face {
	camPos := s.camera.Position

	for _, id := range ecs.GetEntitiesWith1[*components.NodeComponent](s.entityManager) {
		nc, _ := ecs.GetComponent[*components.NodeComponent](s.entityManager, id)
		node := nc.Node
		if node == nil || !node.Visible() {
			continue
		}
		t := node.Transform()

		node.Traverse(func(p *scene.Part) {
			local := p.Bounds.Corners()
			var world [8]math3d.Vec3
			for i, c := range local {
				world[i] = t.Apply(c)
			}

			for _, bf := range boxFaces {
				corners := [4]math3d.Vec3{world[bf.idx[0]], world[bf.idx[1]], world[bf.idx[2]], world[bf.idx[3]]}
				normal := t.ApplyDirection(bf.normal)
				center := corners[0].Add(corners[1]).Add(corners[2]).Add(corners[3]).Scale(0.25)
				if normal.Dot(camPos.Sub(center)) <= 0 {
					continue
				}

				pts, depth, ok := projectQuad(s.camera, corners)
				if !ok {
					continue
				}
				lambert := math.Max(0, normal.Dot(s.light.Direction))
				dst = append(dst, face{pts: pts, depth: depth, clr: shade(p.Color, p.Emissive, lambert, s.light)})
			}
		})
	}

	sortFaces(dst)
	return dst
}

// drawGrid 绘制地面网格，线段分段投影，跳过落在镜头后方的段
func (s *RenderSystem) drawGrid(screen *ebiten.Image) {
	const segments = 8
	for _, line := range s.grid {
		r, g, b := line.Color.RGB()
		clr := color.RGBA{R: r, G: g, B: b, A: 0xff}
		step := line.To.Sub(line.From).Scale(1.0 / segments)
		for i := 0; i < segments; i++ {
			a := line.From.Add(step.Scale(float64(i)))
			bp := a.Add(step)
			x0, y0, _, ok0 := s.camera.Project(a)
			x1, y1, _, ok1 := s.camera.Project(bp)
			if !ok0 || !ok1 {
				continue
			}
			vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 1, clr, true)
		}
	}
}

// drawFaces 以 DrawTriangles 批量绘制面
func (s *RenderSystem) drawFaces(screen *ebiten.Image, faces []face) {
	// uint16 索引限制每批顶点数
	const maxFacesPerBatch = 16000
	tex := flatTexture()

	for start := 0; start < len(faces); start += maxFacesPerBatch {
		end := start + maxFacesPerBatch
		if end > len(faces) {
			end = len(faces)
		}

		s.vertices = s.vertices[:0]
		s.indices = s.indices[:0]
		for i, f := range faces[start:end] {
			cr := float32(f.clr.R) / 0xff
			cg := float32(f.clr.G) / 0xff
			cb := float32(f.clr.B) / 0xff
			for _, pt := range f.pts {
				s.vertices = append(s.vertices, ebiten.Vertex{
					DstX: pt[0], DstY: pt[1],
					SrcX: 1, SrcY: 1,
					ColorR: cr, ColorG: cg, ColorB: cb, ColorA: 1,
				})
			}
			base := uint16(i * 4)
			s.indices = append(s.indices, base, base+1, base+2, base, base+2, base+3)
		}

		screen.DrawTriangles(s.vertices, s.indices, tex, &ebiten.DrawTrianglesOptions{AntiAlias: true})
	}
}

// projectQuad 投影四个顶点，任一顶点无法投影时返回 false
// depth 为四个顶点的平均视线深度
func projectQuad(cam *math3d.PerspectiveCamera, corners [4]math3d.Vec3) ([4][2]float32, float64, bool) {
	var pts [4][2]float32
	depth := 0.0
	for i, c := range corners {
		x, y, d, ok := cam.Project(c)
		if !ok {
			return pts, 0, false
		}
		pts[i] = [2]float32{float32(x), float32(y)}
		depth += d
	}
	return pts, depth / 4, true
}

// shade 计算面颜色：基础色 × (环境光 + 漫反射) + 自发光
func shade(base, emissive scene.Color, lambert float64, light Light) color.RGBA {
	k := light.Ambient + light.Diffuse*lambert
	br, bg, bb := base.RGB()
	er, eg, eb := emissive.RGB()
	channel := func(b, e uint8) uint8 {
		v := float64(b)*k + float64(e)
		return uint8(math.Max(0, math.Min(255, math.Round(v))))
	}
	return color.RGBA{R: channel(br, er), G: channel(bg, eg), B: channel(bb, eb), A: 0xff}
}

// sortFaces 按深度从远到近排序
func sortFaces(faces []face) {
	sort.SliceStable(faces, func(i, j int) bool { return faces[i].depth > faces[j].depth })
}
