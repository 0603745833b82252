package systems

import (
	"image/color"
	"testing"

	"github.com/decker502/virtuallab/pkg/components"
	"github.com/decker502/virtuallab/pkg/ecs"
	"github.com/decker502/virtuallab/pkg/math3d"
	"github.com/decker502/virtuallab/pkg/scene"
)

func labCamera() *math3d.PerspectiveCamera {
	cam := math3d.NewPerspectiveCamera(65, 0.1, 1000, 1280, 720)
	cam.Position = math3d.V3(0, 1.5, 1.5)
	cam.LookAt(math3d.V3(0, 1, 0))
	return cam
}

func addNode(em *ecs.EntityManager, node scene.Node) {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.NodeComponent{Node: node})
}

func TestCollectPropFaces_BackfaceCulling(t *testing.T) {
	em := ecs.NewEntityManager()
	addNode(em, newBox("box", math3d.V3(0, 1, 0)))

	rs := NewRenderSystem(em, labCamera())
	faces := rs.collectPropFaces(nil)

	// 镜头在正前上方：只看到顶面和 +Z 面
	if len(faces) != 2 {
		t.Fatalf("expected 2 visible faces, got %d", len(faces))
	}
	for i := 1; i < len(faces); i++ {
		if faces[i-1].depth < faces[i].depth {
			t.Error("faces must be sorted far to near")
		}
	}
}

func TestCollectPropFaces_SortsAcrossNodes(t *testing.T) {
	em := ecs.NewEntityManager()
	near := newBox("near", math3d.V3(0, 1, 0.5))
	far := newBox("far", math3d.V3(0, 1, -1))
	addNode(em, near)
	addNode(em, far)

	hidden := newBox("hidden", math3d.V3(0.3, 1, 0))
	hidden.SetVisible(false)
	addNode(em, hidden)

	rs := NewRenderSystem(em, labCamera())
	faces := rs.collectPropFaces(nil)

	if len(faces) != 4 {
		t.Fatalf("expected 4 faces from two visible boxes, got %d", len(faces))
	}
	for i := 1; i < len(faces); i++ {
		if faces[i-1].depth < faces[i].depth {
			t.Fatalf("face %d closer than face %d", i-1, i)
		}
	}
}

func TestCollectEnvironmentFaces_SkipsBehindCamera(t *testing.T) {
	rs := NewRenderSystem(ecs.NewEntityManager(), labCamera())
	rs.SetEnvironment([]EnvQuad{
		{
			// 镜头前方的墙
			Corners: [4]math3d.Vec3{{X: -1, Y: 0, Z: -4}, {X: 1, Y: 0, Z: -4}, {X: 1, Y: 2, Z: -4}, {X: -1, Y: 2, Z: -4}},
			Color:   0xcccccc,
		},
		{
			// 镜头后方的墙
			Corners: [4]math3d.Vec3{{X: -1, Y: 0, Z: 4}, {X: 1, Y: 0, Z: 4}, {X: 1, Y: 2, Z: 4}, {X: -1, Y: 2, Z: 4}},
			Color:   0xcccccc,
		},
	}, nil)

	faces := rs.collectEnvironmentFaces(nil)
	if len(faces) != 1 {
		t.Errorf("expected only the wall in front to be drawn, got %d faces", len(faces))
	}
}

func TestShade(t *testing.T) {
	light := Light{Ambient: 0.5, Diffuse: 0.5}

	if got := shade(0x808080, 0, 0, light); got != (color.RGBA{R: 64, G: 64, B: 64, A: 255}) {
		t.Errorf("ambient only: got %+v", got)
	}
	if got := shade(0x808080, 0, 1, light); got != (color.RGBA{R: 128, G: 128, B: 128, A: 255}) {
		t.Errorf("fully lit: got %+v", got)
	}
	// 自发光叠加并截断
	if got := shade(0x808080, 0xff0000, 1, light); got != (color.RGBA{R: 255, G: 128, B: 128, A: 255}) {
		t.Errorf("emissive: got %+v", got)
	}
}
