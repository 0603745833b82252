package systems

import (
	"testing"

	"github.com/decker502/virtuallab/pkg/components"
	"github.com/decker502/virtuallab/pkg/config"
	"github.com/decker502/virtuallab/pkg/ecs"
	"github.com/decker502/virtuallab/pkg/math3d"
	"github.com/decker502/virtuallab/pkg/scene"
	"github.com/decker502/virtuallab/pkg/sequencer"
	"github.com/decker502/virtuallab/pkg/types"
)

// topDownRays 俯视拾取：指针 (X, Y) 对应世界坐标 (x, z)，射线竖直向下
type topDownRays struct{}

func (topDownRays) ScreenRay(sx, sy float64) math3d.Ray {
	return math3d.Ray{
		Origin:    math3d.V3(sx, 10, sy),
		Direction: math3d.V3(0, -1, 0),
	}
}

// recordingOrbit 记录镜头环绕开关
type recordingOrbit struct {
	enabled bool
	toggles int
}

func (o *recordingOrbit) SetEnabled(enabled bool) {
	o.enabled = enabled
	o.toggles++
}

const (
	testHighlight scene.Color = 0xff0000
	testArmed     scene.Color = 0x00ff00
	testEmissive  scene.Color = 0x111111
)

// testLab 交互测试夹具
type testLab struct {
	em       *ecs.EntityManager
	seq      *sequencer.Sequencer
	router   *InteractionRouter
	orbit    *recordingOrbit
	advances []string
}

func labSteps() []config.StepDescriptor {
	return []config.StepDescriptor{
		{Flag: "step1", Title: "Gloves"},
		{Flag: "step2", Title: "Burner"},
		{Flag: "step3", Title: "Toothpick"},
	}
}

func labGates(t *testing.T) *config.GateTable {
	t.Helper()
	gates, err := config.NewGateTable([]config.GateConfig{
		{Flag: "step1", Identity: types.IdentityGloves, Effect: types.EffectWearGloves},
		{Flag: "step2", Identity: types.IdentityStriker, Effect: types.EffectArmDrag, DragTarget: types.IdentityBurner},
		{Flag: "step3", Identity: types.IdentityToothpick, Effect: types.EffectAdvance},
	})
	if err != nil {
		t.Fatalf("invalid gate table: %v", err)
	}
	return gates
}

func newTestLab(t *testing.T) *testLab {
	t.Helper()
	lab := &testLab{
		em:    ecs.NewEntityManager(),
		seq:   sequencer.New(labSteps(), nil),
		orbit: &recordingOrbit{enabled: true},
	}
	lab.seq.OnStepComplete = func(flag string) { lab.advances = append(lab.advances, flag) }
	lab.router = NewInteractionRouter(lab.em, lab.seq, topDownRays{}, lab.orbit, RouterConfig{
		Gates:          labGates(t),
		DragPlaneY:     0.5,
		HighlightColor: testHighlight,
		ArmedColor:     testArmed,
	})
	return lab
}

// newBox 创建边长 0.2 的单部件道具
func newBox(name string, pos math3d.Vec3) *scene.Model {
	m := scene.NewModel(name, []*scene.Part{{
		Name:     name + "_body",
		Bounds:   math3d.BoxFromCenterSize(math3d.Vec3{}, math3d.V3(0.2, 0.2, 0.2)),
		Color:    0x808080,
		Emissive: testEmissive,
	}})
	m.SetPosition(pos)
	return m
}

// registerAll 注册全部道具：手套 (-1,0)，打火器 (0,0)，酒精灯 (1,0)，牙签 (0,1)
func (l *testLab) registerAll() map[types.ObjectIdentity]*scene.Model {
	models := map[types.ObjectIdentity]*scene.Model{
		types.IdentityGloves:    newBox("glove", math3d.V3(-1, 0.5, 0)),
		types.IdentityStriker:   newBox("striker", math3d.V3(0, 0.5, 0)),
		types.IdentityBurner:    newBox("burner", math3d.V3(1, 0.5, 0)),
		types.IdentityToothpick: newBox("toothpick", math3d.V3(0, 0.5, 1)),
	}
	for _, id := range []types.ObjectIdentity{
		types.IdentityGloves, types.IdentityStriker, types.IdentityBurner, types.IdentityToothpick,
	} {
		entity := l.router.RegisterInteractable(models[id], id)
		if id == types.IdentityGloves {
			ecs.AddComponent(l.em, entity, &components.FollowCameraComponent{
				Offset:         math3d.V3(-0.3, -0.3, -0.5),
				RotationOffset: math3d.QuatIdentity(),
			})
		}
	}
	return models
}

func emissiveOf(m *scene.Model) scene.Color {
	var c scene.Color
	m.Traverse(func(p *scene.Part) { c = p.Emissive })
	return c
}

func (l *testLab) interactable(t *testing.T, identity types.ObjectIdentity) *components.InteractableComponent {
	t.Helper()
	ids := l.router.EntitiesOf(identity)
	if len(ids) == 0 {
		t.Fatalf("%v not registered", identity)
	}
	inter, ok := ecs.GetComponent[*components.InteractableComponent](l.em, ids[0])
	if !ok {
		t.Fatalf("%v has no interactable component", identity)
	}
	return inter
}
