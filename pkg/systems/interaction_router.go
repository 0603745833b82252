package systems

import (
	"log"

	"github.com/decker502/virtuallab/pkg/components"
	"github.com/decker502/virtuallab/pkg/config"
	"github.com/decker502/virtuallab/pkg/ecs"
	"github.com/decker502/virtuallab/pkg/math3d"
	"github.com/decker502/virtuallab/pkg/scene"
	"github.com/decker502/virtuallab/pkg/types"
)

// Pointer 屏幕坐标（逻辑像素）下的指针位置
type Pointer struct {
	X, Y float64
}

// RayCaster 由屏幕坐标生成拾取射线，*math3d.PerspectiveCamera 实现此接口
type RayCaster interface {
	ScreenRay(sx, sy float64) math3d.Ray
}

// OrbitToggle 环绕镜头开关，*math3d.OrbitControls 实现此接口
type OrbitToggle interface {
	SetEnabled(enabled bool)
}

// StepAdvancer 步骤状态机，*sequencer.Sequencer 实现此接口
type StepAdvancer interface {
	CurrentStep() (config.StepDescriptor, bool)
	Advance(flag string) bool
}

// RouterConfig 交互路由参数
type RouterConfig struct {
	Gates *config.GateTable

	// DragPlaneY 拖拽参考平面高度
	DragPlaneY float64

	HighlightColor scene.Color
	ArmedColor     scene.Color
}

// InteractionRouter 3D 场景交互路由
//
// 维护可交互道具注册表，对指针事件做拾取测试，
// 按当前步骤的门控规则决定是否推进步骤、启用拖拽或戴上手套。
// 道具异步加载，注册表随时可能只有部分道具；拾取不到的位置按未命中处理。
//
// 所有方法必须在游戏更新 goroutine 上调用。
type InteractionRouter struct {
	entityManager *ecs.EntityManager
	steps         StepAdvancer
	rays          RayCaster
	orbit         OrbitToggle
	cfg           RouterConfig

	// byIdentity 按身份索引的实体，同一身份可有多个实体（两只手套）
	byIdentity map[types.ObjectIdentity][]ecs.EntityID

	drag    DragState
	hovered ecs.EntityID
}

// NewInteractionRouter 创建交互路由
func NewInteractionRouter(em *ecs.EntityManager, steps StepAdvancer, rays RayCaster, orbit OrbitToggle, cfg RouterConfig) *InteractionRouter {
	if cfg.Gates == nil {
		cfg.Gates, _ = config.NewGateTable(nil)
	}
	return &InteractionRouter{
		entityManager: em,
		steps:         steps,
		rays:          rays,
		orbit:         orbit,
		cfg:           cfg,
		byIdentity:    make(map[types.ObjectIdentity][]ecs.EntityID),
	}
}

// SetGates 替换门控表（数据热更新）
func (r *InteractionRouter) SetGates(gates *config.GateTable) {
	if gates != nil {
		r.cfg.Gates = gates
	}
}

// RegisterInteractable 注册一个已加载的顶层道具节点
func (r *InteractionRouter) RegisterInteractable(node scene.Node, identity types.ObjectIdentity) ecs.EntityID {
	id := r.entityManager.CreateEntity()
	ecs.AddComponent(r.entityManager, id, &components.NodeComponent{Node: node})
	ecs.AddComponent(r.entityManager, id, &components.InteractableComponent{Identity: identity})
	ecs.AddComponent(r.entityManager, id, &components.HoverHighlightComponent{
		Originals: make(map[*scene.Part]scene.Color),
	})

	r.byIdentity[identity] = append(r.byIdentity[identity], id)
	log.Printf("[InteractionRouter] Registered %s as %v (entity %d)", node.Name(), identity, id)
	return id
}

// EntitiesOf 返回指定身份的已注册实体
func (r *InteractionRouter) EntitiesOf(identity types.ObjectIdentity) []ecs.EntityID {
	return append([]ecs.EntityID(nil), r.byIdentity[identity]...)
}

// Hovered 当前悬停的实体，0 表示无
func (r *InteractionRouter) Hovered() ecs.EntityID {
	return r.hovered
}

// OnPointerMove 重新计算悬停高亮
// 拖拽期间不处理高亮，拖拽中的位置更新由 OnPointerDrag 负责
func (r *InteractionRouter) OnPointerMove(p Pointer) {
	if r.drag.Active {
		return
	}

	id, _, ok := r.pick(p, nil)
	if !ok {
		if r.hovered != 0 {
			r.unhighlight(r.hovered)
			r.hovered = 0
		}
		return
	}

	if id == r.hovered {
		return
	}
	if r.hovered != 0 {
		r.unhighlight(r.hovered)
	}
	r.highlight(id)
	r.hovered = id
}

// OnPointerClick 处理点击（非拖拽的按下-释放）
func (r *InteractionRouter) OnPointerClick(p Pointer) {
	if r.drag.Active {
		log.Printf("[InteractionRouter] Click ignored during drag")
		return
	}

	id, hit, ok := r.pick(p, nil)
	if !ok {
		return
	}
	inter, _ := ecs.GetComponent[*components.InteractableComponent](r.entityManager, id)
	log.Printf("[InteractionRouter] Clicked %s (%v)", hit.Node.Name(), inter.Identity)

	step, gate, ok := r.currentGate()
	if !ok {
		log.Printf("[InteractionRouter] No active gate, click on %v has no effect", inter.Identity)
		return
	}
	if gate.Identity != inter.Identity {
		log.Printf("[InteractionRouter] Step %s is gated by %v, ignoring %v", step.Flag, gate.Identity, inter.Identity)
		return
	}

	switch gate.Effect {
	case types.EffectAdvance:
		r.steps.Advance(step.Flag)

	case types.EffectWearGloves:
		r.wearGloves(inter.Identity)
		r.steps.Advance(step.Flag)

	case types.EffectArmDrag:
		r.armDrag(id)
	}
}

// wearGloves 激活该身份所有实体的镜头跟随
func (r *InteractionRouter) wearGloves(identity types.ObjectIdentity) {
	for _, id := range r.byIdentity[identity] {
		follow, ok := ecs.GetComponent[*components.FollowCameraComponent](r.entityManager, id)
		if !ok {
			continue
		}
		follow.Active = true
		if r.hovered == id {
			r.unhighlight(id)
			r.hovered = 0
		}
	}
	log.Printf("[InteractionRouter] %v now follow the camera", identity)
}

// armDrag 使实体可拖拽并以提示色标记；同一时刻只有一个可拖拽实体
func (r *InteractionRouter) armDrag(id ecs.EntityID) {
	for _, other := range ecs.GetEntitiesWith1[*components.InteractableComponent](r.entityManager) {
		if other == id {
			continue
		}
		if inter, _ := ecs.GetComponent[*components.InteractableComponent](r.entityManager, other); inter.IsDraggable {
			r.disarm(other)
		}
	}

	inter, _ := ecs.GetComponent[*components.InteractableComponent](r.entityManager, id)
	if inter.IsDraggable {
		return
	}
	inter.IsDraggable = true
	r.applyColor(id, r.cfg.ArmedColor)
	log.Printf("[InteractionRouter] %v is now draggable", inter.Identity)
}

// disarm 取消可拖拽并恢复外观
func (r *InteractionRouter) disarm(id ecs.EntityID) {
	inter, ok := ecs.GetComponent[*components.InteractableComponent](r.entityManager, id)
	if !ok {
		return
	}
	inter.IsDraggable = false
	inter.IsHighlighted = false
	r.restoreOriginal(id)
	if r.hovered == id {
		r.hovered = 0
	}
}

// currentGate 当前步骤及其门控规则
func (r *InteractionRouter) currentGate() (config.StepDescriptor, config.GateConfig, bool) {
	step, ok := r.steps.CurrentStep()
	if !ok {
		return step, config.GateConfig{}, false
	}
	gate, ok := r.cfg.Gates.Lookup(step.Flag)
	return step, gate, ok
}

// pick 拾取指针下最近的可交互实体
// filter 为 nil 时考虑所有实体
func (r *InteractionRouter) pick(p Pointer, filter func(*components.InteractableComponent) bool) (ecs.EntityID, scene.Hit, bool) {
	ids := ecs.GetEntitiesWith2[*components.InteractableComponent, *components.NodeComponent](r.entityManager)

	nodes := make([]scene.Node, 0, len(ids))
	owners := make(map[scene.Node]ecs.EntityID, len(ids))
	for _, id := range ids {
		inter, _ := ecs.GetComponent[*components.InteractableComponent](r.entityManager, id)
		if filter != nil && !filter(inter) {
			continue
		}
		nc, _ := ecs.GetComponent[*components.NodeComponent](r.entityManager, id)
		if nc.Node == nil {
			continue
		}
		nodes = append(nodes, nc.Node)
		owners[nc.Node] = id
	}

	hit, ok := scene.Nearest(r.rays.ScreenRay(p.X, p.Y), nodes)
	if !ok {
		return 0, scene.Hit{}, false
	}
	return owners[hit.Node], hit, true
}

func (r *InteractionRouter) nodeOf(id ecs.EntityID) scene.Node {
	nc, ok := ecs.GetComponent[*components.NodeComponent](r.entityManager, id)
	if !ok {
		return nil
	}
	return nc.Node
}
