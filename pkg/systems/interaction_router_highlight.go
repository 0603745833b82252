package systems

import (
	"github.com/decker502/virtuallab/pkg/components"
	"github.com/decker502/virtuallab/pkg/ecs"
	"github.com/decker502/virtuallab/pkg/scene"
)

// highlight 施加悬停高亮
func (r *InteractionRouter) highlight(id ecs.EntityID) {
	inter, ok := ecs.GetComponent[*components.InteractableComponent](r.entityManager, id)
	if !ok {
		return
	}
	inter.IsHighlighted = true
	r.applyColor(id, r.cfg.HighlightColor)
}

// unhighlight 清除悬停高亮
// 可拖拽的道具恢复为提示色，其余恢复原始外观
func (r *InteractionRouter) unhighlight(id ecs.EntityID) {
	inter, ok := ecs.GetComponent[*components.InteractableComponent](r.entityManager, id)
	if !ok {
		return
	}
	inter.IsHighlighted = false
	if inter.IsDraggable {
		r.applyColor(id, r.cfg.ArmedColor)
		return
	}
	r.restoreOriginal(id)
}

// applyColor 将实体所有部件的自发光设为 color
// 部件第一次被修改前记录原始值，之后不再覆盖
func (r *InteractionRouter) applyColor(id ecs.EntityID, color scene.Color) {
	node := r.nodeOf(id)
	hl, ok := ecs.GetComponent[*components.HoverHighlightComponent](r.entityManager, id)
	if node == nil || !ok {
		return
	}
	if hl.Originals == nil {
		hl.Originals = make(map[*scene.Part]scene.Color)
	}

	node.Traverse(func(p *scene.Part) {
		if _, seen := hl.Originals[p]; !seen {
			hl.Originals[p] = p.Emissive
		}
		p.Emissive = color
	})
	hl.Color = color
	hl.IsActive = true
}

// restoreOriginal 恢复所有部件记录的原始自发光
func (r *InteractionRouter) restoreOriginal(id ecs.EntityID) {
	node := r.nodeOf(id)
	hl, ok := ecs.GetComponent[*components.HoverHighlightComponent](r.entityManager, id)
	if node == nil || !ok || !hl.IsActive {
		return
	}

	node.Traverse(func(p *scene.Part) {
		if original, seen := hl.Originals[p]; seen {
			p.Emissive = original
		}
	})
	hl.IsActive = false
}
