package systems

import (
	"testing"

	"github.com/decker502/virtuallab/pkg/components"
	"github.com/decker502/virtuallab/pkg/ecs"
	"github.com/decker502/virtuallab/pkg/math3d"
	"github.com/decker502/virtuallab/pkg/types"
	"github.com/google/go-cmp/cmp"
)

var (
	atGlove     = Pointer{X: -1, Y: 0}
	atStriker   = Pointer{X: 0, Y: 0}
	atBurner    = Pointer{X: 1, Y: 0}
	atToothpick = Pointer{X: 0, Y: 1}
	atNothing   = Pointer{X: 3, Y: 3}
)

func TestRouter_ClickOnEmptyRegistry(t *testing.T) {
	lab := newTestLab(t)

	lab.router.OnPointerMove(atStriker)
	lab.router.OnPointerClick(atStriker)

	if lab.seq.State().CurrentIndex != 0 || len(lab.advances) != 0 {
		t.Errorf("click on unregistered location changed state: %+v", lab.seq.State())
	}
	if lab.router.Hovered() != 0 {
		t.Error("nothing should be hovered")
	}
}

func TestRouter_PartialRegistry(t *testing.T) {
	lab := newTestLab(t)
	lab.router.RegisterInteractable(newBox("burner", math3d.V3(1, 0.5, 0)), types.IdentityBurner)

	// 手套尚未加载
	lab.router.OnPointerClick(atGlove)
	if lab.seq.State().CurrentIndex != 0 {
		t.Error("click on a not-yet-loaded glove must not advance")
	}

	lab.router.OnPointerClick(atBurner)
	if lab.seq.State().CurrentIndex != 0 {
		t.Error("burner does not gate step1")
	}
}

func TestRouter_HighlightRoundTrip(t *testing.T) {
	lab := newTestLab(t)
	models := lab.registerAll()
	striker := models[types.IdentityStriker]
	glove := models[types.IdentityGloves]

	for i := 0; i < 3; i++ {
		lab.router.OnPointerMove(atStriker)
		if got := emissiveOf(striker); got != testHighlight {
			t.Fatalf("cycle %d: expected highlight, got %#x", i, got)
		}
		if !lab.interactable(t, types.IdentityStriker).IsHighlighted {
			t.Fatalf("cycle %d: IsHighlighted should be set", i)
		}

		// 重复移动到同一道具不改变缓存
		lab.router.OnPointerMove(atStriker)

		// 切换到另一个道具
		lab.router.OnPointerMove(atGlove)
		if got := emissiveOf(striker); got != testEmissive {
			t.Fatalf("cycle %d: striker not restored when hover moved, got %#x", i, got)
		}
		if got := emissiveOf(glove); got != testHighlight {
			t.Fatalf("cycle %d: glove not highlighted, got %#x", i, got)
		}

		lab.router.OnPointerMove(atNothing)
		if got := emissiveOf(glove); got != testEmissive {
			t.Fatalf("cycle %d: glove not restored, got %#x", i, got)
		}
	}

	if lab.router.Hovered() != 0 {
		t.Error("hover should be cleared")
	}
	if lab.interactable(t, types.IdentityStriker).IsHighlighted {
		t.Error("IsHighlighted should be cleared")
	}
}

func TestRouter_GatingIgnoresOutOfOrderClicks(t *testing.T) {
	lab := newTestLab(t)
	lab.registerAll()

	for _, p := range []Pointer{atStriker, atBurner, atToothpick} {
		lab.router.OnPointerClick(p)
	}
	if lab.seq.State().CurrentIndex != 0 {
		t.Fatalf("out-of-order clicks advanced to %d", lab.seq.State().CurrentIndex)
	}
	if lab.interactable(t, types.IdentityStriker).IsDraggable {
		t.Error("striker must not be armed before its step")
	}
}

func TestRouter_WearGloves(t *testing.T) {
	lab := newTestLab(t)
	lab.registerAll()

	lab.router.OnPointerClick(atGlove)

	if diff := cmp.Diff([]string{"step1"}, lab.advances); diff != "" {
		t.Errorf("advances mismatch (-want +got):\n%s", diff)
	}
	for _, id := range lab.router.EntitiesOf(types.IdentityGloves) {
		follow, ok := ecs.GetComponent[*components.FollowCameraComponent](lab.em, id)
		if !ok || !follow.Active {
			t.Errorf("glove %d should follow the camera", id)
		}
	}

	// 再次点击手套不会推进 step2
	lab.router.OnPointerClick(atGlove)
	if lab.seq.State().CurrentIndex != 1 {
		t.Errorf("expected index 1, got %d", lab.seq.State().CurrentIndex)
	}
}

func TestRouter_DragOverlapAdvancesOnce(t *testing.T) {
	lab := newTestLab(t)
	models := lab.registerAll()
	striker := models[types.IdentityStriker]

	lab.router.OnPointerClick(atGlove) // step1

	if lab.router.OnPointerDown(atStriker) {
		t.Fatal("striker must not be draggable before it is armed")
	}

	lab.router.OnPointerClick(atStriker)
	inter := lab.interactable(t, types.IdentityStriker)
	if !inter.IsDraggable {
		t.Fatal("click should arm the striker")
	}
	if got := emissiveOf(striker); got != testArmed {
		t.Errorf("armed striker should glow, got %#x", got)
	}
	if lab.seq.State().CurrentIndex != 1 {
		t.Fatal("arming must not advance")
	}

	if !lab.router.OnPointerDown(Pointer{X: 0.05, Y: 0.02}) {
		t.Fatal("drag should start on the armed striker")
	}
	if lab.orbit.enabled {
		t.Error("orbit should be disabled while dragging")
	}
	drag := lab.router.DragState()
	if !drag.PointerGroundOffset.ApproxEqual(math3d.Vec2{X: -0.05, Y: -0.02}, 1e-9) {
		t.Errorf("unexpected ground offset %+v", drag.PointerGroundOffset)
	}

	lab.router.OnPointerDrag(Pointer{X: 0.3, Y: 0})
	if got := striker.Position(); !got.ApproxEqual(math3d.V3(0.25, 0.5, -0.02), 1e-9) {
		t.Errorf("striker at %+v, want (0.25, 0.5, -0.02)", got)
	}
	if len(lab.advances) != 1 {
		t.Fatal("no overlap yet, must not advance")
	}

	lab.router.OnPointerDrag(Pointer{X: 0.9, Y: 0})
	if diff := cmp.Diff([]string{"step1", "step2"}, lab.advances); diff != "" {
		t.Fatalf("advances mismatch (-want +got):\n%s", diff)
	}

	// 继续保持重叠不会再次推进
	for i := 0; i < 5; i++ {
		lab.router.OnPointerDrag(Pointer{X: 0.95, Y: 0})
		lab.router.OnPointerMove(Pointer{X: 0.95, Y: 0})
	}
	lab.router.OnPointerUp()
	if len(lab.advances) != 2 {
		t.Errorf("overlap advanced %d extra times", len(lab.advances)-2)
	}

	if lab.router.IsDragging() {
		t.Error("drag should end on overlap")
	}
	if !lab.orbit.enabled {
		t.Error("orbit should be re-enabled")
	}
	if inter.IsDraggable {
		t.Error("striker should no longer be draggable")
	}
	if lab.router.OnPointerDown(Pointer{X: 0.85, Y: 0}) {
		t.Error("striker must not be draggable again")
	}
}

func TestRouter_OverlapRestoresOriginalAppearance(t *testing.T) {
	lab := newTestLab(t)
	models := lab.registerAll()
	striker := models[types.IdentityStriker]

	lab.router.OnPointerClick(atGlove)
	lab.router.OnPointerMove(atStriker) // 红色高亮
	lab.router.OnPointerClick(atStriker)
	lab.router.OnPointerMove(atNothing) // 恢复为绿色提示
	if got := emissiveOf(striker); got != testArmed {
		t.Fatalf("armed striker should return to armed color after hover, got %#x", got)
	}

	lab.router.OnPointerDown(atStriker)
	lab.router.OnPointerDrag(Pointer{X: 0.85, Y: 0})

	if got := emissiveOf(striker); got != testEmissive {
		t.Errorf("expected original emissive %#x after overlap, got %#x", testEmissive, got)
	}
}

func TestRouter_PointerUpEndsDragWithoutSideEffects(t *testing.T) {
	lab := newTestLab(t)
	models := lab.registerAll()

	lab.router.OnPointerClick(atGlove)
	lab.router.OnPointerClick(atStriker)
	lab.router.OnPointerDown(atStriker)
	lab.router.OnPointerDrag(Pointer{X: 0.4, Y: 0})
	lab.router.OnPointerUp()

	if lab.router.IsDragging() {
		t.Error("drag should end on pointer up")
	}
	if !lab.orbit.enabled {
		t.Error("orbit should be re-enabled")
	}
	if lab.seq.State().CurrentIndex != 1 {
		t.Error("pointer up must not advance")
	}
	if !lab.interactable(t, types.IdentityStriker).IsDraggable {
		t.Error("striker should stay armed for another attempt")
	}
	if got := models[types.IdentityStriker].Position(); !got.ApproxEqual(math3d.V3(0.4, 0.5, 0), 1e-9) {
		t.Errorf("striker should stay where it was dropped, got %+v", got)
	}

	// 再次拖拽仍可完成
	lab.router.OnPointerDown(Pointer{X: 0.4, Y: 0})
	lab.router.OnPointerDrag(Pointer{X: 0.85, Y: 0})
	if lab.seq.State().CurrentIndex != 2 {
		t.Errorf("second drag should complete step2, index %d", lab.seq.State().CurrentIndex)
	}
}

func TestRouter_ClickAndHoverIgnoredDuringDrag(t *testing.T) {
	lab := newTestLab(t)
	models := lab.registerAll()

	lab.router.OnPointerClick(atGlove)
	lab.router.OnPointerClick(atStriker)
	lab.router.OnPointerDown(atStriker)

	lab.router.OnPointerMove(atToothpick)
	if got := emissiveOf(models[types.IdentityToothpick]); got != testEmissive {
		t.Errorf("hover must not change during drag, got %#x", got)
	}

	before := lab.seq.State()
	lab.router.OnPointerClick(atToothpick)
	lab.router.OnPointerClick(atStriker)
	if lab.seq.State() != before {
		t.Errorf("click during drag changed state: %+v -> %+v", before, lab.seq.State())
	}
	if !lab.router.IsDragging() {
		t.Error("click during drag must not end the drag")
	}
}

func TestRouter_AdvanceEffect(t *testing.T) {
	lab := newTestLab(t)
	lab.registerAll()

	lab.router.OnPointerClick(atGlove)
	lab.router.OnPointerClick(atStriker)
	lab.router.OnPointerDown(atStriker)
	lab.router.OnPointerDrag(Pointer{X: 0.85, Y: 0})

	lab.router.OnPointerClick(atToothpick)

	if !lab.seq.State().Completed {
		t.Errorf("toothpick click should complete the experiment, state %+v", lab.seq.State())
	}
	if diff := cmp.Diff([]string{"step1", "step2", "complete"}, lab.advances); diff != "" {
		t.Errorf("advances mismatch (-want +got):\n%s", diff)
	}

	// 完成后点击不再有效果
	lab.router.OnPointerClick(atToothpick)
	if len(lab.advances) != 3 {
		t.Error("clicks after completion must be ignored")
	}
}
