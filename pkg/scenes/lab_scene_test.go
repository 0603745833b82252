package scenes

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/decker502/virtuallab/pkg/components"
	"github.com/decker502/virtuallab/pkg/config"
	"github.com/decker502/virtuallab/pkg/ecs"
	"github.com/decker502/virtuallab/pkg/game"
	"github.com/decker502/virtuallab/pkg/types"
	"github.com/decker502/virtuallab/pkg/utils"
)

func loadProjectData(t *testing.T) *config.LabData {
	t.Helper()
	data, err := config.LoadLabData(os.DirFS("../.."), "data")
	if err != nil {
		t.Fatalf("Failed to load lab data: %v", err)
	}
	return data
}

// newLoadedLab 创建实验室场景并等待所有道具加载完成
func newLoadedLab(t *testing.T, progress *game.ProgressManager) *LabScene {
	t.Helper()
	s := NewLabScene(game.NewSceneManager(), LabSceneOptions{
		Data:     loadProjectData(t),
		Progress: progress,
	})
	t.Cleanup(s.Close)

	// 指针停在屏幕角落，不按下
	s.inputSystem.ReadPointer = func() utils.PointerSample { return utils.PointerSample{} }

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.loader.Drain(ctx); err != nil {
		t.Fatalf("prop loading did not finish: %v", err)
	}
	return s
}

func TestBuildRoom(t *testing.T) {
	room := config.RoomConfig{Width: 8, Height: 4, FloorY: -0.51}
	quads := buildRoom(room)

	if len(quads) != 6*envTiles*envTiles {
		t.Fatalf("expected %d quads, got %d", 6*envTiles*envTiles, len(quads))
	}
	for _, q := range quads {
		for _, c := range q.Corners {
			if c.X < -4-1e-9 || c.X > 4+1e-9 || c.Z < -4-1e-9 || c.Z > 4+1e-9 {
				t.Fatalf("corner %+v outside the room", c)
			}
			if c.Y < room.FloorY-1e-9 || c.Y > room.FloorY+room.Height+1e-9 {
				t.Fatalf("corner %+v outside floor/ceiling range", c)
			}
		}
	}
}

func TestBuildGrid(t *testing.T) {
	room := config.RoomConfig{FloorY: -0.51, GridSize: 8, GridDivision: 30}
	lines := buildGrid(room)

	if len(lines) != 2*31 {
		t.Fatalf("expected 62 grid lines, got %d", len(lines))
	}
	for _, l := range lines {
		if l.From.Y != room.FloorY+gridLift || l.To.Y != room.FloorY+gridLift {
			t.Fatalf("grid line %+v not at grid height", l)
		}
	}

	if buildGrid(config.RoomConfig{}) != nil {
		t.Error("zero divisions should produce no grid")
	}
}

func TestLabScene_RegistersProps(t *testing.T) {
	s := newLoadedLab(t, nil)

	for _, id := range types.AllIdentities() {
		if len(s.router.EntitiesOf(id)) == 0 {
			t.Errorf("%v not registered", id)
		}
	}

	gloves := s.router.EntitiesOf(types.IdentityGloves)
	if len(gloves) != 2 {
		t.Fatalf("expected 2 gloves, got %d", len(gloves))
	}
	for _, id := range gloves {
		if !ecs.HasComponent[*components.FollowCameraComponent](s.entityManager, id) {
			t.Errorf("glove entity %d has no follow component", id)
		}
	}

	if len(s.finalResults) != 1 || s.finalResults[0].Visible() {
		t.Error("final result should be registered and hidden")
	}
}

func TestLabScene_FirstStepAfterDelay(t *testing.T) {
	s := newLoadedLab(t, nil)
	const dt = 1.0 / 60

	for i := 0; i < 30; i++ {
		s.tick(dt)
	}
	if s.popup.Visible() {
		t.Fatal("first step must not show before the delay")
	}

	for i := 0; i < 40; i++ {
		s.tick(dt)
	}
	if !s.popup.Visible() {
		t.Fatal("first step should show after the delay")
	}
	if want := s.opts.Data.Steps.Steps[0].Title; s.popup.Title() != want {
		t.Errorf("popup title = %q, want %q", s.popup.Title(), want)
	}
}

func TestLabScene_CompletionRevealsResult(t *testing.T) {
	progress := game.NewProgressManager(nil)
	s := newLoadedLab(t, progress)

	s.seq.Start()
	for _, step := range s.opts.Data.Steps.Steps {
		if !s.seq.Advance(step.Flag) {
			t.Fatalf("advance %s failed", step.Flag)
		}
	}

	if !s.Completed() {
		t.Fatal("scene should be completed")
	}
	for _, node := range s.finalResults {
		if !node.Visible() {
			t.Error("final result should be visible after completion")
		}
	}
	if got := progress.Progress().CompletedRuns; got != 1 {
		t.Errorf("completed runs = %d, want 1", got)
	}
	if s.popup.Banner() != s.opts.Data.Steps.Completion.Title {
		t.Errorf("banner = %q, want completion title", s.popup.Banner())
	}
}
