package ecs

import (
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// 测试组件类型定义
type testPoseComponent struct {
	X, Y, Z float64
}

type testGrabComponent struct {
	Held bool
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}

	// ID从1开始
	if id1 != 1 || id2 != 2 {
		t.Errorf("expected IDs 1 and 2, got %d and %d", id1, id2)
	}
	if em.EntityCount() != 2 {
		t.Errorf("expected 2 entities, got %d", em.EntityCount())
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	em.AddComponent(id, &testPoseComponent{X: 1, Y: 2, Z: 3})

	comp, found := em.GetComponent(id, reflect.TypeOf(&testPoseComponent{}))
	if !found {
		t.Fatal("Component should be found")
	}
	if got := comp.(*testPoseComponent); got.X != 1 || got.Y != 2 || got.Z != 3 {
		t.Errorf("Component data mismatch, got %+v", got)
	}

	typed, ok := GetComponent[*testPoseComponent](em, id)
	if !ok || typed.Z != 3 {
		t.Errorf("generic lookup failed: %+v, %v", typed, ok)
	}

	if _, ok := GetComponent[*testGrabComponent](em, id); ok {
		t.Error("absent component must not be found")
	}
}

func TestAddComponent_UnknownEntity(t *testing.T) {
	em := NewEntityManager()
	AddComponent(em, EntityID(42), &testPoseComponent{})

	if em.Exists(42) {
		t.Error("adding a component must not create an entity")
	}
}

func TestAddComponent_Replaces(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	AddComponent(em, id, &testGrabComponent{Held: false})
	AddComponent(em, id, &testGrabComponent{Held: true})

	grab, _ := GetComponent[*testGrabComponent](em, id)
	if !grab.Held {
		t.Error("second AddComponent should replace the first")
	}
}

func TestRemoveComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	AddComponent(em, id, &testGrabComponent{})

	RemoveComponent[*testGrabComponent](em, id)

	if HasComponent[*testGrabComponent](em, id) {
		t.Error("component should be removed")
	}
	if !em.Exists(id) {
		t.Error("entity should survive component removal")
	}
}

func TestDestroyEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()
	id3 := em.CreateEntity()
	for _, id := range []EntityID{id1, id2, id3} {
		em.AddComponent(id, &testPoseComponent{})
	}

	em.DestroyEntity(id1)
	em.DestroyEntity(id3)

	// 清理前实体仍存在
	if !HasComponent[*testPoseComponent](em, id1) {
		t.Error("Entity should still exist before cleanup")
	}

	em.RemoveMarkedEntities()

	if em.Exists(id1) || em.Exists(id3) {
		t.Error("marked entities should be removed after cleanup")
	}
	if !em.Exists(id2) {
		t.Error("id2 should still exist")
	}
}

func TestGetEntitiesWith(t *testing.T) {
	em := NewEntityManager()

	// 结果按 ID 升序
	ids := make([]EntityID, 0, 6)
	for i := 0; i < 6; i++ {
		id := em.CreateEntity()
		ids = append(ids, id)
		em.AddComponent(id, &testPoseComponent{X: float64(i)})
		if i%2 == 0 {
			em.AddComponent(id, &testGrabComponent{})
		}
	}

	both := GetEntitiesWith2[*testPoseComponent, *testGrabComponent](em)
	if diff := cmp.Diff([]EntityID{ids[0], ids[2], ids[4]}, both); diff != "" {
		t.Errorf("query mismatch (-want +got):\n%s", diff)
	}

	poses := GetEntitiesWith1[*testPoseComponent](em)
	if diff := cmp.Diff(ids, poses); diff != "" {
		t.Errorf("query mismatch (-want +got):\n%s", diff)
	}

	none := GetEntitiesWith3[*testPoseComponent, *testGrabComponent, *struct{}](em)
	if len(none) != 0 {
		t.Errorf("expected no entities, got %v", none)
	}
}
