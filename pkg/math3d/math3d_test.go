package math3d

import (
	"math"
	"testing"
)

const tol = 1e-9

func TestQuat_RotateAxisAngle(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{0, 1, 0}, math.Pi/2)
	got := q.Rotate(Vec3{1, 0, 0})
	if !got.ApproxEqual(Vec3{0, 0, -1}, tol) {
		t.Errorf("expected (0,0,-1), got %+v", got)
	}

	twice := q.Mul(q)
	got = twice.Rotate(Vec3{1, 0, 0})
	if !got.ApproxEqual(Vec3{-1, 0, 0}, tol) {
		t.Errorf("expected (-1,0,0) after two quarter turns, got %+v", got)
	}
}

func TestQuatFromEuler_MatchesAxisAngle(t *testing.T) {
	e := QuatFromEuler(0, math.Pi/2, 0)
	a := QuatFromAxisAngle(Vec3{0, 1, 0}, math.Pi/2)
	if math.Abs(e.X-a.X) > tol || math.Abs(e.Y-a.Y) > tol || math.Abs(e.Z-a.Z) > tol || math.Abs(e.W-a.W) > tol {
		t.Errorf("euler %+v != axis-angle %+v", e, a)
	}
}

func TestBox3_Intersects(t *testing.T) {
	unit := Box3{Min: Vec3{0, 0, 0}, Max: Vec3{1, 1, 1}}
	tests := []struct {
		name  string
		other Box3
		want  bool
	}{
		{"overlap", Box3{Min: Vec3{0.5, 0.5, 0.5}, Max: Vec3{1.5, 1.5, 1.5}}, true},
		{"separate", Box3{Min: Vec3{2, 2, 2}, Max: Vec3{3, 3, 3}}, false},
		{"touching face", Box3{Min: Vec3{1, 0, 0}, Max: Vec3{2, 1, 1}}, true},
		{"separate on y only", Box3{Min: Vec3{0, 1.1, 0}, Max: Vec3{1, 2, 1}}, false},
		{"empty", EmptyBox(), false},
	}
	for _, tt := range tests {
		if got := unit.Intersects(tt.other); got != tt.want {
			t.Errorf("%s: Intersects = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestBox3_Transform(t *testing.T) {
	local := BoxFromCenterSize(Vec3{}, Vec3{2, 1, 1})
	tr := Transform{
		Position: Vec3{10, 0, 0},
		Rotation: QuatFromAxisAngle(Vec3{0, 1, 0}, math.Pi/2),
		Scale:    Vec3{1, 1, 1},
	}
	world := local.Transform(tr)
	size := world.Size()
	// 绕 Y 轴旋转 90° 后 X/Z 尺寸互换
	if !size.ApproxEqual(Vec3{1, 1, 2}, 1e-6) {
		t.Errorf("expected size (1,1,2), got %+v", size)
	}
	if !world.Center().ApproxEqual(Vec3{10, 0, 0}, 1e-6) {
		t.Errorf("expected center (10,0,0), got %+v", world.Center())
	}
}

func TestRay_IntersectBox(t *testing.T) {
	box := Box3{Min: Vec3{0, 0, 0}, Max: Vec3{1, 1, 1}}

	hit, ok := Ray{Origin: Vec3{-5, 0.5, 0.5}, Direction: Vec3{1, 0, 0}}.IntersectBox(box)
	if !ok || math.Abs(hit-5) > tol {
		t.Errorf("expected hit at t=5, got %v (ok=%v)", hit, ok)
	}

	hit, ok = Ray{Origin: Vec3{0.5, 0.5, 0.5}, Direction: Vec3{0, 0, 1}}.IntersectBox(box)
	if !ok || hit != 0 {
		t.Errorf("expected hit at t=0 from inside, got %v (ok=%v)", hit, ok)
	}

	if _, ok := (Ray{Origin: Vec3{-5, 2, 0.5}, Direction: Vec3{1, 0, 0}}).IntersectBox(box); ok {
		t.Error("expected miss above the box")
	}

	if _, ok := (Ray{Origin: Vec3{5, 0.5, 0.5}, Direction: Vec3{1, 0, 0}}).IntersectBox(box); ok {
		t.Error("expected miss for box behind the ray")
	}
}

func TestRay_IntersectPlane(t *testing.T) {
	plane := HorizontalPlane(0.5)

	p, ok := Ray{Origin: Vec3{0, 2, 0}, Direction: Vec3{0, -1, 0}}.IntersectPlane(plane)
	if !ok || !p.ApproxEqual(Vec3{0, 0.5, 0}, tol) {
		t.Errorf("expected (0,0.5,0), got %+v (ok=%v)", p, ok)
	}

	if _, ok := (Ray{Origin: Vec3{0, 2, 0}, Direction: Vec3{1, 0, 0}}).IntersectPlane(plane); ok {
		t.Error("parallel ray should not intersect")
	}
	if _, ok := (Ray{Origin: Vec3{0, 2, 0}, Direction: Vec3{0, 1, 0}}).IntersectPlane(plane); ok {
		t.Error("ray pointing away should not intersect")
	}
}

func newTestCamera() *PerspectiveCamera {
	cam := NewPerspectiveCamera(90, 0.1, 100, 800, 600)
	cam.Position = Vec3{0, 0, 5}
	cam.LookAt(Vec3{})
	return cam
}

func TestPerspectiveCamera_ProjectCenter(t *testing.T) {
	cam := newTestCamera()
	sx, sy, depth, ok := cam.Project(Vec3{})
	if !ok {
		t.Fatal("origin should be visible")
	}
	if math.Abs(sx-400) > 1e-6 || math.Abs(sy-300) > 1e-6 || math.Abs(depth-5) > 1e-6 {
		t.Errorf("expected (400,300,5), got (%v,%v,%v)", sx, sy, depth)
	}

	if _, _, _, ok := cam.Project(Vec3{0, 0, 10}); ok {
		t.Error("point behind camera must not project")
	}
}

// TestPerspectiveCamera_ProjectRayRoundTrip 投影后的屏幕坐标生成的射线应穿过原始点
func TestPerspectiveCamera_ProjectRayRoundTrip(t *testing.T) {
	cam := newTestCamera()
	point := Vec3{1, 0.5, 0}

	sx, sy, _, ok := cam.Project(point)
	if !ok {
		t.Fatal("point should be visible")
	}
	if math.Abs(sx-460) > 1e-6 || math.Abs(sy-270) > 1e-6 {
		t.Errorf("expected screen (460,270), got (%v,%v)", sx, sy)
	}

	ray := cam.ScreenRay(sx, sy)
	got, ok := ray.IntersectPlane(Plane{Normal: Vec3{0, 0, 1}})
	if !ok {
		t.Fatal("ray should hit z=0 plane")
	}
	if !got.ApproxEqual(point, 1e-6) {
		t.Errorf("round trip expected %+v, got %+v", point, got)
	}
}

func TestPerspectiveCamera_LocalToWorldAndQuaternion(t *testing.T) {
	cam := newTestCamera()

	got := cam.LocalToWorld(Vec3{0, 0, -1})
	if !got.ApproxEqual(Vec3{0, 0, 4}, tol) {
		t.Errorf("expected (0,0,4), got %+v", got)
	}

	// 沿 -Z 观察时朝向为单位旋转
	v := Vec3{0.3, -0.2, 0.7}
	if rotated := cam.Quaternion().Rotate(v); !rotated.ApproxEqual(v, 1e-9) {
		t.Errorf("expected identity orientation, rotated %+v to %+v", v, rotated)
	}
}

func TestOrbitControls_ClampsDistance(t *testing.T) {
	cam := NewPerspectiveCamera(65, 0.1, 100, 800, 600)
	cam.Position = Vec3{0, 0, 2}
	controls := NewOrbitControls(cam)
	controls.MinDistance = 0.5
	controls.MaxDistance = 3

	controls.Zoom(-100)
	controls.Update()
	if d := cam.Position.Length(); math.Abs(d-3) > 1e-9 {
		t.Errorf("expected distance clamped to 3, got %v", d)
	}

	controls.Zoom(200)
	controls.Update()
	if d := cam.Position.Length(); math.Abs(d-0.5) > 1e-9 {
		t.Errorf("expected distance clamped to 0.5, got %v", d)
	}
}

func TestOrbitControls_RotateAndDisable(t *testing.T) {
	cam := NewPerspectiveCamera(65, 0.1, 100, 800, 600)
	cam.Position = Vec3{0, 0, 2}
	controls := NewOrbitControls(cam)

	controls.SetEnabled(false)
	controls.Rotate(150, 0)
	controls.Update()
	if !cam.Position.ApproxEqual(Vec3{0, 0, 2}, 1e-9) {
		t.Errorf("disabled controls moved camera to %+v", cam.Position)
	}

	controls.SetEnabled(true)
	controls.Rotate(150, 0) // 150 / 600 = 四分之一圈
	controls.Update()
	if !cam.Position.ApproxEqual(Vec3{-2, 0, 0}, 1e-9) {
		t.Errorf("expected (-2,0,0) after quarter turn, got %+v", cam.Position)
	}
}
