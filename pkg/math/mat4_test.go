package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	result := m.Mul(Identity())

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(5, 10, 15)

	// Translation lives in the last column.
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("Translate: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}
}

func TestTransformPoint(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
		p    Vec3
		want Vec3
	}{
		{"translate", Translate(10, 20, 30), Vec3{1, 2, 3}, Vec3{11, 22, 33}},
		{"scale", Scale(2, 2, 2), Vec3{1, 2, 3}, Vec3{2, 4, 6}},
		{"identity", Identity(), Vec3{-1, 0.5, 7}, Vec3{-1, 0.5, 7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.TransformPoint(tt.p); got != tt.want {
				t.Errorf("TransformPoint: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRotations(t *testing.T) {
	half := float32(math.Pi / 2)
	tests := []struct {
		name string
		m    Mat4
		p    Vec3
		want Vec3
	}{
		{"Y 90 sends +X to -Z", RotateY(half), Vec3{1, 0, 0}, Vec3{0, 0, -1}},
		{"X 90 sends +Y to +Z", RotateX(half), Vec3{0, 1, 0}, Vec3{0, 0, 1}},
		{"X -90 sends +Y to -Z", RotateX(-half), Vec3{0, 1, 0}, Vec3{0, 0, -1}},
		{"Z 90 sends +X to +Y", RotateZ(half), Vec3{1, 0, 0}, Vec3{0, 1, 0}},
		{"axis Y matches RotateY", RotateAxis(Vec3{0, 1, 0}, half), Vec3{1, 0, 0}, Vec3{0, 0, -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.TransformPoint(tt.p)
			if !near(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRotateEulerOrder(t *testing.T) {
	r := Vec3{0.3, -1.1, 0.7}
	want := RotateX(r.X).Mul(RotateY(r.Y)).Mul(RotateZ(r.Z))
	if got := RotateEuler(r); got != want {
		t.Errorf("RotateEuler = %v, want %v", got, want)
	}
}

func TestInverse(t *testing.T) {
	m := Compose(Vec3{3, -2, 5}, Vec3{0.4, 1.2, -0.3})
	p := Vec3{1, 2, 3}
	back := m.Inverse().TransformPoint(m.TransformPoint(p))
	if !near(back, p) {
		t.Errorf("Inverse round trip: got %v, want %v", back, p)
	}
}

func TestNormalMatrixNonUniformScale(t *testing.T) {
	// A 45 degree surface squashed along Y keeps its normal perpendicular.
	m := Scale(1, 0.5, 1)
	tangent := m.TransformDirection(Vec3{1, 1, 0})
	normal := m.NormalMatrix().TransformDirection(Vec3{1, -1, 0})
	if d := tangent.Dot(normal); d > 1e-5 || d < -1e-5 {
		t.Errorf("normal not perpendicular to tangent, dot = %f", d)
	}
}

func TestPerspective(t *testing.T) {
	m := Perspective(float32(math.Pi/4), 1, 0.1, 100)

	if m[0] == 0 || m[5] == 0 {
		t.Error("Perspective should have non-zero elements")
	}
	if m[15] != 0 {
		t.Errorf("Perspective [15] should be 0, got %f", m[15])
	}
	if m[11] != -1 {
		t.Errorf("Perspective [11] should be -1, got %f", m[11])
	}
}

func TestOrthoMapsBoundsToClip(t *testing.T) {
	m := Ortho(-20, 20, -20, 20, 0.5, 50)
	got := m.TransformPoint(Vec3{20, -20, -50})
	if !near(got, Vec3{1, -1, 1}) {
		t.Errorf("Ortho corner: got %v, want (1, -1, 1)", got)
	}
}

func TestLookAt(t *testing.T) {
	m := LookAt(Vec3{0, 0, 5}, Vec3{}, Vec3{0, 1, 0})

	// The target ends up straight ahead on the -Z axis.
	got := m.TransformPoint(Vec3{})
	if !near(got, Vec3{0, 0, -5}) {
		t.Errorf("LookAt center: got %v, want (0, 0, -5)", got)
	}
}

func near(a, b Vec3) bool {
	return abs(a.X-b.X) < 1e-4 && abs(a.Y-b.Y) < 1e-4 && abs(a.Z-b.Z) < 1e-4
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
