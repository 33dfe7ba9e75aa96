package pool

import (
	"errors"
	"math"
	"testing"
)

func TestParseShape(t *testing.T) {
	tests := []struct {
		in   string
		want Shape
	}{
		{"rectangular", Rectangular},
		{"Oval", Oval},
		{" ellipse ", Oval},
		{"", Rectangular},
		{"hexagon", Rectangular},
	}
	for _, tt := range tests {
		if got := ParseShape(tt.in); got != tt.want {
			t.Errorf("ParseShape(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseMaterial(t *testing.T) {
	tests := []struct {
		in   string
		want MaterialID
	}{
		{"concrete", Concrete},
		{"COMPOSITE", Composite},
		{"liner", Liner},
		{"marble", Concrete},
	}
	for _, tt := range tests {
		if got := ParseMaterial(tt.in); got != tt.want {
			t.Errorf("ParseMaterial(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestMaterialNextCycles(t *testing.T) {
	m := Concrete
	seen := map[MaterialID]bool{}
	for i := 0; i < len(Materials); i++ {
		seen[m] = true
		m = m.Next()
	}
	if m != Concrete || len(seen) != len(Materials) {
		t.Errorf("Next did not cycle through all materials: ended at %v, saw %d", m, len(seen))
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		spec    BasinSpec
		wantErr bool
	}{
		{"typical", BasinSpec{Length: 10, Width: 5, Depth: 1.5}, false},
		{"zero depth", BasinSpec{Length: 10, Width: 5, Depth: 0}, true},
		{"negative width", BasinSpec{Length: 10, Width: -1, Depth: 1}, true},
		{"NaN length", BasinSpec{Length: math.NaN(), Width: 5, Depth: 1}, true},
		{"no interior", BasinSpec{Length: 10, Width: 0.5, Depth: 1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidDimensions) {
				t.Errorf("Validate() error = %v, want ErrInvalidDimensions", err)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	got := BasinSpec{Length: 100, Width: 0.1, Depth: 0.2, Shape: Oval}.Clamp()
	want := BasinSpec{Length: MaxLength, Width: MinWidth, Depth: MinDepth, Shape: Oval}
	if got != want {
		t.Errorf("Clamp() = %+v, want %+v", got, want)
	}
	if err := got.Validate(); err != nil {
		t.Errorf("clamped spec should validate: %v", err)
	}
}

func TestGeometryIgnoresMaterial(t *testing.T) {
	a := BasinSpec{Length: 8, Width: 4, Depth: 1.2, Material: Liner}
	b := a
	b.Material = Composite
	if a == b {
		t.Fatal("specs with different materials should differ")
	}
	if a.Geometry() != b.Geometry() {
		t.Error("Geometry() should not depend on material")
	}
}

func TestName(t *testing.T) {
	if got := (BasinSpec{Length: 10, Width: 5, Shape: Oval}).Name(); got != "pool-oval-10x5" {
		t.Errorf("Name() = %q", got)
	}
	if got := (BasinSpec{Length: 7.5, Width: 3.2}).Name(); got != "pool-rectangular-7.5x3.2" {
		t.Errorf("Name() = %q", got)
	}
}

func TestWaterLevel(t *testing.T) {
	if got := WaterLevel(1.5); math.Abs(got-0.6) > 1e-12 {
		t.Errorf("WaterLevel(1.5) = %v, want 0.6", got)
	}
}
