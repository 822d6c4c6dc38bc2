package system

import (
	"os"
	"path/filepath"
	"testing"

	errorsmod "cosmossdk.io/errors"
)

func TestPresetsValid(t *testing.T) {
	for _, name := range ListPresets() {
		d, err := Preset(name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if err := d.Validate(); err != nil {
			t.Errorf("%s: %v", name, err)
		}
		if d.ID != name {
			t.Errorf("%s: id is %q", name, d.ID)
		}
	}
}

func TestPreset_Binary(t *testing.T) {
	d, err := Preset("binary")
	if err != nil {
		t.Fatal(err)
	}
	if d.GravitationalConstant != 1.0 || d.SofteningConstant != 0.1 {
		t.Errorf("unexpected constants: G=%v eps=%v", d.GravitationalConstant, d.SofteningConstant)
	}
	if d.Entities.Data[0].Position != [3]float64{-1, 0, 0} {
		t.Errorf("unexpected position %v", d.Entities.Data[0].Position)
	}
}

func TestPreset_ReturnsCopy(t *testing.T) {
	d, _ := Preset("binary")
	d.Entities.Data[0].Mass = 42

	again, _ := Preset("binary")
	if again.Entities.Data[0].Mass != 1.0 {
		t.Error("mutating a preset copy changed the built-in definition")
	}
}

func TestPreset_NotFound(t *testing.T) {
	_, err := Preset("nonexistent")
	if !errorsmod.IsOf(err, ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("presets not sorted: %v", names)
		}
	}
}

func TestResolve(t *testing.T) {
	d, err := Resolve("figure-eight")
	if err != nil || d.Len() != 3 {
		t.Fatalf("preset: %v (%d bodies)", err, d.Len())
	}

	path := filepath.Join(t.TempDir(), "two.json")
	if err := os.WriteFile(path, []byte(binaryJSON), 0644); err != nil {
		t.Fatal(err)
	}
	d, err = Resolve(path)
	if err != nil {
		t.Fatal(err)
	}
	checkBinary(t, d)

	if _, err := Resolve("no-such-thing"); !errorsmod.IsOf(err, ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}
