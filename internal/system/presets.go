package system

import (
	"os"
	"sort"

	errorsmod "cosmossdk.io/errors"
)

var Presets = map[string]Definition{
	"binary": {
		ID: "binary", GravitationalConstant: 1.0, SofteningConstant: 0.1,
		Entities: Entities{Data: []Entity{
			{ID: "a", Mass: 1.0, Position: [3]float64{-1, 0, 0}},
			{ID: "b", Mass: 1.0, Position: [3]float64{1, 0, 0}},
		}},
	},
	// Chenciner-Montgomery choreography, G = m = 1.
	"figure-eight": {
		ID: "figure-eight", GravitationalConstant: 1.0, SofteningConstant: 1e-6,
		Entities: Entities{Data: []Entity{
			{ID: "a", Mass: 1.0, Position: [3]float64{0.97000436, -0.24308753, 0}, Velocity: [3]float64{0.466203685, 0.43236573, 0}},
			{ID: "b", Mass: 1.0, Position: [3]float64{-0.97000436, 0.24308753, 0}, Velocity: [3]float64{0.466203685, 0.43236573, 0}},
			{ID: "c", Mass: 1.0, Velocity: [3]float64{-0.93240737, -0.86473146, 0}},
		}},
	},
	// AU, days, solar masses.
	"sun-earth-moon": {
		ID: "sun-earth-moon", GravitationalConstant: 2.959122e-4, SofteningConstant: 1e-9,
		Entities: Entities{Data: []Entity{
			{ID: "sun", Mass: 1.0},
			{ID: "earth", Mass: 3.003e-6, Position: [3]float64{1, 0, 0}, Velocity: [3]float64{0, 0.0172021, 0}},
			{ID: "moon", Mass: 3.694e-8, Position: [3]float64{1.00257, 0, 0}, Velocity: [3]float64{0, 0.0177923, 0}},
		}},
	},
}

// Preset returns a copy of the named built-in system.
func Preset(name string) (Definition, error) {
	d, ok := Presets[name]
	if !ok {
		return Definition{}, errorsmod.Wrapf(ErrUnknownPreset, "%q", name)
	}
	return d.Clone(), nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve treats nameOrPath as a preset name first and a file path otherwise.
func Resolve(nameOrPath string) (Definition, error) {
	if d, err := Preset(nameOrPath); err == nil {
		return d, nil
	}
	if _, err := os.Stat(nameOrPath); err != nil {
		return Definition{}, errorsmod.Wrapf(ErrUnknownPreset, "%q is neither a preset nor a readable file", nameOrPath)
	}
	return Load(nameOrPath)
}
