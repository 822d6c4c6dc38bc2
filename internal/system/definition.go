// Package system loads N-body system definitions and turns them into
// initial kernel states.
//
// A definition file names its gravitational and softening constants and lists
// the bodies in index order:
//
//	{
//	  "id": "binary",
//	  "gravitational_constant": 1.0,
//	  "softening_constant": 0.1,
//	  "entities": {"data": [
//	    {"id": "a", "mass": 1, "position": [-1, 0, 0], "velocity": [0, 0, 0], "acceleration": [0, 0, 0]}
//	  ]}
//	}
//
// The same keys are accepted in YAML.
package system

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"

	errorsmod "cosmossdk.io/errors"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/nbody/internal/dynamo"
	"github.com/san-kum/nbody/internal/numeric"
	"github.com/san-kum/nbody/internal/vec"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

type Definition struct {
	ID                    string   `json:"id" yaml:"id" mapstructure:"id"`
	GravitationalConstant float64  `json:"gravitational_constant" yaml:"gravitational_constant" mapstructure:"gravitational_constant"`
	SofteningConstant     float64  `json:"softening_constant" yaml:"softening_constant" mapstructure:"softening_constant"`
	Entities              Entities `json:"entities" yaml:"entities" mapstructure:"entities"`
}

type Entities struct {
	Data []Entity `json:"data" yaml:"data" mapstructure:"data"`
}

type Entity struct {
	ID           string     `json:"id" yaml:"id" mapstructure:"id"`
	Mass         float64    `json:"mass" yaml:"mass" mapstructure:"mass"`
	Position     [3]float64 `json:"position" yaml:"position" mapstructure:"position"`
	Velocity     [3]float64 `json:"velocity" yaml:"velocity" mapstructure:"velocity"`
	Acceleration [3]float64 `json:"acceleration" yaml:"acceleration" mapstructure:"acceleration"`
}

// Len is the number of bodies.
func (d Definition) Len() int { return len(d.Entities.Data) }

// Clone returns a definition that shares no memory with d.
func (d Definition) Clone() Definition {
	out := d
	out.Entities.Data = append([]Entity(nil), d.Entities.Data...)
	return out
}

// FormatFromPath picks the decoder for a file by its extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errorsmod.Wrapf(ErrUnsupportedFormat, "%q", path)
	}
}

func Load(path string) (Definition, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return Definition{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Definition{}, err
	}
	def, err := Parse(data, format)
	if err != nil {
		return Definition{}, errorsmod.Wrapf(err, "load %s", path)
	}
	return def, nil
}

// Parse decodes and validates a definition.
func Parse(data []byte, format Format) (Definition, error) {
	var def Definition
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &def); err != nil {
			return Definition{}, errorsmod.Wrap(ErrInvalidDefinition, err.Error())
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &def); err != nil {
			return Definition{}, errorsmod.Wrap(ErrInvalidDefinition, err.Error())
		}
	default:
		return Definition{}, errorsmod.Wrapf(ErrUnsupportedFormat, "%q", format)
	}
	if err := def.Validate(); err != nil {
		return Definition{}, err
	}
	return def, nil
}

// Marshal encodes d in the given format.
func Marshal(d Definition, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(d, "", "  ")
	case FormatYAML:
		return yaml.Marshal(d)
	default:
		return nil, errorsmod.Wrapf(ErrUnsupportedFormat, "%q", format)
	}
}

func (d Definition) Validate() error {
	if !isFinite(d.GravitationalConstant) {
		return errorsmod.Wrapf(ErrInvalidDefinition, "gravitational constant %v", d.GravitationalConstant)
	}
	if !isFinite(d.SofteningConstant) || d.SofteningConstant <= 0 {
		return errorsmod.Wrapf(ErrInvalidDefinition, "softening constant must be positive, got %v", d.SofteningConstant)
	}

	seen := make(map[string]int, d.Len())
	for i, e := range d.Entities.Data {
		if e.ID == "" {
			return errorsmod.Wrapf(ErrInvalidDefinition, "entity %d has no id", i)
		}
		if j, dup := seen[e.ID]; dup {
			return errorsmod.Wrapf(ErrInvalidDefinition, "entity %d reuses id %q of entity %d", i, e.ID, j)
		}
		seen[e.ID] = i

		if !isFinite(e.Mass) || e.Mass < 0 {
			return errorsmod.Wrapf(ErrInvalidDefinition, "entity %q: mass %v", e.ID, e.Mass)
		}
		for _, v := range [][3]float64{e.Position, e.Velocity, e.Acceleration} {
			for _, c := range v {
				if !isFinite(c) {
					return errorsmod.Wrapf(ErrInvalidDefinition, "entity %q: non-finite component", e.ID)
				}
			}
		}
	}
	return nil
}

// BuildState converts every entity, in order, into a fresh unsealed state.
func BuildState[T numeric.Number[T]](d Definition) (*dynamo.State[T], error) {
	s := dynamo.NewState[T](d.Len())
	for _, e := range d.Entities.Data {
		err := s.AddEntity(
			e.ID,
			numeric.From[T](e.Mass),
			vec.FromFloats[T](e.Position),
			vec.FromFloats[T](e.Velocity),
			vec.FromFloats[T](e.Acceleration),
		)
		if err != nil {
			return nil, err
		}
	}
	return s, nil
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
