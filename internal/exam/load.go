package exam

import (
	"embed"
	"errors"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// ErrUnknownExam is returned when no built-in variant has the requested ID.
var ErrUnknownExam = errors.New("unknown exam")

// builtinOrder is the display order of the built-in variants.
var builtinOrder = []string{TYT, AYT}

// builtins is the package-level registry, populated once at init.
var builtins = mustLoadBuiltins()

func mustLoadBuiltins() map[string]*Variant {
	out := make(map[string]*Variant, len(builtinOrder))
	for _, id := range builtinOrder {
		data, err := builtinFS.ReadFile("builtin/" + id + ".yaml")
		if err != nil {
			panic(fmt.Sprintf("exam: read built-in profile %q: %v", id, err))
		}
		v, err := Parse(data)
		if err != nil {
			panic(fmt.Sprintf("exam: built-in profile %q: %v", id, err))
		}
		if v.ID != id {
			panic(fmt.Sprintf("exam: built-in profile %q declares id %q", id, v.ID))
		}
		out[id] = v
	}
	return out
}

// Parse decodes and validates a YAML exam profile.
func Parse(data []byte) (*Variant, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}
	if err := validateSchema(doc); err != nil {
		return nil, err
	}

	var v Variant
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	if err := validateVariant(&v); err != nil {
		return nil, err
	}
	return &v, nil
}

// Load returns the built-in variant with the given ID.
func Load(id string) (*Variant, error) {
	v, ok := builtins[id]
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %v)", ErrUnknownExam, id, IDs())
	}
	return v, nil
}

// MustLoad is like Load but panics on an unknown ID.
func MustLoad(id string) *Variant {
	v, err := Load(id)
	if err != nil {
		panic(err)
	}
	return v
}

// All returns every built-in variant in display order.
func All() []*Variant {
	out := make([]*Variant, 0, len(builtinOrder))
	for _, id := range builtinOrder {
		out = append(out, builtins[id])
	}
	return out
}

// IDs returns the sorted IDs of the built-in variants.
func IDs() []string {
	ids := make([]string, 0, len(builtins))
	for id := range builtins {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Next returns the variant following id in display order, wrapping around.
func Next(id string) *Variant {
	for i, vid := range builtinOrder {
		if vid == id {
			return builtins[builtinOrder[(i+1)%len(builtinOrder)]]
		}
	}
	return builtins[builtinOrder[0]]
}
