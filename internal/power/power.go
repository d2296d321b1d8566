// Package power defines the ship's power-up kinds and the obtained/empowered
// bookkeeping that gates their activation.
package power

import (
	"fmt"
	"strings"
)

// Kind identifies a power-up.
type Kind uint8

const (
	Shade  Kind = iota // Phase through shadow blocks
	Sol                // Immunity to fire blocks
	Charge             // Fire projectiles

	numKinds
)

// Kinds lists every power kind in display order.
var Kinds = []Kind{Shade, Sol, Charge}

var kindNames = [numKinds]string{"shade", "sol", "charge"}

var kindLabels = [numKinds]string{"Shadestep", "Flamestride", "Chargeblaster"}

// String returns the lowercase identifier used in level files.
func (k Kind) String() string {
	if k >= numKinds {
		return fmt.Sprintf("power(%d)", uint8(k))
	}
	return kindNames[k]
}

// Label returns the in-game ability name.
func (k Kind) Label() string {
	if k >= numKinds {
		return k.String()
	}
	return kindLabels[k]
}

// Timed reports whether the power has an empowered window.
// Charge fires instantly and is never empowered.
func (k Kind) Timed() bool {
	return k == Shade || k == Sol
}

// Valid reports whether k is one of the defined kinds.
func (k Kind) Valid() bool {
	return k < numKinds
}

// ParseKind parses a level-file identifier ("shade", "sol", "charge").
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("power: unknown kind %q", s)
}

// UnmarshalText implements encoding.TextUnmarshaler so kinds can be used
// directly in YAML level definitions.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("power: invalid kind %d", uint8(k))
	}
	return []byte(k.String()), nil
}

// Set is a small bit set of power kinds.
type Set uint8

// Has reports whether k is in the set.
func (s Set) Has(k Kind) bool {
	return k.Valid() && s&(1<<k) != 0
}

// With returns the set with k added.
func (s Set) With(k Kind) Set {
	if !k.Valid() {
		return s
	}
	return s | 1<<k
}

// Without returns the set with k removed.
func (s Set) Without(k Kind) Set {
	if !k.Valid() {
		return s
	}
	return s &^ (1 << k)
}

// Len returns the number of kinds in the set.
func (s Set) Len() int {
	n := 0
	for _, k := range Kinds {
		if s.Has(k) {
			n++
		}
	}
	return n
}

// Kinds returns the members of the set in display order.
func (s Set) Kinds() []Kind {
	var out []Kind
	for _, k := range Kinds {
		if s.Has(k) {
			out = append(out, k)
		}
	}
	return out
}
