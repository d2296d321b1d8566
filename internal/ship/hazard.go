package ship

import (
	"github.com/tomz197/shadestep/internal/object"
	"github.com/tomz197/shadestep/internal/power"
	"github.com/tomz197/shadestep/internal/world"
)

// HazardBlock is a block the coordinator can toggle.
type HazardBlock interface {
	SetMode(m object.Mode)
	SetMaterial(m object.Material)
}

// Effect is the state a block is put into.
type Effect struct {
	Mode        object.Mode
	Material    object.Material
	SetMaterial bool // Leave the material alone when false
}

// Profile describes which blocks a power touches and how.
type Profile struct {
	Tag    object.Tag
	Active Effect
	Rest   Effect
}

// DefaultProfiles maps each timed power to the blocks it toggles.
var DefaultProfiles = map[power.Kind]Profile{
	power.Shade: {
		Tag:    object.TagShadeBlock,
		Active: Effect{Mode: object.PassThrough},
		Rest:   Effect{Mode: object.Solid},
	},
	power.Sol: {
		Tag:    object.TagFireBlock,
		Active: Effect{Mode: object.Solid, Material: object.MaterialAsteroid, SetMaterial: true},
		Rest:   Effect{Mode: object.Lethal, Material: object.MaterialHazard, SetMaterial: true},
	},
}

// Coordinator toggles every block of a power's tag at once.
type Coordinator struct {
	index    world.Index
	profiles map[power.Kind]Profile
}

// NewCoordinator creates a coordinator over index using DefaultProfiles.
func NewCoordinator(index world.Index) *Coordinator {
	return &Coordinator{index: index, profiles: DefaultProfiles}
}

// Apply puts the blocks of k into their active state. It returns how many
// blocks were touched; zero is a valid no-op.
func (c *Coordinator) Apply(k power.Kind) int {
	p, ok := c.profiles[k]
	if !ok {
		return 0
	}
	return c.set(p.Tag, p.Active)
}

// Revert puts the blocks of k back into their resting state.
func (c *Coordinator) Revert(k power.Kind) int {
	p, ok := c.profiles[k]
	if !ok {
		return 0
	}
	return c.set(p.Tag, p.Rest)
}

func (c *Coordinator) set(tag object.Tag, e Effect) int {
	if c.index == nil {
		return 0
	}
	n := 0
	for _, obj := range c.index.ByTag(tag) {
		b, ok := obj.(HazardBlock)
		if !ok {
			continue
		}
		b.SetMode(e.Mode)
		if e.SetMaterial {
			b.SetMaterial(e.Material)
		}
		n++
	}
	return n
}
