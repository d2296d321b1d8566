// Package level loads level definitions from YAML and builds them into a
// world and physics space.
package level

import (
	"embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tomz197/shadestep/internal/object"
	"github.com/tomz197/shadestep/internal/physics"
	"github.com/tomz197/shadestep/internal/power"
)

//go:embed levels/*.yaml
var builtin embed.FS

// DefaultName is the embedded level loaded when no file is given.
const DefaultName = "asteroid-run"

var (
	// ErrNoWinVolume is returned for levels that cannot be won.
	ErrNoWinVolume = errors.New("level has no win volume")
	// ErrUnknownTag is returned for blocks with a tag other than ShadeBlock,
	// FireBlock or Asteroid.
	ErrUnknownTag = errors.New("unknown block tag")
	// ErrMissingPower is returned for pickups that do not name a power.
	ErrMissingPower = errors.New("pickup has no power")
)

// Def is a level definition.
type Def struct {
	Name     string      `yaml:"name"`
	Width    float64     `yaml:"width"`
	Height   float64     `yaml:"height"`
	Seed     int64       `yaml:"seed"`
	Start    Start       `yaml:"start"`
	Blocks   []BlockDef  `yaml:"blocks"`
	Rocks    []RockDef   `yaml:"rocks"`
	Pickups  []PickupDef `yaml:"pickups"`
	Volumes  []VolumeDef `yaml:"volumes"`
	Barriers []RectDef   `yaml:"barriers"`
	Labels   []LabelDef  `yaml:"labels"`
}

// Start is where the ship spawns. Angle is in degrees, 0 facing +x.
type Start struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Angle float64 `yaml:"angle"`
}

// RectDef is a top-left anchored rectangle.
type RectDef struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

func (r RectDef) rect() object.Rect {
	return object.Rect{X: r.X, Y: r.Y, W: r.W, H: r.H}
}

// BlockDef is a tagged block.
type BlockDef struct {
	Tag     string `yaml:"tag"`
	RectDef `yaml:",inline"`
}

// RockDef is a round asteroid.
type RockDef struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	R float64 `yaml:"r"`
}

// PickupDef is a power-up. Power is nil when the key is absent.
type PickupDef struct {
	Power *power.Kind `yaml:"power"`
	X     float64     `yaml:"x"`
	Y     float64     `yaml:"y"`
}

// VolumeDef is a hazard or win volume.
type VolumeDef struct {
	Kind    string `yaml:"kind"`
	RectDef `yaml:",inline"`
}

// LabelDef is a text label.
type LabelDef struct {
	Text string  `yaml:"text"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
}

// Parse decodes and validates a level.
func Parse(data []byte) (*Def, error) {
	var def Def
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("level: parse: %w", err)
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// Load reads and parses a level file.
func Load(path string) (*Def, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("level: read %s: %w", path, err)
	}
	def, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("level: %s: %w", path, err)
	}
	return def, nil
}

// Builtin loads an embedded level by name.
func Builtin(name string) (*Def, error) {
	data, err := builtin.ReadFile("levels/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("level: builtin %q: %w", name, err)
	}
	return Parse(data)
}

// Default loads the embedded default level.
func Default() (*Def, error) {
	return Builtin(DefaultName)
}

func blockTag(s string) (object.Tag, error) {
	switch object.Tag(s) {
	case object.TagShadeBlock, object.TagFireBlock, object.TagAsteroid:
		return object.Tag(s), nil
	}
	return "", fmt.Errorf("level: block tag %q: %w", s, ErrUnknownTag)
}

// Validate checks the level for values the game cannot build.
func (d *Def) Validate() error {
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("level: size must be positive, got %vx%v", d.Width, d.Height)
	}
	if d.Start.X < 0 || d.Start.X > d.Width || d.Start.Y < 0 || d.Start.Y > d.Height {
		return fmt.Errorf("level: start (%v, %v) outside the level", d.Start.X, d.Start.Y)
	}

	for i, b := range d.Blocks {
		tag, err := blockTag(b.Tag)
		if err != nil {
			return fmt.Errorf("level: block %d: %w", i, err)
		}
		if b.W <= 0 || b.H <= 0 {
			return fmt.Errorf("level: block %d: size must be positive", i)
		}
		if tag == object.TagFireBlock && physics.RectCircleOverlap(b.X, b.Y, b.W, b.H, d.Start.X, d.Start.Y, startClearance) {
			return fmt.Errorf("level: block %d: fire block covers the start", i)
		}
	}
	for i, r := range d.Rocks {
		if r.R <= 0 {
			return fmt.Errorf("level: rock %d: radius must be positive", i)
		}
		if physics.CirclesOverlap(r.X, r.Y, r.R, d.Start.X, d.Start.Y, startClearance) {
			return fmt.Errorf("level: rock %d: overlaps the start", i)
		}
	}
	for i, p := range d.Pickups {
		if p.Power == nil {
			return fmt.Errorf("level: pickup %d: %w", i, ErrMissingPower)
		}
		if !p.Power.Valid() {
			return fmt.Errorf("level: pickup %d: invalid power", i)
		}
	}

	wins := 0
	for i, v := range d.Volumes {
		kind, err := object.ParseVolumeKind(v.Kind)
		if err != nil {
			return fmt.Errorf("level: volume %d: %w", i, err)
		}
		if v.W <= 0 || v.H <= 0 {
			return fmt.Errorf("level: volume %d: size must be positive", i)
		}
		if kind == object.VolumeWin {
			wins++
		}
	}
	if wins == 0 {
		return fmt.Errorf("level: %q: %w", d.Name, ErrNoWinVolume)
	}

	for i, b := range d.Barriers {
		if b.W <= 0 || b.H <= 0 {
			return fmt.Errorf("level: barrier %d: size must be positive", i)
		}
	}
	return nil
}

// startClearance is the free radius required around the start point.
const startClearance = 2.0
