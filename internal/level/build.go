package level

import (
	"math"
	"math/rand"

	"github.com/tomz197/shadestep/internal/object"
	"github.com/tomz197/shadestep/internal/physics"
)

// boundaryThickness is the width of the invisible walls around a level.
const boundaryThickness = 4.0

// Adder receives built objects.
type Adder interface {
	Add(obj object.Object)
}

// Built describes what Build produced.
type Built struct {
	Name       string
	StartX     float64
	StartY     float64
	StartAngle float64 // Radians
	Width      float64
	Height     float64
}

// Build creates the level's objects in w and their shapes in space. The
// ship is not created here.
func Build(def *Def, w Adder, space *physics.Space) Built {
	rng := rand.New(rand.NewSource(def.Seed))

	for _, bd := range def.Blocks {
		b := object.NewBlock(object.Tag(bd.Tag), bd.rect())
		sh := space.AddBox(blockKind(b.Tag()), bd.X, bd.Y, bd.W, bd.H, b.Mode() != object.Solid, b)
		b.Attach(sh)
		w.Add(b)
	}

	for _, rd := range def.Rocks {
		r := object.NewRock(rd.X, rd.Y, rd.R, rng)
		r.Attach(space.AddCircle(physics.KindSolid, rd.X, rd.Y, rd.R, false, r))
		w.Add(r)
	}

	for _, pd := range def.Pickups {
		p := object.NewPickup(*pd.Power, pd.X, pd.Y)
		p.Attach(space.AddCircle(physics.KindPickup, pd.X, pd.Y, object.PickupRadius, true, p))
		w.Add(p)
	}

	for _, vd := range def.Volumes {
		kind, _ := object.ParseVolumeKind(vd.Kind)
		v := object.NewVolume(kind, vd.rect())
		v.Attach(space.AddBox(physics.KindVolume, vd.X, vd.Y, vd.W, vd.H, true, v))
		w.Add(v)
	}

	for _, bd := range def.Barriers {
		b := object.NewBarrier(bd.rect())
		b.Attach(space.AddBox(physics.KindBarrier, bd.X, bd.Y, bd.W, bd.H, false, b))
		w.Add(b)
	}

	for _, ld := range def.Labels {
		w.Add(&object.Label{X: ld.X, Y: ld.Y, Value: ld.Text})
	}

	// Keep everything inside the level even without border blocks.
	t := boundaryThickness
	space.AddBox(physics.KindSolid, -t, -t, def.Width+2*t, t, false, nil)
	space.AddBox(physics.KindSolid, -t, def.Height, def.Width+2*t, t, false, nil)
	space.AddBox(physics.KindSolid, -t, 0, t, def.Height, false, nil)
	space.AddBox(physics.KindSolid, def.Width, 0, t, def.Height, false, nil)

	return Built{
		Name:       def.Name,
		StartX:     def.Start.X,
		StartY:     def.Start.Y,
		StartAngle: def.Start.Angle * math.Pi / 180,
		Width:      def.Width,
		Height:     def.Height,
	}
}

func blockKind(tag object.Tag) physics.Kind {
	switch tag {
	case object.TagShadeBlock:
		return physics.KindShade
	case object.TagFireBlock:
		return physics.KindFire
	}
	return physics.KindSolid
}
