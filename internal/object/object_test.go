package object

import (
	"testing"
	"time"

	"github.com/tomz197/shadestep/internal/power"
)

type fakeCollider struct {
	sensor  bool
	removed int
}

func (f *fakeCollider) SetSensor(sensor bool) { f.sensor = sensor }
func (f *fakeCollider) Remove()               { f.removed++ }

type collectSpawner struct {
	objects []Object
}

func (s *collectSpawner) Spawn(obj Object) { s.objects = append(s.objects, obj) }

func TestNewBlockRestingState(t *testing.T) {
	tests := []struct {
		tag      Tag
		mode     Mode
		material Material
		sensor   bool
	}{
		{TagShadeBlock, Solid, MaterialShadow, false},
		{TagFireBlock, Lethal, MaterialHazard, true},
		{TagAsteroid, Solid, MaterialAsteroid, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.tag), func(t *testing.T) {
			b := NewBlock(tt.tag, Rect{W: 4, H: 4})
			c := &fakeCollider{sensor: !tt.sensor}
			b.Attach(c)
			if b.Mode() != tt.mode {
				t.Errorf("mode = %v, want %v", b.Mode(), tt.mode)
			}
			if b.Material() != tt.material {
				t.Errorf("material = %v, want %v", b.Material(), tt.material)
			}
			if c.sensor != tt.sensor {
				t.Errorf("sensor = %v, want %v", c.sensor, tt.sensor)
			}
		})
	}
}

func TestBlockSetModeMirrorsSensor(t *testing.T) {
	b := NewBlock(TagShadeBlock, Rect{W: 2, H: 2})
	c := &fakeCollider{}
	b.Attach(c)

	b.SetMode(PassThrough)
	if !c.sensor {
		t.Fatalf("pass-through block should be a sensor")
	}
	b.SetMode(Solid)
	if c.sensor {
		t.Fatalf("solid block should not be a sensor")
	}
	b.SetMode(Lethal)
	if !c.sensor {
		t.Fatalf("lethal block should be a sensor")
	}

	b.Detach()
	b.Detach()
	if c.removed != 1 {
		t.Fatalf("collider removed %d times, want 1", c.removed)
	}
	b.SetMode(Solid) // no collider: must not panic
}

func TestPickupCollectLatches(t *testing.T) {
	p := NewPickup(power.Shade, 10, 10)
	if !p.Collect() {
		t.Fatalf("first Collect should succeed")
	}
	if p.Collect() {
		t.Fatalf("second Collect should report false")
	}

	sp := &collectSpawner{}
	remove, err := p.Update(UpdateContext{Delta: time.Millisecond, Spawner: sp})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !remove {
		t.Fatalf("collected pickup should be removed")
	}
	if len(sp.objects) == 0 {
		t.Fatalf("expected a burst of particles")
	}
}

func TestParseVolumeKind(t *testing.T) {
	tests := []struct {
		in      string
		want    VolumeKind
		wantErr bool
	}{
		{"hazard", VolumeHazard, false},
		{"Win", VolumeWin, false},
		{"lava", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseVolumeKind(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVolumeTag(t *testing.T) {
	if NewVolume(VolumeWin, Rect{}).Tag() != TagWin {
		t.Fatalf("win volume should carry the win tag")
	}
	if NewVolume(VolumeHazard, Rect{}).Tag() != TagHazard {
		t.Fatalf("hazard volume should carry the hazard tag")
	}
}

func TestBarrierShatter(t *testing.T) {
	b := NewBarrier(Rect{X: 0, Y: 0, W: 4, H: 10})
	c := &fakeCollider{}
	b.Attach(c)

	if !b.Shatter() {
		t.Fatalf("first Shatter should succeed")
	}
	if b.Shatter() {
		t.Fatalf("second Shatter should report false")
	}
	if c.removed != 1 {
		t.Fatalf("collider should be removed on shatter")
	}

	sp := &collectSpawner{}
	remove, _ := b.Update(UpdateContext{Spawner: sp})
	if remove {
		t.Fatalf("shattered barrier stays until marked destroyed")
	}
	if len(sp.objects) == 0 {
		t.Fatalf("expected explosion particles")
	}
	n := len(sp.objects)
	b.Update(UpdateContext{Spawner: sp})
	if len(sp.objects) != n {
		t.Fatalf("explosion should only burst once")
	}

	b.MarkDestroyed()
	if remove, _ := b.Update(UpdateContext{Spawner: sp}); !remove {
		t.Fatalf("destroyed barrier should be removed")
	}
}

func TestBulletLifetime(t *testing.T) {
	b := NewBullet(0, 0, 0.1)
	if remove, _ := b.Update(UpdateContext{Delta: 50 * time.Millisecond}); remove {
		t.Fatalf("bullet removed too early")
	}
	if remove, _ := b.Update(UpdateContext{Delta: 60 * time.Millisecond}); !remove {
		t.Fatalf("bullet should expire after its lifetime")
	}
}

func TestWorldToScreen(t *testing.T) {
	view := NewScreen(100, 50)
	cam := Camera{X: 200, Y: 100}

	x, y, ok := WorldToScreen(200, 100, cam, view, 0)
	if !ok || x != 50 || y != 25 {
		t.Fatalf("camera center -> (%v, %v, %v), want (50, 25, true)", x, y, ok)
	}
	if _, _, ok := WorldToScreen(0, 0, cam, view, 5); ok {
		t.Fatalf("far point should be culled")
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 1, Y: 2, W: 3, H: 4}
	if !r.Contains(2, 3) || r.Contains(0, 0) {
		t.Fatalf("Contains gave wrong answer")
	}
	cx, cy := r.Center()
	if cx != 2.5 || cy != 4 {
		t.Fatalf("Center = (%v, %v)", cx, cy)
	}
}
