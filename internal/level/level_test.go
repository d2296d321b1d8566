package level

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tomz197/shadestep/internal/object"
	"github.com/tomz197/shadestep/internal/physics"
	"github.com/tomz197/shadestep/internal/power"
	"github.com/tomz197/shadestep/internal/world"
)

const minimal = `
name: Test
width: 100
height: 50
start: {x: 10, y: 25}
blocks:
  - {tag: ShadeBlock, x: 30, y: 0, w: 4, h: 50}
  - {tag: FireBlock, x: 50, y: 0, w: 4, h: 20}
pickups:
  - {power: sol, x: 20, y: 25}
volumes:
  - {kind: win, x: 90, y: 20, w: 8, h: 10}
`

func TestDefaultLevelParses(t *testing.T) {
	def, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if def.Name == "" || len(def.Pickups) != 3 {
		t.Fatalf("unexpected default level: %q with %d pickups", def.Name, len(def.Pickups))
	}
	kinds := map[power.Kind]bool{}
	for _, p := range def.Pickups {
		kinds[*p.Power] = true
	}
	for _, k := range power.Kinds {
		if !kinds[k] {
			t.Fatalf("default level is missing the %v pickup", k)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		edit    func(string) string
		wantErr error
	}{
		{"unknown tag", func(s string) string { return strings.Replace(s, "ShadeBlock", "LavaBlock", 1) }, ErrUnknownTag},
		{"no win", func(s string) string { return strings.Replace(s, "kind: win", "kind: hazard", 1) }, ErrNoWinVolume},
		{"zero size", func(s string) string { return strings.Replace(s, "w: 4, h: 50", "w: 0, h: 50", 1) }, nil},
		{"bad power", func(s string) string { return strings.Replace(s, "power: sol", "power: lava", 1) }, nil},
		{"missing power", func(s string) string { return strings.Replace(s, "power: sol, ", "", 1) }, ErrMissingPower},
		{"bad volume kind", func(s string) string { return strings.Replace(s, "kind: win", "kind: moon", 1) }, nil},
		{"start outside", func(s string) string { return strings.Replace(s, "x: 10, y: 25", "x: 500, y: 25", 1) }, nil},
		{"fire on start", func(s string) string { return strings.Replace(s, "x: 50, y: 0, w: 4, h: 20", "x: 8, y: 20, w: 4, h: 10", 1) }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.edit(minimal)))
			if err == nil {
				t.Fatalf("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadWrapsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("width: 10\nheight: 10\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if !errors.Is(err, ErrNoWinVolume) {
		t.Fatalf("err = %v, want ErrNoWinVolume", err)
	}
	if !strings.Contains(err.Error(), "broken.yaml") {
		t.Fatalf("error should name the file: %v", err)
	}
}

func TestBuildRegistersObjects(t *testing.T) {
	def, err := Parse([]byte(minimal))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	w := world.New()
	space := physics.NewSpace(physics.DefaultOptions())
	built := Build(def, w, space)

	if built.StartX != 10 || built.StartY != 25 || built.Name != "Test" {
		t.Fatalf("Built = %+v", built)
	}
	if w.Count(object.TagShadeBlock) != 1 || w.Count(object.TagFireBlock) != 1 {
		t.Fatalf("blocks not indexed")
	}
	if w.Count(object.TagPowerup) != 1 || w.Count(object.TagWin) != 1 {
		t.Fatalf("pickup or win volume missing")
	}

	fire := w.ByTag(object.TagFireBlock)[0].(*object.Block)
	if fire.Mode() != object.Lethal {
		t.Fatalf("fire block should start lethal")
	}
}

func TestWatcherSignalsChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "level.yaml")
	if err := os.WriteFile(path, []byte(minimal), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(path, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	// Unrelated files are ignored.
	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case <-w.Changed:
		t.Fatalf("change to another file was reported")
	case <-time.After(100 * time.Millisecond):
	}

	for i := 0; i < 3; i++ {
		if err := os.WriteFile(path, []byte(minimal), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	select {
	case <-w.Changed:
	case <-time.After(2 * time.Second):
		t.Fatalf("no change reported")
	}
}
