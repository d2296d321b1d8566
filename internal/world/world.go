// Package world owns the live entities of a match and indexes them by tag.
package world

import (
	"time"

	"github.com/tomz197/shadestep/internal/object"
)

// Index answers tag queries over live entities.
type Index interface {
	ByTag(tag object.Tag) []object.Object
}

// World holds the objects of one match. It is not safe for concurrent use;
// the match goroutine owns it.
type World struct {
	Objects []object.Object
	toSpawn []object.Object // Objects to add after current update cycle
	byTag   map[object.Tag][]object.Object
}

var _ Index = (*World)(nil)
var _ object.Spawner = (*World)(nil)

// New creates an empty world.
func New() *World {
	return &World{
		Objects: []object.Object{},
		byTag:   make(map[object.Tag][]object.Object),
	}
}

// Add inserts an object immediately and indexes it.
func (w *World) Add(obj object.Object) {
	w.Objects = append(w.Objects, obj)
	tag := obj.Tag()
	w.byTag[tag] = append(w.byTag[tag], obj)
}

// Spawn queues an object to be added after the current update cycle.
// Implements object.Spawner interface.
func (w *World) Spawn(obj object.Object) {
	w.toSpawn = append(w.toSpawn, obj)
}

// FlushSpawned adds all queued objects to the world and clears the queue.
func (w *World) FlushSpawned() {
	for _, obj := range w.toSpawn {
		w.Add(obj)
	}
	clear(w.toSpawn)
	w.toSpawn = w.toSpawn[:0]
}

// ByTag returns the live objects carrying tag, in insertion order. The
// returned slice is a copy.
func (w *World) ByTag(tag object.Tag) []object.Object {
	list := w.byTag[tag]
	if len(list) == 0 {
		return nil
	}
	out := make([]object.Object, len(list))
	copy(out, list)
	return out
}

// Count returns the number of live objects carrying tag.
func (w *World) Count(tag object.Tag) int {
	return len(w.byTag[tag])
}

// Remove drops obj from the world and releases its resources. It reports
// false if obj was not present.
func (w *World) Remove(obj object.Object) bool {
	found := false
	for i, o := range w.Objects {
		if o == obj {
			w.Objects = append(w.Objects[:i], w.Objects[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		return false
	}
	w.unindex(obj)
	object.ReleaseObject(obj)
	return true
}

// Update runs every object's Update and drops the ones that ask to be
// removed, then adds anything spawned during the pass.
func (w *World) Update(delta time.Duration) error {
	ctx := object.UpdateContext{Delta: delta, Spawner: w}

	var firstErr error
	kept := w.Objects[:0]
	for _, obj := range w.Objects {
		remove, err := obj.Update(ctx)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		if !remove {
			kept = append(kept, obj)
			continue
		}
		w.unindex(obj)
		object.ReleaseObject(obj)
	}
	clear(w.Objects[len(kept):])
	w.Objects = kept
	w.FlushSpawned()
	return firstErr
}

// Draw draws every object in insertion order.
func (w *World) Draw(ctx object.DrawContext) error {
	for _, obj := range w.Objects {
		if err := obj.Draw(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Clear releases every object, including queued spawns.
func (w *World) Clear() {
	for _, obj := range w.Objects {
		object.ReleaseObject(obj)
	}
	for _, obj := range w.toSpawn {
		object.ReleaseObject(obj)
	}
	w.Objects = w.Objects[:0]
	w.toSpawn = w.toSpawn[:0]
	clear(w.byTag)
}

func (w *World) unindex(obj object.Object) {
	tag := obj.Tag()
	list := w.byTag[tag]
	for i, o := range list {
		if o == obj {
			w.byTag[tag] = append(list[:i], list[i+1:]...)
			return
		}
	}
}
