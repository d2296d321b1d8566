// Package sched provides a cooperative timer queue driven by the game tick.
//
// Tasks never run on their own goroutine: they fire inside Tick, on whatever
// goroutine drives the frame loop, so callbacks may mutate game state freely.
package sched

import (
	"container/heap"
	"time"
)

// Task is a scheduled callback. The zero value is not usable; obtain tasks
// from Scheduler.After.
type Task struct {
	due      time.Duration
	seq      uint64
	fn       func()
	index    int
	fired    bool
	canceled bool
}

// Cancel prevents a pending task from firing. It reports whether the task
// was still pending.
func (t *Task) Cancel() bool {
	if t == nil || t.fired || t.canceled {
		return false
	}
	t.canceled = true
	return true
}

// Pending reports whether the task has neither fired nor been canceled.
func (t *Task) Pending() bool {
	return t != nil && !t.fired && !t.canceled
}

// Due returns the scheduler time at which the task fires.
func (t *Task) Due() time.Duration {
	return t.due
}

// Scheduler is a monotonic clock plus a min-heap of tasks ordered by due
// time, with insertion order breaking ties.
type Scheduler struct {
	now   time.Duration
	seq   uint64
	queue taskQueue
}

// New creates an empty scheduler at time zero.
func New() *Scheduler {
	return &Scheduler{}
}

// Now returns the scheduler's elapsed time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After schedules fn to run once delay has elapsed on the scheduler clock.
// A non-positive delay fires on the next Tick.
func (s *Scheduler) After(delay time.Duration, fn func()) *Task {
	if delay < 0 {
		delay = 0
	}
	s.seq++
	t := &Task{due: s.now + delay, seq: s.seq, fn: fn}
	heap.Push(&s.queue, t)
	return t
}

// Tick advances the clock by dt and runs every task that has come due, in
// due order. Tasks scheduled by a callback run in the same Tick only if they
// are already due.
func (s *Scheduler) Tick(dt time.Duration) int {
	if dt > 0 {
		s.now += dt
	}
	fired := 0
	for s.queue.Len() > 0 {
		next := s.queue[0]
		if next.due > s.now {
			break
		}
		heap.Pop(&s.queue)
		if next.canceled {
			continue
		}
		next.fired = true
		if next.fn != nil {
			next.fn()
		}
		fired++
	}
	return fired
}

// Pending returns the number of tasks that are still waiting to fire.
func (s *Scheduler) Pending() int {
	n := 0
	for _, t := range s.queue {
		if !t.canceled {
			n++
		}
	}
	return n
}

// taskQueue implements heap.Interface.
type taskQueue []*Task

func (q taskQueue) Len() int { return len(q) }

func (q taskQueue) Less(i, j int) bool {
	if q[i].due == q[j].due {
		return q[i].seq < q[j].seq
	}
	return q[i].due < q[j].due
}

func (q taskQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *taskQueue) Push(x any) {
	t := x.(*Task)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *taskQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}
