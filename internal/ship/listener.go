package ship

import "github.com/tomz197/shadestep/internal/power"

// Listener observes ship transitions. Calls happen on the match goroutine,
// after the state change they describe.
type Listener interface {
	OnObtain(k power.Kind)
	OnActivate(k power.Kind)
	OnDeactivate(k power.Kind)
	OnFire()
	OnDeath()
	OnWin()
}

// Listeners fans every event out to each listener in order. Nil entries are
// skipped.
type Listeners []Listener

var _ Listener = Listeners(nil)

func (ls Listeners) OnObtain(k power.Kind) {
	for _, l := range ls {
		if l != nil {
			l.OnObtain(k)
		}
	}
}

func (ls Listeners) OnActivate(k power.Kind) {
	for _, l := range ls {
		if l != nil {
			l.OnActivate(k)
		}
	}
}

func (ls Listeners) OnDeactivate(k power.Kind) {
	for _, l := range ls {
		if l != nil {
			l.OnDeactivate(k)
		}
	}
}

func (ls Listeners) OnFire() {
	for _, l := range ls {
		if l != nil {
			l.OnFire()
		}
	}
}

func (ls Listeners) OnDeath() {
	for _, l := range ls {
		if l != nil {
			l.OnDeath()
		}
	}
}

func (ls Listeners) OnWin() {
	for _, l := range ls {
		if l != nil {
			l.OnWin()
		}
	}
}

// ListenerFuncs adapts optional functions to a Listener.
type ListenerFuncs struct {
	Obtain     func(k power.Kind)
	Activate   func(k power.Kind)
	Deactivate func(k power.Kind)
	Fire       func()
	Death      func()
	Win        func()
}

var _ Listener = ListenerFuncs{}

func (f ListenerFuncs) OnObtain(k power.Kind) {
	if f.Obtain != nil {
		f.Obtain(k)
	}
}

func (f ListenerFuncs) OnActivate(k power.Kind) {
	if f.Activate != nil {
		f.Activate(k)
	}
}

func (f ListenerFuncs) OnDeactivate(k power.Kind) {
	if f.Deactivate != nil {
		f.Deactivate(k)
	}
}

func (f ListenerFuncs) OnFire() {
	if f.Fire != nil {
		f.Fire()
	}
}

func (f ListenerFuncs) OnDeath() {
	if f.Death != nil {
		f.Death()
	}
}

func (f ListenerFuncs) OnWin() {
	if f.Win != nil {
		f.Win()
	}
}
