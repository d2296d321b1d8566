package power

// State tracks which powers the ship has obtained and which are currently
// empowered. Obtained is monotonic; empowered only ever holds timed kinds.
type State struct {
	obtained  Set
	empowered Set
}

// Obtain marks k as obtained. It returns false if k was already obtained.
func (s *State) Obtain(k Kind) bool {
	if !k.Valid() || s.obtained.Has(k) {
		return false
	}
	s.obtained = s.obtained.With(k)
	return true
}

// Obtained reports whether k has been picked up.
func (s *State) Obtained(k Kind) bool {
	return s.obtained.Has(k)
}

// Empowered reports whether k's timed effect is currently running.
func (s *State) Empowered(k Kind) bool {
	return s.empowered.Has(k)
}

// CanActivate reports whether k may enter the empowered set:
// it must be timed, obtained and not already empowered.
func (s *State) CanActivate(k Kind) bool {
	return k.Timed() && s.obtained.Has(k) && !s.empowered.Has(k)
}

// Begin moves k into the empowered set if CanActivate allows it.
func (s *State) Begin(k Kind) bool {
	if !s.CanActivate(k) {
		return false
	}
	s.empowered = s.empowered.With(k)
	return true
}

// End removes k from the empowered set. It returns false if k was not empowered.
func (s *State) End(k Kind) bool {
	if !s.empowered.Has(k) {
		return false
	}
	s.empowered = s.empowered.Without(k)
	return true
}

// ObtainedSet returns a copy of the obtained set.
func (s State) ObtainedSet() Set { return s.obtained }

// EmpoweredSet returns a copy of the empowered set.
func (s State) EmpoweredSet() Set { return s.empowered }
