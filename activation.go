package piemenu

// ActivationState is the process-wide record of which menu is open.
// It is always read and written as a whole.
type ActivationState struct {
	Owner         Token  // Controller owning the menu, or NoToken
	Active        bool   // Whether the owner's menu is open
	HoveredAction string // ID of the hovered action, "" for none
}

// ActiveFor reports whether token owns the open menu.
func (s ActivationState) ActiveFor(token Token) bool {
	return s.Active && s.Owner == token && token != NoToken
}

// ActivationListener is notified after every change to the store.
type ActivationListener func(prev, next ActivationState)

// ActivationStore holds the single ActivationState shared by every
// controller of an application. At most one token is active at a time.
//
// Like the rest of the package, the store belongs to the UI goroutine.
// Listeners run synchronously after the state has been fully written, so a
// listener never observes a partial update.
type ActivationStore struct {
	state     ActivationState
	listeners map[uint64]ActivationListener
	order     []uint64
	nextID    uint64
}

// NewActivationStore creates an empty store.
func NewActivationStore() *ActivationStore {
	return &ActivationStore{
		listeners: make(map[uint64]ActivationListener),
	}
}

// State returns a snapshot of the current state.
func (s *ActivationStore) State() ActivationState {
	return s.state
}

// Activate makes token the active owner, replacing any other owner in the
// same write.
func (s *ActivationStore) Activate(token Token) {
	if token == NoToken {
		return
	}
	s.set(ActivationState{Owner: token, Active: true})
}

// Deactivate closes token's menu. The owner is kept so controllers can
// observe the falling edge. It does nothing if token is not the owner.
func (s *ActivationStore) Deactivate(token Token) {
	if s.state.Owner != token || !s.state.Active {
		return
	}
	s.set(ActivationState{Owner: token})
}

// SetHovered records the hovered action of token's open menu.
func (s *ActivationStore) SetHovered(token Token, actionID string) {
	if !s.state.ActiveFor(token) || s.state.HoveredAction == actionID {
		return
	}
	next := s.state
	next.HoveredAction = actionID
	s.set(next)
}

// Release clears the record if token owns it. Controllers call it on
// teardown so the store never refers to a dead token.
func (s *ActivationStore) Release(token Token) {
	if token == NoToken || s.state.Owner != token {
		return
	}
	s.set(ActivationState{})
}

// Subscribe registers l and returns a function that unregisters it.
func (s *ActivationStore) Subscribe(l ActivationListener) (unsubscribe func()) {
	s.nextID++
	id := s.nextID
	s.listeners[id] = l
	s.order = append(s.order, id)
	return func() {
		if _, ok := s.listeners[id]; !ok {
			return
		}
		delete(s.listeners, id)
		for i, o := range s.order {
			if o == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
}

func (s *ActivationStore) set(next ActivationState) {
	prev := s.state
	if prev == next {
		return
	}
	s.state = next
	if verbose() {
		defaultLogger.Debug("activation changed",
			"owner", next.Owner, "active", next.Active, "hovered", next.HoveredAction)
	}

	// Listeners may subscribe, unsubscribe or write again while notified.
	ids := append([]uint64(nil), s.order...)
	for _, id := range ids {
		if l, ok := s.listeners[id]; ok {
			l(prev, next)
		}
	}
}
