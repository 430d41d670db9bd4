package input

import "sync"

// Event is a single key transition.
type Event struct {
	Key  Key
	Down bool
}

// Tracker holds the pressed state of every recognised key. All keys start
// released. It is safe for concurrent use: the window thread writes while
// the frame task reads.
type Tracker struct {
	mu      sync.RWMutex
	pressed [keyCount]bool
}

// NewTracker returns a Tracker with every key released.
func NewTracker() *Tracker {
	return &Tracker{}
}

// KeyDown marks k as pressed. Auto-repeat calls are harmless.
func (t *Tracker) KeyDown(k Key) {
	t.set(k, true)
}

// KeyUp marks k as released.
func (t *Tracker) KeyUp(k Key) {
	t.set(k, false)
}

// Apply records e.
func (t *Tracker) Apply(e Event) {
	t.set(e.Key, e.Down)
}

// HandleName records a transition for a key given by name.
func (t *Tracker) HandleName(name string, down bool) error {
	k, err := ParseKey(name)
	if err != nil {
		return err
	}
	t.set(k, down)
	return nil
}

func (t *Tracker) set(k Key, down bool) {
	if !k.Valid() {
		return
	}
	t.mu.Lock()
	t.pressed[k] = down
	t.mu.Unlock()
}

// Pressed reports whether k is held. Unknown keys are never pressed.
func (t *Tracker) Pressed(k Key) bool {
	if !k.Valid() {
		return false
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.pressed[k]
}

// PressedKeys returns the held keys in declaration order.
func (t *Tracker) PressedKeys() []Key {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var keys []Key
	for k := KeyA; k < keyCount; k++ {
		if t.pressed[k] {
			keys = append(keys, k)
		}
	}
	return keys
}

// Reset releases every key, e.g. after the window loses focus.
func (t *Tracker) Reset() {
	t.mu.Lock()
	t.pressed = [keyCount]bool{}
	t.mu.Unlock()
}
