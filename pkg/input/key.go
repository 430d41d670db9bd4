// Package input tracks which keyboard keys are currently held.
package input

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKey is returned when a key name has no Key value.
var ErrUnknownKey = errors.New("input: unknown key")

// Key identifies a recognised keyboard key.
type Key int

// Recognised keys. KeyUnknown is never tracked.
const (
	KeyUnknown Key = iota

	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ

	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9

	KeySpace
	KeyEnter
	KeyEscape
	KeyTab
	KeyBackspace
	KeyArrowUp
	KeyArrowDown
	KeyArrowLeft
	KeyArrowRight
	KeyShift
	KeyControl
	KeyAlt

	keyCount
)

var keyNames = [keyCount]string{
	KeyUnknown:    "Unknown",
	KeySpace:      "Space",
	KeyEnter:      "Enter",
	KeyEscape:     "Escape",
	KeyTab:        "Tab",
	KeyBackspace:  "Backspace",
	KeyArrowUp:    "ArrowUp",
	KeyArrowDown:  "ArrowDown",
	KeyArrowLeft:  "ArrowLeft",
	KeyArrowRight: "ArrowRight",
	KeyShift:      "Shift",
	KeyControl:    "Control",
	KeyAlt:        "Alt",
}

// aliases maps lower-cased alternative spellings to keys.
var aliases = map[string]Key{
	" ":      KeySpace,
	"return": KeyEnter,
	"esc":    KeyEscape,
	"up":     KeyArrowUp,
	"down":   KeyArrowDown,
	"left":   KeyArrowLeft,
	"right":  KeyArrowRight,
	"ctrl":   KeyControl,
}

var byName = make(map[string]Key, int(keyCount)+len(aliases))

func init() {
	for k := KeyA; k <= KeyZ; k++ {
		keyNames[k] = string(rune('a' + int(k-KeyA)))
	}
	for k := Key0; k <= Key9; k++ {
		keyNames[k] = string(rune('0' + int(k-Key0)))
	}
	for k := KeyA; k < keyCount; k++ {
		byName[strings.ToLower(keyNames[k])] = k
	}
	for name, k := range aliases {
		byName[name] = k
	}
}

// String returns the canonical key name: "a".."z", "0".."9", or names such
// as "Space" and "ArrowLeft".
func (k Key) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Key(%d)", int(k))
	}
	return keyNames[k]
}

// Valid reports whether k is a tracked key.
func (k Key) Valid() bool {
	return k > KeyUnknown && k < keyCount
}

// ParseKey resolves a key name. Matching is case-insensitive, and the
// spellings browsers put in KeyboardEvent.key (" ", "A", "ArrowUp") are
// accepted along with the canonical names.
func ParseKey(name string) (Key, error) {
	if k, ok := byName[strings.ToLower(name)]; ok {
		return k, nil
	}
	return KeyUnknown, fmt.Errorf("%w: %q", ErrUnknownKey, name)
}

// Keys returns every tracked key in declaration order.
func Keys() []Key {
	keys := make([]Key, 0, keyCount-1)
	for k := KeyA; k < keyCount; k++ {
		keys = append(keys, k)
	}
	return keys
}
