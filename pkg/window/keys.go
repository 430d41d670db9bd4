package window

import (
	"github.com/faiface/pixel/pixelgl"

	"github.com/supermuesli/poly/pkg/input"
)

// buttons is the part of *pixelgl.Window that Poll reads.
type buttons interface {
	Pressed(pixelgl.Button) bool
	JustPressed(pixelgl.Button) bool
	JustReleased(pixelgl.Button) bool
}

type binding struct {
	key     input.Key
	buttons []pixelgl.Button
}

var bindings = buildBindings()

func buildBindings() []binding {
	var bs []binding
	// GLFW key codes for letters and digits are their ASCII codes.
	for k := input.KeyA; k <= input.KeyZ; k++ {
		bs = append(bs, binding{k, []pixelgl.Button{pixelgl.KeyA + pixelgl.Button(k-input.KeyA)}})
	}
	for k := input.Key0; k <= input.Key9; k++ {
		bs = append(bs, binding{k, []pixelgl.Button{pixelgl.Key0 + pixelgl.Button(k-input.Key0)}})
	}
	return append(bs,
		binding{input.KeySpace, []pixelgl.Button{pixelgl.KeySpace}},
		binding{input.KeyEnter, []pixelgl.Button{pixelgl.KeyEnter, pixelgl.KeyKPEnter}},
		binding{input.KeyEscape, []pixelgl.Button{pixelgl.KeyEscape}},
		binding{input.KeyTab, []pixelgl.Button{pixelgl.KeyTab}},
		binding{input.KeyBackspace, []pixelgl.Button{pixelgl.KeyBackspace}},
		binding{input.KeyArrowUp, []pixelgl.Button{pixelgl.KeyUp}},
		binding{input.KeyArrowDown, []pixelgl.Button{pixelgl.KeyDown}},
		binding{input.KeyArrowLeft, []pixelgl.Button{pixelgl.KeyLeft}},
		binding{input.KeyArrowRight, []pixelgl.Button{pixelgl.KeyRight}},
		binding{input.KeyShift, []pixelgl.Button{pixelgl.KeyLeftShift, pixelgl.KeyRightShift}},
		binding{input.KeyControl, []pixelgl.Button{pixelgl.KeyLeftControl, pixelgl.KeyRightControl}},
		binding{input.KeyAlt, []pixelgl.Button{pixelgl.KeyLeftAlt, pixelgl.KeyRightAlt}},
	)
}

// pollKeys turns button transitions since the last update into tracker
// events. A key bound to several buttons (left and right shift) stays down
// while any of them is held.
func pollKeys(src buttons, t *input.Tracker) []input.Event {
	var events []input.Event
	for _, b := range bindings {
		changed := false
		for _, btn := range b.buttons {
			if src.JustPressed(btn) || src.JustReleased(btn) {
				changed = true
				break
			}
		}
		if !changed {
			continue
		}
		down := false
		for _, btn := range b.buttons {
			if src.Pressed(btn) {
				down = true
				break
			}
		}
		e := input.Event{Key: b.key, Down: down}
		t.Apply(e)
		events = append(events, e)
	}
	return events
}
