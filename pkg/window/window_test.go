package window

import (
	"image"
	"image/color"
	"reflect"
	"testing"

	"github.com/faiface/pixel"
	"github.com/faiface/pixel/pixelgl"

	"github.com/supermuesli/poly/pkg/input"
	"github.com/supermuesli/poly/pkg/render"
)

type fakeButtons struct {
	held, pressed, released map[pixelgl.Button]bool
}

func newFakeButtons() *fakeButtons {
	return &fakeButtons{
		held:     map[pixelgl.Button]bool{},
		pressed:  map[pixelgl.Button]bool{},
		released: map[pixelgl.Button]bool{},
	}
}

func (f *fakeButtons) Pressed(b pixelgl.Button) bool      { return f.held[b] }
func (f *fakeButtons) JustPressed(b pixelgl.Button) bool  { return f.pressed[b] }
func (f *fakeButtons) JustReleased(b pixelgl.Button) bool { return f.released[b] }

func (f *fakeButtons) down(b pixelgl.Button) { f.held[b], f.pressed[b] = true, true }
func (f *fakeButtons) up(b pixelgl.Button)   { f.held[b], f.released[b] = false, true }
func (f *fakeButtons) frame() {
	f.pressed = map[pixelgl.Button]bool{}
	f.released = map[pixelgl.Button]bool{}
}

func TestBindingsCoverEveryKey(t *testing.T) {
	seen := map[input.Key]bool{}
	for _, b := range bindings {
		if seen[b.key] {
			t.Errorf("%v bound twice", b.key)
		}
		seen[b.key] = true
	}
	for _, k := range input.Keys() {
		if !seen[k] {
			t.Errorf("%v has no button binding", k)
		}
	}
}

func TestBindingsLettersAndDigits(t *testing.T) {
	want := map[input.Key]pixelgl.Button{
		input.KeyA: pixelgl.KeyA,
		input.KeyM: pixelgl.KeyM,
		input.KeyZ: pixelgl.KeyZ,
		input.Key0: pixelgl.Key0,
		input.Key9: pixelgl.Key9,
	}
	for _, b := range bindings {
		if btn, ok := want[b.key]; ok && b.buttons[0] != btn {
			t.Errorf("%v bound to %v, want %v", b.key, b.buttons[0], btn)
		}
	}
}

func TestPollKeys(t *testing.T) {
	src := newFakeButtons()
	keys := input.NewTracker()

	src.down(pixelgl.KeyLeft)
	src.down(pixelgl.KeyA)
	events := pollKeys(src, keys)
	want := []input.Event{{Key: input.KeyA, Down: true}, {Key: input.KeyArrowLeft, Down: true}}
	if !reflect.DeepEqual(events, want) {
		t.Errorf("events = %v, want %v", events, want)
	}
	if !keys.Pressed(input.KeyA) || !keys.Pressed(input.KeyArrowLeft) {
		t.Error("pressed keys not recorded")
	}

	src.frame()
	if events := pollKeys(src, keys); len(events) != 0 {
		t.Errorf("no transitions, got %v", events)
	}

	src.up(pixelgl.KeyA)
	pollKeys(src, keys)
	if keys.Pressed(input.KeyA) {
		t.Error("released key still pressed")
	}
	if !keys.Pressed(input.KeyArrowLeft) {
		t.Error("held key released")
	}
}

func TestPollKeysSharedBinding(t *testing.T) {
	src := newFakeButtons()
	keys := input.NewTracker()

	src.down(pixelgl.KeyLeftShift)
	src.down(pixelgl.KeyRightShift)
	pollKeys(src, keys)

	src.frame()
	src.up(pixelgl.KeyLeftShift)
	pollKeys(src, keys)
	if !keys.Pressed(input.KeyShift) {
		t.Error("shift released while right shift is still held")
	}

	src.frame()
	src.up(pixelgl.KeyRightShift)
	pollKeys(src, keys)
	if keys.Pressed(input.KeyShift) {
		t.Error("shift still pressed after both buttons released")
	}
}

func TestFrameBounds(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want pixel.Rect
	}{
		{"plain", Config{Width: 320, Height: 240}, pixel.R(0, 0, 320, 240)},
		{"scaled", Config{Width: 320, Height: 240, Scale: 2}, pixel.R(0, 0, 640, 480)},
		{"border", Config{Width: 320, Height: 240, Scale: 2, Style: render.Style{BorderWidth: 5}}, pixel.R(0, 0, 660, 500)},
	}
	for _, tt := range tests {
		if got := frameBounds(tt.cfg); got != tt.want {
			t.Errorf("%s: frameBounds() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestFlipRows(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 3))
	img.Set(0, 0, color.RGBA{1, 0, 0, 255})
	img.Set(1, 2, color.RGBA{9, 0, 0, 255})

	got := flipRows(nil, img)
	if len(got) != 2*3*4 {
		t.Fatalf("len = %d, want 24", len(got))
	}
	// top-left moves to the last row, bottom-right to the first
	if got[4*(2*2+0)] != 1 {
		t.Errorf("top-left pixel not in last row: %v", got)
	}
	if got[4*1] != 9 {
		t.Errorf("bottom-right pixel not in first row: %v", got)
	}

	reused := flipRows(got, img)
	if &reused[0] != &got[0] {
		t.Error("flipRows should reuse a large enough buffer")
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	if _, err := New(Config{Width: 0, Height: 10}, nil); err == nil {
		t.Error("zero width accepted")
	}
	if _, err := New(Config{Width: 10, Height: 10, Scale: -1}, nil); err == nil {
		t.Error("negative scale accepted")
	}
}
