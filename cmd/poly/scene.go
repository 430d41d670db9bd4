package main

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/faiface/pixel"

	"github.com/supermuesli/poly"
	"github.com/supermuesli/poly/pkg/input"
	"github.com/supermuesli/poly/pkg/render"
)

const (
	imageID = "oh_yeah"
	tilt    = 0.3
	nudge   = 1.0
)

// scene draws the demo frame. Its methods run on the frame task goroutine.
type scene struct {
	canvas *render.Canvas
	img    *render.Image
	keys   *input.Tracker

	background color.Color
	offset     pixel.Vec
	frames     chan *image.RGBA

	ticks   uint64
	shots   int
	shotKey bool
}

func newScene(canvas *render.Canvas, images *render.Images, keys *input.Tracker) (*scene, error) {
	img, err := images.Lookup(imageID)
	if err != nil {
		return nil, err
	}
	return &scene{
		canvas:     canvas,
		img:        img,
		keys:       keys,
		background: render.MustColor("red"),
		frames:     make(chan *image.RGBA, 1),
	}, nil
}

// move applies the arrow keys to the image offset.
func (s *scene) move() {
	var d pixel.Vec
	if s.keys.Pressed(input.KeyArrowLeft) {
		d.X -= nudge
	}
	if s.keys.Pressed(input.KeyArrowRight) {
		d.X += nudge
	}
	if s.keys.Pressed(input.KeyArrowUp) {
		d.Y -= nudge
	}
	if s.keys.Pressed(input.KeyArrowDown) {
		d.Y += nudge
	}
	s.offset = s.offset.Add(d)
}

func (s *scene) draw() {
	c := s.canvas
	c.BeginDraw()
	c.Clear(s.background)
	c.DrawRotatedImage(s.img, 47+s.offset.X, 7+s.offset.Y, 225, 225, tilt)
	c.DrawRotatedImage(s.img, 100+s.offset.X, 7+s.offset.Y, 225, 225, -tilt)
	c.Text(fmt.Sprintf("%d", s.ticks), 4, 14, color.White)
}

// screenshot saves the surface once per press of p.
func (s *scene) screenshot() error {
	down := s.keys.Pressed(input.KeyP)
	pressed := down && !s.shotKey
	s.shotKey = down
	if !pressed {
		return nil
	}
	s.shots++
	name := fmt.Sprintf("poly-%06d.png", s.shots)
	if err := s.canvas.SavePNG(name); err != nil {
		return err
	}
	poly.Logger().Info("saved screenshot", "file", name)
	return nil
}

// frame is the loop callback: update, draw, hand the composed frame to the
// window, dropping one it has not picked up yet.
func (s *scene) frame() error {
	s.ticks++
	s.move()
	s.draw()
	if err := s.screenshot(); err != nil {
		return err
	}

	img := s.canvas.Compose()
	select {
	case <-s.frames:
	default:
	}
	s.frames <- img
	return nil
}

// ohYeah is the built-in picture: a yellow face on a transparent ground.
func ohYeah(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	r := float64(size) / 2
	center := pixel.V(r, r)
	yellow := color.RGBA{R: 0xff, G: 0xd7, B: 0x00, A: 0xff}
	dark := color.RGBA{R: 0x40, G: 0x20, B: 0x00, A: 0xff}
	eyeL := pixel.V(r*0.65, r*0.7)
	eyeR := pixel.V(r*1.35, r*0.7)

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			p := pixel.V(float64(x)+0.5, float64(y)+0.5)
			d := p.Sub(center).Len()
			switch {
			case d > r:
				continue
			case d > r*0.92:
				img.Set(x, y, dark)
			case p.Sub(eyeL).Len() < r*0.12 || p.Sub(eyeR).Len() < r*0.12:
				img.Set(x, y, dark)
			case d > r*0.5 && d < r*0.62 && p.Y > center.Y+r*0.15 && math.Abs(p.X-center.X) < r*0.5:
				img.Set(x, y, dark)
			default:
				img.Set(x, y, yellow)
			}
		}
	}
	return img
}
