package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/kbinani/screenshot"
	"golang.org/x/sync/errgroup"

	"github.com/supermuesli/poly"
	"github.com/supermuesli/poly/pkg/input"
	"github.com/supermuesli/poly/pkg/loop"
	"github.com/supermuesli/poly/pkg/render"
	"github.com/supermuesli/poly/pkg/window"
)

const (
	surfaceWidth  = 320
	surfaceHeight = 240
)

var (
	interval = flag.Duration("interval", 10*time.Millisecond, "time between redraws")
	imageArg = flag.String("image", "", "picture to draw instead of the built-in one")
	scaleArg = flag.Float64("scale", 0, "window pixels per surface pixel, 0 fits the display")
	verbose  = flag.Bool("v", false, "log to stderr")
)

// displayScale picks the largest whole scale that keeps the window within
// 90% of the primary display.
func displayScale(width, height int) float64 {
	if screenshot.NumActiveDisplays() == 0 {
		return 1
	}
	bounds := screenshot.GetDisplayBounds(0)
	return fitScale(bounds.Dx(), bounds.Dy(), width, height)
}

func fitScale(displayW, displayH, width, height int) float64 {
	s := math.Min(
		float64(displayW)*0.9/float64(width),
		float64(displayH)*0.9/float64(height),
	)
	return math.Max(1, math.Floor(s))
}

func loadImages(path string) (*render.Images, error) {
	if path == "" {
		images := render.NewImages(nil)
		images.Register(imageID, ohYeah(64))
		return images, nil
	}
	images := render.NewImages(render.DirAssets(filepath.Dir(path)))
	img, err := images.Lookup(filepath.Base(path))
	if err != nil {
		return nil, err
	}
	images.Register(imageID, img.Source())
	return images, nil
}

func run() error {
	style := render.Style{
		BorderWidth:  5,
		CornerRadius: 7,
		BorderColor:  render.MustColor("gray"),
		Filter:       render.FilterSmooth,
	}
	canvas, err := render.NewCanvas(surfaceWidth, surfaceHeight,
		render.WithSmoothing(true),
		render.WithStyle(style),
	)
	if err != nil {
		return err
	}
	images, err := loadImages(*imageArg)
	if err != nil {
		return err
	}

	scale := *scaleArg
	if scale == 0 {
		scale = displayScale(surfaceWidth+2*style.Inset(), surfaceHeight+2*style.Inset())
	}

	keys := input.NewTracker()
	win, err := window.New(window.Config{
		Title:  "poly",
		Width:  surfaceWidth,
		Height: surfaceHeight,
		Scale:  scale,
		VSync:  true,
		Style:  style,
	}, keys)
	if err != nil {
		return err
	}
	defer win.Destroy()

	s, err := newScene(canvas, images, keys)
	if err != nil {
		return err
	}

	last := canvas.Compose()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	task, err := loop.Every(ctx, *interval, s.frame, loop.WithName("frame"))
	if err != nil {
		return err
	}
	g.Go(task.Wait)
	g.Go(func() error {
		report(ctx, task)
		return nil
	})

	// the window has to be driven from the main thread; the frame task only
	// hands over finished frames
	fallback := time.NewTicker(100 * time.Millisecond)
	defer fallback.Stop()
	for !win.Closed() {
		select {
		case img := <-s.frames:
			last = img
		case <-fallback.C:
		case <-ctx.Done():
			win.Close()
		}
		if *verbose {
			win.SetStatus(fmt.Sprintf("ticks %d  missed %d", task.Ticks(), task.Missed()))
		}
		win.Present(last)
		for _, e := range win.Poll() {
			if e.Key == input.KeyEscape && e.Down {
				win.Close()
			}
		}
	}

	cancel()
	task.Stop()
	return g.Wait()
}

// report logs scheduler counters once a second until ctx ends.
func report(ctx context.Context, task *loop.Task) {
	t := time.NewTicker(time.Second)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			poly.Logger().Debug("frame stats", "ticks", task.Ticks(), "missed", task.Missed(), "faults", task.Faults())
		}
	}
}

func main() {
	flag.Parse()
	if *verbose {
		poly.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	var err error
	window.Run(func() {
		err = run()
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "poly:", err)
		os.Exit(1)
	}
}
