// Package anim drives a corner grid through a (possibly thinned)
// sequence of timesteps and encodes the result as a video, animated
// GIF, or inline HTML preview.
package anim

import (
	"fmt"
	"image"
	"math"
	"path/filepath"
	"strings"

	"github.com/bfarr/prism/internal/corner"
	"github.com/bfarr/prism/internal/cube"
)

// Options control frame pacing and thinning.
type Options struct {
	// FPS is the playback frame rate.
	FPS int
	// RoughLength is the requested animation duration in seconds.
	// The actual duration is retained frames / FPS, which may differ
	// when the chain is short or the numbers don't divide evenly.
	RoughLength float64
	// SampsPerFrame is the nominal number of sampler timesteps each
	// rendered frame represents; it is scaled up by the thin factor.
	SampsPerFrame int
}

func DefaultOptions() Options {
	return Options{FPS: 30, RoughLength: 10.0, SampsPerFrame: 10}
}

// ThinFactor computes the frame-thinning stride for a chain of the
// given length: floor(floor(frames/roughLength) / fps). A result of 1
// or less means no thinning.
func ThinFactor(frames, fps int, roughLength float64) int {
	if fps <= 0 || roughLength <= 0 {
		return 1
	}
	return int(math.Floor(float64(frames)/roughLength)) / fps
}

// Animation owns a thinned cube and the grid it mutates. Frames are
// rendered on demand in whatever order the caller asks for.
type Animation struct {
	grid          *corner.Grid
	cube          *cube.SampleCube
	fps           int
	thin          int
	sampsPerFrame int

	// Progress, if set, is called after each frame is encoded.
	Progress func(frame, total int)
}

// New thins the cube per the options and binds it to the grid. The
// grid must have been built from the same (unthinned) cube so its
// extents cover every retained frame.
func New(c *cube.SampleCube, grid *corner.Grid, opts Options) (*Animation, error) {
	if opts.FPS <= 0 {
		return nil, fmt.Errorf("fps must be positive, got %d", opts.FPS)
	}
	if opts.SampsPerFrame <= 0 {
		opts.SampsPerFrame = 1
	}

	thin := ThinFactor(c.Steps(), opts.FPS, opts.RoughLength)
	samps := opts.SampsPerFrame
	if thin > 1 {
		c = c.Thin(thin)
		samps *= thin
	} else {
		thin = 1
	}

	return &Animation{
		grid:          grid,
		cube:          c,
		fps:           opts.FPS,
		thin:          thin,
		sampsPerFrame: samps,
	}, nil
}

// Frames is the retained frame count.
func (a *Animation) Frames() int { return a.cube.Steps() }

// ThinFactor is the applied stride (1 when no thinning occurred).
func (a *Animation) ThinFactor() int { return a.thin }

// FPS is the playback frame rate.
func (a *Animation) FPS() int { return a.fps }

// Duration is the resulting animation length in seconds.
func (a *Animation) Duration() float64 {
	return float64(a.Frames()) / float64(a.fps)
}

// SamplesPerSecond is the sampler throughput the animation depicts.
func (a *Animation) SamplesPerSecond() int {
	return a.fps * a.sampsPerFrame
}

// RenderFrame updates the grid to the given retained frame and
// rasterizes it.
func (a *Animation) RenderFrame(frame int) (image.Image, error) {
	if err := a.grid.Update(frame, a.cube); err != nil {
		return nil, err
	}
	return a.grid.Render()
}

// Save encodes the animation to path, dispatching on the extension:
// .avi for MJPEG video, .gif for animated GIF, .html for an inline
// preview document.
func (a *Animation) Save(path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".avi":
		return a.SaveAVI(path)
	case ".gif":
		return a.SaveGIF(path)
	case ".html":
		return a.SaveHTML(path)
	default:
		return fmt.Errorf("unsupported output format %q (want .avi, .gif, or .html)", filepath.Ext(path))
	}
}

func (a *Animation) progress(frame int) {
	if a.Progress != nil {
		a.Progress(frame, a.Frames())
	}
}
