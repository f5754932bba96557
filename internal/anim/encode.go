package anim

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"os"

	"github.com/icza/mjpeg"
)

const jpegQuality = 90

// videoTag wraps a base64 MJPEG payload for notebook-style inline
// display.
const videoTag = `<video controls>
  <source src="data:video/avi;base64,%s" type="video/avi">
  Your browser does not support the video tag.
</video>
`

// SaveAVI encodes every retained frame as JPEG into an MJPEG AVI
// container at path.
func (a *Animation) SaveAVI(path string) error {
	first, err := a.RenderFrame(0)
	if err != nil {
		return err
	}
	bounds := first.Bounds()

	aw, err := mjpeg.New(path, int32(bounds.Dx()), int32(bounds.Dy()), int32(a.fps))
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	addFrame := func(frame int, img image.Image) error {
		buf.Reset()
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
			return err
		}
		if err := aw.AddFrame(buf.Bytes()); err != nil {
			return err
		}
		a.progress(frame)
		return nil
	}

	if err := addFrame(0, first); err != nil {
		aw.Close()
		return err
	}
	for frame := 1; frame < a.Frames(); frame++ {
		img, err := a.RenderFrame(frame)
		if err != nil {
			aw.Close()
			return err
		}
		if err := addFrame(frame, img); err != nil {
			aw.Close()
			return err
		}
	}

	return aw.Close()
}

// SaveGIF encodes the animation as an endlessly looping animated GIF.
func (a *Animation) SaveGIF(path string) error {
	delay := (100 + a.fps/2) / a.fps // nearest whole centisecond
	if delay < 2 {
		delay = 2 // GIF delay floor most decoders honor
	}

	out := &gif.GIF{LoopCount: 0}
	for frame := 0; frame < a.Frames(); frame++ {
		img, err := a.RenderFrame(frame)
		if err != nil {
			return err
		}
		pal := image.NewPaletted(img.Bounds(), palette.Plan9)
		draw.FloydSteinberg.Draw(pal, img.Bounds(), img, image.Point{})
		out.Image = append(out.Image, pal)
		out.Delay = append(out.Delay, delay)
		a.progress(frame)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gif.EncodeAll(f, out)
}

// InlineHTML encodes the animation through a scoped temporary AVI and
// returns an embeddable video tag with the base64 payload. The
// temporary file is removed on every exit path.
func (a *Animation) InlineHTML() (string, error) {
	tmp, err := os.CreateTemp("", "prism-*.avi")
	if err != nil {
		return "", err
	}
	name := tmp.Name()
	tmp.Close()
	defer os.Remove(name)

	if err := a.SaveAVI(name); err != nil {
		return "", err
	}

	video, err := os.ReadFile(name)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(videoTag, base64.StdEncoding.EncodeToString(video)), nil
}

// SaveHTML writes a standalone document embedding the animation.
func (a *Animation) SaveHTML(path string) error {
	tag, err := a.InlineHTML()
	if err != nil {
		return err
	}
	doc := fmt.Sprintf("<!DOCTYPE html>\n<html><body>\n%s</body></html>\n", tag)
	return os.WriteFile(path, []byte(doc), 0644)
}
