package render

import (
	"image"
	"image/gif"
	"image/png"
	"os"
)

func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// GIFRecorder collects frames for an animated GIF.
type GIFRecorder struct {
	// Delay between frames in hundredths of a second.
	Delay  int
	frames []*image.Paletted
}

func NewGIFRecorder(delay int) *GIFRecorder {
	if delay < 1 {
		delay = 1
	}
	return &GIFRecorder{Delay: delay}
}

func (r *GIFRecorder) Add(img *image.Paletted) {
	r.frames = append(r.frames, img)
}

func (r *GIFRecorder) Len() int { return len(r.frames) }

func (r *GIFRecorder) Reset() { r.frames = nil }

// Save writes the collected frames to path. It does nothing when no frame
// was added.
func (r *GIFRecorder) Save(path string) error {
	if len(r.frames) == 0 {
		return nil
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range r.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, r.Delay)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := gif.EncodeAll(f, &anim); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
