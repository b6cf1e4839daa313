package chart

import (
	"errors"
	"fmt"
	"image"
	"os"
	"runtime"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"github.com/rs/zerolog/log"
)

// Presenter shows a rendered chart and returns once the viewer is closed.
type Presenter interface {
	Present(title string, img image.Image) error
}

// RenderEnvironmentError reports that the chart could not be drawn or shown.
type RenderEnvironmentError struct {
	Op  string
	Err error
}

func (e *RenderEnvironmentError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RenderEnvironmentError) Unwrap() error { return e.Err }

var errNoDisplay = errors.New("no display available (DISPLAY and WAYLAND_DISPLAY are unset)")

// WindowPresenter opens a desktop window holding the chart image.
type WindowPresenter struct {
	AppID string
}

func NewWindowPresenter() *WindowPresenter {
	return &WindowPresenter{AppID: "com.railtracker.viewer"}
}

// Present blocks in the window event loop until the user closes the window.
func (p *WindowPresenter) Present(title string, img image.Image) (err error) {
	if err := displayAvailable(os.Getenv); err != nil {
		return &RenderEnvironmentError{Op: "open window", Err: err}
	}
	defer func() {
		if r := recover(); r != nil {
			err = &RenderEnvironmentError{Op: "open window", Err: fmt.Errorf("%v", r)}
		}
	}()

	a := app.NewWithID(p.AppID)
	w := a.NewWindow(title)

	b := img.Bounds()
	size := fyne.NewSize(float32(b.Dx()), float32(b.Dy()))
	c := canvas.NewImageFromImage(img)
	c.FillMode = canvas.ImageFillContain
	c.SetMinSize(fyne.NewSize(size.Width/2, size.Height/2))

	w.SetContent(c)
	w.Resize(size)
	w.CenterOnScreen()

	log.Debug().Str("title", title).Int("width", b.Dx()).Int("height", b.Dy()).Msg("showing chart window")
	w.ShowAndRun()
	return nil
}

// displayAvailable only checks X11/Wayland platforms; other desktops always have one.
func displayAvailable(getenv func(string) string) error {
	switch runtime.GOOS {
	case "linux", "freebsd", "openbsd", "netbsd", "dragonfly":
		if getenv("DISPLAY") == "" && getenv("WAYLAND_DISPLAY") == "" {
			return errNoDisplay
		}
	}
	return nil
}
