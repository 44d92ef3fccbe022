// Package host adapts an embedding environment (a terminal, a window, a
// headless recorder) to the scene through three messages.
package host

import "github.com/san-kum/lorenzglow/internal/render"

// Message is implemented only by the types in this package.
type Message interface {
	hostMessage()
}

// Resize reports new surface dimensions in pixels.
type Resize struct {
	Width, Height int
}

// SetBackground changes the color painted under every frame. Color is a
// "#rgb" or "#rrggbb" string.
type SetBackground struct {
	Color string
}

// BindSurface hands the adapter the surface to draw on and starts the loop.
type BindSurface struct {
	Surface render.Surface
}

func (Resize) hostMessage()        {}
func (SetBackground) hostMessage() {}
func (BindSurface) hostMessage()   {}
