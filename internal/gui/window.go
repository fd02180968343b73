package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/boxdrop/internal/scene"
)

// Window is the raylib window surface.
type Window struct {
	id string
}

func (w *Window) ID() string { return w.id }

func (w *Window) Size() (int, int) {
	return rl.GetScreenWidth(), rl.GetScreenHeight()
}

// Document owns the single raylib window.
type Document struct {
	win *Window
}

// OpenDocument opens a resizable window and exposes it under id.
func OpenDocument(id string, width, height int, title string) *Document {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(width), int32(height), title)
	rl.SetExitKey(0)
	if !rl.IsWindowReady() {
		return &Document{}
	}
	return &Document{win: &Window{id: id}}
}

func (d *Document) Lookup(id string) scene.Surface {
	if d.win == nil || d.win.id != id {
		return nil
	}
	return d.win
}

func (d *Document) Close() {
	if d.win != nil {
		rl.CloseWindow()
		d.win = nil
	}
}
