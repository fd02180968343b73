package viz

import "github.com/san-kum/boxdrop/internal/scene"

// Terminal is the terminal viewport, measured in character cells.
type Terminal struct {
	id            string
	width, height int
}

func (t *Terminal) ID() string       { return t.id }
func (t *Terminal) Size() (int, int) { return t.width, t.height }

// Document exposes a single terminal surface under a fixed id.
type Document struct {
	term *Terminal
}

func NewDocument(id string, width, height int) *Document {
	return &Document{term: &Terminal{id: id, width: width, height: height}}
}

func (d *Document) Lookup(id string) scene.Surface {
	if d.term == nil || d.term.id != id {
		return nil
	}
	return d.term
}
