package session

import "github.com/ErnestoTSantos/Topografia/internal/geom"

// Overlay is one rendered geometry layer: a plant's features plus the popup
// text attached to each of them.
type Overlay struct {
	Plant  string
	Data   geom.Collection
	Popups []string
}

// Session holds the client's per-run state: the identifier of the last plant
// the backend accepted, and the single overlay currently on the map. At any
// time there is zero or one overlay.
type Session struct {
	plantID string
	overlay *Overlay
}

func New() *Session { return &Session{} }

// CurrentPlant returns the last accepted plant id, or "" when none was
// uploaded yet.
func (s *Session) CurrentPlant() string { return s.plantID }

func (s *Session) SetCurrentPlant(id string) { s.plantID = id }

// Overlay returns the overlay currently on the map, or nil.
func (s *Session) Overlay() *Overlay { return s.overlay }

// SwapOverlay removes the current overlay and installs the new one, returning
// whatever was displayed before. Removing when nothing is displayed is a
// no-op.
func (s *Session) SwapOverlay(o *Overlay) (prev *Overlay) {
	prev = s.overlay
	s.overlay = o
	return prev
}
