package radar

import "fmt"

const (
	// DefaultMaxRings is the number of concentric bands the layout allocates.
	DefaultMaxRings = 4

	// MaxQuadrants is the number of angular sectors in the layout.
	MaxQuadrants = 4
)

// Ring is a maturity tier. Identity is the name; Order is the radial band
// index, 0 being the innermost.
type Ring struct {
	Name  string `json:"name"`
	Order int    `json:"order"`
}

// Blip is one item on the radar. It belongs to exactly one Quadrant and
// references one Ring without owning it.
type Blip struct {
	Name        string `json:"name"`
	Ring        *Ring  `json:"-"`
	IsNew       bool   `json:"is_new"`
	Topic       string `json:"topic,omitempty"`
	Description string `json:"description,omitempty"`
}

// RingName returns the name of the blip's ring, or "" if unset.
func (b *Blip) RingName() string {
	if b.Ring == nil {
		return ""
	}
	return b.Ring.Name
}

// Quadrant is a category grouping. Key is the case-normalized identity and
// Name the capitalized display label.
type Quadrant struct {
	Name  string  `json:"name"`
	Key   string  `json:"-"`
	Blips []*Blip `json:"blips"`
}

// Add appends a blip, preserving encounter order.
func (q *Quadrant) Add(b *Blip) {
	q.Blips = append(q.Blips, b)
}

// Radar is the assembled model for one dataset.
type Radar struct {
	quadrants []*Quadrant
	rings     []*Ring
	ringIndex map[string]*Ring
}

// NewRadar creates an empty radar.
func NewRadar() *Radar {
	return &Radar{ringIndex: make(map[string]*Ring)}
}

// AddRing registers a ring. Ring names and orders must be unique.
func (r *Radar) AddRing(ring *Ring) error {
	if ring.Name == "" {
		return fmt.Errorf("ring name cannot be empty")
	}
	if _, exists := r.ringIndex[ring.Name]; exists {
		return fmt.Errorf("duplicate ring %q", ring.Name)
	}
	if ring.Order != len(r.rings) {
		return fmt.Errorf("ring %q has order %d, expected %d", ring.Name, ring.Order, len(r.rings))
	}
	r.rings = append(r.rings, ring)
	r.ringIndex[ring.Name] = ring
	return nil
}

// AddQuadrant appends a quadrant in first-seen order.
func (r *Radar) AddQuadrant(q *Quadrant) error {
	if q.Name == "" {
		return fmt.Errorf("quadrant name cannot be empty")
	}
	for _, existing := range r.quadrants {
		if existing.Key == q.Key {
			return fmt.Errorf("duplicate quadrant %q", q.Name)
		}
	}
	r.quadrants = append(r.quadrants, q)
	return nil
}

// Ring looks up a ring by name.
func (r *Radar) Ring(name string) (*Ring, bool) {
	ring, ok := r.ringIndex[name]
	return ring, ok
}

// Rings returns the rings in order.
func (r *Radar) Rings() []*Ring {
	return r.rings
}

// Quadrants returns the quadrants in first-seen order.
func (r *Radar) Quadrants() []*Quadrant {
	return r.quadrants
}

// BlipCount returns the total number of blips across all quadrants.
func (r *Radar) BlipCount() int {
	n := 0
	for _, q := range r.quadrants {
		n += len(q.Blips)
	}
	return n
}
