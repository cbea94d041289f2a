// Package layout computes where each blip of a radar is drawn.
//
// Every blip is placed inside the cell formed by its quadrant's sector and its
// ring's band. Candidates are sampled uniformly in polar coordinates and the
// first one farther than MinSeparation from every point already placed in the
// same cell is accepted. After MaxAttempts candidates the last one is kept,
// so running time is bounded and crowded cells degrade to overlap rather
// than failure.
package layout

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/dyluth/radar/pkg/radar"
)

// ErrInvariant marks a radar that violates construction guarantees. It
// indicates a bug upstream, never bad user data.
var ErrInvariant = errors.New("layout invariant violated")

// Placement is the computed position of one blip.
type Placement struct {
	Blip          *radar.Blip
	Quadrant      *radar.Quadrant
	QuadrantIndex int
	Number        int // 1-based label, running across quadrants
	Order         int // rendering index within the quadrant
	X             float64
	Y             float64
	Cell          Cell
	Attempts      int  // candidates sampled before acceptance
	Crowded       bool // no candidate cleared MinSeparation
}

// Engine places blips. An Engine is not safe for concurrent use because it
// draws from a single random source.
type Engine struct {
	geom Geometry
	rnd  Source
}

// NewEngine validates the geometry and creates an engine. A nil source
// falls back to a time-seeded generator.
func NewEngine(geom Geometry, rnd Source) (*Engine, error) {
	if err := geom.Validate(); err != nil {
		return nil, fmt.Errorf("invalid geometry: %w", err)
	}
	if rnd == nil {
		rnd, _ = NewSeededRNG(0)
	}
	return &Engine{geom: geom, rnd: rnd}, nil
}

// Geometry returns the engine's geometry.
func (e *Engine) Geometry() Geometry {
	return e.geom
}

type point struct{ x, y float64 }

// Place assigns every blip of the radar a point. Quadrants are visited in
// radar order; within a quadrant blips are grouped by ring order, keeping
// source order inside each ring.
func (e *Engine) Place(r *radar.Radar) ([]Placement, error) {
	placements := make([]Placement, 0, r.BlipCount())
	number := 0

	for qi, q := range r.Quadrants() {
		if qi >= radar.MaxQuadrants {
			return nil, fmt.Errorf("%w: radar has more than %d quadrants", ErrInvariant, radar.MaxQuadrants)
		}

		ordered, err := e.renderOrder(r, q)
		if err != nil {
			return nil, err
		}

		occupied := make(map[int][]point)
		for order, b := range ordered {
			cell, err := e.geom.Cell(qi, b.Ring.Order)
			if err != nil {
				return nil, fmt.Errorf("blip %q: %w", b.Name, err)
			}

			p, attempts, clear := e.sample(cell, occupied[b.Ring.Order])
			occupied[b.Ring.Order] = append(occupied[b.Ring.Order], p)

			number++
			placements = append(placements, Placement{
				Blip:          b,
				Quadrant:      q,
				QuadrantIndex: qi,
				Number:        number,
				Order:         order,
				X:             p.x,
				Y:             p.y,
				Cell:          cell,
				Attempts:      attempts,
				Crowded:       !clear,
			})
		}
	}

	return placements, nil
}

// renderOrder returns the quadrant's blips stably sorted by ring order after
// checking each references one of the radar's rings.
func (e *Engine) renderOrder(r *radar.Radar, q *radar.Quadrant) ([]*radar.Blip, error) {
	ordered := make([]*radar.Blip, len(q.Blips))
	copy(ordered, q.Blips)

	for _, b := range ordered {
		ring, ok := r.Ring(b.RingName())
		if !ok || ring != b.Ring {
			return nil, fmt.Errorf("%w: blip %q references unknown ring %q", ErrInvariant, b.Name, b.RingName())
		}
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Ring.Order < ordered[j].Ring.Order
	})
	return ordered, nil
}

// sample draws up to MaxAttempts candidates in the cell and returns the first
// one clear of every occupied point, or the last candidate drawn.
func (e *Engine) sample(c Cell, occupied []point) (point, int, bool) {
	angleInset := e.geom.AngleInset
	radiusInset := e.geom.radiusInset(c.Band)

	minAngle := c.Sector.Start + angleInset
	angleSpan := (c.Sector.End - c.Sector.Start) - 2*angleInset
	minRadius := c.Band.Inner + radiusInset
	radiusSpan := (c.Band.Outer - c.Band.Inner) - 2*radiusInset

	var candidate point
	for attempt := 1; attempt <= e.geom.MaxAttempts; attempt++ {
		angle := minAngle + e.rnd.Float64()*angleSpan
		radius := minRadius + e.rnd.Float64()*radiusSpan
		candidate = point{
			x: e.geom.CenterX + radius*math.Cos(angle),
			y: e.geom.CenterY + radius*math.Sin(angle),
		}

		if e.clear(candidate, occupied) {
			return candidate, attempt, true
		}
	}

	return candidate, e.geom.MaxAttempts, false
}

func (e *Engine) clear(p point, occupied []point) bool {
	for _, o := range occupied {
		if math.Hypot(p.x-o.x, p.y-o.y) <= e.geom.MinSeparation {
			return false
		}
	}
	return true
}
