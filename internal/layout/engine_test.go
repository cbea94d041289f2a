package layout

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/dyluth/radar/pkg/radar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildRadar(t *testing.T, entries []radar.Entry) *radar.Radar {
	t.Helper()
	r, err := radar.Build(entries, radar.DefaultMaxRings)
	require.NoError(t, err)
	return r
}

func sampleEntries(n int) []radar.Entry {
	rings := []string{"Adopt", "Trial", "Assess", "Hold"}
	quadrants := []string{"Tools", "Languages", "Platforms", "Techniques"}
	entries := make([]radar.Entry, 0, n)
	for i := 0; i < n; i++ {
		entries = append(entries, radar.Entry{
			Name:     fmt.Sprintf("item-%d", i),
			Ring:     rings[(i/4)%len(rings)],
			Quadrant: quadrants[i%len(quadrants)],
		})
	}
	return entries
}

func newEngine(t *testing.T, seed int64) *Engine {
	t.Helper()
	e, err := NewEngine(DefaultGeometry(), rand.New(rand.NewSource(seed)))
	require.NoError(t, err)
	return e
}

func TestPlace_Containment(t *testing.T) {
	r := buildRadar(t, sampleEntries(120))
	e := newEngine(t, 42)

	placements, err := e.Place(r)
	require.NoError(t, err)
	require.Len(t, placements, 120)

	g := e.Geometry()
	for _, p := range placements {
		cell, err := g.Cell(p.QuadrantIndex, p.Blip.Ring.Order)
		require.NoError(t, err)
		assert.Equal(t, cell, p.Cell)
		assert.True(t, g.Contains(cell, p.X, p.Y), "%s at (%.2f, %.2f) outside %+v", p.Blip.Name, p.X, p.Y, cell)

		radius, _ := g.Polar(p.X, p.Y)
		band := g.BandFor(p.Blip.Ring.Order)
		assert.Greater(t, radius, band.Inner)
		assert.Less(t, radius, band.Outer)
	}
}

func TestPlace_QuadrantSectors(t *testing.T) {
	entries := []radar.Entry{
		{Name: "a", Ring: "Adopt", Quadrant: "One"},
		{Name: "b", Ring: "Adopt", Quadrant: "Two"},
		{Name: "c", Ring: "Adopt", Quadrant: "Three"},
		{Name: "d", Ring: "Adopt", Quadrant: "Four"},
	}
	e := newEngine(t, 7)

	placements, err := e.Place(buildRadar(t, entries))
	require.NoError(t, err)
	require.Len(t, placements, 4)

	g := e.Geometry()
	signs := []struct{ x, y float64 }{{1, 1}, {1, -1}, {-1, -1}, {-1, 1}}
	for i, p := range placements {
		assert.Equal(t, i, p.QuadrantIndex)
		assert.Equal(t, signs[i].x, math.Copysign(1, p.X-g.CenterX), "quadrant %d x", i)
		assert.Equal(t, signs[i].y, math.Copysign(1, p.Y-g.CenterY), "quadrant %d y", i)
	}
}

func TestPlace_Separation(t *testing.T) {
	r := buildRadar(t, sampleEntries(40))
	e := newEngine(t, 3)

	placements, err := e.Place(r)
	require.NoError(t, err)

	for i, a := range placements {
		for _, b := range placements[i+1:] {
			if a.QuadrantIndex != b.QuadrantIndex || a.Blip.Ring != b.Blip.Ring {
				continue
			}
			if a.Crowded || b.Crowded {
				continue
			}
			dist := math.Hypot(a.X-b.X, a.Y-b.Y)
			assert.Greater(t, dist, DefaultMinSeparation, "%s and %s overlap", a.Blip.Name, b.Blip.Name)
		}
	}
}

func TestPlace_CrowdedCellIsBestEffort(t *testing.T) {
	geom := DefaultGeometry()
	geom.MinSeparation = 10 * geom.Radius
	geom.MaxAttempts = 5

	e, err := NewEngine(geom, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	entries := []radar.Entry{
		{Name: "a", Ring: "Adopt", Quadrant: "Tools"},
		{Name: "b", Ring: "Adopt", Quadrant: "Tools"},
	}
	placements, err := e.Place(buildRadar(t, entries))
	require.NoError(t, err)
	require.Len(t, placements, 2)

	assert.False(t, placements[0].Crowded)
	assert.Equal(t, 1, placements[0].Attempts)
	assert.True(t, placements[1].Crowded)
	assert.Equal(t, 5, placements[1].Attempts)
	assert.True(t, geom.Contains(placements[1].Cell, placements[1].X, placements[1].Y))
}

func TestPlace_Deterministic(t *testing.T) {
	entries := sampleEntries(30)

	first, err := newEngine(t, 99).Place(buildRadar(t, entries))
	require.NoError(t, err)
	second, err := newEngine(t, 99).Place(buildRadar(t, entries))
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].Blip.Name, second[i].Blip.Name)
		assert.Equal(t, first[i].Cell, second[i].Cell)
		assert.Equal(t, first[i].X, second[i].X)
		assert.Equal(t, first[i].Y, second[i].Y)
	}

	other, err := newEngine(t, 100).Place(buildRadar(t, entries))
	require.NoError(t, err)
	for i := range first {
		assert.Equal(t, first[i].Cell, other[i].Cell, "cell assignment does not depend on seed")
	}
}

func TestPlace_RenderOrder(t *testing.T) {
	entries := []radar.Entry{
		{Name: "hold-1", Ring: "Hold", Quadrant: "Tools"},
		{Name: "adopt-1", Ring: "Adopt", Quadrant: "Tools"},
		{Name: "trial-1", Ring: "Trial", Quadrant: "Languages"},
		{Name: "hold-2", Ring: "Hold", Quadrant: "Tools"},
		{Name: "adopt-2", Ring: "Adopt", Quadrant: "Tools"},
	}

	placements, err := newEngine(t, 1).Place(buildRadar(t, entries))
	require.NoError(t, err)

	var names []string
	var numbers, orders []int
	for _, p := range placements {
		names = append(names, p.Blip.Name)
		numbers = append(numbers, p.Number)
		orders = append(orders, p.Order)
	}

	// Ring order is discovery order: Hold=0, Adopt=1, Trial=2.
	assert.Equal(t, []string{"hold-1", "hold-2", "adopt-1", "adopt-2", "trial-1"}, names)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, numbers)
	assert.Equal(t, []int{0, 1, 2, 3, 0}, orders)
}

func TestPlace_InvariantViolations(t *testing.T) {
	t.Run("blip ring missing from radar", func(t *testing.T) {
		r := radar.NewRadar()
		require.NoError(t, r.AddRing(&radar.Ring{Name: "Adopt", Order: 0}))
		q := &radar.Quadrant{Name: "Tools", Key: "tools"}
		q.Add(&radar.Blip{Name: "orphan", Ring: &radar.Ring{Name: "Ghost", Order: 0}})
		require.NoError(t, r.AddQuadrant(q))

		_, err := newEngine(t, 1).Place(r)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvariant))
		assert.False(t, radar.IsKind(err, radar.KindEmptyOrInvalid))
	})

	t.Run("ring order beyond geometry", func(t *testing.T) {
		entries := []radar.Entry{
			{Name: "a", Ring: "Adopt", Quadrant: "Tools"},
			{Name: "b", Ring: "Trial", Quadrant: "Tools"},
		}
		geom := DefaultGeometry()
		geom.MaxRings = 1
		e, err := NewEngine(geom, rand.New(rand.NewSource(1)))
		require.NoError(t, err)

		_, err = e.Place(buildRadar(t, entries))
		assert.ErrorIs(t, err, ErrInvariant)
	})
}

func TestGeometry_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(g *Geometry)
	}{
		{"zero radius", func(g *Geometry) { g.Radius = 0 }},
		{"zero rings", func(g *Geometry) { g.MaxRings = 0 }},
		{"zero attempts", func(g *Geometry) { g.MaxAttempts = 0 }},
		{"negative separation", func(g *Geometry) { g.MinSeparation = -1 }},
		{"zero angle inset", func(g *Geometry) { g.AngleInset = 0 }},
		{"angle inset too wide", func(g *Geometry) { g.AngleInset = math.Pi / 4 }},
		{"zero radius inset", func(g *Geometry) { g.RadiusInset = 0 }},
	}

	require.NoError(t, DefaultGeometry().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := DefaultGeometry()
			tt.mutate(&g)
			assert.Error(t, g.Validate())

			_, err := NewEngine(g, nil)
			assert.Error(t, err)
		})
	}
}

func TestGeometry_Bands(t *testing.T) {
	g := DefaultGeometry()
	assert.Equal(t, Band{Inner: 0, Outer: 100}, g.BandFor(0))
	assert.Equal(t, Band{Inner: 300, Outer: 400}, g.BandFor(3))

	_, err := g.Cell(0, 4)
	assert.ErrorIs(t, err, ErrInvariant)
	_, err = g.Cell(4, 0)
	assert.ErrorIs(t, err, ErrInvariant)
}

func TestNewSeededRNG(t *testing.T) {
	a, seed := NewSeededRNG(5)
	b, _ := NewSeededRNG(5)
	assert.Equal(t, int64(5), seed)
	assert.Equal(t, a.Float64(), b.Float64())

	_, generated := NewSeededRNG(0)
	assert.NotZero(t, generated)
}
