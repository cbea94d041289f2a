package layout

import (
	"fmt"
	"math"

	"github.com/dyluth/radar/pkg/radar"
)

// Default layout settings.
const (
	DefaultRadius        = 400.0
	DefaultMinSeparation = 12.0
	DefaultMaxAttempts   = 50
	DefaultAngleInset    = 3 * math.Pi / 180
	DefaultRadiusInset   = 8.0
)

// quarter is the angular width of one quadrant sector.
const quarter = math.Pi / 2

// sectorStarts are the start angles of quadrant sectors, clockwise from the
// top-right quarter. Angles are counter-clockwise from +x in a y-up space.
var sectorStarts = [radar.MaxQuadrants]float64{0, -quarter, -math.Pi, quarter}

// Geometry describes the radar disc and the placement constraints.
type Geometry struct {
	Radius        float64 `json:"radius"`
	CenterX       float64 `json:"center_x"`
	CenterY       float64 `json:"center_y"`
	MaxRings      int     `json:"max_rings"`
	MinSeparation float64 `json:"min_separation"`
	MaxAttempts   int     `json:"max_attempts"`
	AngleInset    float64 `json:"angle_inset"`  // radians trimmed from each sector seam
	RadiusInset   float64 `json:"radius_inset"` // pixels trimmed from each band edge
}

// DefaultGeometry returns the default geometry, centred at (R, R).
func DefaultGeometry() Geometry {
	return Geometry{
		Radius:        DefaultRadius,
		CenterX:       DefaultRadius,
		CenterY:       DefaultRadius,
		MaxRings:      radar.DefaultMaxRings,
		MinSeparation: DefaultMinSeparation,
		MaxAttempts:   DefaultMaxAttempts,
		AngleInset:    DefaultAngleInset,
		RadiusInset:   DefaultRadiusInset,
	}
}

// Validate checks the geometry can produce strictly contained placements.
func (g Geometry) Validate() error {
	if g.Radius <= 0 {
		return fmt.Errorf("radius must be > 0, got %v", g.Radius)
	}
	if g.MaxRings < 1 {
		return fmt.Errorf("max rings must be >= 1, got %d", g.MaxRings)
	}
	if g.MaxAttempts < 1 {
		return fmt.Errorf("max attempts must be >= 1, got %d", g.MaxAttempts)
	}
	if g.MinSeparation < 0 {
		return fmt.Errorf("min separation must be >= 0, got %v", g.MinSeparation)
	}
	if g.AngleInset <= 0 || g.AngleInset >= quarter/2 {
		return fmt.Errorf("angle inset must be in (0, %v) radians, got %v", quarter/2, g.AngleInset)
	}
	if g.RadiusInset <= 0 {
		return fmt.Errorf("radius inset must be > 0, got %v", g.RadiusInset)
	}
	return nil
}

// Band is an annulus [Inner, Outer).
type Band struct {
	Inner float64 `json:"inner"`
	Outer float64 `json:"outer"`
}

// Sector is the angular range [Start, End) in radians.
type Sector struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Cell is the intersection of one ring band and one quadrant sector.
type Cell struct {
	Band   Band   `json:"band"`
	Sector Sector `json:"sector"`
}

// BandFor returns the band of the ring with the given order.
func (g Geometry) BandFor(order int) Band {
	step := g.Radius / float64(g.MaxRings)
	return Band{Inner: float64(order) * step, Outer: float64(order+1) * step}
}

// SectorFor returns the sector of the quadrant at the given index.
func SectorFor(index int) (Sector, error) {
	if index < 0 || index >= radar.MaxQuadrants {
		return Sector{}, fmt.Errorf("%w: quadrant index %d outside [0, %d)", ErrInvariant, index, radar.MaxQuadrants)
	}
	start := sectorStarts[index]
	return Sector{Start: start, End: start + quarter}, nil
}

// Cell returns the cell for a quadrant index and ring order.
func (g Geometry) Cell(quadrantIndex, ringOrder int) (Cell, error) {
	if ringOrder < 0 || ringOrder >= g.MaxRings {
		return Cell{}, fmt.Errorf("%w: ring order %d outside [0, %d)", ErrInvariant, ringOrder, g.MaxRings)
	}
	sector, err := SectorFor(quadrantIndex)
	if err != nil {
		return Cell{}, err
	}
	return Cell{Band: g.BandFor(ringOrder), Sector: sector}, nil
}

// Polar converts a point to radius and angle relative to the centre.
func (g Geometry) Polar(x, y float64) (radius, angle float64) {
	dx, dy := x-g.CenterX, y-g.CenterY
	return math.Hypot(dx, dy), math.Atan2(dy, dx)
}

// Contains reports whether (x, y) lies strictly inside the cell.
func (g Geometry) Contains(c Cell, x, y float64) bool {
	r, a := g.Polar(x, y)
	if r <= c.Band.Inner || r >= c.Band.Outer {
		return false
	}
	offset := math.Mod(a-c.Sector.Start, 2*math.Pi)
	if offset < 0 {
		offset += 2 * math.Pi
	}
	return offset > 0 && offset < c.Sector.End-c.Sector.Start
}

// radiusInset clamps the configured inset to a quarter of the band width.
func (g Geometry) radiusInset(b Band) float64 {
	return math.Min(g.RadiusInset, (b.Outer-b.Inner)/4)
}
