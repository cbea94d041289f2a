package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dyluth/radar/internal/layout"
	"github.com/dyluth/radar/internal/pipeline"
)

// BlipRecord is the serialized form of one placement.
type BlipRecord struct {
	Number      int     `json:"number"`
	Name        string  `json:"name"`
	Ring        string  `json:"ring"`
	Quadrant    string  `json:"quadrant"`
	IsNew       bool    `json:"isNew"`
	Topic       string  `json:"topic,omitempty"`
	Description string  `json:"description"`
	Order       int     `json:"order"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Crowded     bool    `json:"crowded,omitempty"`
}

// RingRecord describes one ring and its band.
type RingRecord struct {
	Name  string      `json:"name"`
	Order int         `json:"order"`
	Band  layout.Band `json:"band"`
}

// QuadrantRecord describes one quadrant and its sector.
type QuadrantRecord struct {
	Name   string        `json:"name"`
	Index  int           `json:"index"`
	Sector layout.Sector `json:"sector"`
	Blips  int           `json:"blips"`
}

// RadarDocument is the full JSON form of a laid-out radar.
type RadarDocument struct {
	Title     string           `json:"title,omitempty"`
	Geometry  layout.Geometry  `json:"geometry"`
	Rings     []RingRecord     `json:"rings"`
	Quadrants []QuadrantRecord `json:"quadrants"`
	Blips     []BlipRecord     `json:"blips"`
}

// NewBlipRecord flattens a placement.
func NewBlipRecord(p layout.Placement) BlipRecord {
	return BlipRecord{
		Number:      p.Number,
		Name:        p.Blip.Name,
		Ring:        p.Blip.RingName(),
		Quadrant:    p.Quadrant.Name,
		IsNew:       p.Blip.IsNew,
		Topic:       p.Blip.Topic,
		Description: p.Blip.Description,
		Order:       p.Order,
		X:           p.X,
		Y:           p.Y,
		Crowded:     p.Crowded,
	}
}

// NewRadarDocument assembles the JSON document for a pipeline result.
func NewRadarDocument(res *pipeline.Result, title string) RadarDocument {
	doc := RadarDocument{
		Title:     title,
		Geometry:  res.Geometry,
		Rings:     []RingRecord{},
		Quadrants: []QuadrantRecord{},
		Blips:     make([]BlipRecord, 0, len(res.Placements)),
	}

	for _, r := range res.Radar.Rings() {
		doc.Rings = append(doc.Rings, RingRecord{Name: r.Name, Order: r.Order, Band: res.Geometry.BandFor(r.Order)})
	}
	for i, q := range res.Radar.Quadrants() {
		sector, _ := layout.SectorFor(i)
		doc.Quadrants = append(doc.Quadrants, QuadrantRecord{Name: q.Name, Index: i, Sector: sector, Blips: len(q.Blips)})
	}
	for _, p := range res.Placements {
		doc.Blips = append(doc.Blips, NewBlipRecord(p))
	}

	return doc
}

// FormatPlacements writes a pipeline result in the requested format.
func FormatPlacements(w io.Writer, res *pipeline.Result, title string, format Format) error {
	switch format {
	case FormatTable:
		return placementsTable(w, res, title)
	case FormatJSONL:
		records := make([]BlipRecord, 0, len(res.Placements))
		for _, p := range res.Placements {
			records = append(records, NewBlipRecord(p))
		}
		return writeJSONL(w, records)
	case FormatJSON:
		return writeJSON(w, NewRadarDocument(res, title))
	default:
		return fmt.Errorf("unsupported format for placements: %s", format)
	}
}

func placementsTable(w io.Writer, res *pipeline.Result, title string) error {
	if title != "" {
		fmt.Fprintf(w, "%s\n\n", title)
	}

	rows := make([][]string, 0, len(res.Placements))
	for _, p := range res.Placements {
		rows = append(rows, []string{
			strconv.Itoa(p.Number),
			p.Blip.Name,
			p.Blip.RingName(),
			p.Quadrant.Name,
			yesNo(p.Blip.IsNew),
			strconv.FormatFloat(p.X, 'f', 1, 64),
			strconv.FormatFloat(p.Y, 'f', 1, 64),
			truncate(p.Blip.Description, 40),
		})
	}

	if err := writeTable(w, []string{"#", "Name", "Ring", "Quadrant", "New", "X", "Y", "Description"}, rows); err != nil {
		return err
	}

	fmt.Fprintf(w, "\n%s in %s and %s\n",
		plural(len(res.Placements), "blip"),
		plural(len(res.Radar.Quadrants()), "quadrant"),
		plural(len(res.Radar.Rings()), "ring"))
	return nil
}
