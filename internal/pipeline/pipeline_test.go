package pipeline

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/dyluth/radar/internal/ingest"
	"github.com/dyluth/radar/pkg/radar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fullHeaders = []string{"name", "ring", "quadrant", "isNew", "description"}

func row(name, ring, quadrant, isNew, description string) ingest.RawRow {
	return ingest.RawRow{
		"name":        name,
		"ring":        ring,
		"quadrant":    quadrant,
		"isNew":       isNew,
		"description": description,
	}
}

func seeded(seed int64) Options {
	opts := DefaultOptions()
	opts.Rand = rand.New(rand.NewSource(seed))
	return opts
}

func TestRun_ConcreteScenario(t *testing.T) {
	rows := []ingest.RawRow{
		row("Kubernetes", "Adopt", "Tools", "false", "desc1"),
		row("GraphQL", "Trial", "Languages", "true", "desc2"),
	}

	res, err := Run(fullHeaders, rows, seeded(1))
	require.NoError(t, err)

	quadrants := res.Radar.Quadrants()
	require.Len(t, quadrants, 2)
	assert.Equal(t, "Tools", quadrants[0].Name)
	assert.Equal(t, "Languages", quadrants[1].Name)

	rings := res.Radar.Rings()
	require.Len(t, rings, 2)
	assert.Equal(t, "Adopt", rings[0].Name)
	assert.Equal(t, 0, rings[0].Order)
	assert.Equal(t, "Trial", rings[1].Name)
	assert.Equal(t, 1, rings[1].Order)

	require.Len(t, res.Placements, 2)
	for _, p := range res.Placements {
		assert.True(t, res.Geometry.Contains(p.Cell, p.X, p.Y), "%s outside its cell", p.Blip.Name)
	}
	assert.Equal(t, "Kubernetes", res.Placements[0].Blip.Name)
	assert.False(t, res.Placements[0].Blip.IsNew)
	assert.Equal(t, "GraphQL", res.Placements[1].Blip.Name)
	assert.True(t, res.Placements[1].Blip.IsNew)
	assert.Equal(t, 1, res.Placements[1].QuadrantIndex)
}

func TestRun_MissingHeaders(t *testing.T) {
	for _, drop := range []string{"name", "ring", "quadrant"} {
		t.Run("without "+drop, func(t *testing.T) {
			var headers []string
			for _, h := range fullHeaders {
				if h != drop {
					headers = append(headers, h)
				}
			}

			// Rows that would also fail content checks: headers must win.
			res, err := Run(headers, nil, seeded(1))
			assert.Nil(t, res)
			require.Error(t, err)
			assert.True(t, radar.IsKind(err, radar.KindMissingHeaders), "got %v", err)
		})
	}
}

func TestRun_EmptyBatch(t *testing.T) {
	res, err := Run(fullHeaders, []ingest.RawRow{}, seeded(1))
	assert.Nil(t, res)
	assert.True(t, radar.IsKind(err, radar.KindEmptyOrInvalid))
}

func TestRun_BlankName(t *testing.T) {
	rows := []ingest.RawRow{
		row("Kubernetes", "Adopt", "Tools", "false", "desc1"),
		row("  ", "Trial", "Languages", "true", "desc2"),
	}

	res, err := Run(fullHeaders, rows, seeded(1))
	assert.Nil(t, res)
	assert.True(t, radar.IsKind(err, radar.KindEmptyOrInvalid))
}

func TestRun_TooManyRings(t *testing.T) {
	rings := []string{"Adopt", "Trial", "Assess", "Hold", "Retire"}
	for shift := range rings {
		var rows []ingest.RawRow
		for i := range rings {
			rows = append(rows, row(fmt.Sprintf("item-%d", i), rings[(i+shift)%len(rings)], "Tools", "false", ""))
		}

		res, err := Run(fullHeaders, rows, seeded(1))
		assert.Nil(t, res)
		assert.True(t, radar.IsKind(err, radar.KindTooManyRings), "shift %d: %v", shift, err)
	}
}

func TestRun_ModelFidelity(t *testing.T) {
	rows := []ingest.RawRow{
		row("a", "Adopt", "tools", "", ""),
		row("b", "Hold", "TOOLS", "", ""),
		row("c", "Trial", "Platforms", "", ""),
		row("d", "Adopt", "platforms", "", ""),
		row("e", "Assess", "Techniques", "", ""),
	}

	res, err := Run(fullHeaders, rows, seeded(5))
	require.NoError(t, err)

	var quadrantNames []string
	for _, q := range res.Radar.Quadrants() {
		quadrantNames = append(quadrantNames, q.Name)
	}
	assert.Equal(t, []string{"Tools", "Platforms", "Techniques"}, quadrantNames)

	ringBySource := map[string]string{}
	for _, r := range rows {
		ringBySource[r["name"]] = r["ring"]
	}
	for _, p := range res.Placements {
		assert.Equal(t, ringBySource[p.Blip.Name], p.Blip.Ring.Name)
		assert.Equal(t, strings.ToLower(p.Quadrant.Name), p.Quadrant.Key)
	}
}

func TestRun_SeededRunsAgree(t *testing.T) {
	rows := []ingest.RawRow{
		row("a", "Adopt", "Tools", "", ""),
		row("b", "Trial", "Tools", "", ""),
		row("c", "Adopt", "Languages", "", ""),
		row("d", "Hold", "Platforms", "", ""),
	}

	first, err := Run(fullHeaders, rows, seeded(11))
	require.NoError(t, err)
	second, err := Run(fullHeaders, rows, seeded(11))
	require.NoError(t, err)

	require.Len(t, second.Placements, len(first.Placements))
	for i := range first.Placements {
		a, b := first.Placements[i], second.Placements[i]
		assert.Equal(t, a.Blip.Name, b.Blip.Name)
		assert.Equal(t, a.Cell, b.Cell)
		assert.Equal(t, a.X, b.X)
		assert.Equal(t, a.Y, b.Y)
	}
}

func TestRun_InvalidGeometry(t *testing.T) {
	opts := seeded(1)
	opts.Geometry.Radius = 0

	res, err := Run(fullHeaders, []ingest.RawRow{row("a", "Adopt", "Tools", "", "")}, opts)
	assert.Nil(t, res)
	require.Error(t, err)
	_, malformed := radar.AsMalformed(err)
	assert.False(t, malformed)
}
