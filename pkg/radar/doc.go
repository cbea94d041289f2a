// Package radar provides the domain model of a technology radar: rings,
// quadrants, blips and the radar aggregate that owns them.
//
// # Overview
//
// A radar groups items (blips) into quadrants (categories) and rings
// (maturity tiers). Quadrants own their blips; blips reference a shared Ring
// by name. Ring order is the discovery index of the ring name in the source
// data and determines the radial band a blip is drawn in.
//
// # Construction
//
// Radars are built once per run from a batch of validated entries:
//
//	r, err := radar.Build(entries, radar.DefaultMaxRings)
//	if err != nil {
//		var mde *radar.MalformedDataError
//		if errors.As(err, &mde) && mde.Kind == radar.KindTooManyRings {
//			// more distinct rings than the layout can draw
//		}
//	}
//
// # Errors
//
// Data problems surface as *MalformedDataError carrying an ErrorKind.
// Missing or unreachable sources surface as *SourceNotFoundError. Both are
// consumed by the presentation layer, which shows them in place of the chart.
package radar
