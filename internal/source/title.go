package source

import (
	"fmt"
	"time"
)

// CurrentDocument is the document name that stands for the present quarter.
const CurrentDocument = "current"

// dateLayouts are the document names recognized as a radar edition date.
var dateLayouts = []string{"2006-01-02", "2006-01", "2006_01_02", "20060102"}

// Title derives a radar title from a document name. "current" and names
// that parse as a date become "YYYY Qn Tech Radar"; any other name is
// returned unchanged.
func Title(name string, now time.Time) string {
	if name == CurrentDocument {
		return quarterTitle(now)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, name); err == nil {
			return quarterTitle(t)
		}
	}
	return name
}

func quarterTitle(t time.Time) string {
	return fmt.Sprintf("%d Q%d Tech Radar", t.Year(), (int(t.Month())+2)/3)
}
