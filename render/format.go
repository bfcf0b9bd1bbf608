// Package render turns stop events into display lines. Format is a pure
// function of one event so the UI layer can call it per row.
package render

import (
	"html"
	"strings"

	"github.com/muc-transit/departure-board/timetable"
)

const (
	timeLayout      = "15:04"
	cancelledMarker = "❌ cancelled"
)

// Format renders one stop event as an HTML-safe display line:
//
//	S2 → Holzkirchen <s>13:36</s> 13:41 Gl. 4→6
//
// The planned time is struck only when a differing live time exists. A
// cancelled event gets its whole time+platform segment struck, with the
// cancellation marker outside the struck span so it stays legible.
func Format(ev timetable.StopEvent) string {
	var b strings.Builder
	label := ev.LineLabel
	if label == "" {
		label = "?"
	}
	dest := ev.Destination
	if dest == "" {
		dest = "?"
	}
	b.WriteString(label)
	b.WriteString(" → ")
	b.WriteString(html.EscapeString(dest))

	segment := detailSegment(ev)
	switch {
	case ev.Cancelled && segment != "":
		b.WriteString(" <s>")
		b.WriteString(segment)
		b.WriteString("</s> ")
		b.WriteString(cancelledMarker)
	case ev.Cancelled:
		b.WriteString(" ")
		b.WriteString(cancelledMarker)
	case segment != "":
		b.WriteString(" ")
		b.WriteString(segment)
	}
	return b.String()
}

func detailSegment(ev timetable.StopEvent) string {
	parts := make([]string, 0, 2)
	if t := timePart(ev); t != "" {
		parts = append(parts, t)
	}
	if p := platformPart(ev); p != "" {
		parts = append(parts, p)
	}
	return strings.Join(parts, " ")
}

func timePart(ev timetable.StopEvent) string {
	et, ok := ev.EffectiveTime()
	if !ok {
		return ""
	}
	// Inside an already-struck cancelled line the planned-vs-live contrast
	// would not survive, so only the effective time is shown there.
	if !ev.Cancelled && ev.PlannedTime != nil && ev.LiveTime != nil && !ev.LiveTime.Equal(*ev.PlannedTime) {
		return "<s>" + ev.PlannedTime.Format(timeLayout) + "</s> " + ev.LiveTime.Format(timeLayout)
	}
	return et.Format(timeLayout)
}

func platformPart(ev timetable.StopEvent) string {
	switch {
	case ev.PlannedPlatform != "" && ev.LivePlatform != "" && ev.PlannedPlatform != ev.LivePlatform:
		return "Gl. " + ev.PlannedPlatform + "→" + ev.LivePlatform
	case ev.LivePlatform != "":
		return "Gl. " + ev.LivePlatform
	case ev.PlannedPlatform != "":
		return "Gl. " + ev.PlannedPlatform
	}
	return ""
}
