package timetable

import "sort"

// Merge overlays live change records onto the baseline: a full outer join on
// stop id. Live values win only when present and non-empty; planned values
// are backfilled only where the baseline lacks them (ad-hoc stops with no
// advance plan); cancellation is sticky. Change records with no baseline
// counterpart are appended as ad-hoc entries in id order.
//
// Applying the same change set twice equals applying it once.
func Merge(baseline []StopEvent, changes map[string]StopEvent) []StopEvent {
	out := make([]StopEvent, 0, len(baseline)+len(changes))
	matched := make(map[string]bool, len(changes))
	for _, b := range baseline {
		if ch, ok := changes[b.ID]; ok {
			matched[b.ID] = true
			b = overlay(b, ch)
		}
		out = append(out, b)
	}
	adhoc := make([]string, 0, len(changes))
	for id := range changes {
		if !matched[id] {
			adhoc = append(adhoc, id)
		}
	}
	sort.Strings(adhoc)
	for _, id := range adhoc {
		out = append(out, changes[id])
	}
	return out
}

func overlay(b, ch StopEvent) StopEvent {
	if ch.LineLabel != "" {
		b.LineLabel = ch.LineLabel
	}
	if ch.LiveTime != nil {
		b.LiveTime = ch.LiveTime
	}
	if ch.LivePlatform != "" {
		b.LivePlatform = ch.LivePlatform
	}
	if b.PlannedTime == nil && ch.PlannedTime != nil {
		b.PlannedTime = ch.PlannedTime
	}
	if b.PlannedPlatform == "" && ch.PlannedPlatform != "" {
		b.PlannedPlatform = ch.PlannedPlatform
	}
	if ch.Destination != "" {
		b.Destination = ch.Destination
	}
	b.Cancelled = b.Cancelled || ch.Cancelled
	return b
}
