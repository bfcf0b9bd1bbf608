package timetable

import "time"

// StopEvent is one scheduled-or-actual departure occurrence at a station.
// ID is stable across the baseline and changes feeds for the same physical
// stop and is the merge join key.
type StopEvent struct {
	ID              string     `json:"id"`
	LineLabel       string     `json:"lineLabel"`
	PlannedTime     *time.Time `json:"plannedTime,omitempty"`
	LiveTime        *time.Time `json:"liveTime,omitempty"`
	PlannedPlatform string     `json:"plannedPlatform,omitempty"`
	LivePlatform    string     `json:"livePlatform,omitempty"`
	Destination     string     `json:"destination,omitempty"`
	Cancelled       bool       `json:"cancelled"`
}

// EffectiveTime is the live time when known, else the planned time. An event
// with neither is unusable and gets dropped before windowing.
func (e StopEvent) EffectiveTime() (time.Time, bool) {
	if e.LiveTime != nil {
		return *e.LiveTime, true
	}
	if e.PlannedTime != nil {
		return *e.PlannedTime, true
	}
	return time.Time{}, false
}
