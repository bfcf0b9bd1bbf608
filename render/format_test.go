package render

import (
	"testing"
	"time"

	"github.com/muc-transit/departure-board/timetable"
)

var berlin = func() *time.Location {
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		panic(err)
	}
	return loc
}()

func at(hh, mm int) *time.Time {
	t := time.Date(2025, 8, 25, hh, mm, 0, 0, berlin)
	return &t
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		event    timetable.StopEvent
		expected string
	}{
		{
			name: "on time",
			event: timetable.StopEvent{
				LineLabel:       "S2",
				Destination:     "Erding",
				PlannedTime:     at(13, 36),
				PlannedPlatform: "4",
			},
			expected: "S2 → Erding 13:36 Gl. 4",
		},
		{
			name: "delayed with platform change",
			event: timetable.StopEvent{
				LineLabel:       "S2",
				Destination:     "Erding",
				PlannedTime:     at(13, 36),
				LiveTime:        at(13, 41),
				PlannedPlatform: "4",
				LivePlatform:    "6",
			},
			expected: "S2 → Erding <s>13:36</s> 13:41 Gl. 4→6",
		},
		{
			name: "live confirms planned time",
			event: timetable.StopEvent{
				LineLabel:   "S8",
				Destination: "Herrsching",
				PlannedTime: at(14, 0),
				LiveTime:    at(14, 0),
			},
			expected: "S8 → Herrsching 14:00",
		},
		{
			name: "cancelled",
			event: timetable.StopEvent{
				LineLabel:       "S2",
				Destination:     "Erding",
				PlannedTime:     at(13, 36),
				PlannedPlatform: "4",
				Cancelled:       true,
			},
			expected: "S2 → Erding <s>13:36 Gl. 4</s> ❌ cancelled",
		},
		{
			name: "cancelled with live time shows effective time only",
			event: timetable.StopEvent{
				LineLabel:   "S2",
				Destination: "Erding",
				PlannedTime: at(13, 36),
				LiveTime:    at(13, 41),
				Cancelled:   true,
			},
			expected: "S2 → Erding <s>13:41</s> ❌ cancelled",
		},
		{
			name: "cancelled without any detail",
			event: timetable.StopEvent{
				LineLabel:   "S2",
				Destination: "Erding",
				Cancelled:   true,
			},
			expected: "S2 → Erding ❌ cancelled",
		},
		{
			name: "live platform only",
			event: timetable.StopEvent{
				LineLabel:    "S3",
				Destination:  "Holzkirchen",
				LiveTime:     at(13, 50),
				LivePlatform: "2",
			},
			expected: "S3 → Holzkirchen 13:50 Gl. 2",
		},
		{
			name: "destination html escaped",
			event: timetable.StopEvent{
				LineLabel:   "S1",
				Destination: "A<b>&C",
				PlannedTime: at(13, 0),
			},
			expected: "S1 → A&lt;b&gt;&amp;C 13:00",
		},
		{
			name:     "nothing known",
			event:    timetable.StopEvent{},
			expected: "? → ?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.event); got != tt.expected {
				t.Errorf("Format() = %q, want %q", got, tt.expected)
			}
		})
	}
}
