package timetable

import (
	"strings"
	"time"
	"unicode"

	"github.com/muc-transit/departure-board/config"
	"github.com/muc-transit/departure-board/dbapi"
)

// compactTimeLayout is the fixed-width timestamp of the timetable feeds,
// local civil time in the rail network's timezone.
const compactTimeLayout = "0601021504"

// Parser turns raw timetable documents into stop events. One parser serves
// both the baseline and the changes feed so the line-label normalization and
// the mode filter are guaranteed identical on both sides of the merge.
type Parser struct {
	mode      string
	loc       *time.Location
	cancelled map[string]bool
}

func NewParser(cfg config.BoardConfig) (*Parser, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, err
	}
	cancelled := make(map[string]bool, len(cfg.CancelledFlags))
	for _, f := range cfg.CancelledFlags {
		cancelled[strings.ToLower(strings.TrimSpace(f))] = true
	}
	return &Parser{mode: strings.ToUpper(cfg.ModeLetter), loc: loc, cancelled: cancelled}, nil
}

// Location is the rail network's timezone.
func (p *Parser) Location() *time.Location { return p.loc }

// ParseBaseline extracts the departure-direction stop events of the target
// rail mode from a plan document. Arrival-only rows and other transport
// categories are dropped here.
func (p *Parser) ParseBaseline(tt *dbapi.Timetable) []StopEvent {
	if tt == nil {
		return nil
	}
	events := make([]StopEvent, 0, len(tt.Stops))
	for _, s := range tt.Stops {
		if s.Trip == nil || s.Departure == nil {
			continue
		}
		if !p.modeMatches(s.Trip.Category) {
			continue
		}
		dp := s.Departure
		events = append(events, StopEvent{
			ID:              s.ID,
			LineLabel:       p.normalizeLabel(dp.Line, s.Trip),
			PlannedTime:     p.parseTime(dp.PlannedTime),
			PlannedPlatform: strings.TrimSpace(dp.PlannedPlatform),
			Destination:     destinationFromPath(dp.PlannedPath),
		})
	}
	return events
}

// ParseChanges extracts live change records keyed by stop id. Records with a
// trip descriptor of a foreign transport category are dropped; records
// without one are kept and left for the merge join to place.
func (p *Parser) ParseChanges(tt *dbapi.Timetable) map[string]StopEvent {
	if tt == nil {
		return nil
	}
	events := make(map[string]StopEvent, len(tt.Stops))
	for _, s := range tt.Stops {
		if s.Departure == nil {
			continue
		}
		if s.Trip != nil && !p.modeMatches(s.Trip.Category) {
			continue
		}
		dp := s.Departure
		dest := destinationFromPath(dp.ChangedPath)
		if dest == "" {
			dest = destinationFromPath(dp.PlannedPath)
		}
		events[s.ID] = StopEvent{
			ID:              s.ID,
			LineLabel:       p.normalizeLabel(dp.Line, s.Trip),
			PlannedTime:     p.parseTime(dp.PlannedTime),
			LiveTime:        p.parseTime(dp.ChangedTime),
			PlannedPlatform: strings.TrimSpace(dp.PlannedPlatform),
			LivePlatform:    strings.TrimSpace(dp.ChangedPlatform),
			Destination:     dest,
			Cancelled:       p.cancelled[strings.ToLower(strings.TrimSpace(dp.ChangedStatus))],
		}
	}
	return events
}

func (p *Parser) modeMatches(category string) bool {
	return strings.HasPrefix(strings.ToUpper(strings.TrimSpace(category)), p.mode)
}

// normalizeLabel prefers the per-stop line attribute, falling back to the
// trip's category/number pair. Bare digits get the mode-letter prefix so
// "2" and "S2" compare equal across feeds.
func (p *Parser) normalizeLabel(line string, trip *dbapi.TripLabel) string {
	label := strings.ToUpper(strings.TrimSpace(line))
	if label == "" && trip != nil {
		number := strings.ToUpper(strings.TrimSpace(trip.Number))
		category := strings.ToUpper(strings.TrimSpace(trip.Category))
		if bareDigits(number) && category != "" {
			return category + number
		}
		label = number
	}
	if bareDigits(label) {
		return p.mode + label
	}
	return label
}

func bareDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// parseTime decodes the compact YYMMDDHHmm code. Malformed or short codes
// yield "no time" rather than an error.
func (p *Parser) parseTime(code string) *time.Time {
	code = strings.TrimSpace(code)
	if len(code) < len(compactTimeLayout) {
		return nil
	}
	t, err := time.ParseInLocation(compactTimeLayout, code[:len(compactTimeLayout)], p.loc)
	if err != nil {
		return nil
	}
	return &t
}

// destinationFromPath takes the last non-empty segment of a pipe-delimited
// path attribute: the terminal station.
func destinationFromPath(path string) string {
	if path == "" {
		return ""
	}
	segments := strings.Split(path, "|")
	for i := len(segments) - 1; i >= 0; i-- {
		if seg := strings.TrimSpace(segments[i]); seg != "" {
			return seg
		}
	}
	return ""
}
