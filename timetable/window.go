package timetable

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/muc-transit/departure-board/config"
)

// ErrInvalidStation marks a caller bug: a request that never resolved a
// usable station identifier reached the window stage.
var ErrInvalidStation = errors.New("invalid station identifier")

// Assembler builds the departure board for a rolling time window around
// "now", merging the cached baseline hours with one live-changes fetch.
type Assembler struct {
	fetcher   *Fetcher
	lookback  time.Duration
	lookahead time.Duration
	loc       *time.Location
}

func NewAssembler(f *Fetcher, cfg config.BoardConfig, loc *time.Location) *Assembler {
	return &Assembler{fetcher: f, lookback: cfg.Lookback(), lookahead: cfg.Lookahead(), loc: loc}
}

// Window returns the stop events whose effective time lies in
// [now-lookback, now+lookahead], sorted ascending and truncated to maxItems,
// plus whether live data made it into the result. A failing changes feed
// degrades to baseline-only data and liveDataOk=false; only when every feed
// for the request fails does Window return an error.
func (a *Assembler) Window(ctx context.Context, stationID int64, now time.Time, maxItems int, lineFilter string) ([]StopEvent, bool, error) {
	if stationID <= 0 {
		return nil, false, fmt.Errorf("%w: %d", ErrInvalidStation, stationID)
	}
	now = now.In(a.loc)
	start := now.Add(-a.lookback)
	end := now.Add(a.lookahead)

	// One baseline fetch per hour bucket touched by the window. Starting the
	// iteration at the look-back edge pulls in the previous hour when the
	// look-back crosses an hour boundary, so a late-running train planned at
	// the top of the previous hour is not lost.
	byID := map[string]StopEvent{}
	var order []string
	buckets, failed := 0, 0
	for t := hourBucket(start); !t.After(end); t = t.Add(time.Hour) {
		buckets++
		events, err := a.fetcher.FetchBaseline(ctx, stationID, t.Format("060102"), t.Format("15"))
		if err != nil {
			failed++
			continue
		}
		for _, ev := range events {
			if _, ok := byID[ev.ID]; ok {
				continue
			}
			byID[ev.ID] = ev
			order = append(order, ev.ID)
		}
	}

	changes, err := a.fetcher.FetchChanges(ctx, stationID)
	liveOK := err == nil
	if failed == buckets && !liveOK {
		return nil, false, fmt.Errorf("all timetable feeds failed for station %d", stationID)
	}

	baseline := make([]StopEvent, 0, len(order))
	for _, id := range order {
		baseline = append(baseline, byID[id])
	}
	merged := Merge(baseline, changes)

	if lineFilter != "" {
		want := strings.ToUpper(strings.TrimSpace(lineFilter))
		kept := merged[:0]
		for _, ev := range merged {
			if strings.HasPrefix(strings.ToUpper(ev.LineLabel), want) {
				kept = append(kept, ev)
			}
		}
		merged = kept
	}

	windowed := make([]StopEvent, 0, len(merged))
	for _, ev := range merged {
		et, ok := ev.EffectiveTime()
		if !ok {
			continue
		}
		// Both bounds inclusive.
		if et.Before(start) || et.After(end) {
			continue
		}
		windowed = append(windowed, ev)
	}
	sort.SliceStable(windowed, func(i, j int) bool {
		ti, _ := windowed[i].EffectiveTime()
		tj, _ := windowed[j].EffectiveTime()
		return ti.Before(tj)
	})
	if maxItems > 0 && len(windowed) > maxItems {
		windowed = windowed[:maxItems]
	}
	return windowed, liveOK, nil
}

// hourBucket floors a civil time to its wall-clock hour.
func hourBucket(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
}
