package stations

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/muc-transit/departure-board/config"
	"github.com/muc-transit/departure-board/dbapi"
)

// StationRecord is one resolved station. ID is the numeric identifier the
// timetable feeds are keyed by.
type StationRecord struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	RegionCode    string `json:"regionCode"`
	HasIdentifier bool   `json:"hasIdentifier"`
}

// CatalogAPI is the slice of the upstream client the resolver needs.
type CatalogAPI interface {
	SearchStations(ctx context.Context, query string) ([]dbapi.CatalogStation, error)
}

// Resolver ranks station catalog results against a free-text query.
type Resolver struct {
	api CatalogAPI
	cfg config.CatalogConfig
}

func NewResolver(api CatalogAPI, cfg config.CatalogConfig) *Resolver {
	return &Resolver{api: api, cfg: cfg}
}

// Resolve turns free-text input into a canonical station. When the top
// candidate is an unambiguous exact match it is returned alone; otherwise up
// to limit ranked candidates are returned for the caller to disambiguate.
// Zero usable candidates is "not found", not an error.
//
// The whole resolution is bounded by the configured wall-clock deadline;
// variants that fail or run out of time are skipped and whatever was
// gathered so far is ranked.
func (r *Resolver) Resolve(ctx context.Context, query string, limit int) (*StationRecord, []StationRecord, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil, nil
	}
	canonical := r.applyAliases(query)
	target := Normalize(canonical)

	if r.cfg.Deadline() > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.Deadline())
		defer cancel()
	}

	ordered := r.collect(ctx, r.queryVariants(query, canonical))

	type scored struct {
		rec   StationRecord
		score int
	}
	ranked := make([]scored, 0, len(ordered))
	for _, cs := range ordered {
		rec, ok := toRecord(cs)
		if !ok {
			continue
		}
		s := scoreName(Normalize(rec.Name), target)
		if rec.RegionCode == r.cfg.Region {
			s += 5
		}
		ranked = append(ranked, scored{rec: rec, score: s})
	}
	if len(ranked) == 0 {
		return nil, nil, nil
	}
	// Stable: ties keep catalog order.
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	top := ranked[0]
	if top.score >= 100 && Normalize(top.rec.Name) == target {
		return &top.rec, nil, nil
	}
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	candidates := make([]StationRecord, len(ranked))
	for i, s := range ranked {
		candidates[i] = s.rec
	}
	return nil, candidates, nil
}

// collect runs the query variants in order, swallowing per-variant failures
// and deduplicating records across variants.
func (r *Resolver) collect(ctx context.Context, variants []string) []dbapi.CatalogStation {
	var ordered []dbapi.CatalogStation
	seen := map[string]bool{}
	for _, v := range variants {
		if ctx.Err() != nil {
			break
		}
		recs, err := r.api.SearchStations(ctx, v)
		if err != nil {
			continue
		}
		for _, rec := range recs {
			k := dedupeKey(rec)
			if seen[k] {
				continue
			}
			seen[k] = true
			ordered = append(ordered, rec)
		}
	}
	return ordered
}

// queryVariants builds the controlled search variants: the canonicalized
// query, the raw text the user typed (a wildcard search anchored on the
// canonical city prefix can miss it), a plain wildcard, and one wildcard per
// configured city-prefix spelling.
func (r *Resolver) queryVariants(raw, canonical string) []string {
	variants := []string{canonical}
	if raw != canonical {
		variants = append(variants, raw)
	}
	variants = append(variants, "*"+raw+"*")
	for _, prefix := range r.cfg.CityPrefixes {
		variants = append(variants, prefix+"*"+raw+"*")
	}
	seen := map[string]bool{}
	out := variants[:0]
	for _, v := range variants {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func (r *Resolver) applyAliases(q string) string {
	if canonical, ok := r.cfg.Aliases[Normalize(q)]; ok {
		return canonical
	}
	return q
}

// scoreName scores a normalized candidate name against the normalized
// canonical query. Bonuses accumulate, so an exact match always clears the
// auto-select threshold.
func scoreName(name, query string) int {
	s := 0
	if name == query {
		s += 100
	}
	if strings.HasPrefix(name, query) || strings.HasPrefix(query, name) {
		s += 50
	}
	if strings.Contains(name, query) {
		s += 25
	}
	return s
}

// dedupeKey identifies a catalog record across query variants: the numeric
// identifier when present, else the secondary code, else the display name.
func dedupeKey(cs dbapi.CatalogStation) string {
	if len(cs.EvaNumbers) > 0 {
		return fmt.Sprintf("eva:%d", cs.EvaNumbers[0].Number)
	}
	if len(cs.Ril100Identifiers) > 0 && cs.Ril100Identifiers[0].RilIdentifier != "" {
		return "ril:" + cs.Ril100Identifiers[0].RilIdentifier
	}
	return "name:" + Normalize(cs.Name)
}

// toRecord converts a catalog record, discarding records without a numeric
// identifier: they cannot be used against the timetable feeds.
func toRecord(cs dbapi.CatalogStation) (StationRecord, bool) {
	if len(cs.EvaNumbers) == 0 {
		return StationRecord{Name: cs.Name, RegionCode: cs.FederalStateCode}, false
	}
	return StationRecord{
		ID:            cs.EvaNumbers[0].Number,
		Name:          cs.Name,
		RegionCode:    cs.FederalStateCode,
		HasIdentifier: true,
	}, true
}
