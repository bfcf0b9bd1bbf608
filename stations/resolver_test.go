package stations

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muc-transit/departure-board/config"
	"github.com/muc-transit/departure-board/dbapi"
)

type fakeCatalog struct {
	responses map[string][]dbapi.CatalogStation
	errs      map[string]error
	calls     []string
}

func (f *fakeCatalog) SearchStations(ctx context.Context, query string) ([]dbapi.CatalogStation, error) {
	f.calls = append(f.calls, query)
	if err, ok := f.errs[query]; ok {
		return nil, err
	}
	return f.responses[query], nil
}

func testCatalogCfg() config.CatalogConfig {
	return config.CatalogConfig{
		Region:       "DE-BY",
		CityPrefixes: []string{"München", "Muenchen"},
		Aliases: map[string]string{
			"hbf":          "muenchen hbf",
			"hauptbahnhof": "muenchen hbf",
			"ostbahnhof":   "muenchen ost",
		},
		DeadlineMS: 7000,
	}
}

func station(name string, eva int64, region string) dbapi.CatalogStation {
	return dbapi.CatalogStation{
		Name:             name,
		FederalStateCode: region,
		EvaNumbers:       []dbapi.EvaNumber{{Number: eva, IsMain: true}},
	}
}

func TestResolveAliasExactMatch(t *testing.T) {
	// "Hbf" goes through the alias table; the canonical record comes back as
	// exact with no disambiguation candidates.
	fake := &fakeCatalog{responses: map[string][]dbapi.CatalogStation{
		"muenchen hbf": {station("München Hbf", 8000261, "DE-BY")},
	}}
	r := NewResolver(fake, testCatalogCfg())

	exact, candidates, err := r.Resolve(context.Background(), "Hbf", 5)
	require.NoError(t, err)
	require.NotNil(t, exact)
	assert.Equal(t, int64(8000261), exact.ID)
	assert.Equal(t, "München Hbf", exact.Name)
	assert.True(t, exact.HasIdentifier)
	assert.Empty(t, candidates)

	// Both the canonicalized and the raw original text must reach the
	// catalog: a wildcard anchored on the city prefix can miss what the
	// user actually typed.
	assert.Contains(t, fake.calls, "muenchen hbf")
	assert.Contains(t, fake.calls, "Hbf")
}

func TestResolveAmbiguousReturnsCandidates(t *testing.T) {
	fake := &fakeCatalog{responses: map[string][]dbapi.CatalogStation{
		"Laim": {
			station("München-Laim", 8004135, "DE-BY"),
			station("Laim Rbf", 8004136, "DE-BY"),
		},
	}}
	r := NewResolver(fake, testCatalogCfg())

	exact, candidates, err := r.Resolve(context.Background(), "Laim", 5)
	require.NoError(t, err)
	assert.Nil(t, exact)
	require.Len(t, candidates, 2)
}

func TestResolveRankingDeterministic(t *testing.T) {
	// For a fixed catalog response set the ranking is identical on every
	// run; ties keep catalog order.
	recs := []dbapi.CatalogStation{
		station("Erding Nord", 1, "DE-BY"),
		station("Erding Süd", 2, "DE-BY"),
		station("Erding", 3, "DE-BY"),
		station("Altenerding", 4, "DE-BY"),
	}
	fake := &fakeCatalog{responses: map[string][]dbapi.CatalogStation{"Weerding": recs}}
	r := NewResolver(fake, testCatalogCfg())

	_, first, err := r.Resolve(context.Background(), "Weerding", 10)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		_, again, err := r.Resolve(context.Background(), "Weerding", 10)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
	// "Erding Nord" and "Erding Süd" score identically (no prefix or
	// substring hit against "weerding", same region) and must stay in
	// catalog order.
	require.Len(t, first, 4)
	nordIdx, suedIdx := -1, -1
	for i, c := range first {
		switch c.Name {
		case "Erding Nord":
			nordIdx = i
		case "Erding Süd":
			suedIdx = i
		}
	}
	assert.Less(t, nordIdx, suedIdx)
}

func TestResolvePrefersExactOverPrefix(t *testing.T) {
	fake := &fakeCatalog{responses: map[string][]dbapi.CatalogStation{
		"Erding": {
			station("Erding Nord", 1, "DE-BY"),
			station("Erding", 2, "DE-BY"),
		},
	}}
	r := NewResolver(fake, testCatalogCfg())

	exact, _, err := r.Resolve(context.Background(), "Erding", 5)
	require.NoError(t, err)
	require.NotNil(t, exact)
	assert.Equal(t, int64(2), exact.ID)
}

func TestResolveDiscardsRecordsWithoutIdentifier(t *testing.T) {
	fake := &fakeCatalog{responses: map[string][]dbapi.CatalogStation{
		"Erding": {
			{Name: "Erding", FederalStateCode: "DE-BY"}, // no EVA number
		},
	}}
	r := NewResolver(fake, testCatalogCfg())

	exact, candidates, err := r.Resolve(context.Background(), "Erding", 5)
	require.NoError(t, err)
	assert.Nil(t, exact)
	assert.Empty(t, candidates)
}

func TestResolveNotFoundIsNotAnError(t *testing.T) {
	fake := &fakeCatalog{responses: map[string][]dbapi.CatalogStation{}}
	r := NewResolver(fake, testCatalogCfg())

	exact, candidates, err := r.Resolve(context.Background(), "Atlantis", 5)
	require.NoError(t, err)
	assert.Nil(t, exact)
	assert.Empty(t, candidates)
}

func TestResolveSwallowsVariantErrors(t *testing.T) {
	// The first variants fail; a later wildcard variant still produces the
	// record.
	fake := &fakeCatalog{
		errs: map[string]error{
			"Erding":   errors.New("upstream 503"),
			"*Erding*": errors.New("upstream 503"),
		},
		responses: map[string][]dbapi.CatalogStation{
			"München*Erding*": {station("Erding", 8001825, "DE-BY")},
		},
	}
	r := NewResolver(fake, testCatalogCfg())

	exact, _, err := r.Resolve(context.Background(), "Erding", 5)
	require.NoError(t, err)
	require.NotNil(t, exact)
	assert.Equal(t, int64(8001825), exact.ID)
}

func TestResolveDeduplicatesAcrossVariants(t *testing.T) {
	rec := station("Erding", 8001825, "DE-BY")
	fake := &fakeCatalog{responses: map[string][]dbapi.CatalogStation{
		"Erd":          {rec},
		"*Erd*":        {rec},
		"München*Erd*": {rec},
	}}
	r := NewResolver(fake, testCatalogCfg())

	_, candidates, err := r.Resolve(context.Background(), "Erd", 10)
	require.NoError(t, err)
	assert.Len(t, candidates, 1)
}

func TestResolveLimitTruncates(t *testing.T) {
	recs := make([]dbapi.CatalogStation, 0, 8)
	for i := int64(1); i <= 8; i++ {
		recs = append(recs, station("Unrelated", i, "DE-BY"))
	}
	fake := &fakeCatalog{responses: map[string][]dbapi.CatalogStation{"Pasing": recs}}
	r := NewResolver(fake, testCatalogCfg())

	_, candidates, err := r.Resolve(context.Background(), "Pasing", 3)
	require.NoError(t, err)
	assert.Len(t, candidates, 3)
}

func TestResolveEmptyQuery(t *testing.T) {
	fake := &fakeCatalog{}
	r := NewResolver(fake, testCatalogCfg())

	exact, candidates, err := r.Resolve(context.Background(), "   ", 5)
	require.NoError(t, err)
	assert.Nil(t, exact)
	assert.Nil(t, candidates)
	assert.Empty(t, fake.calls)
}
