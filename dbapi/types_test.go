package dbapi

import (
	"encoding/json"
	"encoding/xml"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogResponseUnmarshal(t *testing.T) {
	body := `{
		"offset": 0,
		"limit": 100,
		"total": 1,
		"result": [{
			"number": 2514,
			"name": "München Hbf",
			"mailingAddress": {"city": "München"},
			"federalStateCode": "DE-BY",
			"evaNumbers": [{"number": 8000261, "isMain": true}],
			"ril100Identifiers": [{"rilIdentifier": "MH"}]
		}]
	}`

	var out stationSearchResponse
	require.NoError(t, json.Unmarshal([]byte(body), &out))
	require.Len(t, out.Result, 1)
	st := out.Result[0]
	assert.Equal(t, "München Hbf", st.Name)
	assert.Equal(t, "DE-BY", st.FederalStateCode)
	require.Len(t, st.EvaNumbers, 1)
	assert.Equal(t, int64(8000261), st.EvaNumbers[0].Number)
	assert.True(t, st.EvaNumbers[0].IsMain)
	require.Len(t, st.Ril100Identifiers, 1)
	assert.Equal(t, "MH", st.Ril100Identifiers[0].RilIdentifier)
}

func TestPlanDocumentUnmarshal(t *testing.T) {
	body := `<timetable station="M&#252;nchen Ost">
		<s id="8936145747894409803-2508251312-18">
			<tl f="S" t="p" o="800725" c="S" n="6632"/>
			<ar pt="2508251335" pp="4" l="2" ppth="M&#252;nchen-Pasing|M&#252;nchen Hbf"/>
			<dp pt="2508251336" pp="4" l="2" ppth="Markt Schwaben|Erding"/>
		</s>
		<s id="arrival-only">
			<tl c="S" n="1"/>
			<ar pt="2508251340"/>
		</s>
	</timetable>`

	var tt Timetable
	require.NoError(t, xml.Unmarshal([]byte(body), &tt))
	assert.Equal(t, "München Ost", tt.Station)
	require.Len(t, tt.Stops, 2)

	s := tt.Stops[0]
	assert.Equal(t, "8936145747894409803-2508251312-18", s.ID)
	require.NotNil(t, s.Trip)
	assert.Equal(t, "S", s.Trip.Category)
	assert.Equal(t, "6632", s.Trip.Number)
	require.NotNil(t, s.Departure)
	assert.Equal(t, "2508251336", s.Departure.PlannedTime)
	assert.Equal(t, "4", s.Departure.PlannedPlatform)
	assert.Equal(t, "2", s.Departure.Line)
	assert.Equal(t, "Markt Schwaben|Erding", s.Departure.PlannedPath)

	assert.Nil(t, tt.Stops[1].Departure)
	assert.NotNil(t, tt.Stops[1].Arrival)
}

func TestChangesDocumentUnmarshal(t *testing.T) {
	body := `<timetable station="M&#252;nchen Ost">
		<s id="stop-1" eva="8000262">
			<dp ct="2508251341" cp="6" cpth="Markt Schwaben|Altenerding" cs="c"/>
		</s>
	</timetable>`

	var tt Timetable
	require.NoError(t, xml.Unmarshal([]byte(body), &tt))
	require.Len(t, tt.Stops, 1)
	dp := tt.Stops[0].Departure
	require.NotNil(t, dp)
	assert.Equal(t, "2508251341", dp.ChangedTime)
	assert.Equal(t, "6", dp.ChangedPlatform)
	assert.Equal(t, "Markt Schwaben|Altenerding", dp.ChangedPath)
	assert.Equal(t, "c", dp.ChangedStatus)
	assert.Nil(t, tt.Stops[0].Trip)
}
