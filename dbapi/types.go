package dbapi

import "encoding/xml"

// CatalogStation is one record of the station catalog search response.
type CatalogStation struct {
	Name              string            `json:"name"`
	FederalStateCode  string            `json:"federalStateCode"`
	EvaNumbers        []EvaNumber       `json:"evaNumbers"`
	Ril100Identifiers []Ril100Identifer `json:"ril100Identifiers"`
}

// EvaNumber is a numeric station identifier. A station may carry several;
// the first one is the join key for the timetable feeds.
type EvaNumber struct {
	Number int64 `json:"number"`
	IsMain bool  `json:"isMain"`
}

// Ril100Identifer is the secondary alphanumeric station code.
type Ril100Identifer struct {
	RilIdentifier string `json:"rilIdentifier"`
}

type stationSearchResponse struct {
	Result []CatalogStation `json:"result"`
}

// Timetable is the root element of both the plan and the changes feed.
type Timetable struct {
	XMLName xml.Name        `xml:"timetable"`
	Station string          `xml:"station,attr"`
	Stops   []TimetableStop `xml:"s"`
}

// TimetableStop is one stop element. The id attribute is stable across the
// plan and changes feeds for the same physical stop.
type TimetableStop struct {
	ID        string     `xml:"id,attr"`
	Trip      *TripLabel `xml:"tl"`
	Arrival   *EventNode `xml:"ar"`
	Departure *EventNode `xml:"dp"`
}

// TripLabel is the trip descriptor block.
type TripLabel struct {
	Category string `xml:"c,attr"`
	Number   string `xml:"n,attr"`
	Owner    string `xml:"o,attr"`
	Flags    string `xml:"f,attr"`
}

// EventNode is an arrival or departure block. Planned attributes come from
// the plan feed; changed attributes only ever appear in the changes feed.
type EventNode struct {
	PlannedTime     string `xml:"pt,attr"`
	ChangedTime     string `xml:"ct,attr"`
	PlannedPlatform string `xml:"pp,attr"`
	ChangedPlatform string `xml:"cp,attr"`
	PlannedPath     string `xml:"ppth,attr"`
	ChangedPath     string `xml:"cpth,attr"`
	Line            string `xml:"l,attr"`
	ChangedStatus   string `xml:"cs,attr"`
}
