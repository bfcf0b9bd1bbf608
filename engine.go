package departureboard

import (
	"context"
	"time"

	"github.com/muc-transit/departure-board/config"
	"github.com/muc-transit/departure-board/dbapi"
	"github.com/muc-transit/departure-board/stations"
	"github.com/muc-transit/departure-board/timetable"
)

// Engine wires the station resolver, the schedule fetcher and the window
// assembler behind the caller-facing API. The UI layer owns disambiguation
// and presentation; the engine owns everything between free text and a
// sorted, merged departure window.
type Engine struct {
	Stations *stations.Resolver
	Board    *timetable.Assembler
	Cfg      config.AppConfig
	loc      *time.Location
}

func NewEngine(cfg config.AppConfig) (*Engine, error) {
	client := dbapi.NewClient(cfg)
	parser, err := timetable.NewParser(cfg.Board)
	if err != nil {
		return nil, err
	}
	fetcher := timetable.NewFetcher(client, parser, cfg.Timetable)
	return &Engine{
		Stations: stations.NewResolver(client, cfg.Catalog),
		Board:    timetable.NewAssembler(fetcher, cfg.Board, parser.Location()),
		Cfg:      cfg,
		loc:      parser.Location(),
	}, nil
}

// Resolve turns free-text station input into an exact record or ranked
// candidates.
func (e *Engine) Resolve(ctx context.Context, query string, limit int) (*stations.StationRecord, []stations.StationRecord, error) {
	return e.Stations.Resolve(ctx, query, limit)
}

// Departures assembles the departure board for "now" at the given station.
func (e *Engine) Departures(ctx context.Context, stationID int64, lineFilter string, maxItems int) ([]timetable.StopEvent, bool, error) {
	if maxItems <= 0 {
		maxItems = e.Cfg.Board.MaxItems
	}
	return e.Board.Window(ctx, stationID, time.Now().In(e.loc), maxItems, lineFilter)
}
