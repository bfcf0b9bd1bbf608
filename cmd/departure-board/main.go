package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	lib "github.com/muc-transit/departure-board"
	"github.com/muc-transit/departure-board/config"
	"github.com/muc-transit/departure-board/internal"
	"github.com/muc-transit/departure-board/render"
)

func main() {
	mode := flag.String("mode", "oneshot", "oneshot|serve")
	station := flag.String("station", "", "station name or numeric station identifier")
	line := flag.String("line", "", "line filter, case-insensitive prefix (e.g. S2)")
	maxItems := flag.Int("max", 0, "maximum departures to print (0 = config default)")
	flag.Parse()

	internal.InitLogging()
	if err := config.LoadAppConfig(); err != nil {
		log.Printf("no config file loaded (%v), using defaults", err)
		cfg := config.Defaults()
		if v := os.Getenv("DB_CLIENT_ID"); v != "" {
			cfg.Credentials.ClientID = v
		}
		if v := os.Getenv("DB_API_KEY"); v != "" {
			cfg.Credentials.APIKey = v
		}
		config.Config = cfg
	}

	engine, err := lib.NewEngine(config.Config)
	if err != nil {
		log.Fatalf("engine init: %v", err)
	}

	switch *mode {
	case "serve":
		lib.StartServer(engine)
		lib.HandleGracefulShutdown()
	case "oneshot":
		if *station == "" {
			log.Fatal("-station is required in oneshot mode")
		}
		oneshot(engine, *station, *line, *maxItems)
	default:
		log.Fatalf("unknown mode %q", *mode)
	}
}

func oneshot(engine *lib.Engine, station, line string, maxItems int) {
	ctx := context.Background()

	if id, err := strconv.ParseInt(station, 10, 64); err == nil {
		printBoard(ctx, engine, id, station, line, maxItems)
		return
	}

	exact, candidates, err := engine.Resolve(ctx, station, 5)
	if err != nil {
		log.Fatalf("resolve: %v", err)
	}
	if exact == nil {
		if len(candidates) == 0 {
			fmt.Println("station not found")
			return
		}
		if len(candidates) > 1 {
			fmt.Println("ambiguous station, candidates:")
			for _, c := range candidates {
				fmt.Printf("  %s (%d)\n", c.Name, c.ID)
			}
			return
		}
		exact = &candidates[0]
	}

	printBoard(ctx, engine, exact.ID, exact.Name, line, maxItems)
}

func printBoard(ctx context.Context, engine *lib.Engine, stationID int64, name, line string, maxItems int) {
	events, liveOK, err := engine.Departures(ctx, stationID, line, maxItems)
	if err != nil {
		log.Fatalf("departures: %v", err)
	}
	fmt.Printf("Departures from %s\n", name)
	if !liveOK {
		fmt.Println("(live data unavailable, showing planned times only)")
	}
	if len(events) == 0 {
		fmt.Println("no departures in the current window")
		return
	}
	for _, ev := range events {
		fmt.Println(render.Format(ev))
	}
}
