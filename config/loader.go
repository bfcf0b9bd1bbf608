package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the global application configuration
var Config AppConfig

// LoadAppConfig loads and validates the application configuration from config.yml
func LoadAppConfig() error {
	paths := []string{"config.yml", "./deploy/config.yml"}
	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		return err
	}
	cfg := Defaults()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return err
	}
	applyEnv(&cfg)
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return err
	}
	Config = cfg
	return nil
}

// Defaults returns the built-in configuration. The alias table and the
// cancellation allow-list carry the values observed in production; a config
// file extends or replaces them.
func Defaults() AppConfig {
	return AppConfig{
		Server: ServerConfig{Port: 16280},
		Catalog: CatalogConfig{
			BaseURL:      "https://apis.deutschebahn.com/db-api-marketplace/apis/station-data/v2",
			Region:       "DE-BY",
			CityPrefixes: []string{"München", "Muenchen"},
			Aliases: map[string]string{
				"ostbahnhof":            "muenchen ost",
				"muenchen ostbahnhof":   "muenchen ost",
				"hauptbahnhof":          "muenchen hbf",
				"hbf":                   "muenchen hbf",
				"muenchen hauptbahnhof": "muenchen hbf",
				"munich east":           "muenchen ost",
				"munich main":           "muenchen hbf",
			},
			TimeoutMS:  3000,
			DeadlineMS: 7000,
			Retries:    2,
		},
		Timetable: TimetableConfig{
			BaseURL:            "https://apis.deutschebahn.com/db-api-marketplace/apis/timetables/v1",
			TimeoutMS:          5000,
			Retries:            2,
			CacheTTLMS:         120000,
			NegativeCacheTTLMS: 20000,
			CacheSize:          256,
		},
		Board: BoardConfig{
			LookbackMin:    5,
			LookaheadMin:   60,
			MaxItems:       12,
			ModeLetter:     "S",
			Timezone:       "Europe/Berlin",
			CancelledFlags: []string{"c", "x", "cancelled"},
		},
	}
}

func applyEnv(cfg *AppConfig) {
	if v := os.Getenv("DB_CLIENT_ID"); v != "" {
		cfg.Credentials.ClientID = v
	}
	if v := os.Getenv("DB_API_KEY"); v != "" {
		cfg.Credentials.APIKey = v
	}
}
