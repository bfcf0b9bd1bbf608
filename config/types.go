package config

import "time"

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port int `yaml:"port" validate:"gt=0"`
}

// CredentialsConfig contains the DB API marketplace credentials shared by
// the station catalog and the timetable feeds.
type CredentialsConfig struct {
	ClientID string `yaml:"clientID"`
	APIKey   string `yaml:"apiKey"`
}

// CatalogConfig contains station catalog API configuration
type CatalogConfig struct {
	BaseURL      string            `yaml:"baseURL" validate:"omitempty,url"`
	Region       string            `yaml:"region"`
	CityPrefixes []string          `yaml:"cityPrefixes"`
	Aliases      map[string]string `yaml:"aliases"`
	TimeoutMS    int               `yaml:"timeoutMS" validate:"gte=0"`
	DeadlineMS   int               `yaml:"deadlineMS" validate:"gte=0"`
	Retries      int               `yaml:"retries" validate:"gte=0"`
}

// Timeout is the per-call HTTP timeout for catalog searches.
func (c CatalogConfig) Timeout() time.Duration { return time.Duration(c.TimeoutMS) * time.Millisecond }

// Deadline is the wall-clock budget for a whole resolution, all variants included.
func (c CatalogConfig) Deadline() time.Duration {
	return time.Duration(c.DeadlineMS) * time.Millisecond
}

// TimetableConfig contains plan/changes feed configuration
type TimetableConfig struct {
	BaseURL            string `yaml:"baseURL" validate:"omitempty,url"`
	TimeoutMS          int    `yaml:"timeoutMS" validate:"gte=0"`
	Retries            int    `yaml:"retries" validate:"gte=0"`
	CacheTTLMS         int    `yaml:"cacheTTLMS" validate:"gte=0"`
	NegativeCacheTTLMS int    `yaml:"negativeCacheTTLMS" validate:"gte=0"`
	CacheSize          int    `yaml:"cacheSize" validate:"gte=0"`
}

func (c TimetableConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

func (c TimetableConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLMS) * time.Millisecond
}

func (c TimetableConfig) NegativeCacheTTL() time.Duration {
	return time.Duration(c.NegativeCacheTTLMS) * time.Millisecond
}

// BoardConfig contains departure board windowing and parsing configuration
type BoardConfig struct {
	LookbackMin  int `yaml:"lookbackMin" validate:"gte=0"`
	LookaheadMin int `yaml:"lookaheadMin" validate:"gt=0"`
	MaxItems     int `yaml:"maxItems" validate:"gt=0"`
	// ModeLetter selects the transport category kept at parse time and
	// prefixes bare-digit line labels.
	ModeLetter string `yaml:"modeLetter"`
	Timezone   string `yaml:"timezone"`
	// CancelledFlags is the allow-list of changed-status encodings that all
	// mean "cancelled at this stop". Upstream encodings extend over time, so
	// the list stays configurable rather than hard-coded.
	CancelledFlags []string `yaml:"cancelledFlags"`
}

func (c BoardConfig) Lookback() time.Duration { return time.Duration(c.LookbackMin) * time.Minute }

func (c BoardConfig) Lookahead() time.Duration { return time.Duration(c.LookaheadMin) * time.Minute }

// AppConfig is the root configuration structure
type AppConfig struct {
	Server      ServerConfig      `yaml:"server"`
	Credentials CredentialsConfig `yaml:"credentials"`
	Catalog     CatalogConfig     `yaml:"catalog"`
	Timetable   TimetableConfig   `yaml:"timetable"`
	Board       BoardConfig       `yaml:"board"`
}
