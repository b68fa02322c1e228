package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration values.  Every tunable the
// engine uses (seed probabilities, tick intervals, default session
// length) is named here rather than embedded as a literal.
type Config struct {
	Env          string // application environment (e.g. "dev", "prod")
	Port         string // HTTP port to listen on
	JWTSecret    string // secret used to sign JWTs
	AccessTTLMin int    // access token time-to-live in minutes
	BcryptCost   int    // bcrypt cost for seeded holder passwords

	Areas            []AreaSpec // floor-plan definition
	SeedReservations int        // sample reservations placed at startup
	RandSeed         int64      // registry/simulation seed (0 = time based)

	DefaultSessionHours int // session length when none requested
	ExtensionHours      int // hours added per extension
	MinDurationHours    int // lower bound for requested durations
	MaxDurationHours    int // upper bound for requested durations

	SimulationEnabled  bool          // run the occupancy simulation driver
	SimulationInterval time.Duration // simulation tick period
	RefreshInterval    time.Duration // session timer refresh period
	WalkAwayProb       float64       // per-seat chance an occupied seat empties
	WalkInProb         float64       // per-seat chance an available seat fills

	EventsEnabled bool // publish session events to RabbitMQ
}

// Load reads configuration from environment variables.  JWT_SECRET
// is required and missing values cause the program to exit; every
// other variable falls back to a sensible default.
func Load() Config {
	return Config{
		Env:          envStr("APP_ENV", "dev"),
		Port:         envStr("APP_PORT", "8080"),
		JWTSecret:    must("JWT_SECRET"),
		AccessTTLMin: envInt("ACCESS_TOKEN_TTL_MIN", 60),
		BcryptCost:   envInt("BCRYPT_COST", 10),

		Areas:            DefaultAreas(),
		SeedReservations: envInt("SEED_RESERVATIONS", 8),
		RandSeed:         int64(envInt("RAND_SEED", 0)),

		DefaultSessionHours: envInt("DEFAULT_SESSION_HOURS", 2),
		ExtensionHours:      envInt("EXTENSION_HOURS", 1),
		MinDurationHours:    1,
		MaxDurationHours:    6,

		SimulationEnabled:  envBool("SIMULATION_ENABLED", true),
		SimulationInterval: envDur("SIMULATION_INTERVAL", 30*time.Second),
		RefreshInterval:    envDur("SESSION_REFRESH_INTERVAL", 60*time.Second),
		WalkAwayProb:       envFloat("SIM_WALK_AWAY_PROB", 0.10),
		WalkInProb:         envFloat("SIM_WALK_IN_PROB", 0.05),

		EventsEnabled: envBool("EVENTS_ENABLED", false),
	}
}

// must retrieves a required environment variable.  If the variable
// is unset or empty the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return def
}

func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	switch v {
	case "1", "true", "TRUE", "True", "yes", "YES", "on", "ON":
		return true
	case "0", "false", "FALSE", "False", "no", "NO", "off", "OFF":
		return false
	}
	return def
}

func envDur(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	return def
}

func envFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f
	}
	return def
}
