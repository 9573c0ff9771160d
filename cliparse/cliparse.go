package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port        int
	BaseURL     string
	SessionKey  string
	MaxRooms    int
	MaxLearners int

	Debug         bool
	MultiUserMode bool

	DatabaseURL    string
	DatabaseType   string
	ExportInterval time.Duration

	UpdateRate  float64
	UpdateBurst int
	TrustProxy  bool
}

// ParseFlags reads flags, falling back to environment variables for
// anything not given on the command line
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("classpulse", flag.ContinueOnError)

	// Network config
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.BaseURL, "base-url", "", "Public base URL used in share links")

	// Secret (prefer env variable, but allow CLI for dev)
	fs.StringVar(&cfg.SessionKey, "session-key", "", "Session cookie signing key (prefer env)")

	// Limits
	fs.IntVar(&cfg.MaxRooms, "max-rooms", 0, "Maximum number of rooms")
	fs.IntVar(&cfg.MaxLearners, "max-learners", 0, "Maximum active learners per room")
	fs.Float64Var(&cfg.UpdateRate, "update-rate", 0, "Status updates per second per client")
	fs.IntVar(&cfg.UpdateBurst, "update-burst", 0, "Status update burst per client")
	fs.BoolVar(&cfg.TrustProxy, "trust-proxy", false, "Key rate limits on X-Forwarded-For/X-Real-IP (only behind a proxy)")

	// Modes
	fs.BoolVar(&cfg.Debug, "debug", false, "Debug logging")
	fs.BoolVar(&cfg.MultiUserMode, "multi-user", false, "Distinct learner ids per tab for testing")

	// State export
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Export database URL (empty disables export)")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Export database type (sqlite or postgres)")
	fs.DurationVar(&cfg.ExportInterval, "export-interval", 0, "Interval between state exports")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	var err error

	if cfg.Port == 0 {
		if cfg.Port, err = envInt("PORT", 8080); err != nil {
			return Config{}, err
		}
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = os.Getenv("BASE_URL")
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	// Secret - MUST be provided
	if cfg.SessionKey == "" {
		cfg.SessionKey = os.Getenv("SESSION_KEY")
	}
	if cfg.SessionKey == "" {
		return Config{}, errors.New("SESSION_KEY required (use -session-key or SESSION_KEY env)")
	}

	if cfg.MaxRooms == 0 {
		if cfg.MaxRooms, err = envInt("MAX_ROOMS", 1000); err != nil {
			return Config{}, err
		}
	}
	if cfg.MaxLearners == 0 {
		if cfg.MaxLearners, err = envInt("MAX_LEARNERS", 100); err != nil {
			return Config{}, err
		}
	}
	if cfg.MaxRooms < 1 || cfg.MaxLearners < 1 {
		return Config{}, errors.New("room and learner limits must be positive")
	}

	if cfg.UpdateRate == 0 {
		if cfg.UpdateRate, err = envFloat("UPDATE_RATE", 5); err != nil {
			return Config{}, err
		}
	}
	if cfg.UpdateBurst == 0 {
		if cfg.UpdateBurst, err = envInt("UPDATE_BURST", 10); err != nil {
			return Config{}, err
		}
	}

	if !set["trust-proxy"] {
		if cfg.TrustProxy, err = envBool("TRUST_PROXY", false); err != nil {
			return Config{}, err
		}
	}

	if !set["debug"] {
		if cfg.Debug, err = envBool("DEBUG", false); err != nil {
			return Config{}, err
		}
	}
	if !set["multi-user"] {
		if cfg.MultiUserMode, err = envBool("MULTI_USER_MODE", false); err != nil {
			return Config{}, err
		}
	}
	// Debug implies multi-user mode
	cfg.MultiUserMode = cfg.MultiUserMode || cfg.Debug

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unsupported database type %q (sqlite or postgres)", cfg.DatabaseType)
	}
	if cfg.ExportInterval == 0 {
		if cfg.ExportInterval, err = envDuration("EXPORT_INTERVAL", 30*time.Second); err != nil {
			return Config{}, err
		}
	}

	return cfg, nil
}

func envInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable", key)
	}
	return v, nil
}

func envFloat(key string, def float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable", key)
	}
	return v, nil
}

func envBool(key string, def bool) (bool, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid %s env variable", key)
	}
	return v, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable", key)
	}
	return v, nil
}
