package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/smartcity/streetlights/internal/domain"
)

// DefaultCutoff is the default upper bound on the last maintenance date
var DefaultCutoff = time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

// Config holds the server configuration loaded from environment variables.
type Config struct {
	CSVPath     string
	DatabaseURL string
	LightsTable string
	Port        string
	Env         string

	MaintenanceCutoff time.Time
	Center            domain.Coordinate

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Load reads the .env file if there is one and returns the populated Config.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}
	return FromEnv()
}

// FromEnv builds the Config from the current environment only
func FromEnv() *Config {
	return &Config{
		CSVPath:     getEnv("LIGHTS_CSV_PATH", "public_lights_Eindhoven.csv"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		LightsTable: getEnv("LIGHTS_TABLE", "public_lights"),
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("GO_ENV", "development"),

		MaintenanceCutoff: getEnvDate("MAINTENANCE_CUTOFF", DefaultCutoff),
		Center: domain.Coordinate{
			Lat: getEnvFloat("MAP_CENTER_LAT", domain.DefaultCenterLat),
			Lon: getEnvFloat("MAP_CENTER_LON", domain.DefaultCenterLon),
		},

		ReadTimeout:  time.Duration(getEnvInt("READ_TIMEOUT_SECONDS", 10)) * time.Second,
		WriteTimeout: time.Duration(getEnvInt("WRITE_TIMEOUT_SECONDS", 30)) * time.Second,
	}
}

// UsePostgres reports whether a database source is configured
func (c *Config) UsePostgres() bool {
	return c.DatabaseURL != ""
}

func getEnv(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := getEnv(key, ""); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil && n > 0 {
			return n
		}
		log.Printf("config: ignoring %s=%q", key, val)
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := getEnv(key, ""); val != "" {
		f, err := strconv.ParseFloat(val, 64)
		if err == nil {
			return f
		}
		log.Printf("config: ignoring %s=%q", key, val)
	}
	return fallback
}

func getEnvDate(key string, fallback time.Time) time.Time {
	if val := getEnv(key, ""); val != "" {
		t, err := time.Parse("2006-01-02", val)
		if err == nil {
			return t
		}
		log.Printf("config: ignoring %s=%q, expected YYYY-MM-DD", key, val)
	}
	return fallback
}
