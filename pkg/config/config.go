package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds everything the two binaries need, loaded once at startup and
// passed into constructors. There are no package-level client singletons.
type Config struct {
	// YouTube Data API
	YouTubeAPIKey string
	ChannelID     string

	// Supabase
	SupabaseURL   string
	SupabaseKey   string
	SupabaseDBURL string // optional direct Postgres connection string

	// Harvester
	MinYear int
	LogFile string
}

// Load reads configuration from the environment, honoring a .env file in the
// working directory if present.
func Load() *Config {
	godotenv.Load()

	return &Config{
		YouTubeAPIKey: os.Getenv("YOUTUBE_API_KEY"),
		ChannelID:     os.Getenv("CHANNEL_ID"),
		SupabaseURL:   os.Getenv("SUPABASE_URL"),
		SupabaseKey:   os.Getenv("SUPABASE_KEY"),
		SupabaseDBURL: os.Getenv("SUPABASE_DB_URL"),
		MinYear:       getEnvAsIntOrDefault("MIN_YEAR", 2012),
		LogFile:       getEnvOrDefault("LOG_FILE", "script_log.txt"),
	}
}

// ValidateHarvest checks the variables the video harvester requires.
func (c *Config) ValidateHarvest() error {
	return requireAll(map[string]string{
		"YOUTUBE_API_KEY": c.YouTubeAPIKey,
		"CHANNEL_ID":      c.ChannelID,
		"SUPABASE_URL":    c.SupabaseURL,
		"SUPABASE_KEY":    c.SupabaseKey,
	})
}

// ValidateTweet checks the variables the tweet extractor requires.
func (c *Config) ValidateTweet() error {
	return requireAll(map[string]string{
		"SUPABASE_URL": c.SupabaseURL,
		"SUPABASE_KEY": c.SupabaseKey,
	})
}

func requireAll(vars map[string]string) error {
	for key, val := range vars {
		if val == "" {
			return fmt.Errorf("required environment variable %s is not set", key)
		}
	}
	return nil
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
