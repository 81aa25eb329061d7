package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// EnvConfig holds settings that can come from the environment or a .env
// file. Command line flags take precedence over these.
type EnvConfig struct {
	ConfigPath string
	InputPath  string
	OutPath    string
	LogLevel   string
}

// Env loads files (default ".env") into the process environment and reads
// the DUELSIM_* variables. A missing file is not an error.
func Env(files ...string) (*EnvConfig, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return &EnvConfig{
		ConfigPath: getEnv("DUELSIM_CONFIG", ""),
		InputPath:  getEnv("DUELSIM_INPUT", "assets/boss.txt"),
		OutPath:    getEnv("DUELSIM_OUT", "out.json"),
		LogLevel:   getEnv("DUELSIM_LOG_LEVEL", "info"),
	}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
