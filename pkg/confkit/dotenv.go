package confkit

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
)

var dotenvOnce sync.Once

// LoadDotenvOnce loads variables from .env files once per process.
//
// ENV_FILE names an explicit file. Otherwise every .env between this package
// and the repository root is read, nearest first. Existing variables win
// unless DOTENV_OVERLOAD=1; NO_DOTENV=1 disables loading.
func LoadDotenvOnce() {
	dotenvOnce.Do(loadDotenv)
}

func loadDotenv() {
	if os.Getenv("NO_DOTENV") == "1" {
		return
	}
	load := godotenv.Load
	if os.Getenv("DOTENV_OVERLOAD") == "1" {
		load = godotenv.Overload
	}

	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		_ = load(envFile)
		return
	}
	dir, ok := sourceDir()
	if !ok {
		_ = load(".env")
		return
	}
	walkToRoot(dir, func(d string) {
		p := filepath.Join(d, ".env")
		if fileExists(p) {
			_ = load(p)
		}
	})
}
