package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Load reads the .env file specified by CCT_ENV (or .env by default),
// then loads the corresponding .secret file if it exists.
// All config is flat env vars read via os.Getenv after loading.
func Load() error {
	envFile := os.Getenv("CCT_ENV")
	if envFile == "" {
		envFile = ".env"
	}

	// Missing files are fine; defaults apply.
	_ = godotenv.Load(envFile)
	_ = godotenv.Load(envFile + ".secret")

	return nil
}

// DataPath returns the response CSV to analyse.
// Defaults to "plant_knowledge.csv" if not set.
func DataPath() string {
	p := os.Getenv("CCT_DATA_PATH")
	if p == "" {
		return "plant_knowledge.csv"
	}
	return p
}

// IDColumn returns the name of the informant identifier column.
func IDColumn() string {
	c := os.Getenv("CCT_ID_COLUMN")
	if c == "" {
		return "Informant"
	}
	return c
}

// Draws returns retained draws per chain. Defaults to 2000.
func Draws() int {
	return positiveInt("CCT_DRAWS", 2000)
}

// Chains returns the number of independent chains. Defaults to 4.
func Chains() int {
	return positiveInt("CCT_CHAINS", 4)
}

// Tune returns warm-up iterations per chain. Defaults to 1000.
func Tune() int {
	tune, err := strconv.Atoi(os.Getenv("CCT_TUNE"))
	if err != nil || tune < 0 {
		return 1000
	}
	return tune
}

// Seed returns the sampler seed. Zero means derive one from the clock.
func Seed() uint64 {
	seed, err := strconv.ParseUint(os.Getenv("CCT_SEED"), 10, 64)
	if err != nil {
		return 0
	}
	return seed
}

// HDIProb returns the credible mass of reported intervals. Defaults to 0.94.
func HDIProb() float64 {
	p, err := strconv.ParseFloat(os.Getenv("CCT_HDI_PROB"), 64)
	if err != nil || p <= 0 || p >= 1 {
		return 0.94
	}
	return p
}

func PlotDir() string {
	d := os.Getenv("CCT_PLOT_DIR")
	if d == "" {
		return "."
	}
	return d
}

// OutputFormat returns the report format.
// Valid values: text, json, yaml
func OutputFormat() string {
	f := os.Getenv("CCT_OUTPUT_FORMAT")
	if f == "" {
		return "text"
	}
	return f
}

// LogLevel returns the log level (debug, info, warn, error).
// Defaults to "info" if not set.
func LogLevel() string {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		return "info"
	}
	return level
}

func positiveInt(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return def
	}
	return v
}
