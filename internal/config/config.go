// Package config resolves the refiner's runtime configuration from
// environment variables, optionally seeded from a .env file.
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// DatabaseFilename is the fixed name of the refined dataset under OutputDir.
const DatabaseFilename = "refined.sqlite"

// SchemaFilename is the fixed name of the schema definition under BaseDir.
const SchemaFilename = "schema.json"

// Config holds all externally resolved inputs the pipeline consumes.
type Config struct {
	BaseDir   string // directory containing schema.json
	InputDir  string // directory of raw CSV exports
	OutputDir string // directory receiving refined.sqlite and output.json

	RefinementEncryptionKey string // symmetric key for the refined artifact
	WalletAddress           string // secret behind the derived account id; may be empty

	SchemaName        string
	SchemaVersion     string
	SchemaDescription string
	SchemaDialect     string

	PinataAPIKey    string
	PinataAPISecret string
	IPFSGatewayURL  string

	// ResetDataset removes the existing database file at run start, for
	// callers that want one run to produce one clean dataset instead of
	// appending across runs.
	ResetDataset bool
}

// Load reads an optional .env file and resolves the configuration. A missing
// .env file is not an error; values already in the environment win either way.
// The returned bool reports whether a .env file was loaded.
func Load() (*Config, bool) {
	loadedEnvFile := godotenv.Load() == nil

	cfg := &Config{
		BaseDir:   getenv("BASE_DIR", "/app"),
		InputDir:  getenv("INPUT_DIR", "/input"),
		OutputDir: getenv("OUTPUT_DIR", "/output"),

		RefinementEncryptionKey: os.Getenv("REFINEMENT_ENCRYPTION_KEY"),
		WalletAddress:           os.Getenv("WALLET_ADDRESS"),

		SchemaName:        getenv("SCHEMA_NAME", "netflix-csv"),
		SchemaVersion:     getenv("SCHEMA_VERSION", "1.0.0"),
		SchemaDescription: getenv("SCHEMA_DESCRIPTION", "Netflix viewing activity and billing history data"),
		SchemaDialect:     getenv("SCHEMA_DIALECT", "sqlite"),

		PinataAPIKey:    os.Getenv("PINATA_API_KEY"),
		PinataAPISecret: os.Getenv("PINATA_API_SECRET"),
		IPFSGatewayURL:  getenv("IPFS_GATEWAY_URL", "https://gateway.pinata.cloud/ipfs"),

		ResetDataset: getenvBool("RESET_DATASET", false),
	}
	return cfg, loadedEnvFile
}

// DatabasePath returns the fixed path of the refined SQLite artifact.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.OutputDir, DatabaseFilename)
}

// SchemaPath returns the fixed path of the schema definition file.
func (c *Config) SchemaPath() string {
	return filepath.Join(c.BaseDir, SchemaFilename)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
