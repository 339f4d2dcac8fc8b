package config

import "os"

// LoadTestConfig loads configuration for integration tests from environment variables.
// When TEST_DATABASE_URI is not set the returned config has an empty URI, which the
// integration tests use as the signal to skip.
func LoadTestConfig() *Config {
	cfg := &Config{}
	cfg.Database.URI = os.Getenv("TEST_DATABASE_URI")

	cfg.Database.DBName = os.Getenv("TEST_DATABASE_NAME")
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = "technotes_test"
	}

	cfg.Hashing.BcryptCost = 4 // bcrypt.MinCost, keeps hashing fast in tests
	return cfg
}
