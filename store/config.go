package store

// Config holds configuration for the Store.
type Config struct {
	// UniqueTable is the name of the unique constraints table.
	// Default: "lattice_unique_constraints"
	UniqueTable string
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		UniqueTable: "lattice_unique_constraints",
	}
}

// validate ensures config values are within acceptable bounds.
func (c *Config) validate() {
	if c.UniqueTable == "" {
		c.UniqueTable = "lattice_unique_constraints"
	}
}
