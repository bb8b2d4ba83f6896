package config

const (
	// ListPathRead is the list endpoint the books page uses.
	ListPathRead = "/books/read/books/"
	// ListPathLegacy is the older list endpoint still served by some backends.
	ListPathLegacy = "/books/books/books/"
)

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:  "http://127.0.0.1:8080",
		ListPath: ListPathRead,
		LogLevel: "error",
		Color:    true,
		DevServer: DevServerConfig{
			Port:            8080,
			DataDir:         ".bookcat",
			SecretKey:       "change-me",
			TokenTTLMinutes: 30,
		},
	}
}
