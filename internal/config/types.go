package config

// Config is the top-level bookcat configuration, corresponding to .bookcat.yml.
type Config struct {
	BaseURL     string          `yaml:"base_url" koanf:"base_url"`
	ListPath    string          `yaml:"list_path" koanf:"list_path"`
	SessionFile string          `yaml:"session_file" koanf:"session_file"`
	LogLevel    string          `yaml:"log_level" koanf:"log_level"`
	Color       bool            `yaml:"color" koanf:"color"`
	DevServer   DevServerConfig `yaml:"devserver" koanf:"devserver"`
}

// DevServerConfig holds settings for the local reference backend.
type DevServerConfig struct {
	Port            int    `yaml:"port" koanf:"port"`
	DataDir         string `yaml:"data_dir" koanf:"data_dir"`
	SecretKey       string `yaml:"secret_key" koanf:"secret_key"`
	TokenTTLMinutes int    `yaml:"token_ttl_minutes" koanf:"token_ttl_minutes"`
	AllowAllOrigins bool   `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}
