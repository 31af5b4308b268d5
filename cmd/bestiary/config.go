package main

import (
	"fmt"
	"os"
	"strconv"

	"bestiary-backend/lib/configutil"
	"bestiary-backend/lib/scrapers/bestiary"
	"bestiary-backend/lib/telemetry"
)

type BestiaryConfig struct {
	BaseUrl          string `json:"base_url"`
	UserAgent        string `json:"user_agent"`
	CloudflareBypass bool   `json:"cloudflare_bypass"`
}

type TelemetryConfig struct {
	Otlp telemetry.OtlpConfig `json:"otlp"`
	// DumpDir receives a dump of every upstream request when running with -v.
	DumpDir string `json:"dump_dir"`
}

type Config struct {
	ListenPort int             `json:"listen_port"`
	Bestiary   BestiaryConfig  `json:"bestiary"`
	Telemetry  TelemetryConfig `json:"telemetry"`
}

func defaultConfig() Config {
	return Config{
		ListenPort: 8000,
		Bestiary: BestiaryConfig{
			BaseUrl: bestiary.DefaultBaseUrl,
		},
		Telemetry: TelemetryConfig{
			DumpDir: ".dev/resty/bestiary",
		},
	}
}

// LoadConfig reads path and its .local override over the defaults, then
// applies BESTIARY_* environment overrides. .env is loaded first when present.
func LoadConfig(path string) (Config, error) {
	cfg, err := configutil.Read(path, defaultConfig())
	if err != nil {
		return Config{}, err
	}

	err = configutil.LoadDotenv(".env")
	if err != nil {
		return Config{}, err
	}
	if port, ok := os.LookupEnv("BESTIARY_LISTEN_PORT"); ok {
		n, err := strconv.Atoi(port)
		if err != nil {
			return Config{}, fmt.Errorf("BESTIARY_LISTEN_PORT: %w", err)
		}
		cfg.ListenPort = n
	}
	if baseUrl := os.Getenv("BESTIARY_BASE_URL"); baseUrl != "" {
		cfg.Bestiary.BaseUrl = baseUrl
	}
	if endpoint := os.Getenv("BESTIARY_OTLP_ENDPOINT"); endpoint != "" {
		cfg.Telemetry.Otlp.Endpoint = endpoint
	}

	return cfg, nil
}
