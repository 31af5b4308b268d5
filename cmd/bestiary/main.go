package main

import (
	"flag"
	"log/slog"
	"net/http"
	"time"

	"bestiary-backend/internal/api"
	"bestiary-backend/internal/telemetry"
	"bestiary-backend/lib/restyutil"
	"bestiary-backend/lib/scrapers/bestiary"
	"bestiary-backend/lib/serviceutil"
	libtelemetry "bestiary-backend/lib/telemetry"
)

// newHandler builds the scraper client and the api router on top of it.
func newHandler(cfg Config, output restyutil.InstrumentOutput, tel telemetry.API) (http.Handler, error) {
	client, err := bestiary.NewClient(bestiary.ClientOptions{
		BaseUrl:          cfg.Bestiary.BaseUrl,
		UserAgent:        cfg.Bestiary.UserAgent,
		CloudflareBypass: cfg.Bestiary.CloudflareBypass,
		Output:           output,
		Telemetry:        tel,
	})
	if err != nil {
		return nil, err
	}
	return api.NewRouter(client, tel), nil
}

func main() {
	verbose := flag.Bool("v", false, "Enable verbose logging and dump upstream requests.")
	configPath := flag.String("config", "config.json5", "Path to the configuration file.")
	flag.Parse()

	libtelemetry.InitSlog(*verbose)
	ctx := serviceutil.SignalContext()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		serviceutil.Fatal("read config", err)
	}
	slog.Info("using bestiary", "base_url", cfg.Bestiary.BaseUrl)

	output, err := InitTelemetry(ctx, cfg, *verbose)
	if err != nil {
		serviceutil.Fatal("init telemetry", err)
	}

	handler, err := newHandler(cfg, output, telemetry.SlogAPI{})
	if err != nil {
		serviceutil.Fatal("init bestiary client", err)
	}

	server := serviceutil.NewHttpServer(cfg.ListenPort, handler)
	err = serviceutil.ListenAndServe(ctx, server, 10*time.Second)
	if err != nil {
		serviceutil.Fatal("serve http", err)
	}
}
