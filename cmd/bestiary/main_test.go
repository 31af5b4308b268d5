package main

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bestiary-backend/internal/telemetry"
	libtelemetry "bestiary-backend/lib/telemetry"

	"github.com/stretchr/testify/require"
)

func TestVerboseServiceDumpsUpstreamRequests(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() {
		slog.SetDefault(previous)
	})
	libtelemetry.InitSlog(true)

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/guide/":
			w.Write([]byte(`<div class="postlist"><a href="owlbear/">Owlbear</a></div>`))
		case "/guide/owlbear/":
			w.Write([]byte(`<table><tr><td>XP:</td><td>35</td></tr></table>`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer upstream.Close()

	cfg := defaultConfig()
	cfg.Bestiary.BaseUrl = upstream.URL + "/guide/"
	cfg.Telemetry.DumpDir = filepath.Join(t.TempDir(), "resty")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	output, err := InitTelemetry(ctx, cfg, true)
	require.NoError(t, err)
	require.NotNil(t, output)

	handler, err := newHandler(cfg, output, telemetry.SlogAPI{})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/consultar-enemigo/", strings.NewReader(`{"nombre": "Owlbear"}`))
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)
	require.Equal(t, http.StatusOK, res.Code)
	require.Contains(t, res.Body.String(), `"xp":35`)

	req = httptest.NewRequest(http.MethodGet, "/listar-enemigos/", nil)
	res = httptest.NewRecorder()
	handler.ServeHTTP(res, req)
	require.Equal(t, http.StatusOK, res.Code)

	dump, err := os.ReadFile(filepath.Join(cfg.Telemetry.DumpDir, "0001-owlbear.http"))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(dump), "> GET "+upstream.URL+"/guide/owlbear/\n"))
	require.Contains(t, string(dump), "< 200 OK")

	_, err = os.Stat(filepath.Join(cfg.Telemetry.DumpDir, "0002-index.http"))
	require.NoError(t, err)
}

func TestQuietServiceHasNoDumps(t *testing.T) {
	cfg := defaultConfig()
	cfg.Telemetry.DumpDir = filepath.Join(t.TempDir(), "resty")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	output, err := InitTelemetry(ctx, cfg, false)
	require.NoError(t, err)
	require.Nil(t, output)

	_, err = os.Stat(cfg.Telemetry.DumpDir)
	require.True(t, os.IsNotExist(err))
}
