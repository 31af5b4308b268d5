package api

import (
	"net/http"

	"bestiary-backend/internal/telemetry"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// NewRouter registers the API handlers, wrapped with tracing and access logs.
func NewRouter(b Bestiary, tel telemetry.API) http.Handler {
	mux := http.NewServeMux()
	h := NewHandlers(b, telemetry.Scope("api", tel))

	mux.HandleFunc("GET /{$}", h.Root)
	mux.HandleFunc("POST /consultar-enemigo/{$}", h.QueryMonster)
	mux.HandleFunc("GET /listar-enemigos/{$}", h.ListMonsters)

	return otelhttp.NewHandler(accessLog(mux), "bestiary.api")
}
