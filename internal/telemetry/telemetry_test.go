package telemetry

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
)

func TestScope(t *testing.T) {
	rec := &Recorder{}
	scoped := Scope("bestiary", rec)

	scoped.ReportBroken("client.fetch-page", "boom")
	scoped.ReportWarning("client.parse-description")
	scoped.ReportCount("client.list-monsters", 3)
	Scope("api", scoped).ReportDebug("handlers.write")

	require.Equal(t, []Report{{Kind: "broken", ID: "bestiary/client.fetch-page", Params: []any{"boom"}}}, rec.Reports("broken"))
	require.Equal(t, "bestiary/client.parse-description", rec.Reports("warning")[0].ID)
	require.Equal(t, []any{int64(3)}, rec.Reports("count")[0].Params)
	require.Equal(t, "bestiary/api/handlers.write", rec.Reports("debug")[0].ID)
	require.Len(t, rec.Reports(""), 4)
}

func TestSlogAPI(t *testing.T) {
	var buf bytes.Buffer
	api := SlogAPI{Logger: slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))}

	api.ReportBroken("bestiary/client.fetch-page", "connection refused")
	require.Contains(t, buf.String(), "level=ERROR")
	require.Contains(t, buf.String(), "id=bestiary/client.fetch-page")
	require.Contains(t, buf.String(), "connection refused")

	buf.Reset()
	api.ReportCount("bestiary/client.list-monsters", 12)
	require.Contains(t, buf.String(), "n=12")

	buf.Reset()
	api.ReportDebug("resty.request", 1, "GET")
	require.Contains(t, buf.String(), "msg=resty.request")
}

func TestInstrumentResty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	rec := &Recorder{}
	client := resty.New()
	InstrumentResty(client, rec)

	_, err := client.R().Get(srv.URL)
	require.NoError(t, err)

	debug := rec.Reports("debug")
	require.Len(t, debug, 2)
	require.Equal(t, report_resty_request, debug[0].ID)
	require.Equal(t, report_resty_response, debug[1].ID)
	require.Equal(t, "418 I'm a teapot", debug[1].Params[2])
	require.Empty(t, rec.Reports("broken"))
}

func TestInstrumentRestyErrorIsNotReportedBroken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	rec := &Recorder{}
	client := resty.New()
	InstrumentResty(client, rec)

	_, err := client.R().Get(url)
	require.Error(t, err)

	require.Empty(t, rec.Reports("broken"))
	debug := rec.Reports("debug")
	require.Len(t, debug, 2)
	require.Equal(t, report_resty_response, debug[1].ID)
	require.Equal(t, http.MethodGet, debug[1].Params[0])
}
