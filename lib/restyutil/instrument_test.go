package restyutil

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
)

type memoryOutput struct {
	mutex sync.Mutex
	dumps map[string]string
}

func (o *memoryOutput) Write(name string, contents string) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	if o.dumps == nil {
		o.dumps = map[string]string{}
	}
	o.dumps[name] = contents
}

func withDebugLogging(t testing.TB) {
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))
	t.Cleanup(func() {
		slog.SetDefault(previous)
	})
}

func newUpstream(t testing.TB) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		w.Header().Set("X-Test", "yes")
		w.Write([]byte("<html>goblin</html>"))
		w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestInstrumentClientDumpsGet(t *testing.T) {
	withDebugLogging(t)
	srv := newUpstream(t)

	out := &memoryOutput{}
	client := resty.New()
	InstrumentClient(client, nil, out)

	var res *resty.Response
	require.NotPanics(t, func() {
		var err error
		res, err = client.R().Get(srv.URL + "/bestiary/goblin/")
		require.NoError(t, err)
	})
	require.Equal(t, http.StatusOK, res.StatusCode())

	require.Len(t, out.dumps, 1)
	dump, ok := out.dumps["0001-goblin.http"]
	require.True(t, ok, "dumps: %v", out.dumps)
	require.True(t, strings.HasPrefix(dump, "> GET "+srv.URL+"/bestiary/goblin/\n"))
	require.Contains(t, dump, "\n"+noBody+"\n")
	require.Contains(t, dump, "< 200 OK\n")
	require.Contains(t, dump, "< X-Test: yes\n")
	require.True(t, strings.HasSuffix(dump, "<html>goblin</html>"))
}

func TestInstrumentClientDumpsBody(t *testing.T) {
	withDebugLogging(t)
	srv := newUpstream(t)

	out := &memoryOutput{}
	client := resty.New()
	InstrumentClient(client, nil, out)

	_, err := client.R().SetBody(`{"nombre": "Goblin"}`).Post(srv.URL)
	require.NoError(t, err)

	dump, ok := out.dumps["0001-root.http"]
	require.True(t, ok, "dumps: %v", out.dumps)
	require.True(t, strings.HasPrefix(dump, "> POST "+srv.URL+"\n"))
	require.Contains(t, dump, `{"nombre": "Goblin"}`)
}

func TestInstrumentClientDumpName(t *testing.T) {
	withDebugLogging(t)
	srv := newUpstream(t)

	out := &memoryOutput{}
	client := resty.New()
	InstrumentClient(client, nil, out)

	ctx := WithDumpName(context.Background(), "index")
	_, err := client.R().SetContext(ctx).Get(srv.URL + "/bestiary/")
	require.NoError(t, err)
	_, err = client.R().Get(srv.URL + "/bestiary/owlbear/")
	require.NoError(t, err)

	require.Contains(t, out.dumps, "0001-index.http")
	require.Contains(t, out.dumps, "0002-owlbear.http")
}

func TestInstrumentClientSkipsDumpsWithoutDebug(t *testing.T) {
	srv := newUpstream(t)

	out := &memoryOutput{}
	client := resty.New()
	InstrumentClient(client, nil, out)

	_, err := client.R().Get(srv.URL)
	require.NoError(t, err)
	require.Empty(t, out.dumps)

	client = resty.New()
	InstrumentClient(client, nil, nil)
	_, err = client.R().Get(srv.URL)
	require.NoError(t, err)
}

func TestRequestBody(t *testing.T) {
	require.Equal(t, noBody, requestBody(nil))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	require.Equal(t, noBody, requestBody(req))

	req.GetBody = func() (io.ReadCloser, error) { return nil, nil }
	require.Equal(t, noBody, requestBody(req))

	req.GetBody = func() (io.ReadCloser, error) { return http.NoBody, nil }
	require.Equal(t, noBody, requestBody(req))

	req.GetBody = func() (io.ReadCloser, error) { return io.NopCloser(strings.NewReader("abc")), nil }
	require.Equal(t, "abc", requestBody(req))
}

func TestFilesystemOutput(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "resty")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stale.http"), nil, 0o600))

	out, err := NewFilesystemOutput(dir)
	require.NoError(t, err)
	require.Equal(t, dir, out.Dir())

	out.Write("0001-goblin.http", "contents")
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	contents, err := os.ReadFile(filepath.Join(dir, "0001-goblin.http"))
	require.NoError(t, err)
	require.Equal(t, "contents", string(contents))
}
