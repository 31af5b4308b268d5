package restyutil

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"path"
	"strings"
	"sync/atomic"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/semconv/v1.13.0/httpconv"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentOutput receives one dump per outbound http exchange.
type InstrumentOutput interface {
	Write(name string, contents string)
}

type dumpNameKey struct{}
type dumpFileKey struct{}

// WithDumpName sets the name that requests made with ctx are dumped under,
// ex. the slug of the monster being fetched. Without it the last segment of
// the request path is used.
func WithDumpName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, dumpNameKey{}, name)
}

func dumpName(ctx context.Context, rawUrl string) string {
	name, _ := ctx.Value(dumpNameKey{}).(string)
	if name != "" {
		return name
	}
	u, err := url.Parse(rawUrl)
	if err != nil {
		return "request"
	}
	segment := path.Base(strings.Trim(u.Path, "/"))
	if segment == "." || segment == "/" || segment == "" {
		return "root"
	}
	return segment
}

type instrumentCtx struct {
	output InstrumentOutput
	tracer trace.Tracer
	count  *atomic.Uint64
}

// InstrumentClient opens a client span around every request. When output is
// non-nil and debug logging is on, each exchange is also written to output as
// "<sequence>-<name>.http".
//
// tracer defaults to the global "resty" tracer when nil.
func InstrumentClient(client *resty.Client, tracer trace.Tracer, output InstrumentOutput) {
	if tracer == nil {
		tracer = otel.Tracer("resty")
	}

	i := instrumentCtx{output: output, tracer: tracer, count: &atomic.Uint64{}}
	client.OnBeforeRequest(i.onBeforeRequest)
	client.OnAfterResponse(i.onAfterResponse)
	client.OnError(i.onError)
}

func (i instrumentCtx) onBeforeRequest(_ *resty.Client, req *resty.Request) error {
	ctx, _ := i.tracer.Start(
		req.Context(),
		"http "+req.Method,
		trace.WithSpanKind(trace.SpanKindClient),
	)

	if i.output != nil && slog.Default().Enabled(ctx, slog.LevelDebug) {
		file := fmt.Sprintf("%04d-%s.http", i.count.Add(1), dumpName(ctx, req.URL))
		slog.DebugContext(ctx, "upstream request", "method", req.Method, "url", req.URL, "dump", file)
		ctx = context.WithValue(ctx, dumpFileKey{}, file)
	}

	req.SetContext(ctx)
	return nil
}

func (i instrumentCtx) onAfterResponse(_ *resty.Client, res *resty.Response) error {
	ctx := res.Request.Context()
	span := trace.SpanFromContext(ctx)
	defer span.End()

	// RawRequest is only populated once the request has been sent
	span.SetAttributes(httpconv.ClientRequest(res.Request.RawRequest)...)
	span.SetAttributes(httpconv.ClientResponse(res.RawResponse)...)
	if res.StatusCode() >= 400 {
		span.SetStatus(codes.Error, res.Status())
	}

	file, ok := ctx.Value(dumpFileKey{}).(string)
	if !ok {
		return nil
	}
	span.SetAttributes(attribute.String("http.dump", file))
	i.output.Write(file, formatExchange(res))
	slog.DebugContext(ctx, "upstream response", "status", res.StatusCode(), "dump", file)

	return nil
}

func (i instrumentCtx) onError(req *resty.Request, err error) {
	ctx := req.Context()
	span := trace.SpanFromContext(ctx)
	defer span.End()

	span.RecordError(err)
	span.SetStatus(codes.Error, "request failed")
	if req.RawRequest != nil {
		span.SetAttributes(httpconv.ClientRequest(req.RawRequest)...)
	}

	file, _ := ctx.Value(dumpFileKey{}).(string)
	slog.DebugContext(ctx, "upstream request failed", "method", req.Method, "url", req.URL, "dump", file, "err", err)
}
