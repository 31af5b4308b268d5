package bestiary

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"bestiary-backend/internal/telemetry"
	"bestiary-backend/lib/restyutil"
	"bestiary-backend/lib/textutil"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const DefaultBaseUrl = "https://clayadavis.gitlab.io/osr-bestiary/bestiary/bfrpg/field-guide-1/"

const (
	report_client_fetch_page    = "client.fetch-page"
	report_client_list_monsters = "client.list-monsters"
	report_client_description   = "client.parse-description"
)

var tracer = otel.Tracer("bestiary.lib.scrapers.bestiary")

type ClientOptions struct {
	// BaseUrl defaults to DefaultBaseUrl, a trailing slash is added if missing.
	BaseUrl   string
	UserAgent string
	// CloudflareBypass wraps the transport so requests look like they come from a browser.
	CloudflareBypass bool
	// Output receives a dump of every http message when debug logging is on, can be nil.
	Output    restyutil.InstrumentOutput
	Telemetry telemetry.API
}

type Client struct {
	baseUrl string
	http    *resty.Client
	tel     telemetry.API
}

func NewClient(opts ClientOptions) (Client, error) {
	baseUrl := opts.BaseUrl
	if baseUrl == "" {
		baseUrl = DefaultBaseUrl
	}
	parsed, err := url.Parse(baseUrl)
	if err != nil {
		return Client{}, fmt.Errorf("parse base url: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return Client{}, fmt.Errorf("base url %q must be absolute", baseUrl)
	}
	if !strings.HasSuffix(baseUrl, "/") {
		baseUrl += "/"
	}

	tel := opts.Telemetry
	if tel == nil {
		tel = telemetry.SlogAPI{}
	}
	tel = telemetry.Scope("bestiary", tel)

	client := resty.New()
	if opts.UserAgent != "" {
		client.SetHeader("user-agent", opts.UserAgent)
	}
	if opts.CloudflareBypass {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}
	restyutil.InstrumentClient(client, tracer, opts.Output)
	telemetry.InstrumentResty(client, tel)

	return Client{
		baseUrl: baseUrl,
		http:    client,
		tel:     tel,
	}, nil
}

func (c Client) BaseUrl() string {
	return c.baseUrl
}

// MonsterURL is the detail page of a monster, the slug is used as a directory.
func (c Client) MonsterURL(name string) string {
	return c.baseUrl + textutil.Slugify(name) + "/"
}

// fetch issues a single GET and parses the body, a non-200 response is returned
// as-is with a nil document so callers can classify it. dumpName names the
// exchange when upstream requests are being dumped.
func (c Client) fetch(ctx context.Context, link, dumpName string) (*goquery.Document, int, error) {
	res, err := c.http.R().
		SetContext(restyutil.WithDumpName(ctx, dumpName)).
		Get(link)
	if err != nil {
		return nil, 0, err
	}
	if res.StatusCode() != http.StatusOK {
		return nil, res.StatusCode(), nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		return nil, res.StatusCode(), err
	}
	return doc, res.StatusCode(), nil
}

// FetchMonsterPage downloads and parses the detail page for name.
func (c Client) FetchMonsterPage(ctx context.Context, name string) (*goquery.Document, error) {
	slug := textutil.Slugify(name)
	link := c.MonsterURL(name)

	ctx, span := tracer.Start(ctx, "FetchMonsterPage")
	defer span.End()
	span.SetAttributes(
		attribute.String("bestiary.slug", slug),
		attribute.String("bestiary.url", link),
	)

	doc, status, err := c.fetch(ctx, link, slug)
	if status != 0 {
		span.SetAttributes(attribute.Int("bestiary.upstream_status", status))
	}
	if err != nil {
		c.tel.ReportBroken(report_client_fetch_page, err, link)
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch monster page")
		return nil, internal(err)
	}
	if status != http.StatusOK {
		span.SetStatus(codes.Error, "monster page not found")
		return nil, notFound(name, link)
	}
	return doc, nil
}

// GetMonster looks up a monster by its free-text name.
func (c Client) GetMonster(ctx context.Context, name string) (Record, error) {
	ctx, span := tracer.Start(ctx, "GetMonster")
	defer span.End()

	doc, err := c.FetchMonsterPage(ctx, name)
	if err != nil {
		return Record{}, err
	}

	description, found := ParseDescription(doc)
	if !found {
		c.tel.ReportWarning(report_client_description, "description missing", name)
	}

	return MapRecord(name, ParseStats(doc), description), nil
}

// ListMonsters lists every monster linked from the bestiary index.
func (c Client) ListMonsters(ctx context.Context) ([]Entry, error) {
	ctx, span := tracer.Start(ctx, "ListMonsters")
	defer span.End()

	doc, status, err := c.fetch(ctx, c.baseUrl, "index")
	if status != 0 {
		span.SetAttributes(attribute.Int("bestiary.upstream_status", status))
	}
	if err != nil {
		c.tel.ReportBroken(report_client_list_monsters, err, c.baseUrl)
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch index")
		return nil, internal(err)
	}
	if status != http.StatusOK {
		c.tel.ReportBroken(report_client_list_monsters, "unexpected status", status)
		span.SetStatus(codes.Error, "index unavailable")
		return nil, &Error{
			Kind:   KindInternal,
			Detail: "No se pudo acceder al bestiario principal.",
		}
	}

	entries := ParseListing(ctx, doc)
	span.SetAttributes(attribute.Int("bestiary.entries", len(entries)))
	c.tel.ReportCount(report_client_list_monsters, int64(len(entries)))
	return entries, nil
}
