package restyutil

import (
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"

	"github.com/go-resty/resty/v2"
)

const noBody = "<no body>"

// writeHeaders writes one "<prefix>Key: value" line per header value, keys sorted.
func writeHeaders(out *strings.Builder, prefix string, headers http.Header) {
	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		for _, v := range headers[k] {
			fmt.Fprintf(out, "%s%s: %s\n", prefix, k, v)
		}
	}
}

// requestBody replays the body of req. A GET either has no GetBody at all or
// one that yields a nil reader or http.NoBody.
func requestBody(req *http.Request) string {
	if req == nil || req.GetBody == nil {
		return noBody
	}
	body, err := req.GetBody()
	if err != nil {
		return fmt.Sprintf("<unreadable body: %s>", err)
	}
	if body == nil || body == http.NoBody {
		return noBody
	}
	defer body.Close()

	contents, err := io.ReadAll(body)
	if err != nil {
		return fmt.Sprintf("<unreadable body: %s>", err)
	}
	if len(contents) == 0 {
		return noBody
	}
	return string(contents)
}

// formatExchange lays a request/response pair out like curl -v: request lines
// start with "> ", response lines with "< ", each followed by its body.
func formatExchange(res *resty.Response) string {
	var out strings.Builder

	raw := res.Request.RawRequest
	fmt.Fprintf(&out, "> %s %s\n", res.Request.Method, res.Request.URL)
	if raw != nil {
		writeHeaders(&out, "> ", raw.Header)
	}
	out.WriteString("\n")
	out.WriteString(requestBody(raw))
	out.WriteString("\n\n")

	fmt.Fprintf(&out, "< %s\n", res.Status())
	writeHeaders(&out, "< ", res.Header())
	out.WriteString("\n")
	out.Write(res.Body())

	return out.String()
}
