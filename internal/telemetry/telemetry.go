package telemetry

// API is how components report on their own health. SlogAPI is used in
// production, Recorder in tests.
//
// An id names the component and method reporting, ex. "client.fetch-page".
// What went wrong goes in params, never in the id.
type API interface {
	// ReportBroken is for failures that need someone to look at them.
	ReportBroken(id string, params ...any)
	// ReportWarning is for degraded results that are still served.
	ReportWarning(id string, params ...any)
	ReportDebug(msg string, params ...any)
	// ReportCount records the latest value of a count. Values are samples over
	// time and are not summed.
	ReportCount(id string, count int64)
}

// Scope returns an API that prefixes every id with namespace and a slash, so
// Scope("bestiary", api).ReportBroken("client.fetch-page") reports
// "bestiary/client.fetch-page".
func Scope(namespace string, inner API) API {
	return scope{prefix: namespace + "/", inner: inner}
}

type scope struct {
	prefix string
	inner  API
}

func (s scope) ReportBroken(id string, params ...any) {
	s.inner.ReportBroken(s.prefix+id, params...)
}

func (s scope) ReportWarning(id string, params ...any) {
	s.inner.ReportWarning(s.prefix+id, params...)
}

func (s scope) ReportDebug(msg string, params ...any) {
	s.inner.ReportDebug(s.prefix+msg, params...)
}

func (s scope) ReportCount(id string, count int64) {
	s.inner.ReportCount(s.prefix+id, count)
}
