package telemetry

import (
	"fmt"
)

// API is an abstraction over logging/metrics so that tests can assert on
// what a component reported.
type API interface {
	// ReportBroken reports a component that failed in a way that should be
	// addressed. `id` names the component, not the implementation detail,
	// for example "analyzer.analyze-repo". Ids are lowercase, with
	// underscores inside component names and dashes inside method names.
	ReportBroken(id string, params ...any)

	// ReportWarning reports something that is not necessarily broken but
	// may be worth investigating.
	ReportWarning(id string, params ...any)

	// ReportDebug reports information that is dropped outside of debugging.
	ReportDebug(msg string, params ...any)

	// ReportCount reports the value of a counter at the end of some unit of
	// work.
	ReportCount(id string, count int64)
}

// ScopedAPI prefixes every id with a namespace.
type ScopedAPI struct {
	namespace string
	inner     API
}

func NewScopedAPI(namespace string, inner API) ScopedAPI {
	return ScopedAPI{namespace: namespace, inner: inner}
}

func (s ScopedAPI) ReportBroken(id string, params ...any) {
	s.inner.ReportBroken(fmt.Sprintf("%s:%s", s.namespace, id), params...)
}

func (s ScopedAPI) ReportWarning(id string, params ...any) {
	s.inner.ReportWarning(fmt.Sprintf("%s:%s", s.namespace, id), params...)
}

func (s ScopedAPI) ReportDebug(msg string, params ...any) {
	s.inner.ReportDebug(fmt.Sprintf("%s: %s", s.namespace, msg), params...)
}

func (s ScopedAPI) ReportCount(id string, count int64) {
	s.inner.ReportCount(fmt.Sprintf("%s:%s", s.namespace, id), count)
}
