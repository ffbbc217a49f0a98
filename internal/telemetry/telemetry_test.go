package telemetry

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

type recorder struct {
	broken   []string
	warnings []string
	counts   map[string]int64
}

func (r *recorder) ReportBroken(id string, params ...any)  { r.broken = append(r.broken, id) }
func (r *recorder) ReportWarning(id string, params ...any) { r.warnings = append(r.warnings, id) }
func (r *recorder) ReportDebug(msg string, params ...any)  {}
func (r *recorder) ReportCount(id string, count int64)     { r.counts[id] = count }

func TestScopedAPI(t *testing.T) {
	rec := &recorder{counts: map[string]int64{}}
	scoped := NewScopedAPI("analyzer", rec)

	scoped.ReportBroken("analyze-repo")
	scoped.ReportWarning("consistency")
	scoped.ReportCount("active", 3)

	require.Equal(t, []string{"analyzer:analyze-repo"}, rec.broken)
	require.Equal(t, []string{"analyzer:consistency"}, rec.warnings)
	require.Equal(t, map[string]int64{"analyzer:active": 3}, rec.counts)
}

func TestSlogAPI(t *testing.T) {
	var buf bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer slog.SetDefault(previous)

	api := SlogAPI{}
	api.ReportWarning("analyzer.consistency", 3, KV{Key: "total", Value: 4})
	api.ReportCount("analyzer.active", 2)

	out := buf.String()
	require.Contains(t, out, "id=analyzer.consistency")
	require.Contains(t, out, "params.0=3")
	require.Contains(t, out, "total=4")
	require.Contains(t, out, "n=2")
}
