package gumtree

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PhaseName identifies one of the pipeline's measured phases.
type PhaseName string

// Phase names, in the order they run, per SPEC_FULL.md §6's profile table.
const (
	PhaseParse    PhaseName = "parse"
	PhaseTopDown  PhaseName = "top-down"
	PhaseBottomUp PhaseName = "bottom-up"
	PhaseAnnotate PhaseName = "annotate"
	PhaseEncode   PhaseName = "encode"
)

// PhaseStat is one phase's measured duration and counters.
type PhaseStat struct {
	Phase     PhaseName
	Duration  time.Duration
	NodeCount int
	MapSize   int
}

// Profile collects per-phase measurements across one diff run and exposes
// them both as a printable table (component L) and as Prometheus collectors
// for scrape-based profiling of repeated runs, per SPEC_FULL.md §6.
// Grounded on the reference codebase's internal/analyzers/common formatter
// (go-pretty table rendering) and internal/observability/prometheus.go
// (direct client_golang registration, no OpenTelemetry).
type Profile struct {
	stats []PhaseStat

	registry       *prometheus.Registry
	durationGauge  *prometheus.GaugeVec
	nodeCountGauge *prometheus.GaugeVec
	mapSizeGauge   *prometheus.GaugeVec
}

// NewProfile creates an empty Profile with its Prometheus collectors
// registered against a fresh registry (one Profile per run avoids collector
// registration conflicts across repeated CLI invocations in the same
// process, as with the reference codebase's PrometheusHandler).
func NewProfile() *Profile {
	registry := prometheus.NewRegistry()

	durationGauge := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "gumtree",
		Name:      "phase_duration_seconds",
		Help:      "Wall-clock duration of a diff pipeline phase.",
	}, []string{"phase"})

	nodeCountGauge := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "gumtree",
		Name:      "phase_node_count",
		Help:      "Node count observed at the end of a diff pipeline phase.",
	}, []string{"phase"})

	mapSizeGauge := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "gumtree",
		Name:      "phase_mapping_size",
		Help:      "Mapping size observed at the end of a diff pipeline phase.",
	}, []string{"phase"})

	registry.MustRegister(durationGauge, nodeCountGauge, mapSizeGauge)

	return &Profile{
		registry:       registry,
		durationGauge:  durationGauge,
		nodeCountGauge: nodeCountGauge,
		mapSizeGauge:   mapSizeGauge,
	}
}

// Record stores one phase's measurement and updates its Prometheus gauges.
func (p *Profile) Record(stat PhaseStat) {
	p.stats = append(p.stats, stat)

	label := prometheus.Labels{"phase": string(stat.Phase)}
	p.durationGauge.With(label).Set(stat.Duration.Seconds())
	p.nodeCountGauge.With(label).Set(float64(stat.NodeCount))
	p.mapSizeGauge.With(label).Set(float64(stat.MapSize))
}

// Stats returns the recorded phase measurements in recording order.
func (p *Profile) Stats() []PhaseStat {
	return p.stats
}

// Handler returns an http.Handler serving the profile's collectors on a
// Prometheus scrape endpoint (wired to --metrics-addr at the CLI layer).
func (p *Profile) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

// RunProfiled runs the same pipeline as Diff, timing each phase into a
// Profile for the `profile` CLI action. t1/t2 must already be parsed; parse
// time is not measured, so the profile has no parse row.
func RunProfiled(t1, t2 *Tree, params Params) (*Mapping, []Action, *Profile, error) {
	profile := NewProfile()

	m := NewMapping(t1, t2)

	start := time.Now()
	TopDown(t1, t2, m, params)
	profile.Record(PhaseStat{Phase: PhaseTopDown, Duration: time.Since(start), NodeCount: t1.Len() + t2.Len(), MapSize: len(m.Pairs())})

	start = time.Now()
	BottomUp(t1, t2, m, params)
	profile.Record(PhaseStat{Phase: PhaseBottomUp, Duration: time.Since(start), NodeCount: t1.Len() + t2.Len(), MapSize: len(m.Pairs())})

	start = time.Now()
	Annotate(t1, t2, m)
	profile.Record(PhaseStat{Phase: PhaseAnnotate, Duration: time.Since(start), NodeCount: t1.Len() + t2.Len(), MapSize: len(m.Pairs())})

	start = time.Now()

	actions, err := GenerateEditScript(t1, t2, m)
	if err != nil {
		return nil, nil, nil, err
	}

	profile.Record(PhaseStat{Phase: PhaseEncode, Duration: time.Since(start), NodeCount: t1.Len() + t2.Len(), MapSize: len(actions)})

	return m, actions, profile, nil
}

// WriteTable renders the profile as a go-pretty table: one row per phase,
// duration and node/mapping-size counters, per SPEC_FULL.md §6.
func (p *Profile) WriteTable(w io.Writer) error {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"Phase", "Duration", "Nodes", "Mapping size"})

	for _, s := range p.stats {
		tbl.AppendRow(table.Row{string(s.Phase), s.Duration, s.NodeCount, s.MapSize})
	}

	tbl.Render()

	if _, err := fmt.Fprintln(w); err != nil {
		return fmt.Errorf("gumtree: write profile table trailer: %w", err)
	}

	return nil
}
