package session

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"sort"
	"time"

	"github.com/KaramelBytes/pipeview/internal/demo"
	"github.com/KaramelBytes/pipeview/internal/lead"
	"github.com/KaramelBytes/pipeview/internal/pipeline"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNoData means no state could be established at all.
var ErrNoData = errors.New("no lead data available")

// Outcome says where a load's records came from.
type Outcome int

const (
	// Loaded means the configured source was read.
	Loaded Outcome = iota
	// FellBack means the source failed and synthetic records were used.
	FellBack
	// Demo means synthetic records were requested.
	Demo
)

func (o Outcome) String() string {
	switch o {
	case Loaded:
		return "loaded"
	case FellBack:
		return "fell_back"
	case Demo:
		return "demo"
	}
	return "unknown"
}

// LoadResult describes one ingestion.
type LoadResult struct {
	ID      string
	Outcome Outcome
	Source  string
	Count   int
	// Reason is the source failure behind a FellBack outcome.
	Reason error
}

// Options configure a Session.
type Options struct {
	Source      string
	Charset     string
	DemoCount   int
	Demo        bool
	NoFallback  bool
	HTTPTimeout time.Duration
	HTTPClient  *http.Client
	Logger      *zap.Logger
	Now         func() time.Time

	// WatchInterval is the minimum spacing between reloads in Watch.
	WatchInterval time.Duration
}

// Session holds the mutable pipeline state.
type Session struct {
	opts      Options
	client    *http.Client
	log       *zap.Logger
	now       func() time.Time
	demoMode  bool
	loaded    bool
	raw       []lead.Record
	norm      []lead.Normalized
	stages    []string
	params    pipeline.Params
	threshold int
	selected  string
}

// New returns an empty session with default filters and threshold.
func New(opts Options) *Session {
	if opts.DemoCount <= 0 {
		opts.DemoCount = demo.DefaultCount
	}
	if opts.HTTPTimeout <= 0 {
		opts.HTTPTimeout = 20 * time.Second
	}
	if opts.WatchInterval <= 0 {
		opts.WatchInterval = DefaultWatchInterval
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: opts.HTTPTimeout}
	}
	log := opts.Logger
	if log == nil {
		log = zap.L()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Session{
		opts:      opts,
		client:    client,
		log:       log.Named("session"),
		now:       now,
		demoMode:  opts.Demo,
		raw:       []lead.Record{},
		norm:      []lead.Normalized{},
		params:    pipeline.DefaultParams(),
		threshold: pipeline.DefaultStalledThreshold,
	}
}

// Load replaces the raw set from the source, or from the generator in demo
// mode. A source failure switches the session to demo mode and is reported
// as a FellBack result rather than an error, unless NoFallback is set.
func (s *Session) Load(ctx context.Context) (LoadResult, error) {
	res := LoadResult{ID: uuid.NewString(), Source: s.opts.Source}
	log := s.log.With(zap.String("load_id", res.ID), zap.String("source", s.opts.Source))

	if s.demoMode {
		rows := demo.Generate(s.opts.DemoCount, s.now())
		s.Replace(rows)
		res.Outcome, res.Count = Demo, len(rows)
		log.Info("loaded synthetic leads", zap.Int("count", res.Count))
		return res, nil
	}

	rows, err := Fetch(ctx, s.client, s.opts.Source, s.opts.Charset)
	if err == nil {
		s.Replace(rows)
		res.Outcome, res.Count = Loaded, len(rows)
		log.Info("loaded leads", zap.Int("count", res.Count))
		return res, nil
	}

	if s.opts.NoFallback {
		log.Error("ingestion failed", zap.Error(err))
		if !s.loaded {
			return res, errors.Join(ErrNoData, err)
		}
		return res, err
	}

	log.Warn("ingestion failed, using synthetic leads", zap.Error(err), zap.Int("count", s.opts.DemoCount))
	s.demoMode = true
	rows = demo.Generate(s.opts.DemoCount, s.now())
	if len(rows) == 0 {
		return res, errors.Join(ErrNoData, err)
	}
	s.Replace(rows)
	res.Outcome, res.Count, res.Reason = FellBack, len(rows), err
	return res, nil
}

// Replace swaps in a new raw set, renormalizes it, rebuilds the stage catalog
// and resets the stage filter if its stage no longer exists.
func (s *Session) Replace(rows []lead.Record) {
	s.raw = slices.Clone(rows)
	if s.raw == nil {
		s.raw = []lead.Record{}
	}
	s.norm = pipeline.Normalize(s.raw)
	s.stages = catalog(s.raw)
	s.loaded = true
	if s.params.Stage != pipeline.AllStages && !slices.Contains(s.stages, s.params.Stage) {
		s.params.Stage = pipeline.AllStages
	}
}

func catalog(rows []lead.Record) []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, r := range rows {
		st := r.Stage
		if st == "" {
			st = "Unknown"
		}
		if _, ok := seen[st]; ok {
			continue
		}
		seen[st] = struct{}{}
		out = append(out, st)
	}
	sort.Strings(out)
	return out
}

// DemoMode reports whether loads use the generator.
func (s *Session) DemoMode() bool { return s.demoMode }

// SetDemoMode toggles demo mode for subsequent loads.
func (s *Session) SetDemoMode(on bool) { s.demoMode = on }

// Raw returns a copy of the raw set.
func (s *Session) Raw() []lead.Record { return slices.Clone(s.raw) }

// Normalized returns the current normalized set. Callers must not modify it.
func (s *Session) Normalized() []lead.Normalized { return s.norm }

// Stages returns the sorted stage catalog.
func (s *Session) Stages() []string { return slices.Clone(s.stages) }

// Params returns the current filter parameters.
func (s *Session) Params() pipeline.Params { return s.params }

// SetQuery sets the free-text filter.
func (s *Session) SetQuery(q string) { s.params.Query = q }

// SetStage selects a stage from the catalog, or pipeline.AllStages.
// Unknown stages leave the selector unchanged and return false.
func (s *Session) SetStage(stage string) bool {
	if stage == pipeline.AllStages || slices.Contains(s.stages, stage) {
		s.params.Stage = stage
		return true
	}
	return false
}

// Threshold returns the stalled threshold in days.
func (s *Session) Threshold() int { return s.threshold }

// SetThreshold sets the stalled threshold in days.
func (s *Session) SetThreshold(days int) { s.threshold = days }

// Filtered applies the current parameters to the normalized set.
func (s *Session) Filtered() []lead.Normalized {
	return pipeline.Filter(s.norm, s.params)
}

// Snapshot computes the full derived view from current state.
func (s *Session) Snapshot(opt pipeline.ProjectOptions) pipeline.Snapshot {
	return pipeline.Compute(s.norm, s.params, s.threshold, opt)
}

// Today is the session clock's ISO date.
func (s *Session) Today() string { return lead.Today(s.now()) }

// Lookup returns the first raw record with the given lead ID.
func (s *Session) Lookup(id string) (lead.Record, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return lead.Record{}, false
	}
	return s.raw[i], true
}

func (s *Session) indexOf(id string) int {
	return slices.IndexFunc(s.raw, func(r lead.Record) bool { return r.LeadID == id })
}
