// Package service builds participant reports. Every call reads the
// participant file afresh; nothing is cached between calls.
package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/okian/cohort/internal/domain/aggregate"
	"github.com/okian/cohort/internal/domain/participant"
	"github.com/okian/cohort/pkg/logger"
	"github.com/okian/cohort/pkg/metrics"
	"github.com/samber/lo"
)

// Service implements the report operations used by the HTTP API and the
// render command.
type Service struct {
	mu sync.RWMutex

	// Configuration
	dataFile            string
	referenceEthnicity  string
	confidenceAllowList []string
	skillAreas          []aggregate.SkillArea

	// State
	builds       int
	failedBuilds int
	lastRows     int
	lastBuiltAt  time.Time
	lastReportID string

	logger logger.Logger
	now    func() time.Time
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithDataFile sets the participant CSV path.
func WithDataFile(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.dataFile = path
		}
	}
}

// WithReferenceEthnicity sets the value the BIPOC percentage compares against.
func WithReferenceEthnicity(ref string) Option {
	return func(s *Service) {
		if ref != "" {
			s.referenceEthnicity = ref
		}
	}
}

// WithConfidenceAllowList sets the Confidence values that count as increased.
func WithConfidenceAllowList(values []string) Option {
	return func(s *Service) {
		if len(values) > 0 {
			s.confidenceAllowList = values
		}
	}
}

// WithSkillAreas sets the assessed areas in report order.
func WithSkillAreas(names []string) Option {
	return func(s *Service) {
		if len(names) > 0 {
			s.skillAreas = lo.Map(names, func(n string, _ int) aggregate.SkillArea { return aggregate.NewSkillArea(n) })
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides time.Now for report timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		dataFile:            "participants.csv",
		referenceEthnicity:  "White",
		confidenceAllowList: []string{"Slightly increased", "Increased", "Significantly increased"},
		skillAreas:          aggregate.DefaultSkillAreas(),
		now:                 time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	s.logger = s.logger.Named("report")
	return s
}

// load reads the participant file and records load metrics.
func (s *Service) load(ctx context.Context) (*participant.Table, error) {
	start := time.Now()
	t, err := participant.Load(ctx, s.dataFile)
	if err != nil {
		s.logger.Error(ctx, "failed to load participant file",
			logger.String("file", s.dataFile), logger.String("kind", ErrorKind(err)), logger.Error(err))
		return nil, err
	}
	latency := time.Since(start)
	metrics.RecordLoad(t.Len(), float64(latency.Milliseconds()))
	s.logger.Debug(ctx, "participant file loaded",
		logger.String("file", s.dataFile), logger.Int("rows", t.Len()), logger.Duration("latency", latency))

	s.mu.Lock()
	s.lastRows = t.Len()
	s.mu.Unlock()
	return t, nil
}

// Build loads the file once and computes every section. A failing section
// is reported inside the returned Report and does not stop the others;
// only a failure to load the file fails the whole build.
func (s *Service) Build(ctx context.Context) (*Report, error) {
	start := time.Now()
	t, err := s.load(ctx)
	if err != nil {
		metrics.RecordReportBuildError()
		s.mu.Lock()
		s.failedBuilds++
		s.mu.Unlock()
		return nil, err
	}

	r := &Report{
		ID:          uuid.NewString(),
		GeneratedAt: s.now().UTC(),
		Source:      s.dataFile,
		Rows:        t.Len(),
	}
	builders := s.builders()
	for _, name := range SectionNames() {
		r.Sections = append(r.Sections, s.section(ctx, name, builders[name], t))
	}

	metrics.RecordReportBuild(float64(time.Since(start).Milliseconds()))
	s.mu.Lock()
	s.builds++
	s.lastBuiltAt = r.GeneratedAt
	s.lastReportID = r.ID
	s.mu.Unlock()

	s.logger.Info(ctx, "report built",
		logger.String("report_id", r.ID), logger.Int("rows", r.Rows), logger.Int("failed_sections", r.Failures()))
	return r, nil
}

// section runs one builder and converts its error into section fields.
func (s *Service) section(ctx context.Context, name string, build builder, t *participant.Table) Section {
	sec, err := build(t)
	sec.Name = name
	sec.Title = sectionTitles[name]
	if err != nil {
		kind := ErrorKind(err)
		metrics.RecordSectionFailure(name, kind)
		s.logger.Warn(ctx, "report section failed",
			logger.String("section", name), logger.String("kind", kind), logger.Error(err))
		return Section{Name: name, Title: sec.Title, Error: err.Error(), ErrorKind: kind}
	}
	return sec
}

// Section loads the file and computes a single named section. Unlike
// Build, a section failure is returned as an error.
func (s *Service) Section(ctx context.Context, name string) (Section, error) {
	build, ok := s.builders()[name]
	if !ok {
		return Section{}, ErrUnknownSection
	}
	t, err := s.load(ctx)
	if err != nil {
		return Section{}, err
	}
	sec, err := build(t)
	if err != nil {
		metrics.RecordSectionFailure(name, ErrorKind(err))
		return Section{}, err
	}
	sec.Name = name
	sec.Title = sectionTitles[name]
	return sec, nil
}

// Countries computes the country distribution section.
func (s *Service) Countries(ctx context.Context) (Section, error) {
	return s.Section(ctx, SectionCountries)
}

// Ethnicity computes the ethnicity distribution and BIPOC percentage.
func (s *Service) Ethnicity(ctx context.Context) (Section, error) {
	return s.Section(ctx, SectionEthnicity)
}

// Confidence computes the school by confidence cross tabulation.
func (s *Service) Confidence(ctx context.Context) (Section, error) {
	return s.Section(ctx, SectionConfidence)
}

// Skills computes the before/after skill self-assessment.
func (s *Service) Skills(ctx context.Context) (Section, error) {
	return s.Section(ctx, SectionSkills)
}

// Participants lists every participant with their contact email.
func (s *Service) Participants(ctx context.Context) ([]participant.Entry, error) {
	t, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return participant.Directory(t)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"dataFile":     s.dataFile,
		"builds":       s.builds,
		"failedBuilds": s.failedBuilds,
		"lastRows":     s.lastRows,
		"skillAreas":   len(s.skillAreas),
	}
	if !s.lastBuiltAt.IsZero() {
		stats["lastBuiltAt"] = s.lastBuiltAt.Format(time.RFC3339)
		stats["lastReportID"] = s.lastReportID
	}
	return stats
}
