// Package sampledata generates synthetic participant files for demos and
// load tests of the report.
package sampledata

import (
	"context"
	"crypto/rand"
	"encoding/csv"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"

	"github.com/okian/cohort/internal/domain/aggregate"
	"github.com/okian/cohort/internal/domain/participant"
	"github.com/okian/cohort/pkg/logger"
	"github.com/samber/lo"
)

// Score bounds of the self-assessment scale.
const (
	minScore = 1
	maxScore = 5
)

// Weighted pools; repeats bias the draw.
var (
	firstNames  = []string{"Ada", "Alan", "Grace", "Katherine", "Tim", "Margaret", "Linus", "Barbara", "Dennis", "Radia", "Ken", "Frances"}
	lastNames   = []string{"Lovelace", "Turing", "Hopper", "Johnson", "Berners-Lee", "Hamilton", "Torvalds", "Liskov", "Ritchie", "Perlman", "Thompson", "Allen"}
	countries   = []string{"UK", "UK", "UK", "UK", "Ireland", "France", "Nigeria", "India", "Poland", "Jamaica"}
	ethnicities = []string{"White", "White", "White", "Black", "Asian", "Asian", "Mixed", "Other"}
	schools     = []string{"Northfield Academy", "Riverside High", "St Mary's College", "Westgate School", "Hillcrest Academy"}
	confidence  = []string{
		"Significantly decreased", "Decreased", "No change", "No change",
		"Slightly increased", "Increased", "Increased", "Significantly increased",
	}
)

// Config controls generation.
type Config struct {
	Participants int      // Number of rows to generate
	Workers      int      // Concurrent generators
	SkillAreas   []string // Assessed areas, in column order
	BlankRate    float64  // Share of categorical cells left blank, 0-1
}

// DefaultConfig returns a config for a small cohort.
func DefaultConfig() Config {
	return Config{
		Participants: 120,
		Workers:      4,
		SkillAreas:   aggregate.DefaultSkillNames(),
	}
}

// Validate reports whether cfg can be generated.
func (c Config) Validate() error {
	switch {
	case c.Participants <= 0:
		return fmt.Errorf("%w: participants must be positive", ErrInvalidConfig)
	case c.Workers <= 0:
		return fmt.Errorf("%w: workers must be positive", ErrInvalidConfig)
	case len(c.SkillAreas) == 0:
		return fmt.Errorf("%w: at least one skill area is required", ErrInvalidConfig)
	case c.BlankRate < 0 || c.BlankRate > 1:
		return fmt.Errorf("%w: blank rate must be within [0,1]", ErrInvalidConfig)
	}
	return nil
}

// Generate creates cfg.Participants records with IDs 1..n.
func Generate(ctx context.Context, cfg Config) ([]participant.Record, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger.Get().Info(ctx, "generating participants", logger.Int("participants", cfg.Participants), logger.Int("workers", cfg.Workers))

	type result struct {
		index  int
		record participant.Record
		err    error
	}

	n := cfg.Participants
	results := make(chan result, n)
	workers := min(cfg.Workers, n)
	perWorker := n / workers

	for w := 0; w < workers; w++ {
		start := w * perWorker
		end := start + perWorker
		if w == workers-1 {
			end = n // Last worker gets remaining rows
		}
		go func(start, end int) {
			for i := start; i < end; i++ {
				select {
				case <-ctx.Done():
					results <- result{index: i, err: ctx.Err()}
					return
				default:
					results <- result{index: i, record: generateRecord(i+1, cfg)}
				}
			}
		}(start, end)
	}

	records := make([]participant.Record, n)
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("context cancelled during generation: %w", ctx.Err())
		case r := <-results:
			if r.err != nil {
				return nil, fmt.Errorf("failed to generate participant %d: %w", r.index+1, r.err)
			}
			records[r.index] = r.record
		}
	}
	return records, nil
}

func generateRecord(id int, cfg Config) participant.Record {
	first, last := pick(firstNames), pick(lastNames)
	rec := participant.Record{
		ID:         strconv.Itoa(id),
		FirstName:  first,
		LastName:   last,
		Email:      fmt.Sprintf("%s.%s%d@example.com", strings.ToLower(first), strings.ToLower(strings.ReplaceAll(last, "-", "")), id),
		Country:    maybeBlank(pick(countries), cfg.BlankRate),
		Ethnicity:  maybeBlank(pick(ethnicities), cfg.BlankRate),
		School:     maybeBlank(pick(schools), cfg.BlankRate),
		Confidence: maybeBlank(pick(confidence), cfg.BlankRate),
		Skills:     make(map[string]participant.Score, len(cfg.SkillAreas)),
	}
	for _, area := range cfg.SkillAreas {
		rec.Skills[area] = generateScore()
	}
	return rec
}

// generateScore draws a before score over the whole scale; the after score
// mostly improves by 0-2 points and occasionally drops by one.
func generateScore() participant.Score {
	before := minScore + randIntn(maxScore-minScore+1)
	delta := randIntn(4) - 1
	after := min(max(before+delta, minScore), maxScore)
	return participant.Score{Before: float64(before), After: float64(after)}
}

// Header returns the column row for the given skill areas.
func Header(areas []string) []string {
	head := []string{
		participant.ColumnID, participant.ColumnFirstName, participant.ColumnLastName, participant.ColumnEmail,
		participant.ColumnCountry, participant.ColumnEthnicity, participant.ColumnSchool, participant.ColumnConfidence,
	}
	return append(head, lo.FlatMap(areas, func(a string, _ int) []string {
		return []string{participant.BeforeColumn(a), participant.AfterColumn(a)}
	})...)
}

// WriteCSV writes records as a participant file with one before/after
// column pair per area.
func WriteCSV(w io.Writer, areas []string, records []participant.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header(areas)); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	for _, r := range records {
		row := []string{r.ID, r.FirstName, r.LastName, r.Email, r.Country, r.Ethnicity, r.School, r.Confidence}
		for _, a := range areas {
			s := r.Skills[a]
			row = append(row, formatScore(s.Before), formatScore(s.After))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("%w: %v", ErrWrite, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func maybeBlank(v string, rate float64) string {
	if rate > 0 && randFloat() < rate {
		return ""
	}
	return v
}

func pick(pool []string) string {
	return pool[randIntn(len(pool))]
}

// randIntn returns a uniform int in [0,n) using crypto/rand.
func randIntn(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(v.Int64())
}

const randomFloatDivisor = 1000000

func randFloat() float64 {
	return float64(randIntn(randomFloatDivisor)) / randomFloatDivisor
}
