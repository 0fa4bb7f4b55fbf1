package aggregate

import (
	"fmt"
	"math"

	"github.com/okian/cohort/internal/domain/participant"
	"github.com/samber/lo"
)

// SkillArea names a self-assessed skill and its score columns.
type SkillArea struct {
	Name         string `json:"name" koanf:"name"`
	BeforeColumn string `json:"before_column" koanf:"before_column"`
	AfterColumn  string `json:"after_column" koanf:"after_column"`
}

// NewSkillArea uses the "<name> Before" / "<name> After" column convention.
func NewSkillArea(name string) SkillArea {
	return SkillArea{
		Name:         name,
		BeforeColumn: participant.BeforeColumn(name),
		AfterColumn:  participant.AfterColumn(name),
	}
}

// DefaultSkillAreas returns the four assessed areas in report order.
func DefaultSkillAreas() []SkillArea {
	return lo.Map(DefaultSkillNames(), func(n string, _ int) SkillArea { return NewSkillArea(n) })
}

// DefaultSkillNames returns the names of the four assessed areas.
func DefaultSkillNames() []string {
	return []string{"Career Awareness", "Presentation", "Interview", "CV Development"}
}

// SkillResult holds the rescaled before/after scores for one area.
// Before and After are percentages rounded to one decimal place.
type SkillResult struct {
	Area     string  `json:"area"`
	Before   float64 `json:"before"`
	After    float64 `json:"after"`
	Increase float64 `json:"increase"`
}

// AssessSkills computes before/after percentages for each area in the
// order given. Increase is After minus Before and may be negative.
func AssessSkills(t *participant.Table, areas []SkillArea) ([]SkillResult, error) {
	out := make([]SkillResult, 0, len(areas))
	for _, a := range areas {
		before, err := columnPercent(t, a.BeforeColumn)
		if err != nil {
			return nil, err
		}
		after, err := columnPercent(t, a.AfterColumn)
		if err != nil {
			return nil, err
		}
		out = append(out, SkillResult{
			Area:     a.Name,
			Before:   before,
			After:    after,
			Increase: Round1(after - before),
		})
	}
	return out, nil
}

func columnPercent(t *participant.Table, column string) (float64, error) {
	vals, err := t.Floats(column)
	if err != nil {
		return 0, err
	}
	if len(vals) == 0 {
		return 0, ErrEmptyTable
	}
	mean := lo.Sum(vals) / float64(len(vals))
	pct := ScalePercent(mean)
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return 0, fmt.Errorf("%w: column %q averages outside the representable range", participant.ErrNonNumericValue, column)
	}
	return Round1(pct), nil
}
