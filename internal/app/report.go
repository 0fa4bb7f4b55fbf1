package service

import (
	"fmt"
	"time"

	"github.com/okian/cohort/internal/domain/aggregate"
	"github.com/okian/cohort/internal/domain/chart"
	"github.com/okian/cohort/internal/domain/participant"
	"github.com/samber/lo"
)

// Section names in report order.
const (
	SectionCountries  = "countries"
	SectionEthnicity  = "ethnicity"
	SectionConfidence = "confidence"
	SectionSkills     = "skills"
)

// SectionNames returns every section in report order.
func SectionNames() []string {
	return []string{SectionCountries, SectionEthnicity, SectionConfidence, SectionSkills}
}

// Section is one independently computed part of the report. A failed
// section keeps its name and title and carries the error instead of data.
type Section struct {
	Name      string        `json:"name"`
	Title     string        `json:"title"`
	Narrative []string      `json:"narrative,omitempty"`
	Charts    []chart.Chart `json:"charts,omitempty"`
	Data      any           `json:"data,omitempty"`
	Error     string        `json:"error,omitempty"`
	ErrorKind string        `json:"error_kind,omitempty"`
}

// Failed reports whether the section could not be computed.
func (s Section) Failed() bool { return s.Error != "" }

// EthnicityData is the payload of the ethnicity section.
type EthnicityData struct {
	Distribution aggregate.Distribution `json:"distribution"`
	Reference    string                 `json:"reference"`
	BIPOCPercent int                    `json:"bipoc_percent"`
}

// ConfidenceData is the payload of the confidence section.
type ConfidenceData struct {
	CrossTab         aggregate.CrossTab `json:"cross_tab"`
	AllowList        []string           `json:"allow_list"`
	IncreasedPercent int                `json:"increased_percent"`
}

// Report is the full dashboard content built from one load of the file.
type Report struct {
	ID          string    `json:"id"`
	GeneratedAt time.Time `json:"generated_at"`
	Source      string    `json:"source"`
	Rows        int       `json:"rows"`
	Sections    []Section `json:"sections"`
}

// Section returns the named section.
func (r *Report) Section(name string) (Section, bool) {
	return lo.Find(r.Sections, func(s Section) bool { return s.Name == name })
}

// Charts returns the charts of every section that rendered.
func (r *Report) Charts() []chart.Chart {
	return lo.FlatMap(r.Sections, func(s Section, _ int) []chart.Chart { return s.Charts })
}

// Failures counts failed sections.
func (r *Report) Failures() int {
	return lo.CountBy(r.Sections, func(s Section) bool { return s.Failed() })
}

var sectionTitles = map[string]string{
	SectionCountries:  "Where participants come from",
	SectionEthnicity:  "Participant ethnicity",
	SectionConfidence: "Confidence by school",
	SectionSkills:     "Skill self-assessment before and after",
}

// builder computes one section from a loaded table.
type builder func(t *participant.Table) (Section, error)

func (s *Service) builders() map[string]builder {
	return map[string]builder{
		SectionCountries:  s.countries,
		SectionEthnicity:  s.ethnicity,
		SectionConfidence: s.confidence,
		SectionSkills:     s.skills,
	}
}

func (s *Service) countries(t *participant.Table) (Section, error) {
	d, err := aggregate.Distribute(t, participant.ColumnCountry)
	if err != nil {
		return Section{}, err
	}
	return Section{
		Charts: []chart.Chart{chart.Pie("countries", "Participants by country", d)},
		Data:   d,
		Narrative: []string{
			fmt.Sprintf("%d participants came from %d countries.", d.Total, len(d.Counts)),
		},
	}, nil
}

func (s *Service) ethnicity(t *participant.Table) (Section, error) {
	d, err := aggregate.Distribute(t, participant.ColumnEthnicity)
	if err != nil {
		return Section{}, err
	}
	pct, err := aggregate.PercentNotEqual(t, participant.ColumnEthnicity, s.referenceEthnicity)
	if err != nil {
		return Section{}, err
	}
	return Section{
		Charts: []chart.Chart{chart.Pie("ethnicity", "Participants by ethnicity", d)},
		Data:   EthnicityData{Distribution: d, Reference: s.referenceEthnicity, BIPOCPercent: pct},
		Narrative: []string{
			fmt.Sprintf("%d%% of participants identify as BIPOC.", pct),
		},
	}, nil
}

func (s *Service) confidence(t *participant.Table) (Section, error) {
	ct, err := aggregate.CrossTabulate(t, participant.ColumnSchool, participant.ColumnConfidence)
	if err != nil {
		return Section{}, err
	}
	pct, err := aggregate.PercentIn(t, participant.ColumnConfidence, s.confidenceAllowList)
	if err != nil {
		return Section{}, err
	}
	return Section{
		Charts: []chart.Chart{chart.GroupedBar("confidence", "Confidence by school", ct)},
		Data:   ConfidenceData{CrossTab: ct, AllowList: s.confidenceAllowList, IncreasedPercent: pct},
		Narrative: []string{
			fmt.Sprintf("%d%% of participants reported increased confidence.", pct),
		},
	}, nil
}

func (s *Service) skills(t *participant.Table) (Section, error) {
	results, err := aggregate.AssessSkills(t, s.skillAreas)
	if err != nil {
		return Section{}, err
	}
	return Section{
		Charts: []chart.Chart{chart.SkillBars("skills", "Self-assessed skills before and after", results)},
		Data:   results,
		Narrative: lo.Map(results, func(r aggregate.SkillResult, _ int) string {
			return fmt.Sprintf("%s: %.1f%% before, %.1f%% after (%+.1f points).", r.Area, r.Before, r.After, r.Increase)
		}),
	}, nil
}
