// Package participant loads participant records from a column-labeled CSV
// file into an in-memory table.
package participant

// Column names used by the reports.
const (
	ColumnID         = "ID"
	ColumnFirstName  = "First Name"
	ColumnLastName   = "Last Name"
	ColumnEmail      = "Email"
	ColumnCountry    = "Country"
	ColumnEthnicity  = "Ethnicity"
	ColumnSchool     = "School"
	ColumnConfidence = "Confidence"
)

// Score holds a before/after self-assessment pair on the 1-5 scale.
type Score struct {
	Before float64 `json:"before"`
	After  float64 `json:"after"`
}

// Record is one participant row.
type Record struct {
	ID         string           `json:"id"`
	FirstName  string           `json:"first_name"`
	LastName   string           `json:"last_name"`
	Email      string           `json:"email"`
	Country    string           `json:"country"`
	Ethnicity  string           `json:"ethnicity"`
	School     string           `json:"school"`
	Confidence string           `json:"confidence"`
	Skills     map[string]Score `json:"skills,omitempty"`
}

// BeforeColumn returns the header of the before-score column for a skill area.
func BeforeColumn(area string) string { return area + " Before" }

// AfterColumn returns the header of the after-score column for a skill area.
func AfterColumn(area string) string { return area + " After" }
