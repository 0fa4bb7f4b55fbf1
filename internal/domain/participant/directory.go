package participant

import "fmt"

// Entry is one line of the participant directory.
type Entry struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// String formats the entry the way the directory listing prints it.
func (e Entry) String() string {
	return fmt.Sprintf("Customer #%s, %s %s, %s", e.ID, e.FirstName, e.LastName, e.Email)
}

// Directory lists every participant with their contact email.
func Directory(t *Table) ([]Entry, error) {
	if err := t.Require(ColumnID, ColumnFirstName, ColumnLastName, ColumnEmail); err != nil {
		return nil, err
	}
	recs, err := t.Records()
	if err != nil {
		return nil, err
	}
	out := make([]Entry, len(recs))
	for i, r := range recs {
		out[i] = Entry{ID: r.ID, FirstName: r.FirstName, LastName: r.LastName, Email: r.Email}
	}
	return out, nil
}
