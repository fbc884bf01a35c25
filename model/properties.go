package model

import "time"

// DocProperties contains document-level properties read from the source file
// (DOCX core properties or the PDF Info dictionary). All fields are optional;
// missing values stay at their zero value.
type DocProperties struct {
	Title    string
	Author   string
	Subject  string
	Keywords []string
	Created  *time.Time
	Modified *time.Time
}

// IsZero reports whether no property was populated.
func (p DocProperties) IsZero() bool {
	return p.Title == "" && p.Author == "" && p.Subject == "" &&
		len(p.Keywords) == 0 && p.Created == nil && p.Modified == nil
}
