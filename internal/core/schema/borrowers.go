package schema

import "strings"

// Field is a borrower output column
type Field int

// Borrower fields in output order
const (
	CardID Field = iota
	SSN
	Name
	Address
	Phone
	numFields
)

var fieldNames = [numFields]string{"card_id", "ssn", "bname", "address", "phone"}

func (f Field) String() string {
	if f < 0 || f >= numFields {
		return "unknown"
	}
	return fieldNames[f]
}

// BorrowerFields lists every field in output order
func BorrowerFields() []Field { return []Field{CardID, SSN, Name, Address, Phone} }

// keyword matchers, checked against the lowercased header
var borrowerMatchers = [numFields]func(lh string) bool{
	CardID:  func(lh string) bool { return strings.Contains(lh, "card") || lh == "id" || strings.Contains(lh, "id0") },
	SSN:     func(lh string) bool { return strings.Contains(lh, "ssn") },
	Name:    func(lh string) bool { return strings.Contains(lh, "name") },
	Address: func(lh string) bool { return strings.Contains(lh, "address") || strings.Contains(lh, "addr") },
	Phone:   func(lh string) bool { return strings.Contains(lh, "phone") || strings.Contains(lh, "tel") },
}

// BorrowerMapping assigns a column to each borrower field
type BorrowerMapping struct {
	cols       [numFields]int
	positional [numFields]bool

	// FirstName and LastName are set when both split name headers exist
	FirstName int
	LastName  int
}

// Col returns the column for f, or None
func (m BorrowerMapping) Col(f Field) int { return m.cols[f] }

// Positional reports whether f was assigned by position rather than keyword
func (m BorrowerMapping) Positional(f Field) bool { return m.positional[f] }

// SplitName reports whether the name is built from first and last columns
func (m BorrowerMapping) SplitName() bool { return m.FirstName != None && m.LastName != None }

// DetectBorrowerMapping matches header keywords first, each field claimed by
// the first matching header, then fills the rest from the first five columns
// by position. Positional fills can mis-map unusual files; that is accepted.
func DetectBorrowerMapping(headers []string) BorrowerMapping {
	m := BorrowerMapping{FirstName: None, LastName: None}
	for i := range m.cols {
		m.cols[i] = None
	}

	for i, h := range headers {
		lh := strings.ToLower(strings.TrimSpace(h))
		for f, match := range borrowerMatchers {
			if m.cols[f] == None && match(lh) {
				m.cols[f] = i
			}
		}
		switch lh {
		case "first_name":
			if m.FirstName == None {
				m.FirstName = i
			}
		case "last_name":
			if m.LastName == None {
				m.LastName = i
			}
		}
	}

	for f := range m.cols {
		if m.cols[f] == None && f < len(headers) {
			m.cols[f] = f
			m.positional[f] = true
		}
	}
	return m
}
