package service

import (
	"strings"

	"shelfprep/internal/core/normalize"
	"shelfprep/internal/core/schema"
	dom "shelfprep/internal/services/normalize/domain"
)

// BorrowerMapper projects borrower rows onto the fixed borrower shape
type BorrowerMapper struct {
	m schema.BorrowerMapping
}

// NewBorrowerMapper detects the mapping for headers
func NewBorrowerMapper(headers []string) BorrowerMapper {
	return BorrowerMapper{m: schema.DetectBorrowerMapping(headers)}
}

// Mapping returns the detected column mapping
func (bm BorrowerMapper) Mapping() schema.BorrowerMapping { return bm.m }

// Map normalizes one row. ok is false when both card id and name end up
// empty, in which case the row is dropped.
func (bm BorrowerMapper) Map(cells []string) (rec dom.BorrowerRecord, ok bool) {
	at := func(f schema.Field) string { return cellAt(cells, bm.m.Col(f)) }

	rec = dom.BorrowerRecord{
		CardID:  normalize.Text(at(schema.CardID)),
		SSN:     normalize.Text(at(schema.SSN)),
		Name:    normalize.PersonName(bm.rawName(cells)),
		Address: normalize.Text(at(schema.Address)),
		Phone:   normalize.Text(at(schema.Phone)),
	}
	return rec, rec.CardID != "" || rec.Name != ""
}

func (bm BorrowerMapper) rawName(cells []string) string {
	if bm.m.SplitName() {
		return strings.TrimSpace(cellAt(cells, bm.m.FirstName) + " " + cellAt(cells, bm.m.LastName))
	}
	return cellAt(cells, bm.m.Col(schema.Name))
}

func cellAt(cells []string, i int) string {
	if i < 0 || i >= len(cells) {
		return ""
	}
	return cells[i]
}
