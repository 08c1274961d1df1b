package report

import (
	"fmt"
	"slices"
	"strings"

	"shelfprep/internal/core/tabular"
	dom "shelfprep/internal/services/normalize/domain"
)

var policies = []string{
	"ISBNs preserved as strings; leading zeros kept; no int casts.",
	"Prefer ISBN-13 as primary when present; otherwise use ISBN-10.",
	"Missing author -> book_authors row with empty author_id (interpreted as NULL).",
	"Rows missing both ISBN10 and ISBN13 saved to " + dom.FileQuarantine + ".",
	"Author identity = exact spelling; no fuzzy merges.",
}

// AuditLog renders the human readable log. It holds no timestamps or run ids
// so reruns over the same inputs produce the same bytes.
func AuditLog(res *dom.Result) string {
	var b strings.Builder
	b.WriteString("Normalization log\n")
	b.WriteString("=================\n\n")

	b.WriteString("Decisions & policies:\n")
	for _, p := range policies {
		fmt.Fprintf(&b, "- %s\n", p)
	}
	b.WriteString("\n")

	b.WriteString("Input summary:\n")
	fmt.Fprintf(&b, " - books file: %s\n - detected delimiter: %s\n",
		res.BooksSource.Path, tabular.DelimiterName(res.BooksSource.Delimiter))
	fmt.Fprintf(&b, " - borrowers file: %s\n - detected delimiter: %s\n\n",
		res.BorrowersSource.Path, tabular.DelimiterName(res.BorrowersSource.Delimiter))

	st := res.Stats
	b.WriteString("Output statistics:\n")
	fmt.Fprintf(&b, " - input book rows: %d\n", st.InputBookRows)
	fmt.Fprintf(&b, " - normalized book rows: %d\n", st.BookRows)
	fmt.Fprintf(&b, " - unique author names: %d\n", st.UniqueAuthors)
	fmt.Fprintf(&b, " - book-author links: %d\n", st.LinkRows)
	fmt.Fprintf(&b, " - bad book rows (no isbn): %d\n", st.QuarantinedRows)
	fmt.Fprintf(&b, " - books without author (null links): %d\n", st.NullAuthorLinks)
	fmt.Fprintf(&b, " - input borrower rows: %d\n", st.InputBorrowerRows)
	fmt.Fprintf(&b, " - normalized borrower rows: %d\n", st.BorrowerRows)
	fmt.Fprintf(&b, " - dropped borrower rows (no card id or name): %d\n", st.DroppedBorrowers)

	writeColumns(&b, "Detected book columns:", res.BookColumns)
	writeColumns(&b, "Detected borrower columns:", res.BorrowerColumns)
	return b.String()
}

func writeColumns(b *strings.Builder, title string, cs []dom.ColumnChoice) {
	if len(cs) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s\n", title)
	for _, c := range cs {
		if c.Header == "" {
			fmt.Fprintf(b, " - %s: (none)\n", c.Field)
			continue
		}
		fmt.Fprintf(b, " - %s: %q (%s)\n", c.Field, c.Header, c.Via)
	}
}

func sortAuthors(xs []dom.AuthorEntity) {
	slices.SortStableFunc(xs, func(a, b dom.AuthorEntity) int { return a.ID - b.ID })
}
