package version

import (
	"testing"

	"shelfprep/internal/platform/testkit"
)

func TestInfo_Defaults(t *testing.T) {
	b := Info("shelfprep-seed")
	if b.Command != "shelfprep-seed" || b.Version != "dev" || b.Commit != "none" {
		t.Fatalf("info = %+v", b)
	}
	if got := b.String(); got != "shelfprep-seed dev (commit none, built unknown)" {
		t.Fatalf("String = %q", got)
	}
}

func TestInfo_LinkerValues(t *testing.T) {
	testkit.Swap(t, &version, "v1.2.3")
	testkit.Swap(t, &commit, "abcd")
	testkit.MustContain(t, Info("shelfprep-normalize").String(), "v1.2.3 (commit abcd")
}
