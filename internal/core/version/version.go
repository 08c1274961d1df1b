// Package version reports the build version of the shelfprep commands
package version

import "fmt"

// BuildInfo holds version information about a command build
type BuildInfo struct {
	Command string `json:"command"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Info returns the build information for command. The version, commit and
// date variables are set at build time, e.g.
//
//	-ldflags "-X 'shelfprep/internal/core/version.version=v0.1.0' -X 'shelfprep/internal/core/version.commit=abcd'"
func Info(command string) BuildInfo {
	return BuildInfo{
		Command: command,
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

// String renders one line suitable for -version output
func (b BuildInfo) String() string {
	return fmt.Sprintf("%s %s (commit %s, built %s)", b.Command, b.Version, b.Commit, b.Date)
}

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
