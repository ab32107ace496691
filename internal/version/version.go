// Package version — метаданные сборки, проставляемые через -ldflags.
package version

import (
	"fmt"
	"time"

	"github.com/yuru-sha/roguelike-sub000/internal/errors"
)

// Program - имя, которое попадает в metadata.written_by сохранений.
const Program = "dungeon"

var (
	BuildDate   string // YYYY-MM-DD (UTC)
	BuildCommit string
	BuildBranch string
	BuildCI     string
)

var buildEpoch = time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

// BuildInfo describes the build metadata in structured form.
type BuildInfo struct {
	Program    string `json:"program"`
	BuildID    int    `json:"build_id"`
	BuildDate  string `json:"build_date,omitempty"`
	Commit     string `json:"commit,omitempty"`
	Branch     string `json:"branch,omitempty"`
	CI         string `json:"ci,omitempty"`
	Calculated bool   `json:"calculated"`
	Error      string `json:"error,omitempty"`
}

// BuildID - число дней от эпохи до date.
func BuildID(date string) (int, error) {
	if date == "" {
		return 0, errors.InvalidArgument("build date is empty")
	}

	t, err := time.ParseInLocation("2006-01-02", date, time.UTC)
	if err != nil {
		return 0, errors.WrapWithCodef(err, errors.CodeInvalidArgument, "invalid build date %q", date)
	}

	if t.Before(buildEpoch) {
		return 0, errors.InvalidArgumentf("build date %s is before epoch", date)
	}

	// Using hours avoids DST issues; epoch and build date are both UTC.
	return int(t.Sub(buildEpoch).Hours() / 24), nil
}

// Info returns structured version information.
// Safe to call at any time.
func Info() BuildInfo {
	info := BuildInfo{
		Program:   Program,
		BuildDate: BuildDate,
		Commit:    BuildCommit,
		Branch:    BuildBranch,
		CI:        BuildCI,
	}

	id, err := BuildID(BuildDate)
	if err != nil {
		info.Error = err.Error()
		return info
	}

	info.BuildID = id
	info.Calculated = true
	return info
}

// String returns a human-readable build string.
func String() string {
	info := Info()

	if !info.Calculated {
		return fmt.Sprintf("%s dev build commit[%s]", Program, coalesce(info.Commit, "unknown"))
	}

	return fmt.Sprintf(
		"%s build %d (%s) commit[%s] branch[%s] ci[%s]",
		Program,
		info.BuildID,
		info.BuildDate,
		coalesce(info.Commit, "unknown"),
		coalesce(info.Branch, "unknown"),
		coalesce(info.CI, "local"),
	)
}

func coalesce(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
