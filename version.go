package main

import (
	"os/exec"
	"runtime/debug"
	"strings"
	"time"
)

// Overridden with -ldflags "-X main.commit=... -X main.buildDate=..."
var (
	commit    = "dev"
	buildDate = ""
)

func init() {
	commit, buildDate = resolveBuild(commit, buildDate)
}

// resolveBuild fills in the commit and date from the embedded VCS stamp, then
// from git, then from the clock.
func resolveBuild(c, date string) (string, string) {
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			switch {
			case s.Key == "vcs.revision" && c == "dev" && s.Value != "":
				c = shortRev(s.Value)
			case s.Key == "vcs.time" && date == "" && s.Value != "":
				if t, err := time.Parse(time.RFC3339, s.Value); err == nil {
					date = t.Format(time.DateOnly)
				}
			}
		}
	}
	if c == "dev" {
		if out, err := exec.Command("git", "rev-parse", "--short", "HEAD").Output(); err == nil {
			c = strings.TrimSpace(string(out))
		}
	}
	if date == "" {
		date = time.Now().Format(time.DateOnly)
	}
	return c, date
}

func shortRev(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}
