package version

import (
	"strings"
	"testing"
)

func TestParseBuildDate(t *testing.T) {
	tests := []struct {
		name      string
		date      string
		wantError bool
	}{
		{name: "valid date", date: "2026-10-15"},
		{name: "leap day", date: "2028-02-29"},
		{name: "invalid format", date: "15.10.2026", wantError: true},
		{name: "not a date", date: "2026-02-30", wantError: true},
		{name: "empty date", date: "", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBuildDate(tt.date)
			if tt.wantError {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Format("2006-01-02") != tt.date {
				t.Errorf("ParseBuildDate(%q) = %v", tt.date, got)
			}
		})
	}
}

func TestInfo(t *testing.T) {
	oldVersion, oldDate, oldCommit := Version, BuildDate, Commit
	defer func() { Version, BuildDate, Commit = oldVersion, oldDate, oldCommit }()

	Version, BuildDate, Commit = "", "", ""
	info := Info()
	if info.Version != "dev" || info.Commit == "" || info.Error != "" {
		t.Errorf("unexpected defaults: %+v", info)
	}

	Version, BuildDate, Commit = "1.2.0", "2026-10-15", "abc123"
	info = Info()
	if info.Version != "1.2.0" || info.Commit != "abc123" || info.Error != "" {
		t.Errorf("ldflags not respected: %+v", info)
	}
	if s := String(); !strings.Contains(s, "1.2.0") || !strings.Contains(s, "abc123") {
		t.Errorf("String() = %q", s)
	}

	BuildDate = "yesterday"
	if info = Info(); info.Error == "" {
		t.Error("broken build date must be reported")
	}
}
