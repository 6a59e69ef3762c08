package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/username/business-calendar/pkg/calendar"
	"go.uber.org/zap"
)

func writeCalendarFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "calendar.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write calendar file: %v", err)
	}
	return path
}

func TestLoadCalendar_FullDefinition(t *testing.T) {
	path := writeCalendarFile(t, `
working_days:
  - monday
  - tuesday
  - friday
holidays:
  - 2022-01-01
  - "2022-12-25"
extra_working_dates:
  - 2022-10-01
`)

	cal, err := LoadCalendar(path, zap.NewNop())
	if err != nil {
		t.Fatalf("LoadCalendar() error = %v", err)
	}

	wantDays := []time.Weekday{time.Monday, time.Tuesday, time.Friday}
	gotDays := cal.WorkingDays()
	if len(gotDays) != len(wantDays) {
		t.Fatalf("WorkingDays() = %v, want %v", gotDays, wantDays)
	}
	for i, wd := range wantDays {
		if gotDays[i] != wd {
			t.Errorf("WorkingDays()[%d] = %v, want %v", i, gotDays[i], wd)
		}
	}

	if got := cal.Holidays(); len(got) != 2 {
		t.Errorf("Holidays() = %v, want 2 entries", got)
	}
	if got := cal.ExtraWorkingDates(); len(got) != 1 {
		t.Errorf("ExtraWorkingDates() = %v, want 1 entry", got)
	}

	// The quoted and unquoted date forms must land on the same days.
	if !cal.IsBusinessDay(time.Date(2022, 10, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("extra working saturday should be a business day")
	}
	if cal.IsBusinessDay(time.Date(2022, 12, 25, 0, 0, 0, 0, time.UTC)) {
		t.Error("quoted holiday should not be a business day")
	}
}

func TestLoadCalendar_DefaultsToWorkweek(t *testing.T) {
	path := writeCalendarFile(t, `
holidays:
  - 2022-10-03
`)

	cal, err := LoadCalendar(path, zap.NewNop())
	if err != nil {
		t.Fatalf("LoadCalendar() error = %v", err)
	}

	if got := cal.WorkingDays(); len(got) != 5 {
		t.Errorf("WorkingDays() = %v, want monday-friday", got)
	}
	if cal.IsBusinessDay(time.Date(2022, 10, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("saturday should not be a business day by default")
	}
	if cal.IsBusinessDay(time.Date(2022, 10, 3, 0, 0, 0, 0, time.UTC)) {
		t.Error("listed holiday should not be a business day")
	}
}

func TestLoadCalendar_EmptyFileIsWorkweek(t *testing.T) {
	path := writeCalendarFile(t, "{}\n")

	cal, err := LoadCalendar(path, zap.NewNop())
	if err != nil {
		t.Fatalf("LoadCalendar() error = %v", err)
	}

	if got := cal.WorkingDays(); len(got) != 5 {
		t.Errorf("WorkingDays() = %v, want monday-friday", got)
	}
	if got := cal.Holidays(); len(got) != 0 {
		t.Errorf("Holidays() = %v, want empty", got)
	}
}

func TestLoadCalendar_ExplicitlyEmptyWorkingDays(t *testing.T) {
	path := writeCalendarFile(t, `
working_days: []
`)

	cal, err := LoadCalendar(path, zap.NewNop())
	if err != nil {
		t.Fatalf("LoadCalendar() error = %v", err)
	}

	// Accepted silently, but the calendar has no business days.
	if cal.HasBusinessDays() {
		t.Error("HasBusinessDays() = true, want false")
	}
}

func TestLoadCalendar_RejectsOverlap(t *testing.T) {
	path := writeCalendarFile(t, `
holidays:
  - 2022-10-03
extra_working_dates:
  - 2022-10-03
`)

	_, err := LoadCalendar(path, zap.NewNop())
	if err == nil {
		t.Fatal("LoadCalendar() expected error for overlapping date, got nil")
	}

	var verr *calendar.ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("LoadCalendar() error = %v, want wrapped *calendar.ValidationError", err)
	}
}

func TestLoadCalendar_ParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "unknown weekday name",
			content: `
working_days:
  - monday
  - funday
`,
		},
		{
			name: "malformed holiday date",
			content: `
holidays:
  - "25.12.2022"
`,
		},
		{
			name: "malformed extra working date",
			content: `
extra_working_dates:
  - "not-a-date"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeCalendarFile(t, tt.content)

			if _, err := LoadCalendar(path, zap.NewNop()); err == nil {
				t.Error("LoadCalendar() expected error, got nil")
			}
		})
	}
}

func TestLoadCalendar_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.yaml")

	if _, err := LoadCalendar(path, zap.NewNop()); err == nil {
		t.Error("LoadCalendar() expected error for missing file, got nil")
	}
}
