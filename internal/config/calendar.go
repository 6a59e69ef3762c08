package config

import (
	"fmt"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"github.com/username/business-calendar/pkg/calendar"
	"github.com/username/business-calendar/pkg/dateutil"
	"go.uber.org/zap"
)

// rawCalendar is the loosely-typed shape of a calendar definition file.
// All keys are optional; defaults are applied after unmarshaling.
type rawCalendar struct {
	WorkingDays       []string `mapstructure:"working_days"`
	Holidays          []string `mapstructure:"holidays"`
	ExtraWorkingDates []string `mapstructure:"extra_working_dates"`
}

// LoadCalendar loads a calendar definition from a YAML file.
//
// The file may define `working_days` (weekday names, defaulting to
// monday-friday when the key is absent), `holidays` and
// `extra_working_dates` (ISO-8601 dates, defaulting to empty). The parsed
// lists go through calendar.New, which owns the single overlap check.
func LoadCalendar(path string, logger *zap.Logger) (*calendar.Calendar, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read calendar file: %w", err)
	}

	// YAML resolves unquoted ISO dates to time.Time; fold them back to
	// strings so quoted and unquoted date entries decode the same way.
	var raw rawCalendar
	if err := v.Unmarshal(&raw, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		timeToISODateHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))); err != nil {
		return nil, fmt.Errorf("failed to unmarshal calendar file: %w", err)
	}

	// An absent key means the default workweek; an explicitly empty list
	// means a calendar with no working weekdays.
	if !v.IsSet("working_days") {
		raw.WorkingDays = []string{"monday", "tuesday", "wednesday", "thursday", "friday"}
	}

	workingDays := make([]time.Weekday, 0, len(raw.WorkingDays))
	for _, name := range raw.WorkingDays {
		wd, err := dateutil.ParseWeekday(name)
		if err != nil {
			return nil, fmt.Errorf("invalid working_days entry: %w", err)
		}
		workingDays = append(workingDays, wd)
	}

	holidays, err := parseDates("holidays", raw.Holidays)
	if err != nil {
		return nil, err
	}

	extraWorkingDates, err := parseDates("extra_working_dates", raw.ExtraWorkingDates)
	if err != nil {
		return nil, err
	}

	cal, err := calendar.New(workingDays, holidays, extraWorkingDates)
	if err != nil {
		return nil, fmt.Errorf("invalid calendar definition: %w", err)
	}

	if !cal.HasBusinessDays() {
		logger.Warn("Calendar has no business days; rolling operations will not terminate",
			zap.String("file", path))
	}

	logger.Info("Calendar loaded",
		zap.String("file", path),
		zap.Int("working_days", len(cal.WorkingDays())),
		zap.Int("holidays", len(cal.Holidays())),
		zap.Int("extra_working_dates", len(cal.ExtraWorkingDates())))

	return cal, nil
}

func timeToISODateHookFunc() mapstructure.DecodeHookFunc {
	return func(f, t reflect.Type, data interface{}) (interface{}, error) {
		if f == reflect.TypeOf(time.Time{}) && t.Kind() == reflect.String {
			return data.(time.Time).Format(dateutil.ISODate), nil
		}
		return data, nil
	}
}

func parseDates(field string, values []string) ([]time.Time, error) {
	dates := make([]time.Time, 0, len(values))
	for _, value := range values {
		d, err := dateutil.ParseISODate(value)
		if err != nil {
			return nil, fmt.Errorf("invalid %s entry: %w", field, err)
		}
		dates = append(dates, d)
	}
	return dates, nil
}
