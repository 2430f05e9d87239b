package domain

import (
	"fmt"
	"strconv"
	"strings"
)

type Period string

const (
	PeriodAM Period = "AM"
	PeriodPM Period = "PM"
)

// Minutes offered by the event forms.
var QuarterHourMinutes = []string{"00", "15", "30", "45"}

// DefaultStartTime is what an event without a stored time shows in the edit form.
var DefaultStartTime = TimeOfDay12{Hour: "09", Minute: "00", Period: PeriodAM}

// TimeOfDay12 is the editable 12-hour form of a time of day.
type TimeOfDay12 struct {
	Hour   string `json:"hour"`
	Minute string `json:"minute"`
	Period Period `json:"period"`
}

// Validate checks the value against the enumerated selections the forms offer.
func (t TimeOfDay12) Validate() error {
	const op = "domain.TimeOfDay12.Validate"

	if len(t.Hour) != 2 {
		return invalidInput(op, fmt.Sprintf("hour %q must be two digits", t.Hour))
	}
	h, err := strconv.Atoi(t.Hour)
	if err != nil || h < 1 || h > 12 {
		return invalidInput(op, fmt.Sprintf("hour %q out of range 01-12", t.Hour))
	}

	validMinute := false
	for _, m := range QuarterHourMinutes {
		if t.Minute == m {
			validMinute = true
			break
		}
	}
	if !validMinute {
		return invalidInput(op, fmt.Sprintf("minute %q must be one of %v", t.Minute, QuarterHourMinutes))
	}

	if t.Period != PeriodAM && t.Period != PeriodPM {
		return invalidInput(op, fmt.Sprintf("period %q must be AM or PM", t.Period))
	}
	return nil
}

// String renders the value the way the forms display it, e.g. "01:30 PM".
func (t TimeOfDay12) String() string {
	return t.Hour + ":" + t.Minute + " " + string(t.Period)
}

// EncodeTime24 converts a 12-hour time into the stored "HH:MM" form. The minute
// is copied verbatim. Callers must validate first; behavior outside the
// enumerated domain is not defined.
func EncodeTime24(t TimeOfDay12) string {
	h, _ := strconv.Atoi(t.Hour)
	if t.Period == PeriodPM && h < 12 {
		h += 12
	}
	if t.Period == PeriodAM && h == 12 {
		h = 0
	}
	return fmt.Sprintf("%02d:%s", h, t.Minute)
}

// DecodeTime24 converts a stored "HH:MM" (or "HH:MM:SS") time back into its
// 12-hour form. A trailing seconds field is dropped. An empty value decodes to
// DefaultStartTime.
func DecodeTime24(s string) TimeOfDay12 {
	if s == "" {
		return DefaultStartTime
	}

	parts := strings.Split(s, ":")
	h, _ := strconv.Atoi(parts[0])
	minute := ""
	if len(parts) > 1 {
		minute = parts[1]
	}

	period := PeriodAM
	if h >= 12 {
		period = PeriodPM
		if h > 12 {
			h -= 12
		}
	}
	if h == 0 {
		h = 12
	}

	return TimeOfDay12{
		Hour:   fmt.Sprintf("%02d", h),
		Minute: minute,
		Period: period,
	}
}
