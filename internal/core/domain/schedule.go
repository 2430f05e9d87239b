package domain

// ScheduleForm is the time and department part of the event creation/edit forms.
type ScheduleForm struct {
	Start      TimeOfDay12 `json:"start"`
	End        TimeOfDay12 `json:"end"`
	Department string      `json:"department"`
}

// Schedule is the stored form of ScheduleForm.
type Schedule struct {
	Time     string `json:"time"`
	EndTime  string `json:"end_time"`
	Category string `json:"category"`
}

// Normalize validates the form against the enumerated time selections and the
// department catalog, and converts it into its stored form.
func (f ScheduleForm) Normalize(catalog Catalog) (Schedule, error) {
	const op = "domain.ScheduleForm.Normalize"

	if err := f.Start.Validate(); err != nil {
		return Schedule{}, OpError{Op: op, Kind: ErrInvalidInput, Msg: "start: " + err.Error()}
	}
	if err := f.End.Validate(); err != nil {
		return Schedule{}, OpError{Op: op, Kind: ErrInvalidInput, Msg: "end: " + err.Error()}
	}
	if f.Department == "" {
		return Schedule{}, invalidInput(op, "department is required")
	}
	if !catalog.Contains(f.Department) {
		return Schedule{}, invalidInput(op, "unknown department "+f.Department)
	}

	return Schedule{
		Time:     EncodeTime24(f.Start),
		EndTime:  EncodeTime24(f.End),
		Category: f.Department,
	}, nil
}

// ScheduleFromStored rebuilds the form values of a stored schedule.
func ScheduleFromStored(s Schedule) ScheduleForm {
	return ScheduleForm{
		Start:      DecodeTime24(s.Time),
		End:        DecodeTime24(s.EndTime),
		Department: s.Category,
	}
}
