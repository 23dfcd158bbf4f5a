package booking

import (
	"iter"
	"time"

	"flexspace/models"
)

const dateLayout = "2006-01-02"

// Occurrence is one concrete day's reservation window, with start and end as
// minutes from midnight.
type Occurrence struct {
	Date  string // "YYYY-MM-DD"
	Start int
	End   int
}

// TimeRange models a booking's occupancy: a date span, a daily time-of-day
// window, and an optional weekly day pattern. Expansion is deterministic and
// bounded by the date span; no open-ended recurrence exists in this model.
type TimeRange struct {
	startDate time.Time
	endDate   time.Time
	startMin  int
	endMin    int
	days      map[time.Weekday]bool // nil or empty means every day
}

// ParseTimeRange validates and builds a TimeRange from wire-format fields.
// Rejects reversed date ranges and startTime >= endTime (a booking may not
// span midnight).
func ParseTimeRange(startDate, endDate, startTime, endTime string, rule *models.RecurrenceRule) (TimeRange, error) {
	sd, err := time.ParseInLocation(dateLayout, startDate, time.Local)
	if err != nil {
		return TimeRange{}, NewAdmissionError(CodeValidation, "invalid start date %q", startDate)
	}
	ed, err := time.ParseInLocation(dateLayout, endDate, time.Local)
	if err != nil {
		return TimeRange{}, NewAdmissionError(CodeValidation, "invalid end date %q", endDate)
	}
	if ed.Before(sd) {
		return TimeRange{}, NewAdmissionError(CodeValidation, "end date %s precedes start date %s", endDate, startDate)
	}

	sm, err := parseMinutes(startTime)
	if err != nil {
		return TimeRange{}, NewAdmissionError(CodeValidation, "invalid start time %q", startTime)
	}
	em, err := parseMinutes(endTime)
	if err != nil {
		return TimeRange{}, NewAdmissionError(CodeValidation, "invalid end time %q", endTime)
	}
	if sm >= em {
		return TimeRange{}, NewAdmissionError(CodeValidation, "start time must be before end time")
	}

	tr := TimeRange{startDate: sd, endDate: ed, startMin: sm, endMin: em}
	if rule != nil && len(rule.Days) > 0 {
		tr.days = make(map[time.Weekday]bool, len(rule.Days))
		for _, d := range rule.Days {
			if d < 0 || d > 6 {
				return TimeRange{}, NewAdmissionError(CodeValidation, "recurrence day %d out of range 0..6", d)
			}
			tr.days[time.Weekday(d)] = true
		}
	}
	return tr, nil
}

// RangeOf builds the TimeRange occupied by an existing booking.
func RangeOf(b *models.Booking) (TimeRange, error) {
	return ParseTimeRange(b.StartDate, b.EndDate, b.StartTime, b.EndTime, b.RecurrenceRule)
}

// Occurrences returns the booking's concrete daily occurrences as a lazy,
// finite, restartable sequence.
func (tr TimeRange) Occurrences() iter.Seq[Occurrence] {
	return func(yield func(Occurrence) bool) {
		for d := tr.startDate; !d.After(tr.endDate); d = d.AddDate(0, 0, 1) {
			if len(tr.days) > 0 && !tr.days[d.Weekday()] {
				continue
			}
			occ := Occurrence{
				Date:  d.Format(dateLayout),
				Start: tr.startMin,
				End:   tr.endMin,
			}
			if !yield(occ) {
				return
			}
		}
	}
}

// OccursOn reports whether the range occupies the given calendar date, and if
// so returns that day's time window.
func (tr TimeRange) OccursOn(date string) (Occurrence, bool) {
	d, err := time.ParseInLocation(dateLayout, date, time.Local)
	if err != nil {
		return Occurrence{}, false
	}
	if d.Before(tr.startDate) || d.After(tr.endDate) {
		return Occurrence{}, false
	}
	if len(tr.days) > 0 && !tr.days[d.Weekday()] {
		return Occurrence{}, false
	}
	return Occurrence{Date: date, Start: tr.startMin, End: tr.endMin}, true
}

// parseMinutes converts a "HH:MM" 24-hour string to minutes from midnight.
func parseMinutes(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}
