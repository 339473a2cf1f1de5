package booking

import "time"

// startOfDay truncates a timestamp to local midnight in its own location.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// calendarDaysBetween counts the local-midnight boundaries crossed between
// start and end. Both timestamps must already be in the business time zone.
func calendarDaysBetween(start, end time.Time) int {
	ms := startOfDay(end).Sub(startOfDay(start))
	// Round rather than truncate so a DST shift of an hour either way
	// still lands on the correct day count.
	return int((ms + 12*time.Hour) / (24 * time.Hour))
}

// BoardingUnits converts a stay into billable nights.
//
// Base nights are the calendar-day boundaries crossed. A pickup later in the
// day than the drop-off adds a late-pickup surcharge: a full extra unit at
// eight hours or more, half a unit at two hours or more. A pickup time-of-day
// earlier than drop-off adds nothing. The thresholds are business policy and
// must not be "simplified".
func BoardingUnits(start, end time.Time) float64 {
	if !end.After(start) {
		return 0
	}

	baseNights := calendarDaysBetween(start, end)
	if baseNights < 0 {
		baseNights = 0
	}

	startMinutes := start.Hour()*60 + start.Minute()
	endMinutes := end.Hour()*60 + end.Minute()
	minutesLater := endMinutes - startMinutes
	if minutesLater < 0 {
		minutesLater = 0
	}
	hoursLater := float64(minutesLater) / 60

	var surcharge float64
	switch {
	case hoursLater >= 8:
		surcharge = 1.0
	case hoursLater >= 2:
		surcharge = 0.5
	}

	return float64(baseNights) + surcharge
}

// DaycareUnits counts the inclusive calendar days a daycare visit spans,
// with a minimum of one day.
func DaycareUnits(start, end time.Time) float64 {
	days := calendarDaysBetween(start, end) + 1
	if days < 1 {
		days = 1
	}
	return float64(days)
}

// UnitsFor returns the billable unit count for a service over a time range.
// drop_in and walk are flat one-unit visits regardless of duration.
func UnitsFor(serviceType ServiceType, start, end time.Time) float64 {
	switch serviceType {
	case ServiceBoarding:
		return BoardingUnits(start, end)
	case ServiceDaycare:
		return DaycareUnits(start, end)
	default:
		return 1
	}
}
