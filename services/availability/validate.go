package availability

import (
	"fmt"

	"wezet/models"
)

// validateTimeRange checks both endpoints parse and start < end.
func validateTimeRange(field string, tr models.TimeRange) (interval, error) {
	start, err := parseClock(tr.Start)
	if err != nil {
		return interval{}, newValidationError(field+".start", "%v", err)
	}
	end, err := parseClock(tr.End)
	if err != nil {
		return interval{}, newValidationError(field+".end", "%v", err)
	}
	if start >= end {
		return interval{}, newValidationError(field, "start %s must be before end %s", tr.Start, tr.End)
	}
	return interval{start: start, end: end}, nil
}

// validateDayRanges checks every range of one weekday and rejects overlaps.
func validateDayRanges(field string, ranges []models.TimeRange) error {
	parsed := make([]interval, 0, len(ranges))
	for i, tr := range ranges {
		iv, err := validateTimeRange(fmt.Sprintf("%s.timeRanges[%d]", field, i), tr)
		if err != nil {
			return err
		}
		parsed = append(parsed, iv)
	}
	for i := range parsed {
		for j := i + 1; j < len(parsed); j++ {
			if parsed[i].overlaps(parsed[j]) {
				return newValidationError(field,
					"ranges %s-%s and %s-%s overlap",
					ranges[i].Start, ranges[i].End, ranges[j].Start, ranges[j].End)
			}
		}
	}
	return nil
}

// ValidateWeek checks a full weekly schedule before it replaces the stored
// week: weekday bounds, no duplicate weekday, per-day range validity.
func ValidateWeek(rules []models.WeeklyRule) error {
	seen := make(map[int]bool, len(rules))
	for i, rule := range rules {
		field := fmt.Sprintf("rules[%d]", i)
		if rule.DayOfWeek < 0 || rule.DayOfWeek > 6 {
			return newValidationError(field+".dayOfWeek", "must be 0-6, got %d", rule.DayOfWeek)
		}
		if seen[rule.DayOfWeek] {
			return newValidationError(field+".dayOfWeek", "duplicate entry for weekday %d", rule.DayOfWeek)
		}
		seen[rule.DayOfWeek] = true
		if err := validateDayRanges(field, rule.TimeRanges); err != nil {
			return err
		}
	}
	return nil
}

// ValidateException checks a single exception record before it is stored.
func ValidateException(ex models.AvailabilityException) error {
	if ex.PractitionerID == "" {
		return newValidationError("practitionerId", "required")
	}
	if _, err := parseDate(ex.Date); err != nil {
		return newValidationError("date", "%v", err)
	}
	_, err := validateTimeRange("exception", models.TimeRange{Start: ex.StartTime, End: ex.EndTime})
	return err
}

// ValidateBlockedDate checks a whole-day block before it is stored.
func ValidateBlockedDate(block models.BlockedDate) error {
	if block.PractitionerID == "" {
		return newValidationError("practitionerId", "required")
	}
	if _, err := parseDate(block.Date); err != nil {
		return newValidationError("date", "%v", err)
	}
	switch block.Type {
	case models.BlockTypeVacation, models.BlockTypeSick, models.BlockTypePersonal, models.BlockTypeOther:
		return nil
	default:
		return newValidationError("type", "unknown block type %q", block.Type)
	}
}
