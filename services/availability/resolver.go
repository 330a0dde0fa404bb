package availability

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	blockedRepo "wezet/database/repository/blockeddate"
	exceptionRepo "wezet/database/repository/exception"
	ruleRepo "wezet/database/repository/rule"
	"wezet/models"
)

// SlotResolver computes the authoritative bookable slots for a practitioner
// by merging weekly rules, per-date exceptions and blocked dates.
type SlotResolver interface {
	ResolveSlots(ctx context.Context, practitionerID, serviceID, from, to string) ([]models.ResolvedSlot, error)
	ResolveMonth(ctx context.Context, practitionerID, serviceID string, year int, month time.Month) ([]models.ResolvedSlot, error)
}

// DefaultSlotResolver is the production resolver. It is stateless: every
// call reads the stores fresh, so concurrent admin edits are picked up on
// the next query.
type DefaultSlotResolver struct {
	Rules      ruleRepo.WeeklyRuleRepository
	Exceptions exceptionRepo.ExceptionRepository
	Blocked    blockedRepo.BlockedDateRepository
	Logger     *zap.Logger
}

// ResolveSlots merges the three availability sources over [from, to]
// (dates inclusive). Unknown practitioners simply have no rules and yield an
// empty result, not an error. The returned slots are sorted by date then
// start and never overlap for the same date.
func (r *DefaultSlotResolver) ResolveSlots(ctx context.Context, practitionerID, serviceID, from, to string) ([]models.ResolvedSlot, error) {
	fromDate, err := parseDate(from)
	if err != nil {
		return nil, err
	}
	toDate, err := parseDate(to)
	if err != nil {
		return nil, err
	}
	if toDate.Before(fromDate) {
		return nil, fmt.Errorf("invalid range: %s is after %s", from, to)
	}

	rules, err := r.Rules.GetAllForPractitioner(ctx, practitionerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load weekly rules: %w", err)
	}
	exceptions, err := r.Exceptions.GetByDateRange(ctx, practitionerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load exceptions: %w", err)
	}
	blocks, err := r.Blocked.GetByDateRange(ctx, practitionerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load blocked dates: %w", err)
	}

	ruleIndex := indexRules(rules)
	exceptionsByDate := make(map[string][]models.AvailabilityException)
	for _, ex := range exceptions {
		exceptionsByDate[ex.Date] = append(exceptionsByDate[ex.Date], ex)
	}
	blockedDates := make(map[string]bool, len(blocks))
	for _, b := range blocks {
		blockedDates[b.Date] = true
	}

	var slots []models.ResolvedSlot
	for d := fromDate; !d.After(toDate); d = d.AddDate(0, 0, 1) {
		dateStr := d.Format(dateLayout)

		// A blocked date suppresses everything, including exceptions that
		// add availability. Blocks are absolute.
		if blockedDates[dateStr] {
			continue
		}

		base := r.baseRanges(ruleIndex.lookup(serviceID, int(d.Weekday())), practitionerID, dateStr)
		dayExceptions := scopedExceptions(exceptionsByDate[dateStr], serviceID)

		for _, slot := range mergeDay(base, dayExceptions) {
			slots = append(slots, models.ResolvedSlot{
				Date:           dateStr,
				Start:          formatClock(slot.start),
				End:            formatClock(slot.end),
				PractitionerID: practitionerID,
				ServiceID:      serviceID,
				Source:         slot.source,
			})
		}
	}
	return slots, nil
}

// ResolveMonth is the calendar-view convenience the admin and booking UIs
// query with.
func (r *DefaultSlotResolver) ResolveMonth(ctx context.Context, practitionerID, serviceID string, year int, month time.Month) ([]models.ResolvedSlot, error) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return r.ResolveSlots(ctx, practitionerID, serviceID, first.Format(dateLayout), last.Format(dateLayout))
}

// baseRanges parses a rule's ranges into intervals. Stored rules are
// validated at write time; anything malformed that slipped in is skipped
// with a log rather than failing the whole read.
func (r *DefaultSlotResolver) baseRanges(rule *models.WeeklyRule, practitionerID, date string) []interval {
	if rule == nil || !rule.Enabled {
		return nil
	}
	base := make([]interval, 0, len(rule.TimeRanges))
	for _, tr := range rule.TimeRanges {
		start, errStart := parseClock(tr.Start)
		end, errEnd := parseClock(tr.End)
		if errStart != nil || errEnd != nil || start >= end {
			if r.Logger != nil {
				r.Logger.Warn("skipping malformed rule range",
					zap.String("practitionerID", practitionerID),
					zap.String("date", date),
					zap.String("start", tr.Start),
					zap.String("end", tr.End))
			}
			continue
		}
		base = append(base, interval{start: start, end: end})
	}
	return base
}

// ruleIndex resolves the weekly rule for a weekday: a service-scoped rule
// wins over the practitioner's "all services" rule.
type ruleIndex map[string]map[int]*models.WeeklyRule

func indexRules(rules []models.WeeklyRule) ruleIndex {
	idx := make(ruleIndex)
	for i := range rules {
		rule := &rules[i]
		byDay, ok := idx[rule.ServiceID]
		if !ok {
			byDay = make(map[int]*models.WeeklyRule)
			idx[rule.ServiceID] = byDay
		}
		byDay[rule.DayOfWeek] = rule
	}
	return idx
}

func (idx ruleIndex) lookup(serviceID string, weekday int) *models.WeeklyRule {
	if serviceID != "" {
		if rule, ok := idx[serviceID][weekday]; ok {
			return rule
		}
	}
	return idx[""][weekday]
}

// scopedExceptions keeps the exceptions relevant to the requested service:
// service-scoped ones for that service plus the practitioner-wide ones. A
// request without a service sees every exception.
func scopedExceptions(exceptions []models.AvailabilityException, serviceID string) []exceptionInterval {
	var out []exceptionInterval
	for _, ex := range exceptions {
		if serviceID != "" && ex.ServiceID != "" && ex.ServiceID != serviceID {
			continue
		}
		start, errStart := parseClock(ex.StartTime)
		end, errEnd := parseClock(ex.EndTime)
		if errStart != nil || errEnd != nil || start >= end {
			continue
		}
		out = append(out, exceptionInterval{
			interval:  interval{start: start, end: end},
			available: ex.IsAvailable,
		})
	}
	return out
}

// BookableStarts cuts resolved slots into fixed-duration session starts for
// the booking UI, dropping starts that are already in the past relative to
// now in the given location.
func BookableStarts(slots []models.ResolvedSlot, durationMin int, now time.Time, loc *time.Location) []models.BookableStart {
	if durationMin <= 0 {
		return nil
	}
	if loc == nil {
		loc = time.UTC
	}
	localNow := now.In(loc)

	var starts []models.BookableStart
	for _, slot := range slots {
		date, err := parseDate(slot.Date)
		if err != nil {
			continue
		}
		startMin, errStart := parseClock(slot.Start)
		endMin, errEnd := parseClock(slot.End)
		if errStart != nil || errEnd != nil {
			continue
		}
		for cursor := startMin; cursor+durationMin <= endMin; cursor += durationMin {
			startsAt := time.Date(date.Year(), date.Month(), date.Day(), cursor/60, cursor%60, 0, 0, loc)
			if !startsAt.After(localNow) {
				continue
			}
			starts = append(starts, models.BookableStart{
				Date:  slot.Date,
				Start: formatClock(cursor),
				End:   formatClock(cursor + durationMin),
			})
		}
	}
	return starts
}
