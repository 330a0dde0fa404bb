package availability

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	blockedRepo "wezet/database/repository/blockeddate"
	exceptionRepo "wezet/database/repository/exception"
	ruleRepo "wezet/database/repository/rule"
	"wezet/models"
)

// ScheduleService is the write side of availability: the admin UI edits
// rules, exceptions and blocked dates through it. Editing a rule-derived
// slot never mutates the rule; ConvertRuleSlotToException is the explicit
// operation that turns such an edit into exceptions.
type ScheduleService interface {
	ReplaceWeeklySchedule(ctx context.Context, practitionerID, serviceID string, rules []models.WeeklyRule) error
	AddException(ctx context.Context, ex models.AvailabilityException) (*models.AvailabilityException, error)
	DeleteException(ctx context.Context, practitionerID, id string) error
	AddBlockedDate(ctx context.Context, block models.BlockedDate) (*models.BlockedDate, error)
	RemoveBlockedDate(ctx context.Context, practitionerID, id string) error
	ConvertRuleSlotToException(ctx context.Context, in ConvertSlotInput) (*models.AvailabilityException, error)
}

// ConvertSlotInput describes an admin edit of a rule-derived slot: the
// original range the rule produced for that date, and the range it was
// edited to.
type ConvertSlotInput struct {
	PractitionerID string `json:"practitionerId"`
	ServiceID      string `json:"serviceId"`
	Date           string `json:"date"`
	RuleStart      string `json:"ruleStart"`
	RuleEnd        string `json:"ruleEnd"`
	NewStart       string `json:"newStart"`
	NewEnd         string `json:"newEnd"`
}

// DefaultScheduleService implements ScheduleService.
type DefaultScheduleService struct {
	Rules      ruleRepo.WeeklyRuleRepository
	Exceptions exceptionRepo.ExceptionRepository
	Blocked    blockedRepo.BlockedDateRepository
	Logger     *zap.Logger
}

// ReplaceWeeklySchedule validates the whole week first and then swaps it in
// one transaction, so a failure can never leave a mixed old/new week.
func (s *DefaultScheduleService) ReplaceWeeklySchedule(ctx context.Context, practitionerID, serviceID string, rules []models.WeeklyRule) error {
	if practitionerID == "" {
		return newValidationError("practitionerId", "required")
	}
	if err := ValidateWeek(rules); err != nil {
		return err
	}
	if err := s.Rules.ReplaceWeek(ctx, practitionerID, serviceID, rules); err != nil {
		return fmt.Errorf("failed to replace weekly schedule: %w", err)
	}
	if s.Logger != nil {
		s.Logger.Info("weekly schedule replaced",
			zap.String("practitionerID", practitionerID),
			zap.String("serviceID", serviceID),
			zap.Int("days", len(rules)))
	}
	return nil
}

func (s *DefaultScheduleService) AddException(ctx context.Context, ex models.AvailabilityException) (*models.AvailabilityException, error) {
	if err := ValidateException(ex); err != nil {
		return nil, err
	}
	if err := s.Exceptions.Create(ctx, &ex); err != nil {
		return nil, fmt.Errorf("failed to create exception: %w", err)
	}
	return &ex, nil
}

func (s *DefaultScheduleService) DeleteException(ctx context.Context, practitionerID, id string) error {
	err := s.Exceptions.Delete(ctx, practitionerID, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}

func (s *DefaultScheduleService) AddBlockedDate(ctx context.Context, block models.BlockedDate) (*models.BlockedDate, error) {
	if err := ValidateBlockedDate(block); err != nil {
		return nil, err
	}
	if err := s.Blocked.Create(ctx, &block); err != nil {
		return nil, fmt.Errorf("failed to create blocked date: %w", err)
	}
	return &block, nil
}

func (s *DefaultScheduleService) RemoveBlockedDate(ctx context.Context, practitionerID, id string) error {
	err := s.Blocked.Delete(ctx, practitionerID, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}

// ConvertRuleSlotToException records an edit of a recurring slot as
// exceptions for that date only. The portions of the original rule range not
// covered by the edit are suppressed with blocking exceptions, and the
// edited range is added as an available one, so the resolver returns exactly
// the edited range tagged source=exception while the weekly rule stays
// untouched.
func (s *DefaultScheduleService) ConvertRuleSlotToException(ctx context.Context, in ConvertSlotInput) (*models.AvailabilityException, error) {
	if in.PractitionerID == "" {
		return nil, newValidationError("practitionerId", "required")
	}
	if _, err := parseDate(in.Date); err != nil {
		return nil, newValidationError("date", "%v", err)
	}
	original, err := validateTimeRange("ruleRange", models.TimeRange{Start: in.RuleStart, End: in.RuleEnd})
	if err != nil {
		return nil, err
	}
	edited, err := validateTimeRange("newRange", models.TimeRange{Start: in.NewStart, End: in.NewEnd})
	if err != nil {
		return nil, err
	}

	// The suppressing and replacing exceptions land in one batch: a partial
	// write would leave the day blocked with no replacement slot.
	var batch []*models.AvailabilityException
	for _, gap := range subtract([]interval{original}, edited) {
		batch = append(batch, &models.AvailabilityException{
			PractitionerID: in.PractitionerID,
			ServiceID:      in.ServiceID,
			Date:           in.Date,
			StartTime:      formatClock(gap.start),
			EndTime:        formatClock(gap.end),
			IsAvailable:    false,
		})
	}
	manual := models.AvailabilityException{
		PractitionerID: in.PractitionerID,
		ServiceID:      in.ServiceID,
		Date:           in.Date,
		StartTime:      in.NewStart,
		EndTime:        in.NewEnd,
		IsAvailable:    true,
	}
	batch = append(batch, &manual)

	if err := s.Exceptions.CreateMany(ctx, batch); err != nil {
		return nil, fmt.Errorf("failed to convert rule slot: %w", err)
	}
	if s.Logger != nil {
		s.Logger.Info("rule slot converted to exception",
			zap.String("practitionerID", in.PractitionerID),
			zap.String("date", in.Date),
			zap.String("range", in.NewStart+"-"+in.NewEnd))
	}
	return &manual, nil
}
