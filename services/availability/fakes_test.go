package availability

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	"wezet/models"
)

// In-memory repository stand-ins for resolver and schedule service tests.

type fakeRuleRepo struct {
	mu    sync.Mutex
	rules []models.WeeklyRule
}

func (f *fakeRuleRepo) ReplaceWeek(ctx context.Context, practitionerID, serviceID string, rules []models.WeeklyRule) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.rules[:0]
	for _, r := range f.rules {
		if r.PractitionerID != practitionerID || r.ServiceID != serviceID {
			kept = append(kept, r)
		}
	}
	f.rules = kept
	for _, r := range rules {
		if r.ID == "" {
			r.ID = uuid.New().String()
		}
		r.PractitionerID = practitionerID
		r.ServiceID = serviceID
		f.rules = append(f.rules, r)
	}
	return nil
}

func (f *fakeRuleRepo) GetWeek(ctx context.Context, practitionerID, serviceID string) ([]models.WeeklyRule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.WeeklyRule
	for _, r := range f.rules {
		if r.PractitionerID == practitionerID && r.ServiceID == serviceID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRuleRepo) GetAllForPractitioner(ctx context.Context, practitionerID string) ([]models.WeeklyRule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.WeeklyRule
	for _, r := range f.rules {
		if r.PractitionerID == practitionerID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeExceptionRepo struct {
	mu         sync.Mutex
	exceptions []models.AvailabilityException

	createManyErr error
}

func (f *fakeExceptionRepo) Create(ctx context.Context, ex *models.AvailabilityException) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if ex.ID == "" {
		ex.ID = uuid.New().String()
	}
	f.exceptions = append(f.exceptions, *ex)
	return nil
}

func (f *fakeExceptionRepo) CreateMany(ctx context.Context, exceptions []*models.AvailabilityException) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createManyErr != nil {
		return f.createManyErr
	}
	for _, ex := range exceptions {
		if ex.ID == "" {
			ex.ID = uuid.New().String()
		}
		f.exceptions = append(f.exceptions, *ex)
	}
	return nil
}

func (f *fakeExceptionRepo) Delete(ctx context.Context, practitionerID, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, ex := range f.exceptions {
		if ex.PractitionerID == practitionerID && ex.ID == id {
			f.exceptions = append(f.exceptions[:i], f.exceptions[i+1:]...)
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (f *fakeExceptionRepo) GetByDate(ctx context.Context, practitionerID, date string) ([]models.AvailabilityException, error) {
	return f.GetByDateRange(ctx, practitionerID, date, date)
}

func (f *fakeExceptionRepo) GetByDateRange(ctx context.Context, practitionerID, from, to string) ([]models.AvailabilityException, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.AvailabilityException
	for _, ex := range f.exceptions {
		if ex.PractitionerID == practitionerID && from <= ex.Date && ex.Date <= to {
			out = append(out, ex)
		}
	}
	return out, nil
}

type fakeBlockedRepo struct {
	mu     sync.Mutex
	blocks []models.BlockedDate
}

func (f *fakeBlockedRepo) Create(ctx context.Context, block *models.BlockedDate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if block.ID == "" {
		block.ID = uuid.New().String()
	}
	f.blocks = append(f.blocks, *block)
	return nil
}

func (f *fakeBlockedRepo) Delete(ctx context.Context, practitionerID, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, b := range f.blocks {
		if b.PractitionerID == practitionerID && b.ID == id {
			f.blocks = append(f.blocks[:i], f.blocks[i+1:]...)
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (f *fakeBlockedRepo) GetByDateRange(ctx context.Context, practitionerID, from, to string) ([]models.BlockedDate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.BlockedDate
	for _, b := range f.blocks {
		if b.PractitionerID == practitionerID && from <= b.Date && b.Date <= to {
			out = append(out, b)
		}
	}
	return out, nil
}
