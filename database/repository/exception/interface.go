// File: database/repository/exception/interface.go
package exceptionRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"wezet/models"
)

// ExceptionRepository stores one-off per-date availability overrides.
// CreateMany inserts a related batch in one transaction; a rule-slot
// conversion writes its suppressing and replacing exceptions together or
// not at all.
type ExceptionRepository interface {
	Create(ctx context.Context, ex *models.AvailabilityException) error
	CreateMany(ctx context.Context, exceptions []*models.AvailabilityException) error
	Delete(ctx context.Context, practitionerID, id string) error
	GetByDate(ctx context.Context, practitionerID, date string) ([]models.AvailabilityException, error)
	GetByDateRange(ctx context.Context, practitionerID, from, to string) ([]models.AvailabilityException, error)
}

type mongoExceptionRepo struct {
	coll *mongo.Collection
}

// NewMongoExceptionRepo constructs a MongoDB-backed ExceptionRepository.
func NewMongoExceptionRepo(db *mongo.Database) ExceptionRepository {
	return &mongoExceptionRepo{coll: db.Collection("availability_exceptions")}
}
