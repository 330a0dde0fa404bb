// File: database/repository/blockeddate/interface.go
package blockedRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"wezet/models"
)

// BlockedDateRepository stores whole-day unavailability markers.
type BlockedDateRepository interface {
	Create(ctx context.Context, block *models.BlockedDate) error
	Delete(ctx context.Context, practitionerID, id string) error
	GetByDateRange(ctx context.Context, practitionerID, from, to string) ([]models.BlockedDate, error)
}

type mongoBlockedDateRepo struct {
	coll *mongo.Collection
}

// NewMongoBlockedDateRepo constructs a MongoDB-backed BlockedDateRepository.
func NewMongoBlockedDateRepo(db *mongo.Database) BlockedDateRepository {
	return &mongoBlockedDateRepo{coll: db.Collection("blocked_dates")}
}
