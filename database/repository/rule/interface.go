// File: database/repository/rule/interface.go
package ruleRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"wezet/models"
)

// WeeklyRuleRepository stores recurring weekly availability templates.
// ReplaceWeek swaps the full weekly schedule for one (practitioner, service)
// pair in a single transaction, so a partial failure never leaves a mixed
// old/new week behind.
type WeeklyRuleRepository interface {
	ReplaceWeek(ctx context.Context, practitionerID, serviceID string, rules []models.WeeklyRule) error
	GetWeek(ctx context.Context, practitionerID, serviceID string) ([]models.WeeklyRule, error)
	GetAllForPractitioner(ctx context.Context, practitionerID string) ([]models.WeeklyRule, error)
}

type mongoWeeklyRuleRepo struct {
	coll *mongo.Collection
}

// NewMongoWeeklyRuleRepo constructs a MongoDB-backed WeeklyRuleRepository.
func NewMongoWeeklyRuleRepo(db *mongo.Database) WeeklyRuleRepository {
	return &mongoWeeklyRuleRepo{coll: db.Collection("weekly_rules")}
}
