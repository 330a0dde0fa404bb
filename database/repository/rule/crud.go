// File: database/repository/rule/crud.go
package ruleRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"wezet/models"
)

func (r *mongoWeeklyRuleRepo) ReplaceWeek(ctx context.Context, practitionerID, serviceID string, rules []models.WeeklyRule) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	now := time.Now()
	docs := make([]interface{}, 0, len(rules))
	for _, rule := range rules {
		rule.PractitionerID = practitionerID
		rule.ServiceID = serviceID
		if rule.ID == "" {
			rule.ID = uuid.New().String()
		}
		if rule.CreatedAt.IsZero() {
			rule.CreatedAt = now
		}
		rule.UpdatedAt = now
		docs = append(docs, rule)
	}

	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		filter := bson.M{"practitioner_id": practitionerID, "service_id": serviceID}
		if _, err := r.coll.DeleteMany(sc, filter); err != nil {
			return fmt.Errorf("delete old week failed: %w", err)
		}
		if len(docs) == 0 {
			return nil
		}
		if _, err := r.coll.InsertMany(sc, docs); err != nil {
			return fmt.Errorf("insert new week failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return fmt.Errorf("weekly schedule replacement failed: %w", err)
	}
	return nil
}

func (r *mongoWeeklyRuleRepo) GetWeek(ctx context.Context, practitionerID, serviceID string) ([]models.WeeklyRule, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"practitioner_id": practitionerID, "service_id": serviceID}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rules []models.WeeklyRule
	if err := cursor.All(ctx, &rules); err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *mongoWeeklyRuleRepo) GetAllForPractitioner(ctx context.Context, practitionerID string) ([]models.WeeklyRule, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"practitioner_id": practitionerID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rules []models.WeeklyRule
	if err := cursor.All(ctx, &rules); err != nil {
		return nil, err
	}
	return rules, nil
}
