// File: database/repository/exception/crud.go
package exceptionRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"wezet/models"
)

func (r *mongoExceptionRepo) Create(ctx context.Context, ex *models.AvailabilityException) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if ex.ID == "" {
		ex.ID = uuid.New().String()
	}
	if ex.CreatedAt.IsZero() {
		ex.CreatedAt = time.Now()
	}
	_, err := r.coll.InsertOne(ctx, ex)
	return err
}

func (r *mongoExceptionRepo) CreateMany(ctx context.Context, exceptions []*models.AvailabilityException) error {
	if len(exceptions) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	now := time.Now()
	docs := make([]interface{}, 0, len(exceptions))
	for _, ex := range exceptions {
		if ex.ID == "" {
			ex.ID = uuid.New().String()
		}
		if ex.CreatedAt.IsZero() {
			ex.CreatedAt = now
		}
		docs = append(docs, ex)
	}

	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if _, err := r.coll.InsertMany(sc, docs); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return fmt.Errorf("exception batch insert failed: %w", err)
	}
	return nil
}

func (r *mongoExceptionRepo) Delete(ctx context.Context, practitionerID, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id, "practitioner_id": practitionerID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoExceptionRepo) GetByDate(ctx context.Context, practitionerID, date string) ([]models.AvailabilityException, error) {
	return r.find(ctx, bson.M{"practitioner_id": practitionerID, "date": date})
}

func (r *mongoExceptionRepo) GetByDateRange(ctx context.Context, practitionerID, from, to string) ([]models.AvailabilityException, error) {
	filter := bson.M{
		"practitioner_id": practitionerID,
		"date":            bson.M{"$gte": from, "$lte": to},
	}
	return r.find(ctx, filter)
}

func (r *mongoExceptionRepo) find(ctx context.Context, filter bson.M) ([]models.AvailabilityException, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "start_time", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var exceptions []models.AvailabilityException
	if err := cursor.All(ctx, &exceptions); err != nil {
		return nil, err
	}
	return exceptions, nil
}
