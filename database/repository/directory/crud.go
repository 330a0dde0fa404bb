// File: database/repository/directory/crud.go
package directoryRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"wezet/models"
)

func (r *mongoDirectoryRepo) GetPractitioner(ctx context.Context, id string) (*models.Practitioner, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var p models.Practitioner
	if err := r.practitioners.FindOne(ctx, bson.M{"id": id}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *mongoDirectoryRepo) GetService(ctx context.Context, id string) (*models.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var s models.Service
	if err := r.services.FindOne(ctx, bson.M{"id": id}).Decode(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *mongoDirectoryRepo) GetLocation(ctx context.Context, id string) (*models.Location, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var l models.Location
	if err := r.locations.FindOne(ctx, bson.M{"id": id}).Decode(&l); err != nil {
		return nil, err
	}
	return &l, nil
}
