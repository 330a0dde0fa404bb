// File: database/repository/directory/interface.go
package directoryRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"wezet/models"
)

// DirectoryRepository exposes the practitioner/service/location reference
// data the booking core reads. The core never writes these collections.
type DirectoryRepository interface {
	GetPractitioner(ctx context.Context, id string) (*models.Practitioner, error)
	GetService(ctx context.Context, id string) (*models.Service, error)
	GetLocation(ctx context.Context, id string) (*models.Location, error)
}

type mongoDirectoryRepo struct {
	practitioners *mongo.Collection
	services      *mongo.Collection
	locations     *mongo.Collection
}

// NewMongoDirectoryRepo constructs a MongoDB-backed DirectoryRepository.
func NewMongoDirectoryRepo(db *mongo.Database) DirectoryRepository {
	return &mongoDirectoryRepo{
		practitioners: db.Collection("practitioners"),
		services:      db.Collection("services"),
		locations:     db.Collection("locations"),
	}
}
