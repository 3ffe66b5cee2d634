package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lostnfound/backend/internal/database"
	"github.com/lostnfound/backend/internal/models"
)

type FoundReports struct {
	col *mongo.Collection
}

func NewFoundReports(db *database.DB) *FoundReports {
	return &FoundReports{col: db.FoundReports()}
}

func (s *FoundReports) Insert(ctx context.Context, report *models.FoundReport) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if _, err := s.col.InsertOne(ctx, report); err != nil {
		return fmt.Errorf("insert found report: %w", err)
	}
	return nil
}

func (s *FoundReports) FindByID(ctx context.Context, id string) (*models.FoundReport, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var report models.FoundReport
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&report)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find found report %s: %w", id, err)
	}
	return &report, nil
}

func (s *FoundReports) List(ctx context.Context, skip, limit int64) ([]models.FoundReport, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)
	cursor, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list found reports: %w", err)
	}
	defer cursor.Close(ctx)

	reports := make([]models.FoundReport, 0, limit)
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, fmt.Errorf("decode found reports: %w", err)
	}
	return reports, nil
}
