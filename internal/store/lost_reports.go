// Package store wraps the two report collections with typed operations.
// Mutations that must hold under concurrent callers (finder appends, the
// one-shot resolution) are expressed as single server-side update documents,
// never as client-side read-modify-write.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lostnfound/backend/internal/database"
	"github.com/lostnfound/backend/internal/models"
)

// ErrNotFound is returned when no document matches the lookup.
var ErrNotFound = errors.New("record not found")

const opTimeout = 8 * time.Second

type LostReports struct {
	col *mongo.Collection
}

func NewLostReports(db *database.DB) *LostReports {
	return &LostReports{col: db.LostReports()}
}

func (s *LostReports) Insert(ctx context.Context, report *models.LostReport) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if _, err := s.col.InsertOne(ctx, report); err != nil {
		return fmt.Errorf("insert lost report: %w", err)
	}
	return nil
}

func (s *LostReports) FindByID(ctx context.Context, id string) (*models.LostReport, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var report models.LostReport
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&report)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find lost report %s: %w", id, err)
	}
	return &report, nil
}

// FindByIDAndToken looks a report up by id and management token together, so
// authorization is a single indexed query.
func (s *LostReports) FindByIDAndToken(ctx context.Context, id, token string) (*models.LostReport, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var report models.LostReport
	err := s.col.FindOne(ctx, bson.M{"_id": id, "management_token": token}).Decode(&report)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find lost report %s by token: %w", id, err)
	}
	return &report, nil
}

func (s *LostReports) Exists(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	n, err := s.col.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count lost report %s: %w", id, err)
	}
	return n > 0, nil
}

func (s *LostReports) List(ctx context.Context, skip, limit int64) ([]models.LostReport, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)
	cursor, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list lost reports: %w", err)
	}
	defer cursor.Close(ctx)

	reports := make([]models.LostReport, 0, limit)
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, fmt.Errorf("decode lost reports: %w", err)
	}
	return reports, nil
}

// AppendFinderReport pushes one finder report onto the ordered sequence with
// a single atomic $push.
func (s *LostReports) AppendFinderReport(ctx context.Context, id string, fr models.FinderReport) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$push": bson.M{"finder_reports": fr}},
	)
	if err != nil {
		return fmt.Errorf("append finder report to %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkResolved sets the resolution pair only if it is currently unset. The
// condition lives in the update filter, so concurrent calls race safely and
// exactly one wins. Returns whether this call applied the change.
func (s *LostReports) MarkResolved(ctx context.Context, id, contact string, at time.Time) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": id, "resolved_at": nil},
		bson.M{"$set": bson.M{"resolved_contact": contact, "resolved_at": at}},
	)
	if err != nil {
		return false, fmt.Errorf("mark lost report %s resolved: %w", id, err)
	}
	return res.ModifiedCount > 0, nil
}

// SetFields applies a partial update of scalar fields with a single $set.
func (s *LostReports) SetFields(ctx context.Context, id string, fields map[string]interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	set := bson.M{}
	for k, v := range fields {
		set[k] = v
	}
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update lost report %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *LostReports) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete lost report %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
