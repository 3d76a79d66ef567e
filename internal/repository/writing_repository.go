package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/j22k/AI-Educationa-Platform-for-Students-with-LD/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type WritingRepository interface {
	// Append adds entries to the user's writing sample, creating the
	// document on first capture. Returns the total entry count after the
	// append.
	Append(ctx context.Context, userID string, entries []model.WritingTaskEntry) (int, error)
	FindByUser(ctx context.Context, userID string) (*model.WritingSample, error)
}

type writingRepository struct {
	col *mongo.Collection
}

func NewWritingRepository(db *mongo.Database) WritingRepository {
	return &writingRepository{col: db.Collection("dysgraphia_diagnosis")}
}

func (r *writingRepository) Append(ctx context.Context, userID string, entries []model.WritingTaskEntry) (int, error) {
	// Upsert with $push/$each is a single atomic array-append per call.
	filter := bson.M{"userID": userID}
	update := bson.M{
		"$push": bson.M{"writingTasks": bson.M{"$each": entries}},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var sample model.WritingSample
	if err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&sample); err != nil {
		return 0, fmt.Errorf("append writing tasks: %w", err)
	}
	return len(sample.WritingTasks), nil
}

func (r *writingRepository) FindByUser(ctx context.Context, userID string) (*model.WritingSample, error) {
	var sample model.WritingSample
	err := r.col.FindOne(ctx, bson.M{"userID": userID}).Decode(&sample)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find writing sample: %w", err)
	}
	return &sample, nil
}
