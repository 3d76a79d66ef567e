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

type AudioRepository interface {
	Append(ctx context.Context, userID string, entries []model.AudioTaskEntry) (int, error)
	FindByUser(ctx context.Context, userID string) (*model.AudioSample, error)
}

type audioRepository struct {
	col *mongo.Collection
}

func NewAudioRepository(db *mongo.Database) AudioRepository {
	return &audioRepository{col: db.Collection("dyslexia_diagnosis")}
}

func (r *audioRepository) Append(ctx context.Context, userID string, entries []model.AudioTaskEntry) (int, error) {
	filter := bson.M{"userID": userID}
	update := bson.M{
		"$push": bson.M{"audioTask": bson.M{"$each": entries}},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var sample model.AudioSample
	if err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&sample); err != nil {
		return 0, fmt.Errorf("append audio tasks: %w", err)
	}
	return len(sample.AudioTasks), nil
}

func (r *audioRepository) FindByUser(ctx context.Context, userID string) (*model.AudioSample, error) {
	var sample model.AudioSample
	err := r.col.FindOne(ctx, bson.M{"userID": userID}).Decode(&sample)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find audio sample: %w", err)
	}
	return &sample, nil
}
