package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/j22k/AI-Educationa-Platform-for-Students-with-LD/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type SurveyRepository interface {
	Insert(ctx context.Context, record *model.SurveyRecord) error
	FindByUser(ctx context.Context, userID string) (*model.SurveyRecord, error)
}

type surveyRepository struct {
	col *mongo.Collection
}

func NewSurveyRepository(db *mongo.Database) SurveyRepository {
	return &surveyRepository{col: db.Collection("history")}
}

// Insert relies on the unique index on history.userId: a second survey for
// the same user fails atomically with ErrDuplicate, no check-then-insert
// window.
func (r *surveyRepository) Insert(ctx context.Context, record *model.SurveyRecord) error {
	_, err := r.col.InsertOne(ctx, record)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("insert survey record: %w", err)
	}
	return nil
}

func (r *surveyRepository) FindByUser(ctx context.Context, userID string) (*model.SurveyRecord, error) {
	var record model.SurveyRecord
	err := r.col.FindOne(ctx, bson.M{"userId": userID}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find survey record: %w", err)
	}
	return &record, nil
}
