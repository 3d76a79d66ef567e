package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/j22k/AI-Educationa-Platform-for-Students-with-LD/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type DiagnosisRepository interface {
	Insert(ctx context.Context, result *model.DiagnosisResult) (string, error)
	// FindLatestByUser returns the most recent result when several analysis
	// runs exist for the user.
	FindLatestByUser(ctx context.Context, userID string) (*model.DiagnosisResult, error)
}

type diagnosisRepository struct {
	col *mongo.Collection
}

func NewDiagnosisRepository(db *mongo.Database) DiagnosisRepository {
	return &diagnosisRepository{col: db.Collection("assessment_results")}
}

func (r *diagnosisRepository) Insert(ctx context.Context, result *model.DiagnosisResult) (string, error) {
	if result.ID.IsZero() {
		result.ID = primitive.NewObjectID()
	}
	res, err := r.col.InsertOne(ctx, result)
	if err != nil {
		return "", fmt.Errorf("insert diagnosis result: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return result.ID.Hex(), nil
	}
	return oid.Hex(), nil
}

func (r *diagnosisRepository) FindLatestByUser(ctx context.Context, userID string) (*model.DiagnosisResult, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	var result model.DiagnosisResult
	err := r.col.FindOne(ctx, bson.M{"userId": userID}, opts).Decode(&result)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find diagnosis result: %w", err)
	}
	return &result, nil
}
