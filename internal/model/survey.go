package model

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SurveyRecord is the intake questionnaire. At most one exists per user,
// enforced by a unique index on userId.
type SurveyRecord struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	UserID         string             `bson:"userId" json:"userId"`
	AssessmentData map[string]any     `bson:"assessmentData" json:"assessmentData"`
}
