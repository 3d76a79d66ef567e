package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type StudentProfile struct {
	UserID                 string   `bson:"userID" json:"userID"`
	Name                   string   `bson:"name" json:"name"`
	Age                    int      `bson:"age" json:"age"`
	Relationship           string   `bson:"relationship" json:"relationship"`
	PreferredLearningStyle []string `bson:"preferredLearningStyle" json:"preferredLearningStyle"`
	Strengths              string   `bson:"strengths" json:"strengths"`
	Struggles              string   `bson:"struggles" json:"struggles"`
	PreviousDiagnosis      string   `bson:"previousDiagnosis" json:"previousDiagnosis"`
	MainConcerns           string   `bson:"mainConcerns" json:"mainConcerns"`
	PreviousSupport        string   `bson:"previousSupport" json:"previousSupport"`
}

// DisorderFinding is the model's verdict for one disorder: a confidence in
// [0,1] and the observed indicators backing it.
type DisorderFinding struct {
	ConfidenceScore float64  `bson:"confidenceScore" json:"confidenceScore"`
	Indicators      []string `bson:"indicators" json:"indicators"`
}

type EmotionCount struct {
	Emotion string `bson:"emotion" json:"emotion"`
	Count   int    `bson:"count" json:"count"`
}

type EmotionAnalysis struct {
	DominantEmotions   []string       `bson:"dominantEmotions" json:"dominantEmotions"`
	EmotionOccurrences map[string]int `bson:"emotionOccurrences" json:"emotionOccurrences"`
	GraphData          []EmotionCount `bson:"graphData" json:"graphData"`
}

// DiagnosisResult is the consolidated report produced by one analysis run.
// Persisting one flips the owning user's isDiagnosed flag.
type DiagnosisResult struct {
	ID                   primitive.ObjectID         `bson:"_id,omitempty" json:"-"`
	UserID               string                     `bson:"userId" json:"-"`
	StudentProfile       StudentProfile             `bson:"studentProfile" json:"studentProfile"`
	LearningDisabilities map[string]DisorderFinding `bson:"learningDisabilities" json:"learningDisabilities"`
	EmotionAnalysis      EmotionAnalysis            `bson:"emotionAnalysis" json:"emotionAnalysis"`
	CreatedAt            time.Time                  `bson:"createdAt" json:"-"`
}
