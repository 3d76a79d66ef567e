package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WritingTaskEntry is one captured handwriting task: the prompt the user was
// asked to copy and the text OCR recognized from the uploaded photo.
type WritingTaskEntry struct {
	Task           string    `bson:"task" json:"task"`
	Text           string    `bson:"text" json:"text"`
	RecognizedText string    `bson:"recognizedText" json:"recognizedText"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
}

// WritingSample holds all writing-task entries for one user. Entries only
// ever accumulate; captures append, never replace.
type WritingSample struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	UserID       string             `bson:"userID" json:"userID"`
	WritingTasks []WritingTaskEntry `bson:"writingTasks" json:"writingTasks"`
}
