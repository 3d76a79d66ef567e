package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AudioTaskEntry is one captured speech task: the question read to the user,
// the transcript of their recorded answer, and the emotion labels observed
// on the webcam around the time of recording.
type AudioTaskEntry struct {
	Question      string    `bson:"question" json:"question"`
	Transcription string    `bson:"transcription" json:"transcription"`
	Emotions      []string  `bson:"emotions" json:"emotions"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
}

// AudioSample holds all audio-task entries for one user, append-only like
// WritingSample.
type AudioSample struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	UserID     string             `bson:"userID" json:"userID"`
	AudioTasks []AudioTaskEntry   `bson:"audioTask" json:"audioTask"`
}
