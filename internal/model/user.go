package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Email       string             `bson:"email" json:"email"`
	Password    string             `bson:"password" json:"-"`
	IsDiagnosed bool               `bson:"isDiagnosed" json:"isDiagnosed"`
	CreatedAt   time.Time          `bson:"createdAt" json:"created_at"`
}
