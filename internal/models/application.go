package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Application - отклик студента на вакансию. Одна пара (job, student) - один отклик.
type Application struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Job     primitive.ObjectID `bson:"job" json:"job"`
	Student primitive.ObjectID `bson:"student" json:"student"`
	Resume  string             `bson:"resume" json:"resume"`
	Status  ApplicationStatus  `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
