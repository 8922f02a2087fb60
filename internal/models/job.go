package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Job struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Company     primitive.ObjectID `bson:"company" json:"company"`
	CompanyName string             `bson:"companyName" json:"companyName"`
	Location    string             `bson:"location" json:"location"`
	Description string             `bson:"description" json:"description"`
	Salary      string             `bson:"salary,omitempty" json:"salary,omitempty"`
	JobType     JobType            `bson:"jobType" json:"jobType"`
	Skills      []string           `bson:"skills" json:"skills"`
	Experience  string             `bson:"experience,omitempty" json:"experience,omitempty"`
	Deadline    *time.Time         `bson:"deadline,omitempty" json:"deadline,omitempty"`
	// 0 - без ограничения
	MaxApplicants int `bson:"maxApplicants,omitempty" json:"maxApplicants,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
