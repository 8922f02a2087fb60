package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password,omitempty" json:"-"`
	Role         UserRole           `bson:"role" json:"role"`
	Phone        string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Resume       string             `bson:"resume,omitempty" json:"resume,omitempty"` // путь к файлу резюме (студенты)
	IsApproved   bool               `bson:"isApproved" json:"isApproved"`

	CompanyDetails *CompanyDetails `bson:"companyDetails,omitempty" json:"companyDetails,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

type CompanyDetails struct {
	CompanyName string `bson:"companyName,omitempty" json:"companyName,omitempty"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
	Website     string `bson:"website,omitempty" json:"website,omitempty"`
	Logo        string `bson:"logo,omitempty" json:"logo,omitempty"`
	HRName      string `bson:"hrName,omitempty" json:"hrName,omitempty"`
}

// DisplayName возвращает название компании для компаний и имя для остальных
func (u *User) DisplayName() string {
	if u.Role == UserRoleCompany && u.CompanyDetails != nil && u.CompanyDetails.CompanyName != "" {
		return u.CompanyDetails.CompanyName
	}
	return u.Name
}
