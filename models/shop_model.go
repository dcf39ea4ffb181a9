package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
)

// DefaultRating is shown on listings that have no reviews yet, so new
// shops and items never display as unrated.
const DefaultRating = 4.0

type Shop struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	OwnerID         primitive.ObjectID `bson:"ownerId" json:"ownerId"`
	Name            string             `bson:"name" json:"name" validate:"required"`
	Description     string             `bson:"description" json:"description"`
	Address         string             `bson:"address" json:"address" validate:"required"`
	Phone           string             `bson:"phone" json:"phone"`
	Image           string             `bson:"image,omitempty" json:"image,omitempty"`
	Cuisine         string             `bson:"cuisine,omitempty" json:"cuisine,omitempty"`
	ApprovalStatus  string             `bson:"approvalStatus" json:"approvalStatus"`
	PreparationTime int                `bson:"preparationTime" json:"preparationTime"`
	IsOpen          bool               `bson:"isOpen" json:"isOpen"`
	Rating          float64            `bson:"rating" json:"rating"`
	TotalReviews    int                `bson:"totalReviews" json:"totalReviews"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}
