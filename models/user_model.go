package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleCustomer  = "customer"
	RoleShopOwner = "shopOwner"
	RoleAdmin     = "admin"
)

type User struct {
	Id        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string             `bson:"name" json:"name" validate:"required"`
	Email     string             `bson:"email" json:"email" validate:"required,email"`
	Password  string             `bson:"password" json:"password,omitempty" validate:"required,min=8"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Role      string             `bson:"role" json:"role" validate:"required,oneof=customer shopOwner admin"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
