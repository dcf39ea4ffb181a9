package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ShopReview is bound 1:1 to a (user, order) pair, enforced by a
// unique index.
type ShopReview struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	ShopID    primitive.ObjectID `bson:"shopId" json:"shopId"`
	OrderID   primitive.ObjectID `bson:"orderId" json:"orderId"`
	Rating    float64            `bson:"rating" json:"rating" validate:"required,min=1,max=5"`
	Comment   string             `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// AspectRatings are the per-aspect scores on an item review.
type AspectRatings struct {
	Taste        float64 `bson:"taste" json:"taste" validate:"min=1,max=5"`
	Presentation float64 `bson:"presentation" json:"presentation" validate:"min=1,max=5"`
	Portion      float64 `bson:"portion" json:"portion" validate:"min=1,max=5"`
	Value        float64 `bson:"value" json:"value" validate:"min=1,max=5"`
}

// MenuItemReview is bound 1:1 to a (user, menuItem, order) tuple,
// enforced by a unique index. The item must appear in the order's
// snapshotted line items.
type MenuItemReview struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID        primitive.ObjectID `bson:"userId" json:"userId"`
	MenuItemID    primitive.ObjectID `bson:"menuItemId" json:"menuItemId"`
	ShopID        primitive.ObjectID `bson:"shopId" json:"shopId"`
	OrderID       primitive.ObjectID `bson:"orderId" json:"orderId"`
	Rating        float64            `bson:"rating" json:"rating" validate:"required,min=1,max=5"`
	Comment       string             `bson:"comment,omitempty" json:"comment,omitempty"`
	Aspects       AspectRatings      `bson:"aspects" json:"aspects"`
	IsRecommended bool               `bson:"isRecommended" json:"isRecommended"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}
