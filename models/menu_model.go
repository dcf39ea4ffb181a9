package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ItemOption is a variation or add-on a customer can pick for an item.
// Price is the delta added to the item's unit price.
type ItemOption struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name  string             `bson:"name" json:"name" validate:"required"`
	Price float64            `bson:"price" json:"price"`
}

// Offers determines the item's derived current price.
type Offers struct {
	HasDiscount        bool      `bson:"hasDiscount" json:"hasDiscount"`
	DiscountPrice      float64   `bson:"discountPrice,omitempty" json:"discountPrice,omitempty"`
	DiscountPercentage float64   `bson:"discountPercentage,omitempty" json:"discountPercentage,omitempty"`
	ValidUntil         time.Time `bson:"validUntil,omitempty" json:"validUntil,omitempty"`
}

// AspectAverages are the per-aspect rating averages on a menu item,
// maintained by the review aggregator.
type AspectAverages struct {
	Taste        float64 `bson:"taste" json:"taste"`
	Presentation float64 `bson:"presentation" json:"presentation"`
	Portion      float64 `bson:"portion" json:"portion"`
	Value        float64 `bson:"value" json:"value"`
}

type MenuItem struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ShopID             primitive.ObjectID `bson:"shopId" json:"shopId"`
	Name               string             `bson:"name" json:"name" validate:"required"`
	Description        string             `bson:"description" json:"description"`
	Price              float64            `bson:"price" json:"price" validate:"required,gt=0"`
	Images             []string           `bson:"images" json:"images"`
	Category           string             `bson:"category" json:"category"`
	IsAvailable        bool               `bson:"isAvailable" json:"isAvailable"`
	Variations         []ItemOption       `bson:"variations" json:"variations"`
	AddOns             []ItemOption       `bson:"addOns" json:"addOns"`
	Offers             Offers             `bson:"offers" json:"offers"`
	Rating             float64            `bson:"rating" json:"rating"`
	ReviewCount        int                `bson:"reviewCount" json:"reviewCount"`
	Aspects            AspectAverages     `bson:"aspects" json:"aspects"`
	RecommendationRate float64            `bson:"recommendationRate" json:"recommendationRate"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CurrentPrice projects the effective unit price at the given moment:
// the discount price (or percentage discount) while the offer is still
// valid, the base price otherwise. Derived, never stored.
func (m MenuItem) CurrentPrice(now time.Time) float64 {
	if !m.Offers.HasDiscount || m.Offers.ValidUntil.IsZero() || now.After(m.Offers.ValidUntil) {
		return m.Price
	}
	if m.Offers.DiscountPrice > 0 {
		return m.Offers.DiscountPrice
	}
	if m.Offers.DiscountPercentage > 0 {
		return m.Price * (1 - m.Offers.DiscountPercentage/100)
	}
	return m.Price
}
