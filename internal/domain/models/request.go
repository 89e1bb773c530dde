package models

import "time"

// FoodRequest statuses. Terminal once accepted or rejected.
const (
	RequestPending  = "pending"
	RequestAccepted = "accepted"
	RequestRejected = "rejected"
)

// FoodRequest is an NGO's standing ask for food of a given type,
// answered (accepted or rejected) by a restaurant. The acting
// restaurant is recorded on the document.
type FoodRequest struct {
	ID          string    `bson:"_id" json:"id"`
	NGOID       string    `bson:"ngo_id" json:"ngo_id"`
	FoodType    string    `bson:"food_type" json:"food_type"`
	Quantity    string    `bson:"quantity" json:"quantity"`
	Description string    `bson:"description" json:"description"`
	Status      string    `bson:"status" json:"status"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`

	ActedByRestaurantID string     `bson:"acted_by_restaurant_id,omitempty" json:"acted_by_restaurant_id,omitempty"`
	UpdatedAt           *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`

	Rev int64 `bson:"rev" json:"-"`
}
