package models

import "time"

// FoodDonation statuses. "claimed" is a one-way door from "available";
// "unavailable" is a restaurant-initiated withdrawal reachable from
// "available" only.
const (
	DonationAvailable   = "available"
	DonationClaimed     = "claimed"
	DonationUnavailable = "unavailable"
)

// FoodDonation is a surplus-food offer posted by a restaurant and
// claimed exclusively by a single volunteer.
type FoodDonation struct {
	ID                 string    `bson:"_id" json:"id"`
	RestaurantID       string    `bson:"restaurant_id" json:"restaurant_id"`
	RestaurantName     string    `bson:"restaurant_name" json:"restaurant_name"`
	FoodType           string    `bson:"food_type" json:"food_type"`
	Quantity           string    `bson:"quantity" json:"quantity"`
	PickupLocation     string    `bson:"pickup_location" json:"pickup_location"`
	PickupInstructions string    `bson:"pickup_instructions,omitempty" json:"pickup_instructions,omitempty"`
	BestBefore         string    `bson:"best_before,omitempty" json:"best_before,omitempty"`
	Status             string    `bson:"status" json:"status"`
	CreatedAt          time.Time `bson:"created_at" json:"created_at"`

	ClaimedByVolunteerID string     `bson:"claimed_by_volunteer_id,omitempty" json:"claimed_by_volunteer_id,omitempty"`
	VolunteerName        string     `bson:"volunteer_name,omitempty" json:"volunteer_name,omitempty"`
	ClaimedAt            *time.Time `bson:"claimed_at,omitempty" json:"claimed_at,omitempty"`
	VolunteerPickupNotes string     `bson:"volunteer_pickup_notes,omitempty" json:"volunteer_pickup_notes,omitempty"`
	VolunteerPhoneNumber string     `bson:"volunteer_phone_number,omitempty" json:"volunteer_phone_number,omitempty"`

	Rev int64 `bson:"rev" json:"-"`
}
