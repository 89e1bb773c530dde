package models

import "time"

// ActorProfile mirrors what the identity provider knows about an actor,
// plus the fields this service owns: focus areas for NGOs and the
// running monetary total for citizens and volunteers.
//
// The document ID is the identity provider's actor ID verbatim.
type ActorProfile struct {
	ID   string `bson:"_id" json:"id"`
	Name string `bson:"name" json:"name"`
	Role Role   `bson:"role" json:"role"`

	// FocusAreas is the capability set of an NGO reviewer: the issue
	// categories it has declared it can act on.
	FocusAreas []string `bson:"focus_areas,omitempty" json:"focus_areas,omitempty"`

	// TotalDonated is a monetary running total in minor units,
	// maintained by atomic increments only.
	TotalDonated int64 `bson:"total_donated,omitempty" json:"total_donated,omitempty"`

	PhotoURL  string    `bson:"photo_url,omitempty" json:"photo_url,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`

	Rev int64 `bson:"rev" json:"-"`
}

// PaymentEvent records one processed payment confirmation. The document
// ID is the payment session ID, so a duplicate delivery fails the
// insert and the increment runs at most once per session.
type PaymentEvent struct {
	ID          string    `bson:"_id" json:"id"`
	ActorID     string    `bson:"actor_id" json:"actor_id"`
	Amount      int64     `bson:"amount" json:"amount"`
	ProcessedAt time.Time `bson:"processed_at" json:"processed_at"`

	Rev int64 `bson:"rev" json:"-"`
}
