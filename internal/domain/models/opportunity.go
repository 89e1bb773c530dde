package models

import "time"

// Opportunity statuses.
const (
	OpportunityOpen   = "open"
	OpportunityFull   = "full"
	OpportunityClosed = "closed"
)

// Opportunity is a volunteer event with a fixed number of seats.
//
// SignedUpVolunteers is a set: membership matters, order does not, and
// its cardinality must never exceed Spots. Absent a manual close,
// status is "full" exactly when the set has reached capacity.
type Opportunity struct {
	ID       string `bson:"_id" json:"id"`
	Title    string `bson:"title" json:"title"`
	Category string `bson:"category" json:"category"`
	Location string `bson:"location" json:"location"`
	Date     string `bson:"date" json:"date"`
	Time     string `bson:"time" json:"time"`
	Spots    int    `bson:"spots" json:"spots"`
	OrgID    string `bson:"org_id" json:"org_id"`
	OrgName  string `bson:"org_name" json:"org_name"`
	Status   string `bson:"status" json:"status"`

	SignedUpVolunteers []string  `bson:"signed_up_volunteers" json:"signed_up_volunteers"`
	CreatedAt          time.Time `bson:"created_at" json:"created_at"`

	Rev int64 `bson:"rev" json:"-"`
}

// SignedUp reports whether actorID is already in the volunteer set.
func (o *Opportunity) SignedUp(actorID string) bool {
	for _, id := range o.SignedUpVolunteers {
		if id == actorID {
			return true
		}
	}
	return false
}
