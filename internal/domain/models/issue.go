package models

import "time"

// Issue statuses. An issue is never deleted, only transitioned.
const (
	IssuePending    = "pending"
	IssueInProgress = "in-progress"
	IssueResolved   = "resolved"
)

// Issue is a community problem reported by a citizen or volunteer.
// Status is mutated only by an NGO reviewer whose focus areas contain
// the issue's category.
type Issue struct {
	ID          string `bson:"_id" json:"id"`
	Title       string `bson:"title" json:"title"`
	Description string `bson:"description" json:"description"`
	Category    string `bson:"category" json:"category"`
	// Location is free text, or "coords:<lat>,<lng>" when the reporter
	// shared device coordinates.
	Location   string     `bson:"location" json:"location"`
	ReporterID string     `bson:"reporter_id" json:"reporter_id"`
	ImageURL   string     `bson:"image_url,omitempty" json:"image_url,omitempty"`
	Status     string     `bson:"status" json:"status"`
	Timestamp  time.Time  `bson:"timestamp" json:"timestamp"`
	UpdatedAt  *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`

	Rev int64 `bson:"rev" json:"-"`
}
