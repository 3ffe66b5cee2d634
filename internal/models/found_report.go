package models

import "time"

// FoundReport is a standalone record for an item someone found, unlinked to
// any LostReport. It has no management token and no deletion path.
type FoundReport struct {
	ID          string    `bson:"_id" json:"id"`
	Description string    `bson:"description" json:"description"`
	DateFound   time.Time `bson:"date_found" json:"date_found"`

	Country string `bson:"country,omitempty" json:"country,omitempty"`
	State   string `bson:"state,omitempty" json:"state,omitempty"`
	City    string `bson:"city,omitempty" json:"city,omitempty"`

	// Optional: a finder may report without leaving contact info.
	FinderContact string `bson:"finder_contact,omitempty" json:"finder_contact,omitempty"`

	Attachments []string  `bson:"attachments" json:"attachments"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}
