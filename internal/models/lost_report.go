package models

import "time"

// MaxAttachmentsPerSubmission caps how many images a single submission
// (create or finder append) may carry. The cap is per call, not per record:
// every finder append may bring up to five more.
const MaxAttachmentsPerSubmission = 5

// LostReport is a filed record for an item someone lost. The reporter owns
// it through ManagementToken, generated once at creation and never rotated.
//
// A report carries two independent resolution signals: ResolvedContact/
// ResolvedAt set once by the simple "mark found" flow, and FinderReports
// accumulating through the detailed flow. Neither flips the other.
type LostReport struct {
	ID            string    `bson:"_id" json:"id"`
	Description   string    `bson:"description" json:"description"`
	ReporterEmail string    `bson:"reporter_email" json:"reporter_email"`
	DateLost      time.Time `bson:"date_lost" json:"date_lost"`
	ProductLink   string    `bson:"product_link,omitempty" json:"product_link,omitempty"`

	Country string `bson:"country,omitempty" json:"country,omitempty"`
	State   string `bson:"state,omitempty" json:"state,omitempty"`
	City    string `bson:"city,omitempty" json:"city,omitempty"`

	Attachments []string `bson:"attachments" json:"attachments"`

	ManagementToken string    `bson:"management_token" json:"management_token"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`

	ResolvedContact string     `bson:"resolved_contact,omitempty" json:"resolved_contact,omitempty"`
	ResolvedAt      *time.Time `bson:"resolved_at,omitempty" json:"resolved_at,omitempty"`

	FinderReports []FinderReport `bson:"finder_reports,omitempty" json:"finder_reports,omitempty"`
}

// Resolved reports whether the simple resolution flow has run.
func (r *LostReport) Resolved() bool {
	return r.ResolvedAt != nil
}

// AllAttachments returns the report's own attachments plus every nested
// finder report's, in submission order. Used for cascade deletion.
func (r *LostReport) AllAttachments() []string {
	out := make([]string, 0, len(r.Attachments))
	out = append(out, r.Attachments...)
	for _, fr := range r.FinderReports {
		out = append(out, fr.Attachments...)
	}
	return out
}

// FinderReport is one person's claim to have found the item of a specific
// LostReport. Entries are append-only and live and die with their parent.
type FinderReport struct {
	FinderContact     string     `bson:"finder_contact" json:"finder_contact"`
	FinderDescription string     `bson:"finder_description,omitempty" json:"finder_description,omitempty"`
	DateFound         *time.Time `bson:"date_found,omitempty" json:"date_found,omitempty"`

	Country string `bson:"country,omitempty" json:"country,omitempty"`
	State   string `bson:"state,omitempty" json:"state,omitempty"`
	City    string `bson:"city,omitempty" json:"city,omitempty"`

	Attachments []string  `bson:"attachments" json:"attachments"`
	AppendedAt  time.Time `bson:"appended_at" json:"appended_at"`
}
