package dto

import (
	"time"

	"github.com/lostnfound/backend/internal/models"
)

// UpdateLostReportRequest is the JSON body of the token-authorized partial
// update. Every field is tri-state; only fields present in the payload are
// applied. The reporter email, attachments, resolution fields and token are
// not updatable through this path. The date is a string so the update path
// accepts the same date forms as creation, not just strict RFC 3339.
type UpdateLostReportRequest struct {
	Description Optional[string] `json:"description"`
	DateLost    Optional[string] `json:"date_lost"`
	ProductLink Optional[string] `json:"product_link"`
	Country     Optional[string] `json:"country"`
	State       Optional[string] `json:"state"`
	City        Optional[string] `json:"city"`
}

// Empty reports whether no field at all was present in the payload.
func (r *UpdateLostReportRequest) Empty() bool {
	return !r.Description.Set && !r.DateLost.Set && !r.ProductLink.Set &&
		!r.Country.Set && !r.State.Set && !r.City.Set
}

// MarkFoundRequest is the simple single-contact resolution payload.
type MarkFoundRequest struct {
	FinderContact string `json:"finder_contact"`
}

// PublicLostReport is the unauthenticated view of a lost report. It omits
// the management token, the reporter's email, finder reports and the
// resolution contact.
type PublicLostReport struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	DateLost    time.Time `json:"date_lost"`
	ProductLink string    `json:"product_link,omitempty"`
	Country     string    `json:"country,omitempty"`
	State       string    `json:"state,omitempty"`
	City        string    `json:"city,omitempty"`
	Attachments []string  `json:"attachments"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewPublicLostReport(r *models.LostReport) PublicLostReport {
	return PublicLostReport{
		ID:          r.ID,
		Description: r.Description,
		DateLost:    r.DateLost,
		ProductLink: r.ProductLink,
		Country:     r.Country,
		State:       r.State,
		City:        r.City,
		Attachments: attachments(r.Attachments),
		CreatedAt:   r.CreatedAt,
	}
}

// PublicFoundReport is the unauthenticated view of a standalone found-item
// report. It omits the finder's contact info.
type PublicFoundReport struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	DateFound   time.Time `json:"date_found"`
	Country     string    `json:"country,omitempty"`
	State       string    `json:"state,omitempty"`
	City        string    `json:"city,omitempty"`
	Attachments []string  `json:"attachments"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewPublicFoundReport(r *models.FoundReport) PublicFoundReport {
	return PublicFoundReport{
		ID:          r.ID,
		Description: r.Description,
		DateFound:   r.DateFound,
		Country:     r.Country,
		State:       r.State,
		City:        r.City,
		Attachments: attachments(r.Attachments),
		CreatedAt:   r.CreatedAt,
	}
}

// attachments guarantees [] over null in JSON output.
func attachments(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
