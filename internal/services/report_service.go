package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/lostnfound/backend/internal/attachments"
	"github.com/lostnfound/backend/internal/config"
	"github.com/lostnfound/backend/internal/dto"
	"github.com/lostnfound/backend/internal/models"
	"github.com/lostnfound/backend/internal/store"
	"github.com/lostnfound/backend/internal/token"
)

// Attachment filename prefixes, one per intake path, so stray files on disk
// can be traced back to their origin.
const (
	finderImagePrefix    = "found_"
	foundReportImgPrefix = "found_report_"
)

// LostReportStore is the persistence surface the workflow needs for lost
// reports. Implemented by store.LostReports; tests substitute in-memory
// fakes.
type LostReportStore interface {
	Insert(ctx context.Context, report *models.LostReport) error
	FindByID(ctx context.Context, id string) (*models.LostReport, error)
	FindByIDAndToken(ctx context.Context, id, tok string) (*models.LostReport, error)
	Exists(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, skip, limit int64) ([]models.LostReport, error)
	AppendFinderReport(ctx context.Context, id string, fr models.FinderReport) error
	MarkResolved(ctx context.Context, id, contact string, at time.Time) (bool, error)
	SetFields(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
}

type FoundReportStore interface {
	Insert(ctx context.Context, report *models.FoundReport) error
	FindByID(ctx context.Context, id string) (*models.FoundReport, error)
	List(ctx context.Context, skip, limit int64) ([]models.FoundReport, error)
}

// AttachmentStore persists image blobs. Both operations are best effort per
// file and never fail a batch.
type AttachmentStore interface {
	Save(uploads []attachments.Upload, prefix string) []string
	Delete(filename string) bool
}

// Notifier delivers one message, at most once, and reports success. The
// workflow discards the result beyond logging: by the time a notification
// fires, the triggering mutation is already committed.
type Notifier interface {
	Notify(to, subject, body string) bool
}

type ReportService struct {
	lost     LostReportStore
	found    FoundReportStore
	attach   AttachmentStore
	notifier Notifier
	cfg      *config.Config
}

func NewReportService(lost LostReportStore, found FoundReportStore, attach AttachmentStore, notifier Notifier, cfg *config.Config) *ReportService {
	return &ReportService{lost: lost, found: found, attach: attach, notifier: notifier, cfg: cfg}
}

type CreateLostReportParams struct {
	Description   string
	ReporterEmail string
	DateLost      string
	ProductLink   string
	Country       string
	State         string
	City          string
	Images        []attachments.Upload
}

// CreateLostReport validates the intake fields, persists accepted images,
// inserts the record with a fresh id and management token, and mails the
// reporter their management link. Mail failure never fails the call.
func (s *ReportService) CreateLostReport(ctx context.Context, p CreateLostReportParams) (*models.LostReport, error) {
	desc := strings.TrimSpace(p.Description)
	if err := validateDescription(desc); err != nil {
		return nil, err
	}
	email, err := validateEmail("reporter_email", p.ReporterEmail)
	if err != nil {
		return nil, err
	}
	dateLost, err := parseDate("date_lost", p.DateLost)
	if err != nil {
		return nil, err
	}
	link, err := validateProductLink(p.ProductLink)
	if err != nil {
		return nil, err
	}
	if len(p.Images) > models.MaxAttachmentsPerSubmission {
		return nil, invalid("images", "maximum of 5 images allowed")
	}

	report := &models.LostReport{
		ID:              uuid.NewString(),
		Description:     desc,
		ReporterEmail:   email,
		DateLost:        dateLost,
		ProductLink:     link,
		Country:         strings.TrimSpace(p.Country),
		State:           strings.TrimSpace(p.State),
		City:            strings.TrimSpace(p.City),
		Attachments:     s.attach.Save(p.Images, ""),
		ManagementToken: token.New(),
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.lost.Insert(ctx, report); err != nil {
		return nil, storage("lost report insert", err)
	}
	slog.Info("lost report created", "id", report.ID, "attachments", len(report.Attachments))

	manageLink := s.cfg.ManagementLink(report.ID, report.ManagementToken)
	body := fmt.Sprintf(
		"Your lost item report has been filed.\n\nDescription: %s\n\nManage your report here:\n%s\n\nKeep this link secure; anyone with it can edit or delete the report.",
		report.Description, manageLink)
	if !s.notifier.Notify(report.ReporterEmail, "Your Lost Item Report", body) {
		slog.Error("management email not delivered", "id", report.ID)
	}
	return report, nil
}

type CreateFoundReportParams struct {
	Description   string
	DateFound     string
	FinderContact string
	Country       string
	State         string
	City          string
	Images        []attachments.Upload
}

// CreateFoundReport files a standalone found-item record. No token is
// issued and nobody is notified.
func (s *ReportService) CreateFoundReport(ctx context.Context, p CreateFoundReportParams) (*models.FoundReport, error) {
	desc := strings.TrimSpace(p.Description)
	if err := validateDescription(desc); err != nil {
		return nil, err
	}
	dateFound, err := parseDate("date_found", p.DateFound)
	if err != nil {
		return nil, err
	}
	if contact := strings.TrimSpace(p.FinderContact); contact != "" {
		if err := validateContact(contact); err != nil {
			return nil, err
		}
	}
	if len(p.Images) > models.MaxAttachmentsPerSubmission {
		return nil, invalid("images", "maximum of 5 images allowed")
	}

	report := &models.FoundReport{
		ID:            uuid.NewString(),
		Description:   desc,
		DateFound:     dateFound,
		FinderContact: strings.TrimSpace(p.FinderContact),
		Country:       strings.TrimSpace(p.Country),
		State:         strings.TrimSpace(p.State),
		City:          strings.TrimSpace(p.City),
		Attachments:   s.attach.Save(p.Images, foundReportImgPrefix),
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.found.Insert(ctx, report); err != nil {
		return nil, storage("found report insert", err)
	}
	slog.Info("found report created", "id", report.ID, "attachments", len(report.Attachments))
	return report, nil
}

type FinderReportParams struct {
	FinderContact     string
	FinderDescription string
	DateFound         string
	Country           string
	State             string
	City              string
	Images            []attachments.Upload
}

// AppendFinderReport attaches one finder submission to a lost report. The
// endpoint is deliberately unauthenticated; any finder may submit. If the
// report is already resolved the call succeeds without mutating anything or
// mailing anyone, so repeated submissions after resolution neither error nor
// reveal more than a generic success.
//
// The resolved check is a read followed by an append decided here, not a
// compare-and-append; racing with MarkFoundSimple can at worst slip one
// extra finder report in just after resolution.
func (s *ReportService) AppendFinderReport(ctx context.Context, lostID string, p FinderReportParams) error {
	if err := validateReportID(lostID); err != nil {
		return err
	}
	contact := strings.TrimSpace(p.FinderContact)
	if err := validateContact(contact); err != nil {
		return err
	}
	if utf8.RuneCountInString(p.FinderDescription) > 1000 {
		return invalid("finder_description", "must be at most 1000 characters")
	}
	var dateFound *time.Time
	if p.DateFound != "" {
		d, err := parseDate("date_found", p.DateFound)
		if err != nil {
			return err
		}
		dateFound = &d
	}
	if len(p.Images) > models.MaxAttachmentsPerSubmission {
		return invalid("images", "maximum of 5 images allowed")
	}

	report, err := s.lost.FindByID(ctx, lostID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrReportNotFound
	}
	if err != nil {
		return storage("lost report lookup", err)
	}
	if report.Resolved() {
		slog.Info("finder report for resolved item ignored", "id", lostID)
		return nil
	}

	fr := models.FinderReport{
		FinderContact:     contact,
		FinderDescription: strings.TrimSpace(p.FinderDescription),
		DateFound:         dateFound,
		Country:           strings.TrimSpace(p.Country),
		State:             strings.TrimSpace(p.State),
		City:              strings.TrimSpace(p.City),
		Attachments:       s.attach.Save(p.Images, finderImagePrefix),
		AppendedAt:        time.Now().UTC(),
	}

	if err := s.lost.AppendFinderReport(ctx, lostID, fr); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrReportNotFound
		}
		return storage("finder report append", err)
	}
	slog.Info("finder report appended", "id", lostID, "attachments", len(fr.Attachments))

	body := fmt.Sprintf(
		"Someone reported finding your lost item.\n\nFinder contact: %s\nDate found: %s\nLocation: %s\nFinder's description: %s\nImages attached: %d\n---\nYour item description: %q\n\nPlease contact the finder if this looks like a match. Be cautious when arranging a meetup.\nReport ID: %s",
		fr.FinderContact, formatOptionalDate(fr.DateFound), locationLine(fr.City, fr.State, fr.Country),
		orNA(fr.FinderDescription), len(fr.Attachments), report.Description, lostID)
	if !s.notifier.Notify(report.ReporterEmail, "Update: Possible Match for Your Lost Item!", body) {
		slog.Error("finder report email not delivered", "id", lostID)
	}
	return nil
}

// MarkFoundSimple records the one-shot resolution pair. The conditional set
// only applies when both fields are unset; repeat calls succeed silently and
// never re-notify.
func (s *ReportService) MarkFoundSimple(ctx context.Context, lostID, finderContact string) error {
	if err := validateReportID(lostID); err != nil {
		return err
	}
	contact := strings.TrimSpace(finderContact)
	if err := validateContact(contact); err != nil {
		return err
	}

	report, err := s.lost.FindByID(ctx, lostID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrReportNotFound
	}
	if err != nil {
		return storage("lost report lookup", err)
	}

	applied, err := s.lost.MarkResolved(ctx, lostID, contact, time.Now().UTC())
	if err != nil {
		return storage("mark resolved", err)
	}
	if !applied {
		slog.Info("lost report already resolved", "id", lostID)
		return nil
	}
	slog.Info("lost report marked resolved", "id", lostID)

	body := fmt.Sprintf(
		"Good news: someone says they found your lost item.\n\nTheir contact: %s\nYour item description: %q\n\nReach out to them to arrange the return.\nReport ID: %s",
		contact, report.Description, lostID)
	if !s.notifier.Notify(report.ReporterEmail, "Your Lost Item May Have Been Found!", body) {
		slog.Error("resolution email not delivered", "id", lostID)
	}
	return nil
}

// AuthorizeAndFetch returns the lost report iff both the id exists and the
// token matches. On a miss it runs a secondary existence check to tell
// ErrReportNotFound from ErrInvalidToken.
func (s *ReportService) AuthorizeAndFetch(ctx context.Context, lostID, tok string) (*models.LostReport, error) {
	if err := validateReportID(lostID); err != nil {
		return nil, err
	}

	// A malformed token can never match a stored one; skip straight to the
	// existence check that decides between the two error cases.
	if token.ValidFormat(tok) {
		report, err := s.lost.FindByIDAndToken(ctx, lostID, tok)
		if err == nil {
			return report, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return nil, storage("lost report authorization", err)
		}
	}

	exists, err := s.lost.Exists(ctx, lostID)
	if err != nil {
		return nil, storage("lost report existence check", err)
	}
	if exists {
		return nil, ErrInvalidToken
	}
	return nil, ErrReportNotFound
}

// UpdateFields applies a token-authorized partial update. Only fields
// present in the payload are touched; an explicit null clears an optional
// field. An empty payload returns the current record without a store write.
func (s *ReportService) UpdateFields(ctx context.Context, lostID, tok string, req *dto.UpdateLostReportRequest) (*models.LostReport, error) {
	report, err := s.AuthorizeAndFetch(ctx, lostID, tok)
	if err != nil {
		return nil, err
	}
	if req.Empty() {
		return report, nil
	}

	fields := make(map[string]interface{})
	if req.Description.Set {
		if !req.Description.Valid {
			return nil, invalid("description", "cannot be cleared")
		}
		desc := strings.TrimSpace(req.Description.Value)
		if err := validateDescription(desc); err != nil {
			return nil, err
		}
		fields["description"] = desc
	}
	if req.DateLost.Set {
		if !req.DateLost.Valid {
			return nil, invalid("date_lost", "cannot be cleared")
		}
		dateLost, err := parseDate("date_lost", req.DateLost.Value)
		if err != nil {
			return nil, err
		}
		fields["date_lost"] = dateLost
	}
	if req.ProductLink.Set {
		link := ""
		if req.ProductLink.Valid {
			link, err = validateProductLink(req.ProductLink.Value)
			if err != nil {
				return nil, err
			}
		}
		fields["product_link"] = link
	}
	setOptionalText(fields, "country", req.Country)
	setOptionalText(fields, "state", req.State)
	setOptionalText(fields, "city", req.City)

	if err := s.lost.SetFields(ctx, lostID, fields); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, storage("lost report update", err)
	}

	updated, err := s.lost.FindByID(ctx, lostID)
	if err != nil {
		return nil, storage("lost report refetch", err)
	}
	slog.Info("lost report updated", "id", lostID, "fields", len(fields))
	return updated, nil
}

// DeleteRecord removes a lost report and, best effort, every attachment it
// references, including all nested finder report attachments. Blob cleanup
// and record removal are not transactional; an orphaned blob is an accepted
// failure mode, never an error to the caller.
func (s *ReportService) DeleteRecord(ctx context.Context, lostID, tok string) error {
	report, err := s.AuthorizeAndFetch(ctx, lostID, tok)
	if err != nil {
		return err
	}

	for _, filename := range report.AllAttachments() {
		if !s.attach.Delete(filename) {
			slog.Warn("attachment already absent", "id", lostID, "filename", filename)
		}
	}

	if err := s.lost.Delete(ctx, lostID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrReportNotFound
		}
		return storage("lost report delete", err)
	}
	slog.Info("lost report deleted", "id", lostID)
	return nil
}

// GetPublicLostReport is the unauthenticated read path.
func (s *ReportService) GetPublicLostReport(ctx context.Context, lostID string) (*models.LostReport, error) {
	if err := validateReportID(lostID); err != nil {
		return nil, err
	}
	report, err := s.lost.FindByID(ctx, lostID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrReportNotFound
	}
	if err != nil {
		return nil, storage("lost report lookup", err)
	}
	return report, nil
}

func (s *ReportService) ListLostReports(ctx context.Context, skip, limit int64) ([]models.LostReport, error) {
	reports, err := s.lost.List(ctx, clampSkip(skip), clampLimit(limit))
	if err != nil {
		return nil, storage("lost report list", err)
	}
	return reports, nil
}

func (s *ReportService) GetFoundReport(ctx context.Context, id string) (*models.FoundReport, error) {
	if err := validateReportID(id); err != nil {
		return nil, err
	}
	report, err := s.found.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrReportNotFound
	}
	if err != nil {
		return nil, storage("found report lookup", err)
	}
	return report, nil
}

func (s *ReportService) ListFoundReports(ctx context.Context, skip, limit int64) ([]models.FoundReport, error) {
	reports, err := s.found.List(ctx, clampSkip(skip), clampLimit(limit))
	if err != nil {
		return nil, storage("found report list", err)
	}
	return reports, nil
}

// --- validation helpers ---

func validateReportID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidReportID
	}
	return nil
}

// Length bounds count characters, not bytes, so multibyte input is measured
// the way the client sees it.
func validateDescription(desc string) error {
	switch n := utf8.RuneCountInString(desc); {
	case n < 10:
		return invalid("description", "must be at least 10 characters")
	case n > 1000:
		return invalid("description", "must be at most 1000 characters")
	}
	return nil
}

func validateEmail(field, addr string) (string, error) {
	addr = strings.TrimSpace(addr)
	parsed, err := mail.ParseAddress(addr)
	if err != nil {
		return "", invalid(field, "not a valid email address")
	}
	return parsed.Address, nil
}

func validateContact(contact string) error {
	switch n := utf8.RuneCountInString(contact); {
	case n < 5:
		return invalid("finder_contact", "must be at least 5 characters")
	case n > 200:
		return invalid("finder_contact", "must be at most 200 characters")
	}
	return nil
}

func validateProductLink(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", invalid("product_link", "must be an absolute http(s) URL")
	}
	return u.String(), nil
}

// parseDate accepts RFC 3339 plus the offset-less forms the frontend's date
// pickers produce.
func parseDate(field, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, invalid(field, "invalid date format: "+raw)
}

func setOptionalText(fields map[string]interface{}, key string, opt dto.Optional[string]) {
	if !opt.Set {
		return
	}
	if !opt.Valid {
		fields[key] = ""
		return
	}
	fields[key] = strings.TrimSpace(opt.Value)
}

func clampSkip(skip int64) int64 {
	if skip < 0 {
		return 0
	}
	return skip
}

func clampLimit(limit int64) int64 {
	if limit < 1 {
		return 10
	}
	if limit > 100 {
		return 100
	}
	return limit
}

func locationLine(city, state, country string) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{city, state, country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return "N/A"
	}
	return strings.Join(parts, ", ")
}

func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return "N/A"
	}
	return t.Format("2006-01-02")
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
