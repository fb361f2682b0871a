package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hostlink-ma/hostlink-services/api/internal/apperrors"
	calcdomain "github.com/hostlink-ma/hostlink-services/api/internal/calculator/domain"
	"github.com/hostlink-ma/hostlink-services/api/internal/events"
)

// LeadRepository persists write-once leads.
type LeadRepository interface {
	Insert(ctx context.Context, lead calcdomain.Lead) (string, error)
	List(ctx context.Context, paging Paging) ([]calcdomain.Lead, error)
}

// ReportLinker signs a time-limited link to the downloadable report.
type ReportLinker interface {
	SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// Paging controls pagination.
type Paging struct {
	Page  int
	Limit int
}

// LeadService captures calculator leads.
type LeadService struct {
	repo      LeadRepository
	publisher events.Publisher
	reports   ReportLinker
	reportKey string
	reportTTL time.Duration
	now       func() time.Time
}

// LeadServiceConfig wires LeadService. Reports and ReportKey are optional.
type LeadServiceConfig struct {
	Repo      LeadRepository
	Publisher events.Publisher
	Reports   ReportLinker
	ReportKey string
	ReportTTL time.Duration
	Now       func() time.Time
}

func NewLeadService(cfg LeadServiceConfig) *LeadService {
	publisher := cfg.Publisher
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	now := cfg.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	ttl := cfg.ReportTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &LeadService{
		repo:      cfg.Repo,
		publisher: publisher,
		reports:   cfg.Reports,
		reportKey: strings.TrimSpace(cfg.ReportKey),
		reportTTL: ttl,
		now:       now,
	}
}

// Estimate is a thin wrapper over the pure computation.
func (s *LeadService) Estimate(inputs calcdomain.Inputs) (calcdomain.Estimate, bool) {
	return calcdomain.Compute(inputs)
}

// CaptureLead stores email with a snapshot of inputs and estimate. Every call
// creates a new record.
func (s *LeadService) CaptureLead(ctx context.Context, email string, inputs calcdomain.Inputs, estimate calcdomain.Estimate) (string, error) {
	lead, err := calcdomain.NewLead(email, inputs, estimate, s.now())
	if err != nil {
		return "", err
	}
	id, err := s.repo.Insert(ctx, lead)
	if err != nil {
		return "", fmt.Errorf("store lead: %w", err)
	}
	lead.ID = id
	s.publisher.Publish(ctx, events.New(events.LeadCaptured, map[string]any{
		"leadId":        id,
		"email":         lead.Email,
		"monthlyProfit": lead.Estimate.MonthlyProfit,
		"yearlyRoi":     lead.Estimate.YearlyROIPercent,
	}))
	return id, nil
}

// ReportURL signs the report link. It returns "" when no report is configured.
func (s *LeadService) ReportURL(ctx context.Context) (string, error) {
	if s.reports == nil || s.reportKey == "" {
		return "", nil
	}
	url, err := s.reports.SignedURL(ctx, s.reportKey, s.reportTTL)
	if err != nil {
		return "", fmt.Errorf("sign report url: %w: %w", apperrors.ErrDependency, err)
	}
	return url, nil
}

// List returns captured leads, newest first.
func (s *LeadService) List(ctx context.Context, paging Paging) ([]calcdomain.Lead, error) {
	return s.repo.List(ctx, paging)
}
