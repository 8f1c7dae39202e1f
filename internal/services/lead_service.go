package services

import (
	"context"
	"strings"

	"github.com/lead-studio/backend/internal/events"
	"github.com/lead-studio/backend/internal/metrics"
	"github.com/lead-studio/backend/internal/models"
	"go.uber.org/zap"
)

type LeadService struct {
	leads     LeadStore
	packages  ContentPackageStore
	audit     AuditLogger
	publisher events.Publisher
	log       *zap.Logger
}

func NewLeadService(
	leads LeadStore,
	packages ContentPackageStore,
	audit AuditLogger,
	publisher events.Publisher,
	log *zap.Logger,
) *LeadService {
	return &LeadService{
		leads:     leads,
		packages:  packages,
		audit:     audit,
		publisher: publisher,
		log:       log,
	}
}

// CaptureInput is what the public landing form submits.
type CaptureInput struct {
	ContentPackageID int64
	Name             string
	ContactInfo      string
	VehicleInterest  string
	Timeframe        string
	Consent          bool
}

func (in CaptureInput) validate() error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.ContactInfo) == "" ||
		strings.TrimSpace(in.VehicleInterest) == "" || strings.TrimSpace(in.Timeframe) == "" || !in.Consent {
		return invalid("please fill in all fields and accept the terms")
	}
	return nil
}

// Capture creates a lead for an existing content package. Status is always
// new and notes always empty, whatever the caller holds.
func (s *LeadService) Capture(ctx context.Context, in CaptureInput) (*models.Lead, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if _, err := s.packages.GetByID(ctx, in.ContentPackageID); err != nil {
		return nil, err
	}

	lead := &models.Lead{
		Name:             strings.TrimSpace(in.Name),
		ContactInfo:      strings.TrimSpace(in.ContactInfo),
		VehicleInterest:  in.VehicleInterest,
		Timeframe:        in.Timeframe,
		Consent:          in.Consent,
		Status:           models.LeadStatusNew,
		Notes:            []string{},
		ContentPackageID: in.ContentPackageID,
		NextFollowUpAt:   models.FollowUpUnset,
	}
	if err := s.leads.Create(ctx, lead); err != nil {
		return nil, err
	}
	metrics.LeadsCapturedTotal.Inc()

	_ = s.audit.Log(ctx, models.AuditLog{
		ActorType:  "public",
		Action:     "lead_captured",
		EntityType: AuditEntityLead,
		EntityID:   &lead.ID,
		Meta:       map[string]any{"content_package_id": lead.ContentPackageID},
	})

	_ = s.publisher.Publish(ctx, events.StreamLeads, events.New(events.EventLeadCaptured, map[string]any{
		"lead_id":            lead.ID,
		"content_package_id": lead.ContentPackageID,
		"name":               lead.Name,
		"vehicle_interest":   lead.VehicleInterest,
		"timeframe":          lead.Timeframe,
	}))

	s.log.Info("lead captured",
		zap.Int64("lead_id", lead.ID),
		zap.Int64("content_package_id", lead.ContentPackageID),
	)
	return lead, nil
}

func (s *LeadService) Get(ctx context.Context, id int64) (*models.Lead, error) {
	return s.leads.GetByID(ctx, id)
}

// SetStatus writes any valid status over any other. There is no transition
// guard and no terminal state.
func (s *LeadService) SetStatus(ctx context.Context, principal string, id int64, status models.LeadStatus) (*models.Lead, error) {
	if !status.IsValid() {
		return nil, invalid("invalid lead status %q", status)
	}

	lead, err := s.leads.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	oldStatus := lead.Status
	if !models.CanTransition(oldStatus, status) {
		return nil, invalid("cannot move lead from %q to %q", oldStatus, status)
	}

	if err := s.leads.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	lead.Status = status
	metrics.LeadStatusUpdatesTotal.WithLabelValues(string(status)).Inc()

	_ = s.publisher.Publish(ctx, events.StreamLeads, events.New(events.EventLeadStatusChanged, map[string]any{
		"lead_id":    id,
		"old_status": string(oldStatus),
		"new_status": string(status),
		"by":         principal,
	}))

	s.log.Info("lead status set",
		zap.Int64("lead_id", id),
		zap.String("old_status", string(oldStatus)),
		zap.String("new_status", string(status)),
	)
	return lead, nil
}

// AppendNote stores note as given, after all earlier notes.
func (s *LeadService) AppendNote(ctx context.Context, principal string, id int64, note string) (*models.Lead, error) {
	if err := s.leads.AppendNote(ctx, id, note); err != nil {
		return nil, err
	}

	_ = s.publisher.Publish(ctx, events.StreamLeads, events.New(events.EventLeadNoteAdded, map[string]any{
		"lead_id": id,
		"by":      principal,
	}))

	return s.leads.GetByID(ctx, id)
}

// LeadFilter narrows the lead list. Status "" or "all" matches every lead.
type LeadFilter struct {
	Search           string
	Status           string
	ContentPackageID int64
}

func (s *LeadService) List(ctx context.Context, f LeadFilter) ([]models.Lead, error) {
	if f.Status != "" && f.Status != "all" && !models.LeadStatus(f.Status).IsValid() {
		return nil, invalid("invalid lead status %q", f.Status)
	}
	leads, err := s.leads.List(ctx, f.ContentPackageID)
	if err != nil {
		return nil, err
	}
	return FilterLeads(leads, f), nil
}

// FilterLeads keeps leads whose name, contact or vehicle interest contains
// the search text (case-insensitive) and whose status matches.
func FilterLeads(leads []models.Lead, f LeadFilter) []models.Lead {
	search := strings.ToLower(f.Search)
	out := make([]models.Lead, 0, len(leads))
	for _, l := range leads {
		matchesSearch := strings.Contains(strings.ToLower(l.Name), search) ||
			strings.Contains(strings.ToLower(l.ContactInfo), search) ||
			strings.Contains(strings.ToLower(l.VehicleInterest), search)
		matchesStatus := f.Status == "" || f.Status == "all" || string(l.Status) == f.Status
		if matchesSearch && matchesStatus {
			out = append(out, l)
		}
	}
	return out
}
