package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/lead-studio/backend/internal/models"
	"github.com/lead-studio/backend/internal/repositories"
)

const (
	topContentLimit  = 5
	recentLeadsLimit = 5
)

type AnalyticsService struct {
	packages ContentPackageStore
	leads    LeadStore
}

func NewAnalyticsService(packages ContentPackageStore, leads LeadStore) *AnalyticsService {
	return &AnalyticsService{packages: packages, leads: leads}
}

type LeadSummary struct {
	ID              int64             `json:"id"`
	Name            string            `json:"name"`
	VehicleInterest string            `json:"vehicle_interest"`
	Status          models.LeadStatus `json:"status"`
	StatusLabel     string            `json:"status_label"`
}

type TopContent struct {
	ID           int64               `json:"id"`
	Platform     models.Platform     `json:"platform"`
	VehicleModel models.VehicleModel `json:"model"`
	CreatedAt    time.Time           `json:"created_at"`
	LeadCount    int                 `json:"lead_count"`
}

type Dashboard struct {
	ContentPackageCount int           `json:"content_package_count"`
	LeadCount           int           `json:"lead_count"`
	ConversionRate      string        `json:"conversion_rate"`
	TopContent          []TopContent  `json:"top_content"`
	RecentLeads         []LeadSummary `json:"recent_leads"`
}

type StatusCount struct {
	Status models.LeadStatus `json:"status"`
	Label  string            `json:"label"`
	Count  int               `json:"count"`
}

type Attribution struct {
	ContentPackageID int64         `json:"content_package_id"`
	TotalLeads       int           `json:"total_leads"`
	StatusCounts     []StatusCount `json:"status_counts"`
	Leads            []LeadSummary `json:"leads"`
}

func (s *AnalyticsService) Dashboard(ctx context.Context) (*Dashboard, error) {
	total, err := s.packages.Count(ctx)
	if err != nil {
		return nil, err
	}
	packages, err := s.packages.List(ctx, repositories.ContentPackageFilter{Limit: 500})
	if err != nil {
		return nil, err
	}
	leadCounts, err := s.leads.CountByPackage(ctx)
	if err != nil {
		return nil, err
	}
	leads, err := s.leads.List(ctx, 0)
	if err != nil {
		return nil, err
	}
	d := BuildDashboard(int(total), packages, leadCounts, leads)
	return &d, nil
}

func (s *AnalyticsService) Attribution(ctx context.Context, packageID int64) (*Attribution, error) {
	if _, err := s.packages.GetByID(ctx, packageID); err != nil {
		return nil, err
	}
	leads, err := s.leads.List(ctx, packageID)
	if err != nil {
		return nil, err
	}
	a := BuildAttribution(packageID, leads)
	return &a, nil
}

// BuildDashboard ranks packages by leadCounts and expects leads newest first.
func BuildDashboard(packageCount int, packages []models.ContentPackage, leadCounts map[int64]int, leads []models.Lead) Dashboard {
	top := make([]TopContent, 0, len(packages))
	for _, p := range packages {
		top = append(top, TopContent{
			ID:           p.ID,
			Platform:     p.Platform,
			VehicleModel: p.VehicleModel,
			CreatedAt:    p.CreatedAt,
			LeadCount:    leadCounts[p.ID],
		})
	}
	sort.SliceStable(top, func(i, j int) bool { return top[i].LeadCount > top[j].LeadCount })
	if len(top) > topContentLimit {
		top = top[:topContentLimit]
	}

	return Dashboard{
		ContentPackageCount: packageCount,
		LeadCount:           len(leads),
		ConversionRate:      ConversionRate(len(leads), packageCount),
		TopContent:          top,
		RecentLeads:         summarize(leads, recentLeadsLimit),
	}
}

// ConversionRate is leads per package as a percentage with one decimal.
func ConversionRate(leads, packages int) string {
	if packages == 0 {
		return "0%"
	}
	return fmt.Sprintf("%.1f%%", float64(leads)/float64(packages)*100)
}

func BuildAttribution(packageID int64, leads []models.Lead) Attribution {
	counts := make(map[models.LeadStatus]int)
	for _, l := range leads {
		counts[l.Status]++
	}

	statusCounts := []StatusCount{}
	for _, st := range models.AllLeadStatuses {
		if n := counts[st]; n > 0 {
			statusCounts = append(statusCounts, StatusCount{Status: st, Label: st.Label(), Count: n})
		}
	}

	return Attribution{
		ContentPackageID: packageID,
		TotalLeads:       len(leads),
		StatusCounts:     statusCounts,
		Leads:            summarize(leads, recentLeadsLimit),
	}
}

func summarize(leads []models.Lead, limit int) []LeadSummary {
	if len(leads) < limit {
		limit = len(leads)
	}
	out := make([]LeadSummary, 0, limit)
	for _, l := range leads[:limit] {
		out = append(out, LeadSummary{
			ID:              l.ID,
			Name:            l.Name,
			VehicleInterest: l.VehicleInterest,
			Status:          l.Status,
			StatusLabel:     l.Status.Label(),
		})
	}
	return out
}
