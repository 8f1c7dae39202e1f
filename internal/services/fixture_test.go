package services

import (
	"context"
	"testing"

	"github.com/lead-studio/backend/internal/events"
	"github.com/lead-studio/backend/internal/models"
	"github.com/lead-studio/backend/internal/repositories/memrepo"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	_ ContentPackageStore = (*memrepo.ContentPackages)(nil)
	_ VideoAssetStore     = (*memrepo.VideoAssets)(nil)
	_ LeadStore           = (*memrepo.Leads)(nil)
	_ UserStore           = (*memrepo.Users)(nil)
	_ AuditLogger         = (*memrepo.Audit)(nil)
	_ AuditReader         = (*memrepo.Audit)(nil)
)

type adminList []string

func (a adminList) IsAdmin(principal string) bool {
	for _, p := range a {
		if p == principal {
			return true
		}
	}
	return false
}

type fixture struct {
	packages  *memrepo.ContentPackages
	videos    *memrepo.VideoAssets
	leads     *memrepo.Leads
	users     *memrepo.Users
	audit     *memrepo.Audit
	events    *events.Recorder
	content   *ContentService
	lead      *LeadService
	video     *VideoService
	user      *UserService
	analytics *AnalyticsService
	history   *AuditService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		packages: memrepo.NewContentPackages(),
		videos:   memrepo.NewVideoAssets(),
		leads:    memrepo.NewLeads(),
		users:    memrepo.NewUsers(),
		audit:    memrepo.NewAudit(),
		events:   events.NewRecorder(),
	}
	log := zap.NewNop()
	f.content = NewContentService(f.packages, f.videos, f.users, f.audit, f.events, "https://dealer.example", log)
	f.lead = NewLeadService(f.leads, f.packages, f.audit, f.events, log)
	f.video = NewVideoService(f.videos, f.packages, log)
	f.user = NewUserService(f.users, f.audit, adminList{"admin-1"}, log)
	f.analytics = NewAnalyticsService(f.packages, f.leads)
	f.history = NewAuditService(f.audit, f.user)
	return f
}

func validParams() models.CampaignParameters {
	return models.CampaignParameters{
		Platform:     models.PlatformInstagram,
		Objective:    models.ObjectiveTestDrive,
		VehicleModel: models.ModelMustang,
		Tone:         models.ToneTrustedAdvisor,
		CallToAction: models.CTAVisitDealership,
		Price:        52000,
		Discount:     2000,
		Mileage:      12000,
	}
}

// savedPackage creates a profile for principal and a package owned by it.
func (f *fixture) savedPackage(t *testing.T, principal string) *models.ContentPackage {
	t.Helper()
	ctx := context.Background()
	_, err := f.user.SaveProfile(ctx, principal, "Dana")
	require.NoError(t, err)
	pkg, err := f.content.Create(ctx, principal, validParams(), CopyEdits{})
	require.NoError(t, err)
	return pkg
}

func (f *fixture) capturedLead(t *testing.T, packageID int64, name string) *models.Lead {
	t.Helper()
	lead, err := f.lead.Capture(context.Background(), CaptureInput{
		ContentPackageID: packageID,
		Name:             name,
		ContactInfo:      name + "@example.com",
		VehicleInterest:  "Ford Mustang",
		Timeframe:        "Within 1 month",
		Consent:          true,
	})
	require.NoError(t, err)
	return lead
}
