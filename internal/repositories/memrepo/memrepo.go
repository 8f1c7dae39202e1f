// Package memrepo holds in-memory stores with the same contracts as the
// Postgres repositories. They back service and handler tests.
package memrepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/lead-studio/backend/internal/models"
	"github.com/lead-studio/backend/internal/repositories"
)

type ContentPackages struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]models.ContentPackage
}

func NewContentPackages() *ContentPackages {
	return &ContentPackages{rows: make(map[int64]models.ContentPackage)}
}

func (r *ContentPackages) Create(_ context.Context, p *models.ContentPackage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	now := time.Now().UTC()
	p.ID = r.nextID
	p.CreatedAt = now
	p.UpdatedAt = now
	r.rows[p.ID] = clonePackage(*p)
	return nil
}

func (r *ContentPackages) GetByID(_ context.Context, id int64) (*models.ContentPackage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.rows[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	out := clonePackage(p)
	return &out, nil
}

// List orders newest first, ties broken by id.
func (r *ContentPackages) List(_ context.Context, f repositories.ContentPackageFilter) ([]models.ContentPackage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.ContentPackage
	for _, p := range r.rows {
		if f.CreatedBy != nil && p.CreatedBy != *f.CreatedBy {
			continue
		}
		out = append(out, clonePackage(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })

	if f.Offset >= len(out) {
		return nil, nil
	}
	out = out[f.Offset:]
	if f.Limit > 0 && f.Limit < len(out) {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *ContentPackages) UpdateCopy(_ context.Context, p *models.ContentPackage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.rows[p.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	cur.Caption = p.Caption
	cur.Hashtags = append([]string{}, p.Hashtags...)
	cur.ShotList = append([]string{}, p.ShotList...)
	cur.PostingChecklist = append([]string{}, p.PostingChecklist...)
	cur.UpdatedAt = time.Now().UTC()
	r.rows[p.ID] = cur
	return nil
}

func (r *ContentPackages) AppendHashtags(_ context.Context, id int64, tags []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.rows[id]
	if !ok {
		return repositories.ErrNotFound
	}
	cur.Hashtags = append(append([]string{}, cur.Hashtags...), tags...)
	cur.UpdatedAt = time.Now().UTC()
	r.rows[id] = cur
	return nil
}

func (r *ContentPackages) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.rows)), nil
}

func clonePackage(p models.ContentPackage) models.ContentPackage {
	p.Hashtags = append([]string{}, p.Hashtags...)
	p.ShotList = append([]string{}, p.ShotList...)
	p.PostingChecklist = append([]string{}, p.PostingChecklist...)
	p.VideoAssets = nil
	return p
}

type VideoAssets struct {
	mu     sync.Mutex
	nextID int64
	rows   []models.VideoAsset
}

func NewVideoAssets() *VideoAssets {
	return &VideoAssets{}
}

func (r *VideoAssets) Create(_ context.Context, v *models.VideoAsset) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	v.ID = r.nextID
	v.CreatedAt = time.Now().UTC()
	r.rows = append(r.rows, *v)
	return nil
}

func (r *VideoAssets) ListByPackages(_ context.Context, packageIDs []int64) (map[int64][]models.VideoAsset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	want := make(map[int64]bool, len(packageIDs))
	for _, id := range packageIDs {
		want[id] = true
	}
	out := make(map[int64][]models.VideoAsset)
	for _, v := range r.rows {
		if want[v.ContentPackageID] {
			out[v.ContentPackageID] = append(out[v.ContentPackageID], v)
		}
	}
	return out, nil
}

func (r *VideoAssets) UpdateStatus(_ context.Context, packageID, videoID int64, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].ID == videoID && r.rows[i].ContentPackageID == packageID {
			r.rows[i].Status = status
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *VideoAssets) Delete(_ context.Context, packageID, videoID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].ID == videoID && r.rows[i].ContentPackageID == packageID {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

type Leads struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]models.Lead
}

func NewLeads() *Leads {
	return &Leads{rows: make(map[int64]models.Lead)}
}

func (r *Leads) Create(_ context.Context, l *models.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	now := time.Now().UTC()
	l.ID = r.nextID
	l.CreatedAt = now
	l.UpdatedAt = now
	r.rows[l.ID] = cloneLead(*l)
	return nil
}

func (r *Leads) GetByID(_ context.Context, id int64) (*models.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.rows[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	out := cloneLead(l)
	return &out, nil
}

func (r *Leads) List(_ context.Context, packageID int64) ([]models.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Lead
	for _, l := range r.rows {
		if packageID != 0 && l.ContentPackageID != packageID {
			continue
		}
		out = append(out, cloneLead(l))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *Leads) UpdateStatus(_ context.Context, id int64, status models.LeadStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.rows[id]
	if !ok {
		return repositories.ErrNotFound
	}
	l.Status = status
	l.UpdatedAt = time.Now().UTC()
	r.rows[id] = l
	return nil
}

func (r *Leads) AppendNote(_ context.Context, id int64, note string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.rows[id]
	if !ok {
		return repositories.ErrNotFound
	}
	l.Notes = append(append([]string{}, l.Notes...), note)
	l.UpdatedAt = time.Now().UTC()
	r.rows[id] = l
	return nil
}

func (r *Leads) CountByPackage(_ context.Context) (map[int64]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[int64]int)
	for _, l := range r.rows {
		out[l.ContentPackageID]++
	}
	return out, nil
}

func cloneLead(l models.Lead) models.Lead {
	l.Notes = append([]string{}, l.Notes...)
	return l
}

type Users struct {
	mu   sync.Mutex
	rows map[string]models.UserProfile
}

func NewUsers() *Users {
	return &Users{rows: make(map[string]models.UserProfile)}
}

func (r *Users) GetByPrincipal(_ context.Context, principal string) (*models.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.rows[principal]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &u, nil
}

// SaveProfile keeps the stored role of an existing profile.
func (r *Users) SaveProfile(_ context.Context, u *models.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	if cur, ok := r.rows[u.Principal]; ok {
		u.Role = cur.Role
		u.CreatedAt = cur.CreatedAt
	} else {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	r.rows[u.Principal] = *u
	return nil
}

func (r *Users) SetRole(_ context.Context, principal string, role models.UserRole) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.rows[principal]
	if !ok {
		return repositories.ErrNotFound
	}
	u.Role = role
	u.UpdatedAt = time.Now().UTC()
	r.rows[principal] = u
	return nil
}

type Audit struct {
	mu      sync.Mutex
	entries []models.AuditLog
}

func NewAudit() *Audit {
	return &Audit{}
}

func (r *Audit) Log(_ context.Context, entry models.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry.ID = int64(len(r.entries) + 1)
	entry.CreatedAt = time.Now().UTC()
	r.entries = append(r.entries, entry)
	return nil
}

// GetByEntity returns newest first, at most 50 entries when limit <= 0.
func (r *Audit) GetByEntity(_ context.Context, entityType string, entityID int64, limit, offset int) ([]models.AuditLog, error) {
	if limit <= 0 {
		limit = 50
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.AuditLog
	for i := len(r.entries) - 1; i >= 0; i-- {
		e := r.entries[i]
		if e.EntityType == entityType && e.EntityID != nil && *e.EntityID == entityID {
			out = append(out, e)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

// Entries returns every logged entry in insertion order.
func (r *Audit) Entries() []models.AuditLog {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.AuditLog{}, r.entries...)
}
