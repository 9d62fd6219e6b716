package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/finsight/revenue-analytics/internal/core/domain"
	"github.com/finsight/revenue-analytics/internal/core/ports"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

// --- in-memory auth repository ---

type memAuthRepo struct {
	users  map[string]*domain.User
	orgs   *memOrgRepo
	nextID int64
}

func newMemAuthRepo(orgs *memOrgRepo) *memAuthRepo {
	return &memAuthRepo{users: map[string]*domain.User{}, orgs: orgs, nextID: 1}
}

func (r *memAuthRepo) CreateWithOrg(_ context.Context, user *domain.User, org *domain.Organization) (*domain.User, error) {
	if _, ok := r.users[user.Username]; ok {
		return nil, domain.ErrUserExists
	}
	u := *user
	u.ID = r.nextID
	r.nextID++
	r.users[u.Username] = &u

	if org != nil && r.orgs != nil {
		o := *org
		o.ID = u.ID * 100
		o.OwnerID = u.ID
		r.orgs.orgs[o.ID] = &o
	}
	return &u, nil
}

func (r *memAuthRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

// --- in-memory org repository ---

type memOrgRepo struct {
	orgs map[int64]*domain.Organization
	subs map[[2]int64]bool // (investorID, orgID)
}

func newMemOrgRepo() *memOrgRepo {
	return &memOrgRepo{orgs: map[int64]*domain.Organization{}, subs: map[[2]int64]bool{}}
}

func (r *memOrgRepo) FindByID(_ context.Context, orgID int64) (*domain.Organization, error) {
	org, ok := r.orgs[orgID]
	if !ok {
		return nil, domain.ErrOrgNotFound
	}
	return org, nil
}

func (r *memOrgRepo) FindByOwner(_ context.Context, ownerID int64) (*domain.Organization, error) {
	for _, org := range r.orgs {
		if org.OwnerID == ownerID {
			return org, nil
		}
	}
	return nil, domain.ErrOrgNotFound
}

func (r *memOrgRepo) ListSubscribed(_ context.Context, investorID int64) ([]*domain.Organization, error) {
	var out []*domain.Organization
	for key, ok := range r.subs {
		if ok && key[0] == investorID {
			out = append(out, r.orgs[key[1]])
		}
	}
	return out, nil
}

func (r *memOrgRepo) Subscribe(_ context.Context, investorID, orgID int64) error {
	key := [2]int64{investorID, orgID}
	if r.subs[key] {
		return domain.ErrAlreadySubscribed
	}
	r.subs[key] = true
	return nil
}

func (r *memOrgRepo) Unsubscribe(_ context.Context, investorID, orgID int64) error {
	key := [2]int64{investorID, orgID}
	if !r.subs[key] {
		return domain.ErrNotSubscribed
	}
	delete(r.subs, key)
	return nil
}

func (r *memOrgRepo) IsSubscribed(_ context.Context, investorID, orgID int64) (bool, error) {
	return r.subs[[2]int64{investorID, orgID}], nil
}

// --- in-memory dataset repository ---

type memDatasetRepo struct {
	data map[int64]map[domain.Category]domain.Rows
}

func newMemDatasetRepo() *memDatasetRepo {
	return &memDatasetRepo{data: map[int64]map[domain.Category]domain.Rows{}}
}

func (r *memDatasetRepo) seed(orgID int64, category domain.Category, rows domain.Rows) {
	if r.data[orgID] == nil {
		r.data[orgID] = map[domain.Category]domain.Rows{}
	}
	r.data[orgID][category] = rows
}

func (r *memDatasetRepo) Save(_ context.Context, orgID int64, category domain.Category, rows domain.Rows) error {
	r.seed(orgID, category, rows)
	return nil
}

func (r *memDatasetRepo) Load(_ context.Context, orgID int64) (map[domain.Category]domain.Rows, error) {
	out := map[domain.Category]domain.Rows{}
	for cat, rows := range r.data[orgID] {
		out[cat] = rows
	}
	return out, nil
}

func (r *memDatasetRepo) All(_ context.Context, orgID int64) ([]*domain.Dataset, error) {
	var out []*domain.Dataset
	for cat, rows := range r.data[orgID] {
		out = append(out, &domain.Dataset{OrgID: orgID, Category: cat, Rows: rows, UploadedAt: time.Now()})
	}
	return out, nil
}

func (r *memDatasetRepo) Get(_ context.Context, orgID int64, category domain.Category) (*domain.Dataset, error) {
	rows, ok := r.data[orgID][category]
	if !ok {
		return nil, domain.ErrDatasetNotFound
	}
	return &domain.Dataset{OrgID: orgID, Category: category, Rows: rows, UploadedAt: time.Now()}, nil
}

// --- in-memory report repository ---

type memReportRepo struct {
	reports map[string]*ports.Report
	nextID  int
}

func newMemReportRepo() *memReportRepo {
	return &memReportRepo{reports: map[string]*ports.Report{}, nextID: 1}
}

func (r *memReportRepo) Insert(_ context.Context, report *ports.Report) (string, error) {
	id := fmt.Sprintf("report-%d", r.nextID)
	r.nextID++
	stored := *report
	stored.ID = id
	r.reports[id] = &stored
	return id, nil
}

func (r *memReportRepo) FindByID(_ context.Context, id string) (*ports.Report, error) {
	rep, ok := r.reports[id]
	if !ok {
		return nil, domain.ErrReportNotFound
	}
	return rep, nil
}

func (r *memReportRepo) ListByOrg(_ context.Context, orgID int64, limit int) ([]*ports.Report, error) {
	var out []*ports.Report
	for _, rep := range r.reports {
		if rep.OrgID == orgID && len(out) < limit {
			out = append(out, rep)
		}
	}
	return out, nil
}

// --- stub responder / cache ---

type stubResponder struct {
	askFn func(ctx context.Context, prompt string) (string, error)
}

func (s *stubResponder) Ask(ctx context.Context, prompt string) (string, error) {
	return s.askFn(ctx, prompt)
}

type stubCache struct {
	store map[string]string
	sets  int
}

func newStubCache() *stubCache {
	return &stubCache{store: map[string]string{}}
}

func (s *stubCache) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := s.store[key]
	return v, ok, nil
}

func (s *stubCache) Set(_ context.Context, key, answer string) error {
	s.store[key] = answer
	s.sets++
	return nil
}
