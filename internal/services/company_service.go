package services

import (
	"sort"
	"time"

	"github.com/Blucentia-HSEG/blucentia-mvp/internal/models"
)

// transparencyBadge is attached to every company that opts in.
const transparencyBadge = "/badges/transparency-champion.png"

type CompanyStore interface {
	GetCompany(id string) *models.Company
	ListCompanies() []*models.Company
	UpdateCompany(c *models.Company) bool
	ListEmployeesByCompany(companyID string) []*models.Employee
}

// CompanyService covers the company directory: opt-in state, watchlist,
// and the score-ranked leaderboard.
type CompanyService struct {
	store CompanyStore
	now   func() time.Time
}

func NewCompanyService(store CompanyStore) *CompanyService {
	return &CompanyService{store: store, now: func() time.Time { return time.Now().UTC() }}
}

// ToggleOptIn flips a company's participation flag. The badge is present
// exactly when the company is opted in; scores, stored rank, and the
// watchlist reason are untouched.
func (s *CompanyService) ToggleOptIn(companyID string) (*models.Company, error) {
	c := s.store.GetCompany(companyID)
	if c == nil {
		return nil, NewNotFoundError("company not found")
	}
	c.IsOptedIn = !c.IsOptedIn
	if c.IsOptedIn {
		c.BadgeURL = transparencyBadge
	} else {
		c.BadgeURL = ""
	}
	c.LastUpdated = s.now()
	s.store.UpdateCompany(c)
	return c, nil
}

func (s *CompanyService) GetCompany(id string) (*models.Company, error) {
	c := s.store.GetCompany(id)
	if c == nil {
		return nil, NewNotFoundError("company not found")
	}
	return c, nil
}

func (s *CompanyService) ListCompanies() []*models.Company {
	return s.store.ListCompanies()
}

// OptedIn lists companies participating in the transparency program.
func (s *CompanyService) OptedIn() []*models.Company {
	return s.filter(func(c *models.Company) bool { return c.IsOptedIn })
}

// Watchlist lists companies that have not opted in.
func (s *CompanyService) Watchlist() []*models.Company {
	return s.filter(func(c *models.Company) bool { return !c.IsOptedIn })
}

func (s *CompanyService) filter(keep func(*models.Company) bool) []*models.Company {
	all := s.store.ListCompanies()
	out := make([]*models.Company, 0, len(all))
	for _, c := range all {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}

// Employees lists a company's employees.
func (s *CompanyService) Employees(companyID string) ([]*models.Employee, error) {
	if s.store.GetCompany(companyID) == nil {
		return nil, NewNotFoundError("company not found")
	}
	return s.store.ListEmployeesByCompany(companyID), nil
}

// RankedCompany pairs a company with its 1-based leaderboard position.
type RankedCompany struct {
	Position int             `json:"position"`
	Company  *models.Company `json:"company"`
}

// Ranking sorts companies descending by overall score. The sort is stable,
// so ties keep the directory order; the stored Scorecard.Rank is display
// seed data and is not recomputed here.
func (s *CompanyService) Ranking() []RankedCompany {
	companies := s.store.ListCompanies()
	sort.SliceStable(companies, func(i, j int) bool {
		return companies[i].Scorecard.Overall > companies[j].Scorecard.Overall
	})
	out := make([]RankedCompany, 0, len(companies))
	for i, c := range companies {
		out = append(out, RankedCompany{Position: i + 1, Company: c})
	}
	return out
}
