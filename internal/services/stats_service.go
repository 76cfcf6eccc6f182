package services

import (
	"github.com/Blucentia-HSEG/blucentia-mvp/internal/models"
)

type StatsStore interface {
	ListCompanies() []*models.Company
	ListEmployees() []*models.Employee
	ListAffiliates() []*models.Affiliate
	ListTokens() []*models.TruthToken
}

// StatsService computes the read-only aggregation views. Every view scans
// the store on call; nothing is cached here.
type StatsService struct {
	store StatsStore
}

func NewStatsService(store StatsStore) *StatsService {
	return &StatsService{store: store}
}

// CompanyStats sums the seeded per-company marketing counters. These are
// independent of the employee-derived movement numbers and may disagree with
// them.
type CompanyStats struct {
	TotalCompanies   int `json:"total_companies"`
	OptedInCount     int `json:"opted_in_count"`
	WatchlistCount   int `json:"watchlist_count"`
	TotalPledges     int `json:"total_pledges"`
	TotalTruthPoints int `json:"total_truth_points"`
}

func (s *StatsService) CompanyStats() CompanyStats {
	var out CompanyStats
	for _, c := range s.store.ListCompanies() {
		out.TotalCompanies++
		if c.IsOptedIn {
			out.OptedInCount++
		} else {
			out.WatchlistCount++
		}
		out.TotalPledges += c.PledgeCount
		out.TotalTruthPoints += c.TruthPointsTotal
	}
	return out
}

type EmployeeStats struct {
	TotalEmployees     int     `json:"total_employees"`
	PledgedEmployees   int     `json:"pledged_employees"`
	TotalTruthPoints   int     `json:"total_truth_points"`
	AverageTruthPoints float64 `json:"average_truth_points"`
}

func (s *StatsService) EmployeeStats() EmployeeStats {
	var out EmployeeStats
	for _, e := range s.store.ListEmployees() {
		out.TotalEmployees++
		if e.HasPledged {
			out.PledgedEmployees++
		}
		out.TotalTruthPoints += e.TruthPoints
	}
	if out.TotalEmployees > 0 {
		out.AverageTruthPoints = float64(out.TotalTruthPoints) / float64(out.TotalEmployees)
	}
	return out
}

type AffiliateStats struct {
	TotalAffiliates   int     `json:"total_affiliates"`
	ActiveAffiliates  int     `json:"active_affiliates"`
	TotalReferrals    int     `json:"total_referrals"`
	TotalTokensEarned int     `json:"total_tokens_earned"`
	AverageReferrals  float64 `json:"average_referrals_per_affiliate"`
}

func (s *StatsService) AffiliateStats() AffiliateStats {
	var out AffiliateStats
	for _, a := range s.store.ListAffiliates() {
		out.TotalAffiliates++
		if a.IsActive {
			out.ActiveAffiliates++
		}
		out.TotalReferrals += a.ReferralCount
		out.TotalTokensEarned += a.TruthTokensEarned
	}
	if out.TotalAffiliates > 0 {
		out.AverageReferrals = float64(out.TotalReferrals) / float64(out.TotalAffiliates)
	}
	return out
}

// SourceTotal is one row of the token-source breakdown.
type SourceTotal struct {
	Source models.TokenSource `json:"source"`
	Amount int                `json:"amount"`
}

// TokensBySource groups the ledger by source tag, summing amounts. Rows
// appear in order of each tag's first occurrence in the ledger.
func (s *StatsService) TokensBySource() []SourceTotal {
	index := map[models.TokenSource]int{}
	out := []SourceTotal{}
	for _, t := range s.store.ListTokens() {
		i, ok := index[t.Source]
		if !ok {
			i = len(out)
			index[t.Source] = i
			out = append(out, SourceTotal{Source: t.Source})
		}
		out[i].Amount += t.Amount
	}
	return out
}

// TotalTokensAwarded folds the whole ledger.
func (s *StatsService) TotalTokensAwarded() int {
	sum := 0
	for _, t := range s.store.ListTokens() {
		sum += t.Amount
	}
	return sum
}

// MovementStats is the landing-page composite. TotalPledges counts pledged
// employees, not the seeded company pledge counters, so the two views are
// allowed to diverge.
func (s *StatsService) MovementStats() models.MovementStats {
	emp := s.EmployeeStats()
	comp := s.CompanyStats()
	return models.MovementStats{
		TotalPledges:       emp.PledgedEmployees,
		TotalTruthPoints:   emp.TotalTruthPoints,
		TotalTruthTokens:   s.TotalTokensAwarded(),
		ActiveCompanies:    comp.OptedInCount,
		WatchlistCompanies: comp.WatchlistCount,
		TotalEmployees:     emp.TotalEmployees,
	}
}
