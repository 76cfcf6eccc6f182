package services

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Blucentia-HSEG/blucentia-mvp/internal/models"
)

// Point awards for ledger-earning actions.
const (
	SurveyAward = 50
	PledgeAward = 100
)

// EngagementStore abstracts the store operations the ledger workflows need.
type EngagementStore interface {
	GetEmployee(id string) *models.Employee
	UpdateEmployee(e *models.Employee) bool
	GetCompany(id string) *models.Company
	UpdateCompany(c *models.Company) bool
	AddToken(t *models.TruthToken)
	AddPledge(p *models.Pledge)
	ListPledges() []*models.Pledge
	ListTokensByEmployee(employeeID string) []*models.TruthToken
}

// EngagementService hosts the employee-facing ledger operations: survey
// submission, pledges, and token awards. mu serializes them: each one is a
// read-modify-write over the same employee and company counters, and two
// interleaved survey submissions could otherwise both see an incomplete
// survey and award twice.
type EngagementService struct {
	store EngagementStore
	now   func() time.Time
	idGen func(prefix string) string

	mu sync.Mutex
}

func NewEngagementService(store EngagementStore) *EngagementService {
	return &EngagementService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		idGen: defaultID,
	}
}

func defaultID(prefix string) string {
	return prefix + "_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// AwardToken is the single primitive through which points move: it appends a
// ledger entry and bumps the employee counter and the owning company's
// running total in the same operation, so counters and ledger cannot drift
// for anything awarded after seeding.
func (s *EngagementService) AwardToken(employeeID string, amount int, source models.TokenSource, description string) (*models.TruthToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.awardToken(employeeID, amount, source, description)
}

// awardToken is the unlocked body of AwardToken for use inside operations
// that already hold mu.
func (s *EngagementService) awardToken(employeeID string, amount int, source models.TokenSource, description string) (*models.TruthToken, error) {
	if amount <= 0 {
		return nil, NewInvalidError("award amount must be positive")
	}
	switch source {
	case models.SourceSurvey, models.SourcePledge, models.SourceReferral, models.SourceBonus:
	default:
		return nil, NewInvalidError("unknown token source " + string(source))
	}
	emp := s.store.GetEmployee(employeeID)
	if emp == nil {
		return nil, NewNotFoundError("employee not found")
	}
	tok := &models.TruthToken{
		ID:          s.idGen("token"),
		EmployeeID:  emp.ID,
		Amount:      amount,
		Source:      source,
		Timestamp:   s.now(),
		Description: description,
	}
	s.store.AddToken(tok)
	emp.TruthPoints += amount
	s.store.UpdateEmployee(emp)
	if c := s.store.GetCompany(emp.CompanyID); c != nil {
		c.TruthPointsTotal += amount
		s.store.UpdateCompany(c)
	}
	return tok, nil
}

// SubmitSurvey validates the answers against the question catalog, replaces
// the employee's stored responses wholesale, and awards survey points only on
// the first completion. Resubmitting updates the responses without a second
// award.
func (s *EngagementService) SubmitSurvey(employeeID string, answers []SurveyAnswer) (*models.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	emp := s.store.GetEmployee(employeeID)
	if emp == nil {
		return nil, NewNotFoundError("employee not found")
	}
	responses, err := ValidateSurveyAnswers(answers, s.now())
	if err != nil {
		return nil, err
	}
	emp.SurveyResponses = responses
	firstCompletion := !emp.HasCompletedSurvey
	emp.HasCompletedSurvey = true
	s.store.UpdateEmployee(emp)
	if firstCompletion {
		if _, err := s.awardToken(emp.ID, SurveyAward, models.SourceSurvey, "Completed transparency survey"); err != nil {
			return nil, err
		}
	}
	return s.store.GetEmployee(emp.ID), nil
}

// SubmitPledge marks the employee as pledged, stores the public pledge
// record, and awards pledge points.
func (s *EngagementService) SubmitPledge(employeeID, message string) (*models.Pledge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	emp := s.store.GetEmployee(employeeID)
	if emp == nil {
		return nil, NewNotFoundError("employee not found")
	}
	now := s.now()
	emp.HasPledged = true
	emp.PledgeDate = &now
	s.store.UpdateEmployee(emp)

	pledge := &models.Pledge{
		ID:         s.idGen("pledge"),
		EmployeeID: emp.ID,
		CompanyID:  emp.CompanyID,
		Timestamp:  now,
		IsPublic:   true,
		Message:    strings.TrimSpace(message),
	}
	s.store.AddPledge(pledge)

	if _, err := s.awardToken(emp.ID, PledgeAward, models.SourcePledge, "Made transparency pledge"); err != nil {
		return nil, err
	}
	return pledge, nil
}

// PledgeWall lists stored public pledges.
func (s *EngagementService) PledgeWall() []*models.Pledge {
	all := s.store.ListPledges()
	out := make([]*models.Pledge, 0, len(all))
	for _, p := range all {
		if p.IsPublic {
			out = append(out, p)
		}
	}
	return out
}

// TokenHistory returns the ledger entries for one employee, oldest first.
func (s *EngagementService) TokenHistory(employeeID string) ([]*models.TruthToken, error) {
	if s.store.GetEmployee(employeeID) == nil {
		return nil, NewNotFoundError("employee not found")
	}
	return s.store.ListTokensByEmployee(employeeID), nil
}
