package services

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/Blucentia-HSEG/blucentia-mvp/internal/models"
)

type stubEngagementStore struct {
	employees map[string]*models.Employee
	companies map[string]*models.Company
	tokens    []*models.TruthToken
	pledges   []*models.Pledge
}

func newStubEngagementStore() *stubEngagementStore {
	return &stubEngagementStore{
		employees: map[string]*models.Employee{},
		companies: map[string]*models.Company{},
	}
}

func (s *stubEngagementStore) GetEmployee(id string) *models.Employee {
	if e, ok := s.employees[id]; ok {
		copy := *e
		return &copy
	}
	return nil
}

func (s *stubEngagementStore) UpdateEmployee(e *models.Employee) bool {
	if _, ok := s.employees[e.ID]; !ok {
		return false
	}
	copy := *e
	s.employees[e.ID] = &copy
	return true
}

func (s *stubEngagementStore) GetCompany(id string) *models.Company {
	if c, ok := s.companies[id]; ok {
		copy := *c
		return &copy
	}
	return nil
}

func (s *stubEngagementStore) UpdateCompany(c *models.Company) bool {
	if _, ok := s.companies[c.ID]; !ok {
		return false
	}
	copy := *c
	s.companies[c.ID] = &copy
	return true
}

func (s *stubEngagementStore) AddToken(t *models.TruthToken) { s.tokens = append(s.tokens, t) }
func (s *stubEngagementStore) AddPledge(p *models.Pledge)    { s.pledges = append(s.pledges, p) }
func (s *stubEngagementStore) ListPledges() []*models.Pledge { return s.pledges }
func (s *stubEngagementStore) ListTokensByEmployee(employeeID string) []*models.TruthToken {
	out := []*models.TruthToken{}
	for _, t := range s.tokens {
		if t.EmployeeID == employeeID {
			out = append(out, t)
		}
	}
	return out
}

func newTestEngagementService(store *stubEngagementStore) *EngagementService {
	svc := NewEngagementService(store)
	svc.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	n := 0
	svc.idGen = func(prefix string) string {
		n++
		return fmt.Sprintf("%s_%d", prefix, n)
	}
	return svc
}

func seedEngagement(store *stubEngagementStore) {
	store.companies["c1"] = &models.Company{ID: "c1", Name: "TechCorp", TruthPointsTotal: 1000}
	store.employees["e1"] = &models.Employee{ID: "e1", Name: "Sam", CompanyID: "c1", TruthPoints: 10}
}

func TestAwardTokenUpdatesLedgerAndCounters(t *testing.T) {
	store := newStubEngagementStore()
	seedEngagement(store)
	svc := newTestEngagementService(store)

	tok, err := svc.AwardToken("e1", 25, models.SourceBonus, "spot award")
	if err != nil {
		t.Fatalf("AwardToken: %v", err)
	}
	if tok.Amount != 25 || tok.Source != models.SourceBonus || tok.EmployeeID != "e1" {
		t.Fatalf("unexpected token: %+v", tok)
	}
	if got := store.employees["e1"].TruthPoints; got != 35 {
		t.Fatalf("employee points = %d, want 35", got)
	}
	if got := store.companies["c1"].TruthPointsTotal; got != 1025 {
		t.Fatalf("company total = %d, want 1025", got)
	}
	if len(store.tokens) != 1 {
		t.Fatalf("ledger has %d entries, want 1", len(store.tokens))
	}
}

func TestAwardTokenRejectsBadInput(t *testing.T) {
	store := newStubEngagementStore()
	seedEngagement(store)
	svc := newTestEngagementService(store)

	if _, err := svc.AwardToken("e1", 0, models.SourceBonus, ""); err == nil {
		t.Fatal("expected error for zero amount")
	}
	if _, err := svc.AwardToken("e1", 10, models.TokenSource("mystery"), ""); err == nil {
		t.Fatal("expected error for unknown source")
	}
	_, err := svc.AwardToken("ghost", 10, models.SourceBonus, "")
	if !IsNotFound(err) {
		t.Fatalf("expected not_found for unknown employee, got %v", err)
	}
	if got := store.employees["e1"].TruthPoints; got != 10 {
		t.Fatalf("employee points changed on failed awards: %d", got)
	}
	if len(store.tokens) != 0 {
		t.Fatalf("ledger gained entries on failed awards: %d", len(store.tokens))
	}
}

func TestSubmitPledgeAwardsAndMarks(t *testing.T) {
	store := newStubEngagementStore()
	seedEngagement(store)
	svc := newTestEngagementService(store)

	pledge, err := svc.SubmitPledge("e1", "  count me in  ")
	if err != nil {
		t.Fatalf("SubmitPledge: %v", err)
	}
	if pledge.Message != "count me in" || !pledge.IsPublic || pledge.CompanyID != "c1" {
		t.Fatalf("unexpected pledge: %+v", pledge)
	}
	emp := store.employees["e1"]
	if !emp.HasPledged || emp.PledgeDate == nil {
		t.Fatalf("employee not marked pledged: %+v", emp)
	}
	if emp.TruthPoints != 10+PledgeAward {
		t.Fatalf("employee points = %d, want %d", emp.TruthPoints, 10+PledgeAward)
	}
	if len(store.tokens) != 1 || store.tokens[0].Source != models.SourcePledge {
		t.Fatalf("expected one pledge ledger entry, got %+v", store.tokens)
	}
	wall := svc.PledgeWall()
	if len(wall) != 1 || wall[0].ID != pledge.ID {
		t.Fatalf("pledge wall = %+v", wall)
	}
}

func fullSurveyAnswers() []SurveyAnswer {
	return []SurveyAnswer{
		{QuestionID: "q1", Value: json.RawMessage(`7`)},
		{QuestionID: "q2", Value: json.RawMessage(`"Often"`)},
		{QuestionID: "q3", Value: json.RawMessage(`8`)},
		{QuestionID: "q4", Value: json.RawMessage(`"Agree"`)},
		{QuestionID: "q5", Value: json.RawMessage(`6`)},
	}
}

func TestSubmitSurveyAwardsOnce(t *testing.T) {
	store := newStubEngagementStore()
	seedEngagement(store)
	svc := newTestEngagementService(store)

	emp, err := svc.SubmitSurvey("e1", fullSurveyAnswers())
	if err != nil {
		t.Fatalf("SubmitSurvey: %v", err)
	}
	if !emp.HasCompletedSurvey {
		t.Fatal("employee not marked as completed")
	}
	if emp.TruthPoints != 10+SurveyAward {
		t.Fatalf("points after first survey = %d, want %d", emp.TruthPoints, 10+SurveyAward)
	}
	if len(emp.SurveyResponses) != 5 {
		t.Fatalf("stored %d responses, want 5", len(emp.SurveyResponses))
	}

	// Resubmission replaces the responses but never re-awards.
	again := fullSurveyAnswers()
	again[0].Value = json.RawMessage(`3`)
	emp, err = svc.SubmitSurvey("e1", again)
	if err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	if emp.TruthPoints != 10+SurveyAward {
		t.Fatalf("points after resubmit = %d, want unchanged %d", emp.TruthPoints, 10+SurveyAward)
	}
	if emp.SurveyResponses[0].Scale != 3 {
		t.Fatalf("responses not replaced: %+v", emp.SurveyResponses[0])
	}
	if len(store.tokens) != 1 {
		t.Fatalf("ledger has %d survey awards, want 1", len(store.tokens))
	}
}

func TestSubmitSurveyRejectsInvalidAnswers(t *testing.T) {
	store := newStubEngagementStore()
	seedEngagement(store)
	svc := newTestEngagementService(store)

	answers := fullSurveyAnswers()[:4] // q5 required but missing
	if _, err := svc.SubmitSurvey("e1", answers); err == nil {
		t.Fatal("expected error for missing required answer")
	}
	if store.employees["e1"].HasCompletedSurvey {
		t.Fatal("employee marked completed despite invalid submission")
	}
}

func TestTokenHistory(t *testing.T) {
	store := newStubEngagementStore()
	seedEngagement(store)
	svc := newTestEngagementService(store)

	if _, err := svc.AwardToken("e1", 5, models.SourceBonus, "a"); err != nil {
		t.Fatalf("award: %v", err)
	}
	if _, err := svc.AwardToken("e1", 7, models.SourceBonus, "b"); err != nil {
		t.Fatalf("award: %v", err)
	}
	hist, err := svc.TokenHistory("e1")
	if err != nil {
		t.Fatalf("TokenHistory: %v", err)
	}
	if len(hist) != 2 || hist[0].Amount != 5 || hist[1].Amount != 7 {
		t.Fatalf("history out of order: %+v", hist)
	}
	if _, err := svc.TokenHistory("ghost"); !IsNotFound(err) {
		t.Fatalf("expected not_found, got %v", err)
	}
}
