package api

import (
	"sort"
	"strings"
	"sync"

	"github.com/Blucentia-HSEG/blucentia-mvp/internal/models"
)

// MemoryStore holds every collection in process memory. State lives for the
// lifetime of the process and resets on restart. All methods are safe for
// concurrent use: mutable entities are copied on the way in and out, so a
// caller mutating an Employee it got from GetEmployee never shares memory
// with a reader iterating ListEmployees. Ledger entries and pledges are
// append-only and never mutated, so those pointers are shared as-is. List
// results are fresh slices sorted by id, except the token ledger and pledges
// which keep insertion order.
type MemoryStore struct {
	mu           sync.RWMutex
	employees    map[string]*models.Employee
	companies    map[string]*models.Company
	affiliates   map[string]*models.Affiliate
	affByCode    map[string]string
	tokens       []*models.TruthToken
	pledges      []*models.Pledge
	users        map[string]*models.User
	usersByEmail map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		employees:    map[string]*models.Employee{},
		companies:    map[string]*models.Company{},
		affiliates:   map[string]*models.Affiliate{},
		affByCode:    map[string]string{},
		users:        map[string]*models.User{},
		usersByEmail: map[string]string{},
	}
}

func copyEmployee(e *models.Employee) *models.Employee {
	c := *e
	return &c
}

func copyCompany(c *models.Company) *models.Company {
	cc := *c
	return &cc
}

func copyAffiliate(a *models.Affiliate) *models.Affiliate {
	c := *a
	return &c
}

func copyUser(u *models.User) *models.User {
	c := *u
	return &c
}

func (s *MemoryStore) AddEmployee(e *models.Employee) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.employees[e.ID] = copyEmployee(e)
}

func (s *MemoryStore) GetEmployee(id string) *models.Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.employees[id]
	if !ok {
		return nil
	}
	return copyEmployee(e)
}

func (s *MemoryStore) UpdateEmployee(e *models.Employee) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.employees[e.ID]; !ok {
		return false
	}
	s.employees[e.ID] = copyEmployee(e)
	return true
}

func (s *MemoryStore) ListEmployees() []*models.Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Employee, 0, len(s.employees))
	for _, e := range s.employees {
		out = append(out, copyEmployee(e))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *MemoryStore) ListEmployeesByCompany(companyID string) []*models.Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*models.Employee{}
	for _, e := range s.employees {
		if e.CompanyID == companyID {
			out = append(out, copyEmployee(e))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *MemoryStore) AddCompany(c *models.Company) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.companies[c.ID] = copyCompany(c)
}

func (s *MemoryStore) GetCompany(id string) *models.Company {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.companies[id]
	if !ok {
		return nil
	}
	return copyCompany(c)
}

func (s *MemoryStore) UpdateCompany(c *models.Company) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.companies[c.ID]; !ok {
		return false
	}
	s.companies[c.ID] = copyCompany(c)
	return true
}

func (s *MemoryStore) ListCompanies() []*models.Company {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Company, 0, len(s.companies))
	for _, c := range s.companies {
		out = append(out, copyCompany(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *MemoryStore) AddAffiliate(a *models.Affiliate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.affiliates[a.ID] = copyAffiliate(a)
	s.affByCode[a.ReferralCode] = a.ID
}

func (s *MemoryStore) GetAffiliate(id string) *models.Affiliate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.affiliates[id]
	if !ok {
		return nil
	}
	return copyAffiliate(a)
}

func (s *MemoryStore) GetAffiliateByCode(code string) *models.Affiliate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.affByCode[code]
	if !ok {
		return nil
	}
	return copyAffiliate(s.affiliates[id])
}

func (s *MemoryStore) UpdateAffiliate(a *models.Affiliate) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.affiliates[a.ID]
	if !ok {
		return false
	}
	if old.ReferralCode != a.ReferralCode {
		delete(s.affByCode, old.ReferralCode)
		s.affByCode[a.ReferralCode] = a.ID
	}
	s.affiliates[a.ID] = copyAffiliate(a)
	return true
}

func (s *MemoryStore) ListAffiliates() []*models.Affiliate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Affiliate, 0, len(s.affiliates))
	for _, a := range s.affiliates {
		out = append(out, copyAffiliate(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *MemoryStore) AddToken(t *models.TruthToken) {
	s.mu.Lock()
	s.tokens = append(s.tokens, t)
	s.mu.Unlock()
}

func (s *MemoryStore) ListTokens() []*models.TruthToken {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*models.TruthToken(nil), s.tokens...)
}

func (s *MemoryStore) ListTokensByEmployee(employeeID string) []*models.TruthToken {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*models.TruthToken{}
	for _, t := range s.tokens {
		if t.EmployeeID == employeeID {
			out = append(out, t)
		}
	}
	return out
}

func (s *MemoryStore) AddPledge(p *models.Pledge) {
	s.mu.Lock()
	s.pledges = append(s.pledges, p)
	s.mu.Unlock()
}

func (s *MemoryStore) ListPledges() []*models.Pledge {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*models.Pledge(nil), s.pledges...)
}

func (s *MemoryStore) AddUser(u *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = copyUser(u)
	s.usersByEmail[strings.ToLower(u.Email)] = u.ID
}

func (s *MemoryStore) GetUser(id string) *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil
	}
	return copyUser(u)
}

func (s *MemoryStore) FindUserByEmail(email string) *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.usersByEmail[strings.ToLower(email)]
	if !ok {
		return nil
	}
	return copyUser(s.users[id])
}

func (s *MemoryStore) UpdateUser(u *models.User) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.users[u.ID]
	if !ok {
		return false
	}
	if !strings.EqualFold(old.Email, u.Email) {
		delete(s.usersByEmail, strings.ToLower(old.Email))
		s.usersByEmail[strings.ToLower(u.Email)] = u.ID
	}
	s.users[u.ID] = copyUser(u)
	return true
}
