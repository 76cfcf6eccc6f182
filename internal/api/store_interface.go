package api

import "github.com/Blucentia-HSEG/blucentia-mvp/internal/models"

// Store is the full entity-store surface. Get methods return nil for a
// missing id; Update methods report whether the entity existed. The default
// implementation is the in-memory store below; internal/db provides a
// SQLite-backed one behind the same interface.
type Store interface {
	AddEmployee(e *models.Employee)
	GetEmployee(id string) *models.Employee
	UpdateEmployee(e *models.Employee) bool
	ListEmployees() []*models.Employee
	ListEmployeesByCompany(companyID string) []*models.Employee

	AddCompany(c *models.Company)
	GetCompany(id string) *models.Company
	UpdateCompany(c *models.Company) bool
	ListCompanies() []*models.Company

	AddAffiliate(a *models.Affiliate)
	GetAffiliate(id string) *models.Affiliate
	GetAffiliateByCode(code string) *models.Affiliate
	UpdateAffiliate(a *models.Affiliate) bool
	ListAffiliates() []*models.Affiliate

	AddToken(t *models.TruthToken)
	ListTokens() []*models.TruthToken
	ListTokensByEmployee(employeeID string) []*models.TruthToken

	AddPledge(p *models.Pledge)
	ListPledges() []*models.Pledge

	AddUser(u *models.User)
	GetUser(id string) *models.User
	FindUserByEmail(email string) *models.User
	UpdateUser(u *models.User) bool
}

var _ Store = (*MemoryStore)(nil)
