package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Blucentia-HSEG/blucentia-mvp/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	// A plain :memory: DSN gives every test its own database.
	d, err := Open("file::memory:")
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	store, err := NewSQLiteStore(d, zap.NewNop())
	require.NoError(t, err)
	return store
}

func TestEmployeeRoundTrip(t *testing.T) {
	store := newTestStore(t)

	pledged := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	store.AddCompany(&models.Company{ID: "c1", Name: "TechCorp"})
	store.AddEmployee(&models.Employee{
		ID: "e1", Name: "Sam", Email: "sam@techcorp.com", CompanyID: "c1",
		Department: "Engineering", TruthPoints: 150,
		HasPledged: true, PledgeDate: &pledged, HasCompletedSurvey: true,
		SurveyResponses: []models.SurveyResponse{
			{QuestionID: "q1", Scale: 8, SubmittedAt: pledged},
		},
	})

	got := store.GetEmployee("e1")
	require.NotNil(t, got)
	assert.Equal(t, "Engineering", got.Department)
	assert.Equal(t, 150, got.TruthPoints)
	require.NotNil(t, got.PledgeDate)
	assert.True(t, got.PledgeDate.Equal(pledged))
	require.Len(t, got.SurveyResponses, 1)
	assert.Equal(t, 8, got.SurveyResponses[0].Scale)

	got.TruthPoints = 200
	require.True(t, store.UpdateEmployee(got))
	assert.Equal(t, 200, store.GetEmployee("e1").TruthPoints)

	assert.False(t, store.UpdateEmployee(&models.Employee{ID: "ghost", CompanyID: "c1"}))
	assert.Nil(t, store.GetEmployee("ghost"))

	store.AddEmployee(&models.Employee{ID: "e2", Name: "Kim", Email: "kim@techcorp.com", CompanyID: "c1"})
	assert.Len(t, store.ListEmployees(), 2)
	assert.Len(t, store.ListEmployeesByCompany("c1"), 2)
	assert.Empty(t, store.ListEmployeesByCompany("c2"))
}

func TestCompanyRoundTrip(t *testing.T) {
	store := newTestStore(t)

	store.AddCompany(&models.Company{
		ID: "c1", Name: "FinanceFirst", Industry: "Financial Services",
		Size: models.SizeEnterprise, IsOptedIn: true,
		BadgeURL: "/badges/transparency-champion.png",
		Scorecard: models.Scorecard{
			Transparency: 95, Ethics: 96, Culture: 91, Leadership: 94,
			Overall: 94, Rank: 1, Trend: models.TrendStable,
		},
		Benchmark:       models.BenchmarkComparison{IndustryAverage: 70, Percentile: 98},
		Certifications:  []models.Certification{{ID: "cert1", Name: "Ethics Platinum", Level: "platinum"}},
		NextCertificate: &models.NextCertificate{ID: "n1", Name: "Governance Leader", Progress: 60},
		LastUpdated:     time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC),
	})

	got := store.GetCompany("c1")
	require.NotNil(t, got)
	assert.Equal(t, 94, got.Scorecard.Overall)
	assert.Equal(t, models.TrendStable, got.Scorecard.Trend)
	assert.Equal(t, 98, got.Benchmark.Percentile)
	require.Len(t, got.Certifications, 1)
	require.NotNil(t, got.NextCertificate)
	assert.Equal(t, 60, got.NextCertificate.Progress)
	assert.False(t, got.LastUpdated.IsZero())

	got.IsOptedIn = false
	got.BadgeURL = ""
	require.True(t, store.UpdateCompany(got))
	updated := store.GetCompany("c1")
	assert.False(t, updated.IsOptedIn)
	assert.Empty(t, updated.BadgeURL)
}

func TestAffiliateCodeLookup(t *testing.T) {
	store := newTestStore(t)

	store.AddAffiliate(&models.Affiliate{
		ID: "a1", Name: "Alex", Email: "alex@example.com",
		ReferralCode: "ALEX2024", JoinDate: time.Now().UTC(), IsActive: true,
	})

	got := store.GetAffiliateByCode("ALEX2024")
	require.NotNil(t, got)
	assert.Equal(t, "a1", got.ID)
	assert.Nil(t, store.GetAffiliateByCode("NOPE2024"))

	got.ReferralCount = 5
	got.TruthTokensEarned = 100
	require.True(t, store.UpdateAffiliate(got))
	assert.Equal(t, 5, store.GetAffiliate("a1").ReferralCount)
}

func TestTokenAndPledgeOrder(t *testing.T) {
	store := newTestStore(t)
	ts := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	store.AddToken(&models.TruthToken{ID: "t1", EmployeeID: "e1", Amount: 50, Source: models.SourceSurvey, Timestamp: ts})
	store.AddToken(&models.TruthToken{ID: "t2", EmployeeID: "e2", Amount: 100, Source: models.SourcePledge, Timestamp: ts})
	store.AddToken(&models.TruthToken{ID: "t3", EmployeeID: "e1", Amount: 20, Source: models.SourceReferral, Timestamp: ts})

	all := store.ListTokens()
	require.Len(t, all, 3)
	assert.Equal(t, "t1", all[0].ID)
	assert.Equal(t, "t3", all[2].ID)

	mine := store.ListTokensByEmployee("e1")
	require.Len(t, mine, 2)
	assert.Equal(t, models.SourceReferral, mine[1].Source)

	store.AddPledge(&models.Pledge{ID: "p1", EmployeeID: "e1", CompanyID: "c1", Timestamp: ts, IsPublic: true, Message: "count me in"})
	pledges := store.ListPledges()
	require.Len(t, pledges, 1)
	assert.True(t, pledges[0].IsPublic)
	assert.Equal(t, "count me in", pledges[0].Message)
}

func TestUserEmailLookupIsCaseInsensitive(t *testing.T) {
	store := newTestStore(t)

	store.AddUser(&models.User{
		ID: "1", Name: "Sarah", Email: "Sarah.Johnson@TechCorp.com",
		Role: models.RoleExecutive, CompanyID: "c1",
		Permissions: []string{"manage_company"}, PassHash: []byte("hash"),
	})

	got := store.FindUserByEmail("sarah.johnson@techcorp.com")
	require.NotNil(t, got)
	assert.Equal(t, []byte("hash"), got.PassHash)
	assert.Contains(t, got.Permissions, "manage_company")
	assert.Nil(t, store.FindUserByEmail("ghost@techcorp.com"))

	now := time.Now().UTC().Truncate(time.Second)
	got.LastLogin = &now
	require.True(t, store.UpdateUser(got))
	require.NotNil(t, store.GetUser("1").LastLogin)
}
