package api

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Blucentia-HSEG/blucentia-mvp/internal/models"
)

// DemoPassword is the password behind every seeded demo account. The three
// demo emails are documented on the login page of the companion frontend.
const DemoPassword = "password123"

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

// SeedDemoData loads the fixed demo dataset: three companies with their
// scorecards, their employees and survey responses, three affiliates, the
// token ledger backing the seeded awards, and the credential directory.
// Seeded company counters (PledgeCount, TruthPointsTotal) are marketing
// figures and intentionally do not reconcile with the employee records.
func SeedDemoData(store Store) error {
	seedCompanies(store)
	seedEmployees(store)
	seedAffiliates(store)
	seedTokens(store)
	return seedUsers(store)
}

func seedCompanies(store Store) {
	store.AddCompany(&models.Company{
		ID:               "1",
		Name:             "TechCorp Solutions",
		Logo:             "/logos/techcorp.png",
		Industry:         "Technology",
		Size:             models.SizeLarge,
		IsOptedIn:        true,
		BadgeURL:         "/badges/transparency-champion.png",
		PledgeCount:      45,
		TruthPointsTotal: 1250,
		Scorecard: models.Scorecard{
			Transparency: 90, Ethics: 87, Culture: 88, Leadership: 87,
			Overall: 88, Rank: 2, Trend: models.TrendUp,
		},
		Benchmark: models.BenchmarkComparison{
			IndustryAverage: 72, TopPerformer: 94, PeerGroup: 80,
			Percentile: 86, Performance: "above-average",
		},
		Certifications: []models.Certification{
			{
				ID: "cert1", Name: "Transparency Champion", Type: "transparency",
				Level: "gold", EarnedDate: date(2023, time.November, 5),
				Description: "Awarded for sustained public reporting of internal metrics.",
				BadgeURL:    "/badges/transparency-gold.png",
			},
			{
				ID: "cert2", Name: "Open Culture", Type: "culture",
				Level: "silver", EarnedDate: date(2023, time.June, 12),
				Description: "Recognizes company-wide open communication practices.",
				BadgeURL:    "/badges/culture-silver.png",
			},
		},
		Reports: []models.CompanyReport{
			{
				ID: "rep1", Title: "Q4 2023 Transparency Report", Type: "quarterly",
				Period: "2023-Q4", GeneratedDate: date(2024, time.January, 8),
				Summary:     "Transparency score climbed four points on the back of published salary bands.",
				KeyFindings: []string{"Salary bands published for all roles", "Board minutes released within 14 days"},
				Metrics: []models.ReportMetric{
					{Name: "Transparency score", Value: 90, PreviousValue: 86, Change: 4, ChangeType: "increase", Unit: "points"},
				},
				Recommendations: []string{"Extend reporting to contractor compensation"},
				Status:          "published",
			},
		},
		Recommendations: []models.Recommendation{
			{
				ID: "rec1", Title: "Publish supplier audit results", Category: "transparency",
				Priority: "high", Impact: "high", Effort: "medium",
				Description:         "Supplier audits are complete but unpublished.",
				ActionItems:         []string{"Redact confidential terms", "Publish audit summaries quarterly"},
				ExpectedImprovement: 3, Timeline: "next quarter", Status: "pending",
			},
		},
		NextCertificate: &models.NextCertificate{
			ID: "next1", Name: "Governance Leader", Type: "governance", Progress: 60,
			Requirements:          []string{"Independent board majority", "Published voting records", "Whistleblower program"},
			CompletedRequirements: []string{"Independent board majority", "Whistleblower program"},
			EstimatedCompletion:   "Q3 2024",
			Description:           "Certifies best-practice governance structures.",
		},
		LastUpdated: date(2024, time.January, 20),
	})

	store.AddCompany(&models.Company{
		ID:              "2",
		Name:            "GreenEnergy Inc",
		Logo:            "/logos/greenenergy.png",
		Industry:        "Renewable Energy",
		Size:            models.SizeMedium,
		IsOptedIn:       false,
		WatchlistReason: "High employee turnover, transparency concerns raised by former employees",
		Scorecard: models.Scorecard{
			Transparency: 40, Ethics: 48, Culture: 42, Leadership: 46,
			Overall: 44, Rank: 3, Trend: models.TrendDown,
		},
		Benchmark: models.BenchmarkComparison{
			IndustryAverage: 65, TopPerformer: 94, PeerGroup: 61,
			Percentile: 18, Performance: "below-average",
		},
		Certifications:  []models.Certification{},
		Reports:         []models.CompanyReport{},
		Recommendations: []models.Recommendation{},
		LastUpdated:     date(2024, time.January, 12),
	})

	store.AddCompany(&models.Company{
		ID:               "3",
		Name:             "FinanceFirst",
		Logo:             "/logos/financefirst.png",
		Industry:         "Financial Services",
		Size:             models.SizeEnterprise,
		IsOptedIn:        true,
		BadgeURL:         "/badges/transparency-champion.png",
		PledgeCount:      78,
		TruthPointsTotal: 2100,
		Scorecard: models.Scorecard{
			Transparency: 95, Ethics: 96, Culture: 91, Leadership: 94,
			Overall: 94, Rank: 1, Trend: models.TrendStable,
		},
		Benchmark: models.BenchmarkComparison{
			IndustryAverage: 70, TopPerformer: 94, PeerGroup: 82,
			Percentile: 98, Performance: "excellent",
		},
		Certifications: []models.Certification{
			{
				ID: "cert3", Name: "Ethics Platinum", Type: "ethics",
				Level: "platinum", EarnedDate: date(2023, time.September, 30),
				Description: "Highest tier of the independent ethics review.",
				BadgeURL:    "/badges/ethics-platinum.png",
			},
		},
		Reports: []models.CompanyReport{
			{
				ID: "rep2", Title: "2023 Annual Transparency Report", Type: "annual",
				Period: "2023", GeneratedDate: date(2024, time.January, 15),
				Summary: "Held the top overall score for a second consecutive year.",
				Status:  "published",
			},
		},
		Recommendations: []models.Recommendation{},
		LastUpdated:     date(2024, time.January, 16),
	})
}

func seedEmployees(store Store) {
	store.AddEmployee(&models.Employee{
		ID: "emp1", Name: "Sarah Johnson", Email: "sarah.johnson@techcorp.com",
		CompanyID: "1", Department: "Engineering", Position: "Senior Developer",
		TruthPoints: 150, HasPledged: true, PledgeDate: datePtr(2024, time.January, 15),
		HasCompletedSurvey: true,
		SurveyResponses: []models.SurveyResponse{
			{QuestionID: "q1", Scale: 8, SubmittedAt: date(2024, time.January, 15)},
			{QuestionID: "q2", Text: "Often", SubmittedAt: date(2024, time.January, 15)},
			{QuestionID: "q3", Scale: 9, SubmittedAt: date(2024, time.January, 15)},
			{QuestionID: "q4", Text: "Agree", SubmittedAt: date(2024, time.January, 15)},
			{QuestionID: "q5", Scale: 7, SubmittedAt: date(2024, time.January, 15)},
		},
	})
	store.AddEmployee(&models.Employee{
		ID: "emp2", Name: "Mike Chen", Email: "mike.chen@techcorp.com",
		CompanyID: "1", Department: "Product", Position: "Product Manager",
		TruthPoints: 120, HasPledged: true, PledgeDate: datePtr(2024, time.January, 20),
		HasCompletedSurvey: true,
		SurveyResponses: []models.SurveyResponse{
			{QuestionID: "q1", Scale: 7, SubmittedAt: date(2024, time.January, 20)},
			{QuestionID: "q2", Text: "Sometimes", SubmittedAt: date(2024, time.January, 20)},
			{QuestionID: "q3", Scale: 8, SubmittedAt: date(2024, time.January, 20)},
			{QuestionID: "q4", Text: "Strongly agree", SubmittedAt: date(2024, time.January, 20)},
			{QuestionID: "q5", Scale: 6, SubmittedAt: date(2024, time.January, 20)},
		},
	})
	store.AddEmployee(&models.Employee{
		ID: "emp3", Name: "Lisa Rodriguez", Email: "lisa.rodriguez@financefirst.com",
		CompanyID: "3", Department: "Compliance", Position: "Compliance Officer",
		TruthPoints: 200, HasPledged: true, PledgeDate: datePtr(2024, time.January, 10),
		HasCompletedSurvey: true,
		SurveyResponses: []models.SurveyResponse{
			{QuestionID: "q1", Scale: 9, SubmittedAt: date(2024, time.January, 10)},
			{QuestionID: "q2", Text: "Always", SubmittedAt: date(2024, time.January, 10)},
			{QuestionID: "q3", Scale: 10, SubmittedAt: date(2024, time.January, 10)},
			{QuestionID: "q4", Text: "Strongly agree", SubmittedAt: date(2024, time.January, 10)},
			{QuestionID: "q5", Scale: 9, SubmittedAt: date(2024, time.January, 10)},
		},
	})
}

func seedAffiliates(store Store) {
	store.AddAffiliate(&models.Affiliate{
		ID: "aff1", Name: "Alex Thompson", Email: "alex.thompson@email.com",
		ReferralCode: "ALEX2024", ReferralCount: 12, TruthTokensEarned: 240,
		JoinDate: date(2024, time.January, 1), IsActive: true,
	})
	store.AddAffiliate(&models.Affiliate{
		ID: "aff2", Name: "Maria Garcia", Email: "maria.garcia@email.com",
		ReferralCode: "MARIA2024", ReferralCount: 8, TruthTokensEarned: 160,
		JoinDate: date(2024, time.January, 15), IsActive: true,
	})
	store.AddAffiliate(&models.Affiliate{
		ID: "aff3", Name: "David Kim", Email: "david.kim@email.com",
		ReferralCode: "DAVID2024", ReferralCount: 15, TruthTokensEarned: 300,
		JoinDate: date(2023, time.December, 20), IsActive: true,
	})
}

func seedTokens(store Store) {
	entries := []struct {
		id, emp string
		amount  int
		source  models.TokenSource
		day     time.Time
		desc    string
	}{
		{"token1", "emp1", 50, models.SourceSurvey, date(2024, time.January, 15), "Completed transparency survey"},
		{"token2", "emp1", 100, models.SourcePledge, date(2024, time.January, 15), "Made transparency pledge"},
		{"token3", "emp2", 50, models.SourceSurvey, date(2024, time.January, 20), "Completed transparency survey"},
		{"token4", "emp2", 100, models.SourcePledge, date(2024, time.January, 20), "Made transparency pledge"},
		{"token5", "emp3", 50, models.SourceSurvey, date(2024, time.January, 10), "Completed transparency survey"},
		{"token6", "emp3", 100, models.SourcePledge, date(2024, time.January, 10), "Made transparency pledge"},
	}
	for _, e := range entries {
		store.AddToken(&models.TruthToken{
			ID: e.id, EmployeeID: e.emp, Amount: e.amount,
			Source: e.source, Timestamp: e.day, Description: e.desc,
		})
	}
}

func seedUsers(store Store) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	users := []*models.User{
		{
			ID: "1", Name: "Sarah Johnson", Email: "sarah.johnson@techcorp.com",
			Role: models.RoleExecutive, CompanyID: "1", CompanyName: "TechCorp Solutions",
			Permissions: []string{"view_dashboard", "manage_company", "view_reports", "manage_employees"},
			Avatar:      "/avatars/sarah-johnson.jpg",
			LastLogin:   datePtr(2024, time.January, 15),
		},
		{
			ID: "2", Name: "Michael Chen", Email: "michael.chen@greenenergy.com",
			Role: models.RoleExecutive, CompanyID: "2", CompanyName: "GreenEnergy Inc",
			Permissions: []string{"view_dashboard", "manage_company", "view_reports"},
			Avatar:      "/avatars/michael-chen.jpg",
			LastLogin:   datePtr(2024, time.January, 14),
		},
		{
			ID: "3", Name: "Lisa Rodriguez", Email: "lisa.rodriguez@financefirst.com",
			Role: models.RoleExecutive, CompanyID: "3", CompanyName: "FinanceFirst",
			Permissions: []string{"view_dashboard", "manage_company", "view_reports", "manage_employees", "manage_certifications"},
			Avatar:      "/avatars/lisa-rodriguez.jpg",
			LastLogin:   datePtr(2024, time.January, 16),
		},
	}
	for _, u := range users {
		u.PassHash = hash
		store.AddUser(u)
	}
	return nil
}
