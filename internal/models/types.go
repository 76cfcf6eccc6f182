package models

import "time"

// SizeClass buckets companies by headcount.
type SizeClass string

const (
	SizeStartup    SizeClass = "startup"
	SizeSmall      SizeClass = "small"
	SizeMedium     SizeClass = "medium"
	SizeLarge      SizeClass = "large"
	SizeEnterprise SizeClass = "enterprise"
)

// TokenSource tags a truth-token ledger entry with the action that earned it.
type TokenSource string

const (
	SourceSurvey   TokenSource = "survey"
	SourcePledge   TokenSource = "pledge"
	SourceReferral TokenSource = "referral"
	SourceBonus    TokenSource = "bonus"
)

// Trend describes the direction of a company's score over time.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// Role is a session identity's access level.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleExecutive Role = "executive"
	RoleManager   Role = "manager"
	RoleEmployee  Role = "employee"
)

// Employee is a survey participant belonging to one company.
// TruthPoints is a running counter kept in lockstep with the token ledger:
// it only ever changes in the same operation that appends a ledger entry.
type Employee struct {
	ID                 string           `json:"id"`
	Name               string           `json:"name"`
	Email              string           `json:"email"`
	CompanyID          string           `json:"company_id"`
	Department         string           `json:"department"`
	Position           string           `json:"position"`
	TruthPoints        int              `json:"truth_points"`
	HasPledged         bool             `json:"has_pledged"`
	PledgeDate         *time.Time       `json:"pledge_date,omitempty"`
	HasCompletedSurvey bool             `json:"has_completed_survey"`
	SurveyResponses    []SurveyResponse `json:"survey_responses"`
}

// SurveyResponse is one answered question. Scale questions fill Scale,
// multiple-choice and text questions fill Text; exactly one is set.
type SurveyResponse struct {
	QuestionID  string    `json:"question_id"`
	Text        string    `json:"text,omitempty"`
	Scale       int       `json:"scale,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// Company is a rated organization. Badge presence tracks IsOptedIn exactly.
// PledgeCount and TruthPointsTotal are seeded marketing counters; the
// employee-derived aggregates may legitimately disagree with them.
type Company struct {
	ID               string              `json:"id"`
	Name             string              `json:"name"`
	Logo             string              `json:"logo,omitempty"`
	Industry         string              `json:"industry"`
	Size             SizeClass           `json:"size"`
	IsOptedIn        bool                `json:"is_opted_in"`
	BadgeURL         string              `json:"badge_url,omitempty"`
	PledgeCount      int                 `json:"pledge_count"`
	TruthPointsTotal int                 `json:"truth_points_total"`
	WatchlistReason  string              `json:"watchlist_reason,omitempty"`
	Scorecard        Scorecard           `json:"scorecard"`
	Certifications   []Certification     `json:"certifications"`
	Reports          []CompanyReport     `json:"reports"`
	Recommendations  []Recommendation    `json:"recommendations"`
	NextCertificate  *NextCertificate    `json:"next_certificate,omitempty"`
	Benchmark        BenchmarkComparison `json:"benchmark"`
	LastUpdated      time.Time           `json:"last_updated"`
}

// Scorecard is the executive-dashboard scoring block. Rank is static seed
// data for display; the ranking view computes positions independently.
type Scorecard struct {
	Transparency int   `json:"transparency"`
	Ethics       int   `json:"ethics"`
	Culture      int   `json:"culture"`
	Leadership   int   `json:"leadership"`
	Overall      int   `json:"overall"`
	Rank         int   `json:"rank"`
	Trend        Trend `json:"trend"`
}

type BenchmarkComparison struct {
	IndustryAverage int    `json:"industry_average"`
	TopPerformer    int    `json:"top_performer"`
	PeerGroup       int    `json:"peer_group"`
	Percentile      int    `json:"percentile"`
	Performance     string `json:"performance"`
}

type Certification struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Type        string     `json:"type"`
	Level       string     `json:"level"`
	EarnedDate  time.Time  `json:"earned_date"`
	ExpiryDate  *time.Time `json:"expiry_date,omitempty"`
	Description string     `json:"description,omitempty"`
	BadgeURL    string     `json:"badge_url,omitempty"`
}

type CompanyReport struct {
	ID              string         `json:"id"`
	Title           string         `json:"title"`
	Type            string         `json:"type"`
	Period          string         `json:"period"`
	GeneratedDate   time.Time      `json:"generated_date"`
	Summary         string         `json:"summary"`
	KeyFindings     []string       `json:"key_findings,omitempty"`
	Metrics         []ReportMetric `json:"metrics,omitempty"`
	Recommendations []string       `json:"recommendations,omitempty"`
	Status          string         `json:"status"`
}

type ReportMetric struct {
	Name          string  `json:"name"`
	Value         float64 `json:"value"`
	PreviousValue float64 `json:"previous_value,omitempty"`
	Change        float64 `json:"change"`
	ChangeType    string  `json:"change_type"`
	Unit          string  `json:"unit,omitempty"`
	Description   string  `json:"description,omitempty"`
}

type Recommendation struct {
	ID                  string   `json:"id"`
	Title               string   `json:"title"`
	Category            string   `json:"category"`
	Priority            string   `json:"priority"`
	Impact              string   `json:"impact"`
	Effort              string   `json:"effort"`
	Description         string   `json:"description,omitempty"`
	ActionItems         []string `json:"action_items,omitempty"`
	ExpectedImprovement int      `json:"expected_improvement"`
	Timeline            string   `json:"timeline,omitempty"`
	Status              string   `json:"status"`
}

type NextCertificate struct {
	ID                    string   `json:"id"`
	Name                  string   `json:"name"`
	Type                  string   `json:"type"`
	Progress              int      `json:"progress"`
	Requirements          []string `json:"requirements"`
	CompletedRequirements []string `json:"completed_requirements"`
	EstimatedCompletion   string   `json:"estimated_completion,omitempty"`
	Description           string   `json:"description,omitempty"`
}

// Affiliate is a referrer holding a unique referral code.
// ReferralCount only ever increases.
type Affiliate struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	ReferralCode      string    `json:"referral_code"`
	ReferralCount     int       `json:"referral_count"`
	TruthTokensEarned int       `json:"truth_tokens_earned"`
	JoinDate          time.Time `json:"join_date"`
	IsActive          bool      `json:"is_active"`
}

// TruthToken is one append-only ledger entry for earned points/tokens.
type TruthToken struct {
	ID          string      `json:"id"`
	EmployeeID  string      `json:"employee_id"`
	Amount      int         `json:"amount"`
	Source      TokenSource `json:"source"`
	Timestamp   time.Time   `json:"timestamp"`
	Description string      `json:"description,omitempty"`
}

// Pledge is a one-time public commitment record made by an employee.
type Pledge struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employee_id"`
	CompanyID  string    `json:"company_id"`
	Timestamp  time.Time `json:"timestamp"`
	IsPublic   bool      `json:"is_public"`
	Message    string    `json:"message,omitempty"`
}

// User is a session identity from the fixed credential directory.
type User struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Role        Role       `json:"role"`
	CompanyID   string     `json:"company_id"`
	CompanyName string     `json:"company_name"`
	Permissions []string   `json:"permissions"`
	PassHash    []byte     `json:"-"`
	Avatar      string     `json:"avatar,omitempty"`
	LastLogin   *time.Time `json:"last_login,omitempty"`
}

// MovementStats is the composite landing-page counter block.
type MovementStats struct {
	TotalPledges       int `json:"total_pledges"`
	TotalTruthPoints   int `json:"total_truth_points"`
	TotalTruthTokens   int `json:"total_truth_tokens"`
	ActiveCompanies    int `json:"active_companies"`
	WatchlistCompanies int `json:"watchlist_companies"`
	TotalEmployees     int `json:"total_employees"`
}
