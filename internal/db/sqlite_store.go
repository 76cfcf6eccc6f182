package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Blucentia-HSEG/blucentia-mvp/internal/api"
	"github.com/Blucentia-HSEG/blucentia-mvp/internal/models"
)

// SQLiteStore implements api.Store on a SQLite database. The server opens it
// in-memory, so state still lives only for the process lifetime; the value of
// this backend is the relational shape, not durability. Because the Store
// interface reports failures as absent entities, query errors are logged
// here rather than returned.
type SQLiteStore struct {
	db  *sql.DB
	log *zap.Logger
}

func NewSQLiteStore(db *sql.DB, log *zap.Logger) (*SQLiteStore, error) {
	if db == nil {
		return nil, errors.New("nil db")
	}
	if log == nil {
		log = zap.NewNop()
	}
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	}
	for _, stmt := range pragmas {
		if _, err := db.Exec(stmt); err != nil {
			return nil, fmt.Errorf("apply sqlite pragma %q: %w", stmt, err)
		}
	}
	return &SQLiteStore{db: db, log: log}, nil
}

var _ api.Store = (*SQLiteStore)(nil)

func (s *SQLiteStore) logErr(prefix string, err error) {
	if err != nil {
		s.log.Error("sqlite store", zap.String("op", prefix), zap.Error(err))
	}
}

func boolToInt64(v bool) int64 {
	if v {
		return 1
	}
	return 0
}

func int64ToBool(v int64) bool { return v != 0 }

func toNullString(v string) sql.NullString {
	if strings.TrimSpace(v) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: v, Valid: true}
}

func fromNullString(ns sql.NullString) string {
	if !ns.Valid {
		return ""
	}
	return ns.String
}

func timeToString(t time.Time) string { return t.UTC().Format(time.RFC3339Nano) }

func timeFromString(v string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}
	}
	return t
}

func timePtrToNull(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: timeToString(*t), Valid: true}
}

func timePtrFromNull(ns sql.NullString) *time.Time {
	if !ns.Valid {
		return nil
	}
	t := timeFromString(ns.String)
	return &t
}

func encodeJSON(s *SQLiteStore, prefix string, v any) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		s.logErr(prefix, err)
		return sql.NullString{}
	}
	return sql.NullString{String: string(b), Valid: true}
}

func decodeJSON(s *SQLiteStore, prefix string, ns sql.NullString, dst any) {
	if !ns.Valid || strings.TrimSpace(ns.String) == "" {
		return
	}
	if err := json.Unmarshal([]byte(ns.String), dst); err != nil {
		s.logErr(prefix, err)
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

// --- employees ---

const employeeCols = `id, name, email, company_id, department, position,
	truth_points, has_pledged, pledge_date, has_completed_survey, survey_responses`

func (s *SQLiteStore) scanEmployee(row rowScanner) (*models.Employee, error) {
	var (
		e         models.Employee
		dept, pos sql.NullString
		pledged   int64
		pledgeAt  sql.NullString
		completed int64
		responses sql.NullString
	)
	if err := row.Scan(&e.ID, &e.Name, &e.Email, &e.CompanyID, &dept, &pos,
		&e.TruthPoints, &pledged, &pledgeAt, &completed, &responses); err != nil {
		return nil, err
	}
	e.Department = fromNullString(dept)
	e.Position = fromNullString(pos)
	e.HasPledged = int64ToBool(pledged)
	e.PledgeDate = timePtrFromNull(pledgeAt)
	e.HasCompletedSurvey = int64ToBool(completed)
	e.SurveyResponses = []models.SurveyResponse{}
	decodeJSON(s, "decode survey responses", responses, &e.SurveyResponses)
	return &e, nil
}

func (s *SQLiteStore) AddEmployee(e *models.Employee) {
	if _, err := s.db.Exec(`INSERT INTO employees (`+employeeCols+`) VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		e.ID, e.Name, e.Email, e.CompanyID, toNullString(e.Department), toNullString(e.Position),
		e.TruthPoints, boolToInt64(e.HasPledged), timePtrToNull(e.PledgeDate),
		boolToInt64(e.HasCompletedSurvey), encodeJSON(s, "encode survey responses", e.SurveyResponses)); err != nil {
		s.logErr("add employee", err)
	}
}

func (s *SQLiteStore) GetEmployee(id string) *models.Employee {
	row := s.db.QueryRow(`SELECT `+employeeCols+` FROM employees WHERE id = ?`, id)
	e, err := s.scanEmployee(row)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.logErr("get employee", err)
		}
		return nil
	}
	return e
}

func (s *SQLiteStore) UpdateEmployee(e *models.Employee) bool {
	res, err := s.db.Exec(`UPDATE employees SET name=?, email=?, company_id=?, department=?, position=?,
		truth_points=?, has_pledged=?, pledge_date=?, has_completed_survey=?, survey_responses=? WHERE id=?`,
		e.Name, e.Email, e.CompanyID, toNullString(e.Department), toNullString(e.Position),
		e.TruthPoints, boolToInt64(e.HasPledged), timePtrToNull(e.PledgeDate),
		boolToInt64(e.HasCompletedSurvey), encodeJSON(s, "encode survey responses", e.SurveyResponses), e.ID)
	if err != nil {
		s.logErr("update employee", err)
		return false
	}
	n, _ := res.RowsAffected()
	return n > 0
}

func (s *SQLiteStore) listEmployees(query string, args ...any) []*models.Employee {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		s.logErr("list employees", err)
		return []*models.Employee{}
	}
	defer rows.Close()
	out := []*models.Employee{}
	for rows.Next() {
		e, err := s.scanEmployee(rows)
		if err != nil {
			s.logErr("scan employee", err)
			continue
		}
		out = append(out, e)
	}
	s.logErr("iterate employees", rows.Err())
	return out
}

func (s *SQLiteStore) ListEmployees() []*models.Employee {
	return s.listEmployees(`SELECT ` + employeeCols + ` FROM employees ORDER BY id`)
}

func (s *SQLiteStore) ListEmployeesByCompany(companyID string) []*models.Employee {
	return s.listEmployees(`SELECT `+employeeCols+` FROM employees WHERE company_id = ? ORDER BY id`, companyID)
}

// --- companies ---

const companyCols = `id, name, logo, industry, size, is_opted_in, badge_url,
	pledge_count, truth_points_total, watchlist_reason, scorecard, benchmark,
	certifications, reports, recommendations, next_certificate, last_updated`

func (s *SQLiteStore) scanCompany(row rowScanner) (*models.Company, error) {
	var (
		c                                      models.Company
		logo, industry, size, badge, reason    sql.NullString
		optedIn                                int64
		scorecard, benchmark, certs, reports   sql.NullString
		recommendations, nextCert, lastUpdated sql.NullString
	)
	if err := row.Scan(&c.ID, &c.Name, &logo, &industry, &size, &optedIn, &badge,
		&c.PledgeCount, &c.TruthPointsTotal, &reason, &scorecard, &benchmark,
		&certs, &reports, &recommendations, &nextCert, &lastUpdated); err != nil {
		return nil, err
	}
	c.Logo = fromNullString(logo)
	c.Industry = fromNullString(industry)
	c.Size = models.SizeClass(fromNullString(size))
	c.IsOptedIn = int64ToBool(optedIn)
	c.BadgeURL = fromNullString(badge)
	c.WatchlistReason = fromNullString(reason)
	decodeJSON(s, "decode scorecard", scorecard, &c.Scorecard)
	decodeJSON(s, "decode benchmark", benchmark, &c.Benchmark)
	c.Certifications = []models.Certification{}
	decodeJSON(s, "decode certifications", certs, &c.Certifications)
	c.Reports = []models.CompanyReport{}
	decodeJSON(s, "decode reports", reports, &c.Reports)
	c.Recommendations = []models.Recommendation{}
	decodeJSON(s, "decode recommendations", recommendations, &c.Recommendations)
	if nextCert.Valid {
		var nc models.NextCertificate
		decodeJSON(s, "decode next certificate", nextCert, &nc)
		c.NextCertificate = &nc
	}
	if lastUpdated.Valid {
		c.LastUpdated = timeFromString(lastUpdated.String)
	}
	return &c, nil
}

func (s *SQLiteStore) companyArgs(c *models.Company) []any {
	var nextCert sql.NullString
	if c.NextCertificate != nil {
		nextCert = encodeJSON(s, "encode next certificate", c.NextCertificate)
	}
	return []any{
		c.Name, toNullString(c.Logo), toNullString(c.Industry), toNullString(string(c.Size)),
		boolToInt64(c.IsOptedIn), toNullString(c.BadgeURL), c.PledgeCount, c.TruthPointsTotal,
		toNullString(c.WatchlistReason),
		encodeJSON(s, "encode scorecard", c.Scorecard),
		encodeJSON(s, "encode benchmark", c.Benchmark),
		encodeJSON(s, "encode certifications", c.Certifications),
		encodeJSON(s, "encode reports", c.Reports),
		encodeJSON(s, "encode recommendations", c.Recommendations),
		nextCert,
		sql.NullString{String: timeToString(c.LastUpdated), Valid: !c.LastUpdated.IsZero()},
	}
}

func (s *SQLiteStore) AddCompany(c *models.Company) {
	args := append([]any{c.ID}, s.companyArgs(c)...)
	if _, err := s.db.Exec(`INSERT INTO companies (`+companyCols+`) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`, args...); err != nil {
		s.logErr("add company", err)
	}
}

func (s *SQLiteStore) GetCompany(id string) *models.Company {
	row := s.db.QueryRow(`SELECT `+companyCols+` FROM companies WHERE id = ?`, id)
	c, err := s.scanCompany(row)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.logErr("get company", err)
		}
		return nil
	}
	return c
}

func (s *SQLiteStore) UpdateCompany(c *models.Company) bool {
	args := append(s.companyArgs(c), c.ID)
	res, err := s.db.Exec(`UPDATE companies SET name=?, logo=?, industry=?, size=?, is_opted_in=?,
		badge_url=?, pledge_count=?, truth_points_total=?, watchlist_reason=?, scorecard=?, benchmark=?,
		certifications=?, reports=?, recommendations=?, next_certificate=?, last_updated=? WHERE id=?`, args...)
	if err != nil {
		s.logErr("update company", err)
		return false
	}
	n, _ := res.RowsAffected()
	return n > 0
}

func (s *SQLiteStore) ListCompanies() []*models.Company {
	rows, err := s.db.Query(`SELECT ` + companyCols + ` FROM companies ORDER BY id`)
	if err != nil {
		s.logErr("list companies", err)
		return []*models.Company{}
	}
	defer rows.Close()
	out := []*models.Company{}
	for rows.Next() {
		c, err := s.scanCompany(rows)
		if err != nil {
			s.logErr("scan company", err)
			continue
		}
		out = append(out, c)
	}
	s.logErr("iterate companies", rows.Err())
	return out
}

// --- affiliates ---

const affiliateCols = `id, name, email, referral_code, referral_count, truth_tokens_earned, join_date, is_active`

func (s *SQLiteStore) scanAffiliate(row rowScanner) (*models.Affiliate, error) {
	var (
		a        models.Affiliate
		joinDate string
		active   int64
	)
	if err := row.Scan(&a.ID, &a.Name, &a.Email, &a.ReferralCode,
		&a.ReferralCount, &a.TruthTokensEarned, &joinDate, &active); err != nil {
		return nil, err
	}
	a.JoinDate = timeFromString(joinDate)
	a.IsActive = int64ToBool(active)
	return &a, nil
}

func (s *SQLiteStore) AddAffiliate(a *models.Affiliate) {
	if _, err := s.db.Exec(`INSERT INTO affiliates (`+affiliateCols+`) VALUES (?,?,?,?,?,?,?,?)`,
		a.ID, a.Name, a.Email, a.ReferralCode, a.ReferralCount, a.TruthTokensEarned,
		timeToString(a.JoinDate), boolToInt64(a.IsActive)); err != nil {
		s.logErr("add affiliate", err)
	}
}

func (s *SQLiteStore) getAffiliate(query string, arg any) *models.Affiliate {
	row := s.db.QueryRow(query, arg)
	a, err := s.scanAffiliate(row)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.logErr("get affiliate", err)
		}
		return nil
	}
	return a
}

func (s *SQLiteStore) GetAffiliate(id string) *models.Affiliate {
	return s.getAffiliate(`SELECT `+affiliateCols+` FROM affiliates WHERE id = ?`, id)
}

func (s *SQLiteStore) GetAffiliateByCode(code string) *models.Affiliate {
	return s.getAffiliate(`SELECT `+affiliateCols+` FROM affiliates WHERE referral_code = ?`, code)
}

func (s *SQLiteStore) UpdateAffiliate(a *models.Affiliate) bool {
	res, err := s.db.Exec(`UPDATE affiliates SET name=?, email=?, referral_code=?, referral_count=?,
		truth_tokens_earned=?, join_date=?, is_active=? WHERE id=?`,
		a.Name, a.Email, a.ReferralCode, a.ReferralCount, a.TruthTokensEarned,
		timeToString(a.JoinDate), boolToInt64(a.IsActive), a.ID)
	if err != nil {
		s.logErr("update affiliate", err)
		return false
	}
	n, _ := res.RowsAffected()
	return n > 0
}

func (s *SQLiteStore) ListAffiliates() []*models.Affiliate {
	rows, err := s.db.Query(`SELECT ` + affiliateCols + ` FROM affiliates ORDER BY id`)
	if err != nil {
		s.logErr("list affiliates", err)
		return []*models.Affiliate{}
	}
	defer rows.Close()
	out := []*models.Affiliate{}
	for rows.Next() {
		a, err := s.scanAffiliate(rows)
		if err != nil {
			s.logErr("scan affiliate", err)
			continue
		}
		out = append(out, a)
	}
	s.logErr("iterate affiliates", rows.Err())
	return out
}

// --- token ledger ---

func (s *SQLiteStore) AddToken(t *models.TruthToken) {
	if _, err := s.db.Exec(`INSERT INTO truth_tokens (id, employee_id, amount, source, ts, description) VALUES (?,?,?,?,?,?)`,
		t.ID, t.EmployeeID, t.Amount, string(t.Source), timeToString(t.Timestamp), toNullString(t.Description)); err != nil {
		s.logErr("add token", err)
	}
}

func (s *SQLiteStore) listTokens(query string, args ...any) []*models.TruthToken {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		s.logErr("list tokens", err)
		return []*models.TruthToken{}
	}
	defer rows.Close()
	out := []*models.TruthToken{}
	for rows.Next() {
		var (
			t      models.TruthToken
			source string
			ts     string
			desc   sql.NullString
		)
		if err := rows.Scan(&t.ID, &t.EmployeeID, &t.Amount, &source, &ts, &desc); err != nil {
			s.logErr("scan token", err)
			continue
		}
		t.Source = models.TokenSource(source)
		t.Timestamp = timeFromString(ts)
		t.Description = fromNullString(desc)
		out = append(out, &t)
	}
	s.logErr("iterate tokens", rows.Err())
	return out
}

func (s *SQLiteStore) ListTokens() []*models.TruthToken {
	return s.listTokens(`SELECT id, employee_id, amount, source, ts, description FROM truth_tokens ORDER BY seq`)
}

func (s *SQLiteStore) ListTokensByEmployee(employeeID string) []*models.TruthToken {
	return s.listTokens(`SELECT id, employee_id, amount, source, ts, description FROM truth_tokens WHERE employee_id = ? ORDER BY seq`, employeeID)
}

// --- pledges ---

func (s *SQLiteStore) AddPledge(p *models.Pledge) {
	if _, err := s.db.Exec(`INSERT INTO pledges (id, employee_id, company_id, ts, is_public, message) VALUES (?,?,?,?,?,?)`,
		p.ID, p.EmployeeID, p.CompanyID, timeToString(p.Timestamp), boolToInt64(p.IsPublic), toNullString(p.Message)); err != nil {
		s.logErr("add pledge", err)
	}
}

func (s *SQLiteStore) ListPledges() []*models.Pledge {
	rows, err := s.db.Query(`SELECT id, employee_id, company_id, ts, is_public, message FROM pledges ORDER BY seq`)
	if err != nil {
		s.logErr("list pledges", err)
		return []*models.Pledge{}
	}
	defer rows.Close()
	out := []*models.Pledge{}
	for rows.Next() {
		var (
			p      models.Pledge
			ts     string
			public int64
			msg    sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.EmployeeID, &p.CompanyID, &ts, &public, &msg); err != nil {
			s.logErr("scan pledge", err)
			continue
		}
		p.Timestamp = timeFromString(ts)
		p.IsPublic = int64ToBool(public)
		p.Message = fromNullString(msg)
		out = append(out, &p)
	}
	s.logErr("iterate pledges", rows.Err())
	return out
}

// --- users ---

const userCols = `id, name, email, role, company_id, company_name, permissions, pass_hash, avatar, last_login`

func (s *SQLiteStore) scanUser(row rowScanner) (*models.User, error) {
	var (
		u                            models.User
		role                         string
		companyID, companyName       sql.NullString
		permissions, avatar, lastLog sql.NullString
		hash                         []byte
	)
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &role, &companyID, &companyName,
		&permissions, &hash, &avatar, &lastLog); err != nil {
		return nil, err
	}
	u.Role = models.Role(role)
	u.CompanyID = fromNullString(companyID)
	u.CompanyName = fromNullString(companyName)
	u.Permissions = []string{}
	decodeJSON(s, "decode permissions", permissions, &u.Permissions)
	u.PassHash = hash
	u.Avatar = fromNullString(avatar)
	u.LastLogin = timePtrFromNull(lastLog)
	return &u, nil
}

func (s *SQLiteStore) AddUser(u *models.User) {
	if _, err := s.db.Exec(`INSERT INTO users (`+userCols+`) VALUES (?,?,?,?,?,?,?,?,?,?)`,
		u.ID, u.Name, u.Email, string(u.Role), toNullString(u.CompanyID), toNullString(u.CompanyName),
		encodeJSON(s, "encode permissions", u.Permissions), u.PassHash,
		toNullString(u.Avatar), timePtrToNull(u.LastLogin)); err != nil {
		s.logErr("add user", err)
	}
}

func (s *SQLiteStore) GetUser(id string) *models.User {
	row := s.db.QueryRow(`SELECT `+userCols+` FROM users WHERE id = ?`, id)
	u, err := s.scanUser(row)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.logErr("get user", err)
		}
		return nil
	}
	return u
}

func (s *SQLiteStore) FindUserByEmail(email string) *models.User {
	row := s.db.QueryRow(`SELECT `+userCols+` FROM users WHERE email = ? COLLATE NOCASE`, email)
	u, err := s.scanUser(row)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.logErr("find user by email", err)
		}
		return nil
	}
	return u
}

func (s *SQLiteStore) UpdateUser(u *models.User) bool {
	res, err := s.db.Exec(`UPDATE users SET name=?, email=?, role=?, company_id=?, company_name=?,
		permissions=?, pass_hash=?, avatar=?, last_login=? WHERE id=?`,
		u.Name, u.Email, string(u.Role), toNullString(u.CompanyID), toNullString(u.CompanyName),
		encodeJSON(s, "encode permissions", u.Permissions), u.PassHash,
		toNullString(u.Avatar), timePtrToNull(u.LastLogin), u.ID)
	if err != nil {
		s.logErr("update user", err)
		return false
	}
	n, _ := res.RowsAffected()
	return n > 0
}
