package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/Blucentia-HSEG/blucentia-mvp/internal/models"
)

// ReferralAward is the token amount credited per successful referral.
const ReferralAward = 20

type AffiliateStore interface {
	GetAffiliate(id string) *models.Affiliate
	GetAffiliateByCode(code string) *models.Affiliate
	ListAffiliates() []*models.Affiliate
	AddAffiliate(a *models.Affiliate)
	UpdateAffiliate(a *models.Affiliate) bool
}

// AffiliateService manages referrers and referral crediting.
type AffiliateService struct {
	store AffiliateStore
	now   func() time.Time
	idGen func(prefix string) string
}

func NewAffiliateService(store AffiliateStore) *AffiliateService {
	return &AffiliateService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		idGen: defaultID,
	}
}

// referralCode builds the display code for a new affiliate: the first five
// characters of the name uppercased plus the join year. A numeric suffix
// disambiguates when the base code is already taken.
func (s *AffiliateService) referralCode(name string, year int) string {
	base := strings.ToUpper(strings.ReplaceAll(name, " ", ""))
	if len(base) > 5 {
		base = base[:5]
	}
	code := fmt.Sprintf("%s%d", base, year)
	if s.store.GetAffiliateByCode(code) == nil {
		return code
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s-%d", code, i)
		if s.store.GetAffiliateByCode(candidate) == nil {
			return candidate
		}
	}
}

// CreateAffiliate registers a new referrer with a unique referral code and
// zeroed counters.
func (s *AffiliateService) CreateAffiliate(name, email string) (*models.Affiliate, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" {
		return nil, NewInvalidError("name and email are required")
	}
	now := s.now()
	aff := &models.Affiliate{
		ID:           s.idGen("aff"),
		Name:         name,
		Email:        email,
		ReferralCode: s.referralCode(name, now.Year()),
		JoinDate:     now,
		IsActive:     true,
	}
	s.store.AddAffiliate(aff)
	return aff, nil
}

// ProcessReferral credits one successful referral to the affiliate owning
// the code. An unknown code and an inactive affiliate fail on distinct paths
// so callers can tell them apart.
func (s *AffiliateService) ProcessReferral(code string) (*models.Affiliate, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, NewInvalidError("referral code is required")
	}
	aff := s.store.GetAffiliateByCode(code)
	if aff == nil {
		return nil, NewNotFoundError("referral code not found")
	}
	if !aff.IsActive {
		return nil, NewInvalidError("affiliate is inactive")
	}
	aff.ReferralCount++
	aff.TruthTokensEarned += ReferralAward
	s.store.UpdateAffiliate(aff)
	return aff, nil
}

// ReferralLink renders the relative survey link that credits the given code.
func (s *AffiliateService) ReferralLink(id string) (string, error) {
	aff := s.store.GetAffiliate(id)
	if aff == nil {
		return "", NewNotFoundError("affiliate not found")
	}
	return "/employee?ref=" + aff.ReferralCode, nil
}

func (s *AffiliateService) GetAffiliate(id string) (*models.Affiliate, error) {
	aff := s.store.GetAffiliate(id)
	if aff == nil {
		return nil, NewNotFoundError("affiliate not found")
	}
	return aff, nil
}

// ListAffiliates returns the full affiliate roster.
func (s *AffiliateService) ListAffiliates() []*models.Affiliate {
	return s.store.ListAffiliates()
}
