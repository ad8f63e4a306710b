package onboarding

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"partition/internal/ports"
)

// Result captures non-fatal onboarding outcomes.
type Result struct {
	DisplayName string
	// ProfileUpdateErr is set when the profile update failed but onboarding continued.
	ProfileUpdateErr    error
	WelcomeBonusGranted bool
}

// Service handles post-auth onboarding for new users.
type Service struct {
	accounts ports.AccountPort
	bonuses  ports.WelcomeBonusPort
	amount   int64
	rng      *rand.Rand
}

// NewService constructs an onboarding service with required ports.
// amount <= 0 disables the welcome grant; rng may be nil to use a time-seeded default.
func NewService(accounts ports.AccountPort, bonuses ports.WelcomeBonusPort, amount int64, rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{
		accounts: accounts,
		bonuses:  bonuses,
		amount:   amount,
		rng:      rng,
	}
}

// OnboardNewUser names a newly created account and grants the welcome coins once.
// A failed profile update is reported in Result; a failed grant is an error.
func (s *Service) OnboardNewUser(ctx context.Context, userID string) (Result, error) {
	if s.accounts == nil || s.bonuses == nil {
		return Result{}, fmt.Errorf("onboarding service not configured")
	}

	result := Result{DisplayName: s.generateDelegateName()}
	if err := s.accounts.UpdateProfile(ctx, userID, "", result.DisplayName); err != nil {
		result.ProfileUpdateErr = err
	}

	if s.amount <= 0 {
		return result, nil
	}

	granted, err := s.bonuses.GrantWelcomeBonusOnce(ctx, userID, s.amount, map[string]interface{}{
		"reason": "welcome_bonus",
	})
	if err != nil {
		return result, fmt.Errorf("failed to grant welcome bonus: %w", err)
	}
	result.WelcomeBonusGranted = granted
	return result, nil
}

func (s *Service) generateDelegateName() string {
	titles := []string{"Senator", "Delegate", "Whip", "Speaker", "Envoy", "Consul", "Tribune", "Chancellor"}
	names := []string{"Vale", "Marlow", "Ashby", "Quill", "Harrow", "Fenn", "Sterling", "Coyle", "Bright", "Rook"}

	title := titles[s.rng.Intn(len(titles))]
	name := names[s.rng.Intn(len(names))]
	num := s.rng.Intn(900) + 100

	return fmt.Sprintf("%s%s%d", title, name, num)
}
