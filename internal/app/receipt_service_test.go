package app

import (
	"testing"
	"time"

	"github.com/form3tech-oss/jwt-go"

	"partition/internal/domain"
)

func finishedGame() domain.State {
	return domain.State{
		Rules:    domain.StandardRules(),
		Round:    3,
		Phase:    domain.PhaseGameOver,
		Winner:   domain.WinnerPlayer,
		Outright: true,
		Marker:   domain.Marker{Position: 3},
	}
}

func TestReceiptService_SignAndVerify(t *testing.T) {
	svc := NewReceiptService("test-secret", "")
	svc.now = func() time.Time { return time.Unix(1700000000, 0) }

	token, err := svc.Sign(NewReceipt("match-1", "user-1", finishedGame()))
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}

	got, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify error: %v", err)
	}
	if got.MatchID != "match-1" || got.UserID != "user-1" {
		t.Fatalf("ids = %s/%s", got.MatchID, got.UserID)
	}
	if got.Winner != domain.WinnerPlayer || !got.Outright || got.Round != 3 || got.Marker != 3 {
		t.Fatalf("receipt = %+v", got)
	}
	if got.Ruleset != domain.RulesetStandard {
		t.Fatalf("ruleset = %s", got.Ruleset)
	}
	if got.ID == "" {
		t.Fatal("receipt id not assigned")
	}
	if !got.IssuedAt.Equal(time.Unix(1700000000, 0)) {
		t.Fatalf("issued at = %v", got.IssuedAt)
	}
}

func TestReceiptService_WrongSecretFails(t *testing.T) {
	token, err := NewReceiptService("secret-a", "").Sign(NewReceipt("m", "u", finishedGame()))
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}
	if _, err := NewReceiptService("secret-b", "").Verify(token); err == nil {
		t.Fatal("expected verification failure with a different secret")
	}
}

func TestReceiptService_WrongIssuerFails(t *testing.T) {
	token, _ := NewReceiptService("secret", "other").Sign(NewReceipt("m", "u", finishedGame()))
	if _, err := NewReceiptService("secret", "").Verify(token); err == nil {
		t.Fatal("expected verification failure with a different issuer")
	}
}

func TestReceiptService_RejectsOtherAlgorithms(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"iss": defaultReceiptIssuer, "sub": "u"})
	unsigned, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("build unsigned token: %v", err)
	}
	if _, err := NewReceiptService("secret", "").Verify(unsigned); err == nil {
		t.Fatal("expected unsigned token to be rejected")
	}
}

func TestReceiptService_Preconditions(t *testing.T) {
	if _, err := NewReceiptService("", "").Sign(NewReceipt("m", "u", finishedGame())); err != ErrNotConfigured {
		t.Fatalf("sign without secret error = %v", err)
	}
	svc := NewReceiptService("secret", "")
	if _, err := svc.Sign(NewReceipt("m", "", finishedGame())); err == nil {
		t.Fatal("expected error for missing user")
	}
	unfinished := finishedGame()
	unfinished.Winner = domain.WinnerNone
	if _, err := svc.Sign(NewReceipt("m", "u", unfinished)); err == nil {
		t.Fatal("expected error for unfinished game")
	}
	var nilSvc *ReceiptService
	if nilSvc.Enabled() {
		t.Fatal("nil service reported enabled")
	}
}
