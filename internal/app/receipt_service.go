package app

import (
	"fmt"
	"time"

	"github.com/form3tech-oss/jwt-go"
	"github.com/google/uuid"

	"partition/internal/domain"
)

// Receipt is the signed summary of a finished game.
type Receipt struct {
	ID       string
	MatchID  string
	UserID   string
	Ruleset  string
	Winner   domain.Winner
	Outright bool
	Round    int
	Marker   int
	IssuedAt time.Time
}

// ReceiptService signs and verifies HS256 game receipts.
type ReceiptService struct {
	secret []byte
	issuer string
	now    func() time.Time
}

const defaultReceiptIssuer = "partition"

func NewReceiptService(secret, issuer string) *ReceiptService {
	if issuer == "" {
		issuer = defaultReceiptIssuer
	}
	return &ReceiptService{
		secret: []byte(secret),
		issuer: issuer,
		now:    time.Now,
	}
}

// Enabled reports whether a signing secret is configured.
func (s *ReceiptService) Enabled() bool {
	return s != nil && len(s.secret) > 0
}

// NewReceipt builds a receipt for a finished game.
func NewReceipt(matchID, userID string, game domain.State) Receipt {
	return Receipt{
		MatchID:  matchID,
		UserID:   userID,
		Ruleset:  game.Rules.Name,
		Winner:   game.Winner,
		Outright: game.Outright,
		Round:    game.Round,
		Marker:   game.Marker.Position,
	}
}

func (s *ReceiptService) Sign(r Receipt) (string, error) {
	if s == nil {
		return "", fmt.Errorf("receipt service is nil")
	}
	if !s.Enabled() {
		return "", ErrNotConfigured
	}
	if r.UserID == "" {
		return "", fmt.Errorf("user is required")
	}
	if r.Winner == "" || r.Winner == domain.WinnerNone {
		return "", fmt.Errorf("game has no result")
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}

	claims := jwt.MapClaims{
		"iss":      s.issuer,
		"sub":      r.UserID,
		"jti":      r.ID,
		"iat":      s.now().Unix(),
		"mid":      r.MatchID,
		"ruleset":  r.Ruleset,
		"winner":   string(r.Winner),
		"outright": r.Outright,
		"round":    r.Round,
		"marker":   r.Marker,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks the signature and issuer and returns the receipt the token carries.
func (s *ReceiptService) Verify(tokenString string) (Receipt, error) {
	if !s.Enabled() {
		return Receipt{}, ErrNotConfigured
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return Receipt{}, fmt.Errorf("invalid receipt: %w", err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return Receipt{}, fmt.Errorf("invalid receipt claims")
	}
	if !claims.VerifyIssuer(s.issuer, true) {
		return Receipt{}, fmt.Errorf("unexpected receipt issuer")
	}

	r := Receipt{
		ID:       stringClaim(claims, "jti"),
		MatchID:  stringClaim(claims, "mid"),
		UserID:   stringClaim(claims, "sub"),
		Ruleset:  stringClaim(claims, "ruleset"),
		Winner:   domain.Winner(stringClaim(claims, "winner")),
		Round:    intClaim(claims, "round"),
		Marker:   intClaim(claims, "marker"),
		IssuedAt: time.Unix(int64(intClaim(claims, "iat")), 0),
	}
	r.Outright, _ = claims["outright"].(bool)
	return r, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	v, _ := claims[key].(string)
	return v
}

// intClaim reads a numeric claim; JSON numbers decode as float64.
func intClaim(claims jwt.MapClaims, key string) int {
	v, _ := claims[key].(float64)
	return int(v)
}
