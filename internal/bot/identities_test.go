package bot

import (
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"partition/internal/domain"
)

func TestParseIdentities(t *testing.T) {
	data := []byte(`[
		{"user_id": "opp-1", "display_name": "Senator Vale", "difficulty": "standard"},
		{"user_id": "opp-2", "display_name": "Whip Marlow", "difficulty": "easy", "avatar_index": 3}
	]`)

	parsed, err := ParseIdentities(data)
	if err != nil {
		t.Fatalf("ParseIdentities error: %v", err)
	}
	if len(parsed) != 2 || parsed[1].AvatarIndex != 3 {
		t.Fatalf("parsed = %+v", parsed)
	}

	if _, err := ParseIdentities([]byte(`[{"user_id": "x", "difficulty": "impossible"}]`)); err == nil {
		t.Fatal("expected error for unknown difficulty")
	}
	if _, err := ParseIdentities([]byte(`[{"display_name": "nobody"}]`)); err == nil {
		t.Fatal("expected error for missing user_id")
	}
	if _, err := ParseIdentities([]byte(`{`)); err == nil {
		t.Fatal("expected error for malformed json")
	}
}

func TestGetIdentity_FallbackWithoutPool(t *testing.T) {
	identity := GetIdentity(2)
	if identity.UserID != "opponent-2" || identity.Difficulty != "" {
		t.Fatalf("fallback identity = %+v", identity)
	}
	if IsOpponent("opponent-2") {
		t.Fatal("fallback identity should not be registered")
	}
}

func TestPoolIndex(t *testing.T) {
	tests := []struct {
		index, n, want int
	}{
		{index: 0, n: 3, want: 0},
		{index: 4, n: 3, want: 1},
		{index: -1, n: 3, want: 2},
		{index: -3, n: 3, want: 0},
		{index: math.MaxInt, n: 2, want: 1},
		{index: math.MinInt, n: 2, want: 0},
		{index: math.MinInt, n: 3, want: 1},
	}
	for _, tt := range tests {
		if got := poolIndex(tt.index, tt.n); got != tt.want {
			t.Fatalf("poolIndex(%d, %d) = %d, want %d", tt.index, tt.n, got, tt.want)
		}
	}
}

func TestGetIdentity_WrapsAnyIndex(t *testing.T) {
	pool, err := ParseIdentities([]byte(`[
		{"user_id": "opp-1", "display_name": "Senator Vale"},
		{"user_id": "opp-2", "display_name": "Whip Marlow"},
		{"user_id": "opp-3", "display_name": "Clerk Dunmore"}
	]`))
	if err != nil {
		t.Fatalf("ParseIdentities error: %v", err)
	}
	saved := identities
	identities = pool
	t.Cleanup(func() { identities = saved })

	for _, index := range []int{0, 5, -1, math.MaxInt, math.MinInt} {
		identity := GetIdentity(index)
		if identity.UserID == "" {
			t.Fatalf("GetIdentity(%d) returned an empty identity", index)
		}
	}
	if got := GetIdentity(-1).UserID; got != "opp-3" {
		t.Fatalf("GetIdentity(-1) = %s, want opp-3", got)
	}
}

func TestNewAgent_PlaysWithIdentityBrain(t *testing.T) {
	agent, err := NewAgent(OpponentIdentity{UserID: "opp", DisplayName: "Opp", Difficulty: "standard"}, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewAgent error: %v", err)
	}
	s := computerTurn(domain.StandardRules(), card("a", domain.LaneAssembly, 2, 1))
	if plays := agent.ChoosePlays(s, domain.SideComputer); len(plays) != 1 {
		t.Fatalf("plays = %+v, want one", plays)
	}

	if _, err := NewAgent(OpponentIdentity{UserID: "opp", Difficulty: "expert"}, nil); err == nil {
		t.Fatal("expected error for unknown difficulty")
	}
}

func TestParseIdentities_ShippedPool(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("..", "..", "data", "opponents.json"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	parsed, err := ParseIdentities(data)
	if err != nil {
		t.Fatalf("shipped pool: %v", err)
	}
	seen := make(map[string]bool)
	for _, identity := range parsed {
		if seen[identity.UserID] {
			t.Fatalf("duplicate user_id %s", identity.UserID)
		}
		seen[identity.UserID] = true
	}
}
