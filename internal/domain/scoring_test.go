package domain

import "testing"

func laneWith(player, computer []int) Lane {
	var l Lane
	for i, v := range player {
		l.PlayerCards = append(l.PlayerCards, testCard("p"+string(rune('0'+i)), 0, v, 0))
	}
	for i, v := range computer {
		l.ComputerCards = append(l.ComputerCards, testCard("c"+string(rune('0'+i)), 0, v, 0))
	}
	return l
}

func TestCalculateTrackScores(t *testing.T) {
	tests := []struct {
		name         string
		lane         Lane
		wantPlayer   int
		wantComputer int
		wantWinner   Winner
	}{
		{name: "empty", lane: laneWith(nil, nil), wantWinner: WinnerNone},
		{name: "player ahead", lane: laneWith([]int{3, 4}, []int{5}), wantPlayer: 7, wantComputer: 5, wantWinner: WinnerPlayer},
		{name: "computer ahead", lane: laneWith([]int{1}, []int{2}), wantPlayer: 1, wantComputer: 2, wantWinner: WinnerComputer},
		{name: "tie above zero", lane: laneWith([]int{2, 2}, []int{4}), wantPlayer: 4, wantComputer: 4, wantWinner: WinnerTie},
		{name: "one side only", lane: laneWith(nil, []int{1}), wantComputer: 1, wantWinner: WinnerComputer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stale := tt.lane
			stale.PlayerScore = 99
			stale.Winner = WinnerTie
			lanes := CalculateTrackScores([LaneCount]Lane{stale, {}, {}})

			got := lanes[0]
			if got.PlayerScore != tt.wantPlayer || got.ComputerScore != tt.wantComputer {
				t.Fatalf("scores = %d-%d, want %d-%d", got.PlayerScore, got.ComputerScore, tt.wantPlayer, tt.wantComputer)
			}
			if got.PlayerScore != SumValues(got.PlayerCards) || got.ComputerScore != SumValues(got.ComputerCards) {
				t.Fatalf("scores do not match card sums: %+v", got)
			}
			if got.Winner != tt.wantWinner {
				t.Fatalf("winner = %s, want %s", got.Winner, tt.wantWinner)
			}
			if lanes[1].Winner != WinnerNone {
				t.Fatalf("empty lane winner = %s, want none", lanes[1].Winner)
			}
		})
	}
}

func TestCalculateTrackScores_DoesNotModifyInput(t *testing.T) {
	in := [LaneCount]Lane{laneWith([]int{3}, nil)}
	_ = CalculateTrackScores(in)
	if in[0].PlayerScore != 0 || in[0].Winner != "" {
		t.Fatalf("input lane was modified: %+v", in[0])
	}
}

func TestOverallWinner(t *testing.T) {
	won := func(w Winner) Lane { return Lane{Winner: w} }

	tests := []struct {
		name  string
		lanes [LaneCount]Lane
		rules Ruleset
		want  Winner
	}{
		{
			name:  "computer takes two of three",
			lanes: [LaneCount]Lane{won(WinnerComputer), won(WinnerPlayer), won(WinnerComputer)},
			rules: StandardRules(),
			want:  WinnerComputer,
		},
		{
			name:  "one each and a tie goes to the player",
			lanes: [LaneCount]Lane{won(WinnerPlayer), won(WinnerComputer), won(WinnerTie)},
			rules: StandardRules(),
			want:  WinnerPlayer,
		},
		{
			name:  "one each without the tie-break is a tie",
			lanes: [LaneCount]Lane{won(WinnerPlayer), won(WinnerComputer), won(WinnerTie)},
			rules: ClassicRules(),
			want:  WinnerTie,
		},
		{
			name:  "all lanes tied",
			lanes: [LaneCount]Lane{won(WinnerTie), won(WinnerTie), won(WinnerTie)},
			rules: StandardRules(),
			want:  WinnerTie,
		},
		{
			name:  "nothing played",
			lanes: [LaneCount]Lane{won(WinnerNone), won(WinnerNone), won(WinnerNone)},
			rules: StandardRules(),
			want:  WinnerTie,
		},
		{
			name:  "player sweeps",
			lanes: [LaneCount]Lane{won(WinnerPlayer), won(WinnerPlayer), won(WinnerPlayer)},
			rules: StandardRules(),
			want:  WinnerPlayer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OverallWinner(tt.lanes, tt.rules); got != tt.want {
				t.Fatalf("OverallWinner() = %s, want %s", got, tt.want)
			}
		})
	}
}
