package domain

// Rank is the S/A/B/C/D quality classification of a composition.
type Rank string

const (
	RankS Rank = "S"
	RankA Rank = "A"
	RankB Rank = "B"
	RankC Rank = "C"
	RankD Rank = "D"
)

// AllRanks contains all valid ranks, best first
var AllRanks = []Rank{RankS, RankA, RankB, RankC, RankD}

// DefaultRank is assigned to new compositions
const DefaultRank = RankB

// IsValid checks if a rank is valid
func (r Rank) IsValid() bool {
	switch r {
	case RankS, RankA, RankB, RankC, RankD:
		return true
	}
	return false
}

// Order returns the display position of the rank (S=0 ... D=4), or len(AllRanks) if invalid
func (r Rank) Order() int {
	for i, rank := range AllRanks {
		if rank == r {
			return i
		}
	}
	return len(AllRanks)
}

func (r Rank) String() string {
	return string(r)
}

// Difficulty describes how hard a composition is to execute
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// AllDifficulties contains all valid difficulties in ascending order
var AllDifficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// IsValid checks if a difficulty is valid. The empty difficulty is not valid; callers
// treat it as absent.
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}
