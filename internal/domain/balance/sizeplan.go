// Package balance splits an attending roster into two balanced teams
// plus an optional bench.
package balance

// Size policy constants.
const (
	// MinPlayers is the floor below which no partition is produced.
	MinPlayers = 2
	// MaxTeamSize caps each side for large turnouts; the excess sits out.
	MaxTeamSize = 9
)

// SizePlan holds the target team and bench sizes for a turnout.
// SizeA + SizeB + Bench always equals the total it was planned for.
type SizePlan struct {
	SizeA int `json:"size_a"`
	SizeB int `json:"size_b"`
	Bench int `json:"bench"`
}

// PlanSizes maps a total attending count to target sizes. Pure and
// table-driven; the breakpoints at 12/13, 13/14 and 17/18 are part of
// the product contract (the roster view advertises an ideal turnout of
// 10-16), so the bands below must not be collapsed or "simplified".
func PlanSizes(total int) SizePlan {
	half := total / 2
	switch {
	case total <= 12:
		// Up to a full 6v6 the larger side, if any, is team A.
		return SizePlan{SizeA: total - half, SizeB: half}
	case total == 13:
		// 13 is the one turnout where a 6v6 with a single sit-out
		// beats a lopsided 7v6.
		return SizePlan{SizeA: 6, SizeB: 6, Bench: 1}
	case total == 14:
		return SizePlan{SizeA: 7, SizeB: 7}
	case total <= 17:
		// Odd counts here give the extra player to team B.
		return SizePlan{SizeA: half, SizeB: total - half}
	default:
		// Cap both sides at MaxTeamSize; everyone else benches.
		sizeA := min(MaxTeamSize, half)
		sizeB := min(MaxTeamSize, total-half)
		return SizePlan{SizeA: sizeA, SizeB: sizeB, Bench: total - sizeA - sizeB}
	}
}
