package balance

import (
	"fmt"
	"sort"

	"github.com/courtside/matchday/internal/domain/model"
)

// Default composite-strength weights. Overall rating always counts with
// weight 1; the positional sub-skills are discounted below it.
const (
	defaultOffenseWeight      = 0.8
	defaultDefenseWeight      = 0.8
	defaultBallHandlingWeight = 0.6
)

// Allocator partitions an attending roster into two teams and a bench.
// It is a pure, synchronous computation: no I/O, no locks, no state
// shared between calls, so a single Allocator may be used concurrently.
type Allocator struct {
	offenseWeight      float64
	defenseWeight      float64
	ballHandlingWeight float64
}

// New creates an Allocator with configuration options.
func New(opts ...Option) *Allocator {
	a := &Allocator{
		offenseWeight:      defaultOffenseWeight,
		defenseWeight:      defaultDefenseWeight,
		ballHandlingWeight: defaultBallHandlingWeight,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Allocate splits players into two teams sized by PlanSizes plus a bench.
//
// The roster is ranked by overall rating (stable, so equal ratings keep
// their input order), the lowest-ranked Bench players sit out, the top
// two seed one team each, and every following player joins whichever
// team is currently weaker by size-normalized composite strength. A
// repair pass then enforces the planned sizes exactly.
//
// Fewer than MinPlayers yields ErrInsufficientPlayers and no partition.
func (a *Allocator) Allocate(players []model.Player) (model.TeamAssignment, error) {
	n := len(players)
	if n < MinPlayers {
		return model.TeamAssignment{}, fmt.Errorf("%w: have %d, need at least %d", ErrInsufficientPlayers, n, MinPlayers)
	}

	plan := PlanSizes(n)

	ranked := make([]model.Player, n)
	copy(ranked, players)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Overall > ranked[j].Overall
	})

	// Bench selection happens before assignment: the bottom Bench
	// players by overall rating are taken off the active pool.
	active := ranked
	var bench []model.Player
	if plan.Bench > 0 {
		cut := n - plan.Bench
		bench = append([]model.Player(nil), ranked[cut:]...)
		active = ranked[:cut]
	}

	teamA := make([]model.Player, 0, plan.SizeA)
	teamB := make([]model.Player, 0, plan.SizeB)

	// Seed: best player to A, second best to B.
	teamA = append(teamA, active[0])
	teamB = append(teamB, active[1])

	for _, p := range active[2:] {
		switch {
		case len(teamA) >= plan.SizeA:
			// Hard cap; both caps cannot be hit at once because the
			// active pool is exactly SizeA+SizeB players.
			teamB = append(teamB, p)
		case len(teamB) >= plan.SizeB:
			teamA = append(teamA, p)
		case len(teamA)-len(teamB) >= 2:
			// A size gap of 2+ overrides strength comparison.
			teamB = append(teamB, p)
		case len(teamB)-len(teamA) >= 2:
			teamA = append(teamA, p)
		default:
			if a.normalizedStrength(teamB) < a.normalizedStrength(teamA) {
				teamB = append(teamB, p)
			} else {
				// Ties favor team A.
				teamA = append(teamA, p)
			}
		}
	}

	teamA, teamB = repair(teamA, teamB, plan)

	return model.TeamAssignment{
		TeamA: teamA,
		TeamB: teamB,
		Bench: bench,
	}, nil
}

// strength is the composite team strength: summed overall rating plus
// weighted positional sub-skills.
func (a *Allocator) strength(team []model.Player) float64 {
	var s float64
	for _, p := range team {
		s += p.Overall +
			a.offenseWeight*p.Offense +
			a.defenseWeight*p.Defense +
			a.ballHandlingWeight*p.BallHandling
	}
	return s
}

// normalizedStrength divides composite strength by team size so that
// teams of unequal size compare fairly during assignment.
func (a *Allocator) normalizedStrength(team []model.Player) float64 {
	size := len(team)
	if size < 1 {
		size = 1
	}
	return a.strength(team) / float64(size)
}

// repair moves players between teams until both match the plan exactly.
// Undersize is corrected before oversize, and the boundary member is
// re-picked after every move. Each move strictly shrinks a size
// imbalance while total size is fixed, so the loops are bounded.
func repair(teamA, teamB []model.Player, plan SizePlan) (repairedA, repairedB []model.Player) {
	for len(teamA) < plan.SizeA && len(teamB) > plan.SizeB {
		teamA, teamB = moveMember(teamA, teamB, weakestIndex(teamB))
	}
	for len(teamB) < plan.SizeB && len(teamA) > plan.SizeA {
		teamB, teamA = moveMember(teamB, teamA, weakestIndex(teamA))
	}
	for len(teamA) > plan.SizeA {
		teamB, teamA = moveMember(teamB, teamA, strongestIndex(teamA))
	}
	for len(teamB) > plan.SizeB {
		teamA, teamB = moveMember(teamA, teamB, weakestIndex(teamB))
	}
	return teamA, teamB
}

// moveMember transfers from[i] onto dst as a single remove/add
// transaction and returns both updated teams.
func moveMember(dst, from []model.Player, i int) (updatedDst, updatedFrom []model.Player) {
	dst = append(dst, from[i])
	from = append(from[:i], from[i+1:]...)
	return dst, from
}

// weakestIndex returns the index of the lowest-rated member; the
// earliest such member wins ties to keep the result deterministic.
func weakestIndex(team []model.Player) int {
	idx := 0
	for i, p := range team {
		if p.Overall < team[idx].Overall {
			idx = i
		}
	}
	return idx
}

// strongestIndex returns the index of the highest-rated member,
// earliest wins ties.
func strongestIndex(team []model.Player) int {
	idx := 0
	for i, p := range team {
		if p.Overall > team[idx].Overall {
			idx = i
		}
	}
	return idx
}
