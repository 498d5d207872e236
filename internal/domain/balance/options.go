package balance

// Option applies a configuration option to the Allocator.
type Option func(*Allocator)

// WithSkillWeights overrides the composite-strength weights for the
// positional sub-skills. Non-positive values keep the defaults.
func WithSkillWeights(offense, defense, ballHandling float64) Option {
	return func(a *Allocator) {
		if offense > 0 {
			a.offenseWeight = offense
		}
		if defense > 0 {
			a.defenseWeight = defense
		}
		if ballHandling > 0 {
			a.ballHandlingWeight = ballHandling
		}
	}
}
