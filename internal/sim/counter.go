package sim

// Counter is a named resource that fills toward a threshold: ultimate energy,
// break toughness, Newbud energy.
type Counter struct {
	Name      string
	Value     float64
	Threshold float64
}

func (c *Counter) Add(v float64) {
	c.Value += v
}

// Ready reports whether the threshold has been reached.
func (c *Counter) Ready() bool {
	return c.Value >= c.Threshold
}

// Fire consumes the counter when it is ready, resetting it to zero.
func (c *Counter) Fire() bool {
	if !c.Ready() {
		return false
	}
	c.Value = 0
	return true
}

// FireCarry consumes one threshold's worth and keeps the overflow.
func (c *Counter) FireCarry() bool {
	if !c.Ready() {
		return false
	}
	c.Value -= c.Threshold
	return true
}

// SkillPoints is the shared skill-point budget: a skill spends one point, a
// basic attack recovers one.
type SkillPoints struct {
	Points int
}

// Act spends a point and returns true when one is available, otherwise it
// recovers a point and returns false (a basic attack was used).
func (s *SkillPoints) Act() bool {
	if s.Points > 0 {
		s.Points--
		return true
	}
	s.Points++
	return false
}

// SkillCycle is the skill/basic alternation driven by SkillPoints.
type SkillCycle struct {
	Start int
	// BonusEvery grants one extra point on turns 0, n, 2n, ... when positive.
	BonusEvery int
	SkillHit   float64
	BasicHit   float64
	Turns      int
}

// Run returns the damage accumulated over the horizon.
func (c SkillCycle) Run() float64 {
	turns := c.Turns
	if turns <= 0 {
		turns = DefaultTurns
	}
	sp := SkillPoints{Points: c.Start}
	return Run(turns, func(turn int) float64 {
		if c.BonusEvery > 0 && turn%c.BonusEvery == 0 {
			sp.Points++
		}
		if sp.Act() {
			return c.SkillHit
		}
		return c.BasicHit
	})
}

// Stacks tracks independent timed buff stacks.
type Stacks struct {
	Max      int
	Duration int
	left     []int
}

// Active is the number of stacks currently applied.
func (s *Stacks) Active() int {
	return min(len(s.left), s.Max)
}

// Gain adds a fresh stack when below the cap.
func (s *Stacks) Gain() {
	if len(s.left) < s.Max {
		s.left = append(s.left, s.Duration)
	}
}

// Tick ages every stack by one turn and drops the expired ones.
func (s *Stacks) Tick() {
	kept := s.left[:0]
	for _, t := range s.left {
		if t-1 > 0 {
			kept = append(kept, t-1)
		}
	}
	s.left = kept
}
