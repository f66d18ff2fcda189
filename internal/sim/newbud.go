package sim

// NewbudPool is the single-pool Newbud economy: every turn a share of the
// current pool is consumed into Newbud energy, and the pool is topped up on a
// fixed cadence until the energy threshold is reached.
//
// Turn order: consume, check threshold, check ceiling, top up. The curves
// output runs it at the reference pool (character.NewbudPoolReference).
type NewbudPool struct {
	Pool       float64
	Rate       float64 // share of the current pool consumed per turn
	TopUp      float64
	TopUpEvery int // top up after turns divisible by this; <= 0 means every turn
	Threshold  float64
	Ceiling    int
}

type NewbudResult struct {
	SeekResult
	TopUps int
	Energy float64
	Pool   float64
}

func (m NewbudPool) Run() NewbudResult {
	every := m.TopUpEvery
	if every <= 0 {
		every = 1
	}
	pool := m.Pool
	energy := Counter{Name: "newbud", Threshold: m.Threshold}
	topUps := 0

	res := Seek(m.Ceiling,
		func(int) bool {
			consumed := pool * m.Rate
			pool -= consumed
			energy.Add(consumed)
			return energy.Ready()
		},
		func(turn int) {
			if turn%every == 0 {
				pool += m.TopUp
				topUps++
			}
		},
	)
	return NewbudResult{SeekResult: res, TopUps: topUps, Energy: energy.Value, Pool: pool}
}

// NewbudTeam is the per-member variant: the skill drains every member by the
// same share of their current HP and one heal lands on the next member in
// rotation after each skill that did not reach the threshold.
type NewbudTeam struct {
	Members   []float64
	Rate      float64
	Heal      float64
	Threshold float64
	Ceiling   int
}

func (m NewbudTeam) Run() NewbudResult {
	hp := append([]float64(nil), m.Members...)
	energy := Counter{Name: "newbud", Threshold: m.Threshold}
	next := 0
	heals := 0

	res := Seek(m.Ceiling,
		func(int) bool {
			for i := range hp {
				consumed := hp[i] * m.Rate
				hp[i] -= consumed
				energy.Add(consumed)
			}
			return energy.Ready()
		},
		func(int) {
			if len(hp) == 0 {
				return
			}
			hp[next] += m.Heal
			heals++
			next = (next + 1) % len(hp)
		},
	)

	pool := 0.0
	for _, v := range hp {
		pool += v
	}
	return NewbudResult{SeekResult: res, TopUps: heals, Energy: energy.Value, Pool: pool}
}
