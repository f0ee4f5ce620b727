package scheduler

import (
	"math"
	"time"
)

// Candidates holds the next state for each rating.
type Candidates struct {
	Again State
	Hard  State
	Good  State
	Easy  State
}

// Next computes the candidate states for a card currently in s.
func (p *Params) Next(s State) Candidates {
	switch s.Kind {
	case KindReview:
		return p.nextReview(s)
	case KindRelearning:
		return p.nextRelearning(s)
	default:
		return p.nextLearning(s)
	}
}

// nextLearning handles new and learning cards. A new card is treated as
// sitting on the first learning step.
func (p *Params) nextLearning(s State) Candidates {
	base := s
	base.Reps++
	if s.Kind == KindNew {
		base.Step = 0
		base.Ease = p.StartingEase
	}
	steps := p.LearnSteps

	again := base
	again.Kind = KindLearning
	again.Step = 0
	again.ScheduledSecs = secs(stepDelay(steps, 0))

	hard := base
	hard.Kind = KindLearning
	hard.ScheduledSecs = secs(hardDelay(steps, base.Step))

	var good State
	if base.Step+1 < len(steps) {
		good = base
		good.Kind = KindLearning
		good.Step = base.Step + 1
		good.ScheduledSecs = secs(steps[base.Step+1])
	} else {
		good = p.graduate(base, p.GraduatingDays)
	}

	easy := p.graduate(base, p.EasyDays)

	return Candidates{Again: again, Hard: hard, Good: good, Easy: easy}
}

func (p *Params) nextReview(s State) Candidates {
	base := s
	base.Reps++
	ivl := max(s.IntervalDays, 1)
	ease := float64(s.Ease) / 1000

	hardIvl := p.clampInterval(max(ivl+1, round(float64(ivl)*p.HardMultiplier)))
	goodIvl := p.clampInterval(max(hardIvl+1, round(float64(ivl)*ease)))
	easyIvl := p.clampInterval(max(goodIvl+1, round(float64(ivl)*ease*p.EasyBonus)))

	again := base
	again.Lapses++
	again.Ease = p.clampEase(s.Ease - p.AgainEasePenalty)
	again.IntervalDays = p.clampInterval(max(1, round(float64(ivl)*p.LapseMultiplier)))
	if len(p.RelearnSteps) > 0 {
		again.Kind = KindRelearning
		again.Step = 0
		again.ScheduledSecs = secs(p.RelearnSteps[0])
	}

	hard := base
	hard.IntervalDays = hardIvl
	hard.Ease = p.clampEase(s.Ease - p.HardEasePenalty)

	good := base
	good.IntervalDays = goodIvl

	easy := base
	easy.IntervalDays = easyIvl
	easy.Ease = p.clampEase(s.Ease + p.EasyEaseIncrement)

	return Candidates{Again: again, Hard: hard, Good: good, Easy: easy}
}

// nextRelearning keeps the post-lapse interval in IntervalDays while the
// card walks the relearning steps.
func (p *Params) nextRelearning(s State) Candidates {
	base := s
	base.Reps++
	steps := p.RelearnSteps

	again := base
	again.Step = 0
	again.ScheduledSecs = secs(stepDelay(steps, 0))

	hard := base
	hard.ScheduledSecs = secs(hardDelay(steps, base.Step))

	var good State
	if base.Step+1 < len(steps) {
		good = base
		good.Step = base.Step + 1
		good.ScheduledSecs = secs(steps[base.Step+1])
	} else {
		good = p.graduate(base, max(base.IntervalDays, 1))
	}

	easy := p.graduate(base, max(base.IntervalDays, 1)+1)

	return Candidates{Again: again, Hard: hard, Good: good, Easy: easy}
}

func (p *Params) graduate(s State, days int) State {
	s.Kind = KindReview
	s.Step = 0
	s.ScheduledSecs = 0
	s.IntervalDays = p.clampInterval(days)
	if s.Ease == 0 {
		s.Ease = p.StartingEase
	}
	return s
}

func (p *Params) clampEase(e int) int {
	return max(e, p.MinEase)
}

func (p *Params) clampInterval(days int) int {
	return min(max(days, 1), p.MaxIntervalDays)
}

// hardDelay repeats the current step; on the first step it is the average
// of the first two steps, or 1.5x the only step.
func hardDelay(steps []time.Duration, i int) time.Duration {
	if i == 0 {
		switch len(steps) {
		case 0:
			return time.Minute
		case 1:
			return steps[0] * 3 / 2
		default:
			return (steps[0] + steps[1]) / 2
		}
	}
	return stepDelay(steps, i)
}

func stepDelay(steps []time.Duration, i int) time.Duration {
	if len(steps) == 0 {
		return time.Minute
	}
	if i >= len(steps) {
		return steps[len(steps)-1]
	}
	return steps[i]
}

func secs(d time.Duration) int64 {
	return int64(d / time.Second)
}

func round(f float64) int {
	return int(math.Round(f))
}
