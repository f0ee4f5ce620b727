package scheduler

import "time"

// Params holds the scheduling constants. Ease factors are in permille
// (2500 = 2.5x).
type Params struct {
	LearnSteps        []time.Duration
	RelearnSteps      []time.Duration
	GraduatingDays    int
	EasyDays          int
	StartingEase      int
	MinEase           int
	HardMultiplier    float64
	EasyBonus         float64
	LapseMultiplier   float64
	MaxIntervalDays   int
	AgainEasePenalty  int
	HardEasePenalty   int
	EasyEaseIncrement int
}

// DefaultParams returns the stock schedule: two learning steps, one
// relearning step and SM-2 style review intervals.
func DefaultParams() *Params {
	return &Params{
		LearnSteps:        []time.Duration{1 * time.Minute, 10 * time.Minute},
		RelearnSteps:      []time.Duration{10 * time.Minute},
		GraduatingDays:    1,
		EasyDays:          4,
		StartingEase:      2500,
		MinEase:           1300,
		HardMultiplier:    1.2,
		EasyBonus:         1.3,
		LapseMultiplier:   0,
		MaxIntervalDays:   36500,
		AgainEasePenalty:  200,
		HardEasePenalty:   150,
		EasyEaseIncrement: 150,
	}
}

// Day is the length of one review interval unit.
const Day = 24 * time.Hour
