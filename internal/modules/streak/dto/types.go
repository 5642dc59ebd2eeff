package dto

import "time"

type GraceOutput struct {
	Available        bool
	HoursRemaining   int64
	MinutesRemaining int64
	Urgent           bool
}

type StreakInfoOutput struct {
	CurrentStreak       int
	ConsecutiveWorkDays int
	LastWorkDate        time.Time
	Grace               GraceOutput
	AtRisk              bool
}

type GoalsOutput struct {
	DayJobHours   float64
	SideWorkHours float64
}

type GoalsInput struct {
	DayJobHours   float64
	SideWorkHours float64
}
