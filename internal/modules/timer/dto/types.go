package dto

import "time"

type StartOutput struct {
	Started   bool
	SessionID int64
	StartTime time.Time
	Category  string
}

type ChangeOutput struct {
	Changed bool
}

// StopOutput reports the settled session, or Discarded when the worked time
// fell short of the minimum and the row was dropped.
type StopOutput struct {
	Stopped         bool
	Discarded       bool
	SessionID       int64
	StartTime       time.Time
	EndTime         time.Time
	DurationMinutes int64
	Points          float64
	BasePoints      float64
	Multiplier      float64
	Category        string
	CategoryLabel   string
	FirstOfDay      bool
}

type StatusOutput struct {
	Status             string
	SessionID          int64
	StartTime          time.Time
	ElapsedSeconds     int64
	Paused             bool
	TotalPausedMinutes int64
	Category           string
	CategoryLabel      string
}
