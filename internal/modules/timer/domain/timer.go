package domain

import "time"

type Status string

const (
	StatusIdle    Status = "IDLE"
	StatusRunning Status = "RUNNING"
	StatusPaused  Status = "PAUSED"
)

// Timer is the persisted live-timer state. Invalid transitions never error:
// they return the receiver unchanged with changed=false, so double key
// presses and stale UI actions are harmless.
type Timer struct {
	Status             Status    `json:"status"`
	SessionID          int64     `json:"session_id"`
	StartTime          time.Time `json:"start_time"`
	PausedAt           time.Time `json:"paused_at,omitempty"`
	TotalPausedSeconds int64     `json:"total_paused_seconds"`
}

func (t Timer) Active() bool {
	return t.Status == StatusRunning || t.Status == StatusPaused
}

// Start begins a fresh timer for the given session row.
func Start(sessionID int64, now time.Time) Timer {
	return Timer{Status: StatusRunning, SessionID: sessionID, StartTime: now}
}

func (t Timer) Pause(now time.Time) (Timer, bool) {
	if t.Status != StatusRunning {
		return t, false
	}
	t.Status = StatusPaused
	t.PausedAt = now
	return t, true
}

func (t Timer) Resume(now time.Time) (Timer, bool) {
	if t.Status != StatusPaused {
		return t, false
	}
	t.TotalPausedSeconds += int64(now.Sub(t.PausedAt).Seconds())
	t.Status = StatusRunning
	t.PausedAt = time.Time{}
	return t, true
}

// SettlePause folds a still-open pause into the total so the timer can be
// stopped while paused.
func (t Timer) SettlePause(now time.Time) Timer {
	if t.Status == StatusPaused && !t.PausedAt.IsZero() {
		t.TotalPausedSeconds += int64(now.Sub(t.PausedAt).Seconds())
		t.PausedAt = time.Time{}
	}
	return t
}

// PausedMinutes is the whole-minute view of the pause total, for the
// session row which stores pause time at minute precision.
func (t Timer) PausedMinutes() int64 {
	return t.TotalPausedSeconds / 60
}

// ElapsedSeconds is the worked time excluding pauses, for the ticking
// display. Negative values (edited start in the future) clamp to zero.
func (t Timer) ElapsedSeconds(now time.Time) int64 {
	if !t.Active() {
		return 0
	}
	seconds := int64(now.Sub(t.StartTime).Seconds()) - t.TotalPausedSeconds
	if t.Status == StatusPaused && !t.PausedAt.IsZero() {
		seconds -= int64(now.Sub(t.PausedAt).Seconds())
	}
	if seconds < 0 {
		return 0
	}
	return seconds
}
