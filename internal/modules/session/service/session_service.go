package service

import (
	"context"
	"time"

	scoringdomain "grind/internal/modules/scoring/domain"
	"grind/internal/modules/session/domain"
	sessionout "grind/internal/modules/session/port/out"
	"grind/internal/platform/clock"
	apperrors "grind/internal/platform/errors"
)

type SessionService struct {
	clock clock.Clock
	store sessionout.SessionStore
}

func NewSessionService(clock clock.Clock, store sessionout.SessionStore) *SessionService {
	return &SessionService{clock: clock, store: store}
}

// Preview is the outcome of re-deriving a session's score against adjusted
// times, before anything is persisted.
type Preview struct {
	Result          scoringdomain.Result
	DurationMinutes int64
	FirstOfDay      bool
}

// PreviewEdit validates adjusted times for a session and recomputes its
// category and points. Pause time already recorded is preserved and
// subtracted unchanged. A zero newEnd is only legal for a still-running
// session and means "as of now".
func (s *SessionService) PreviewEdit(ctx context.Context, sess domain.Session, newStart, newEnd time.Time, streakDays int) (Preview, error) {
	now := s.clock.Now()

	if !sess.EditableOn(now) || !domain.SameDay(newStart, now) {
		return Preview{}, apperrors.ErrNotEditableToday
	}
	if sess.Completed() && newEnd.IsZero() {
		newEnd = sess.EndTime
	}
	if !newEnd.IsZero() && !newEnd.After(newStart) {
		return Preview{}, apperrors.ErrEndBeforeStart
	}

	effectiveEnd := newEnd
	if effectiveEnd.IsZero() {
		effectiveEnd = now
	}
	duration := int64(effectiveEnd.Sub(newStart).Minutes()) - sess.TotalPausedMinutes
	if duration < domain.MinDurationMinutes {
		return Preview{}, apperrors.ErrDurationTooShort
	}

	firstOfDay, err := s.isEarliestCompleted(ctx, sess.ID, newStart)
	if err != nil {
		return Preview{}, err
	}
	category := scoringdomain.Classify(newStart)
	firstOfDay = firstOfDay && category.Qualifying()

	return Preview{
		Result:          scoringdomain.Calculate(newStart, duration, streakDays, firstOfDay),
		DurationMinutes: duration,
		FirstOfDay:      firstOfDay,
	}, nil
}

// isEarliestCompleted reports whether no other completed session on the same
// day starts at or before the adjusted start time.
func (s *SessionService) isEarliestCompleted(ctx context.Context, sessionID int64, start time.Time) (bool, error) {
	others, err := s.store.ListCompletedOnDate(ctx, start)
	if err != nil {
		return false, err
	}
	for _, other := range others {
		if other.ID == sessionID {
			continue
		}
		if !other.StartTime.After(start) {
			return false, nil
		}
	}
	return true, nil
}
