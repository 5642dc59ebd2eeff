package usecase

import (
	"context"
	"errors"
	"time"

	scoringdomain "grind/internal/modules/scoring/domain"
	sessiondomain "grind/internal/modules/session/domain"
	sessionout "grind/internal/modules/session/port/out"
	streakdomain "grind/internal/modules/streak/domain"
	streakin "grind/internal/modules/streak/port/in"
	"grind/internal/modules/timer/domain"
	"grind/internal/modules/timer/dto"
	timerin "grind/internal/modules/timer/port/in"
	timerout "grind/internal/modules/timer/port/out"
	"grind/internal/platform/clock"
	apperrors "grind/internal/platform/errors"
	"grind/internal/platform/tx"
)

type Interactor struct {
	timers   timerout.ActiveTimerStore
	sessions sessionout.SessionStore
	streak   streakin.Usecase
	tx       tx.Manager
	clock    clock.Clock
}

func NewInteractor(timers timerout.ActiveTimerStore, sessions sessionout.SessionStore, streak streakin.Usecase, tx tx.Manager, clock clock.Clock) timerin.Usecase {
	return &Interactor{timers: timers, sessions: sessions, streak: streak, tx: tx, clock: clock}
}

func (i *Interactor) Start(ctx context.Context) (dto.StartOutput, error) {
	if _, err := i.timers.Load(ctx); err == nil {
		return dto.StartOutput{}, nil
	} else if !errors.Is(err, apperrors.ErrNoActiveTimer) {
		return dto.StartOutput{}, err
	}

	now := i.clock.Now()
	// The category stored at start is provisional display state; stop
	// re-derives it from the persisted (possibly edited) start time.
	category := scoringdomain.Classify(now)
	id, err := i.sessions.Insert(ctx, sessiondomain.Session{StartTime: now, Category: category})
	if err != nil {
		return dto.StartOutput{}, err
	}
	if err := i.timers.Save(ctx, domain.Start(id, now)); err != nil {
		return dto.StartOutput{}, err
	}
	return dto.StartOutput{
		Started:   true,
		SessionID: id,
		StartTime: now,
		Category:  string(category),
	}, nil
}

func (i *Interactor) Pause(ctx context.Context) (dto.ChangeOutput, error) {
	timer, err := i.timers.Load(ctx)
	if errors.Is(err, apperrors.ErrNoActiveTimer) {
		return dto.ChangeOutput{}, nil
	}
	if err != nil {
		return dto.ChangeOutput{}, err
	}
	next, changed := timer.Pause(i.clock.Now())
	if !changed {
		return dto.ChangeOutput{}, nil
	}
	if err := i.timers.Save(ctx, next); err != nil {
		return dto.ChangeOutput{}, err
	}
	if err := i.mirrorPauseState(ctx, next); err != nil {
		return dto.ChangeOutput{}, err
	}
	return dto.ChangeOutput{Changed: true}, nil
}

func (i *Interactor) Resume(ctx context.Context) (dto.ChangeOutput, error) {
	timer, err := i.timers.Load(ctx)
	if errors.Is(err, apperrors.ErrNoActiveTimer) {
		return dto.ChangeOutput{}, nil
	}
	if err != nil {
		return dto.ChangeOutput{}, err
	}
	next, changed := timer.Resume(i.clock.Now())
	if !changed {
		return dto.ChangeOutput{}, nil
	}
	if err := i.timers.Save(ctx, next); err != nil {
		return dto.ChangeOutput{}, err
	}
	if err := i.mirrorPauseState(ctx, next); err != nil {
		return dto.ChangeOutput{}, err
	}
	return dto.ChangeOutput{Changed: true}, nil
}

// mirrorPauseState keeps the session row's pause fields in step with the
// timer file so edit previews see the accumulated pause time.
func (i *Interactor) mirrorPauseState(ctx context.Context, timer domain.Timer) error {
	sess, err := i.sessions.GetByID(ctx, timer.SessionID)
	if err != nil {
		return err
	}
	sess.Paused = timer.Status == domain.StatusPaused
	sess.PausedAt = timer.PausedAt
	sess.TotalPausedMinutes = timer.PausedMinutes()
	return i.sessions.Update(ctx, sess)
}

// Stop settles the live session. The persisted start time wins over the
// timer file's copy, so an edit made while running changes the outcome.
func (i *Interactor) Stop(ctx context.Context) (dto.StopOutput, error) {
	timer, err := i.timers.Load(ctx)
	if errors.Is(err, apperrors.ErrNoActiveTimer) {
		return dto.StopOutput{}, nil
	}
	if err != nil {
		return dto.StopOutput{}, err
	}

	now := i.clock.Now()
	timer = timer.SettlePause(now)

	sess, err := i.sessions.GetByID(ctx, timer.SessionID)
	if errors.Is(err, apperrors.ErrNotFound) {
		// Row deleted out from under the timer; drop the stale file.
		return dto.StopOutput{}, i.timers.Clear(ctx)
	}
	if err != nil {
		return dto.StopOutput{}, err
	}

	// Net worked time at second precision, only then truncated to minutes,
	// so several sub-minute pauses cannot vanish from the duration.
	workedSeconds := int64(now.Sub(sess.StartTime).Seconds()) - timer.TotalPausedSeconds
	if workedSeconds < 0 {
		workedSeconds = 0
	}
	duration := workedSeconds / 60
	if duration < sessiondomain.MinDurationMinutes {
		if err := i.sessions.Delete(ctx, sess.ID); err != nil {
			return dto.StopOutput{}, err
		}
		if err := i.timers.Clear(ctx); err != nil {
			return dto.StopOutput{}, err
		}
		return dto.StopOutput{Stopped: true, Discarded: true, SessionID: sess.ID}, nil
	}

	var out dto.StopOutput
	err = i.tx.Within(ctx, func(ctx context.Context) error {
		firstOfDay, err := i.isFirstOfDay(ctx, sess.StartTime)
		if err != nil {
			return err
		}
		streakDays, err := i.streak.Current(ctx)
		if err != nil {
			return err
		}
		result := scoringdomain.Calculate(sess.StartTime, duration, streakDays, firstOfDay)

		sess.EndTime = now
		sess.DurationMinutes = duration
		sess.PointsEarned = result.Points
		sess.Category = result.Category
		sess.Paused = false
		sess.PausedAt = time.Time{}
		sess.TotalPausedMinutes = timer.PausedMinutes()
		if err := i.sessions.Update(ctx, sess); err != nil {
			return err
		}

		if result.Category.Qualifying() {
			minutes, err := i.sessions.SumQualifyingMinutesOnDate(ctx, sess.StartTime)
			if err != nil {
				return err
			}
			if minutes >= streakdomain.DailyThresholdMinutes {
				if err := i.streak.Record(ctx, sess.StartTime, now); err != nil {
					return err
				}
			}
		}

		out = dto.StopOutput{
			Stopped:         true,
			SessionID:       sess.ID,
			StartTime:       sess.StartTime,
			EndTime:         now,
			DurationMinutes: duration,
			Points:          result.Points,
			BasePoints:      result.BasePoints,
			Multiplier:      result.Multiplier,
			Category:        string(result.Category),
			CategoryLabel:   result.Category.Label(),
			FirstOfDay:      firstOfDay,
		}
		return nil
	})
	if err != nil {
		return dto.StopOutput{}, err
	}
	if err := i.timers.Clear(ctx); err != nil {
		return dto.StopOutput{}, err
	}
	return out, nil
}

func (i *Interactor) isFirstOfDay(ctx context.Context, start time.Time) (bool, error) {
	if !scoringdomain.Classify(start).Qualifying() {
		return false, nil
	}
	count, err := i.sessions.CountQualifyingCompletedOnDate(ctx, start)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

func (i *Interactor) Status(ctx context.Context) (dto.StatusOutput, error) {
	timer, err := i.timers.Load(ctx)
	if errors.Is(err, apperrors.ErrNoActiveTimer) {
		return dto.StatusOutput{Status: string(domain.StatusIdle)}, nil
	}
	if err != nil {
		return dto.StatusOutput{}, err
	}

	// Reflect an edited start time in the ticking display.
	if sess, err := i.sessions.GetByID(ctx, timer.SessionID); err == nil {
		timer.StartTime = sess.StartTime
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return dto.StatusOutput{}, err
	}

	category := scoringdomain.Classify(timer.StartTime)
	return dto.StatusOutput{
		Status:             string(timer.Status),
		SessionID:          timer.SessionID,
		StartTime:          timer.StartTime,
		ElapsedSeconds:     timer.ElapsedSeconds(i.clock.Now()),
		Paused:             timer.Status == domain.StatusPaused,
		TotalPausedMinutes: timer.PausedMinutes(),
		Category:           string(category),
		CategoryLabel:      category.Label(),
	}, nil
}
