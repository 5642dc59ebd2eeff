package usecase

import (
	"context"
	"time"

	"grind/internal/modules/session/domain"
	"grind/internal/modules/session/dto"
	sessionin "grind/internal/modules/session/port/in"
	sessionout "grind/internal/modules/session/port/out"
	"grind/internal/modules/session/service"
	streakin "grind/internal/modules/streak/port/in"
	"grind/internal/platform/clock"
	apperrors "grind/internal/platform/errors"
)

type Interactor struct {
	svc    *service.SessionService
	store  sessionout.SessionStore
	streak streakin.Usecase
	clock  clock.Clock
}

func NewInteractor(svc *service.SessionService, store sessionout.SessionStore, streak streakin.Usecase, clock clock.Clock) sessionin.Usecase {
	return &Interactor{svc: svc, store: store, streak: streak, clock: clock}
}

func (i *Interactor) Get(ctx context.Context, id int64) (dto.SessionOutput, error) {
	sess, err := i.store.GetByID(ctx, id)
	if err != nil {
		return dto.SessionOutput{}, err
	}
	return toOutput(sess), nil
}

func (i *Interactor) ListRecent(ctx context.Context, limit int) ([]dto.SessionOutput, error) {
	sessions, err := i.store.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	return toOutputs(sessions), nil
}

func (i *Interactor) History(ctx context.Context, from, to time.Time) ([]dto.SessionOutput, error) {
	sessions, err := i.store.ListCompletedInRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return toOutputs(sessions), nil
}

func (i *Interactor) Preview(ctx context.Context, input dto.EditInput) (dto.PreviewOutput, error) {
	sess, err := i.store.GetByID(ctx, input.ID)
	if err != nil {
		return dto.PreviewOutput{}, err
	}
	preview, err := i.previewFor(ctx, sess, input)
	if err != nil {
		return dto.PreviewOutput{}, err
	}
	return dto.PreviewOutput{
		Category:        string(preview.Result.Category),
		CategoryLabel:   preview.Result.Category.Label(),
		Points:          preview.Result.Points,
		BasePoints:      preview.Result.BasePoints,
		Multiplier:      preview.Result.Multiplier,
		DurationMinutes: preview.DurationMinutes,
		FirstOfDay:      preview.FirstOfDay,
	}, nil
}

// Edit persists adjusted times after validation. For a completed session the
// duration, category and points are re-derived and saved; for a still-running
// one only the start time moves, and the stop pipeline will settle the score
// from the persisted start.
func (i *Interactor) Edit(ctx context.Context, input dto.EditInput) (dto.SessionOutput, error) {
	sess, err := i.store.GetByID(ctx, input.ID)
	if err != nil {
		return dto.SessionOutput{}, err
	}
	preview, err := i.previewFor(ctx, sess, input)
	if err != nil {
		return dto.SessionOutput{}, err
	}

	sess.StartTime = input.StartTime
	if sess.Completed() {
		if !input.EndTime.IsZero() {
			sess.EndTime = input.EndTime
		}
		sess.DurationMinutes = preview.DurationMinutes
		sess.PointsEarned = preview.Result.Points
		sess.Category = preview.Result.Category
	}
	if err := i.store.Update(ctx, sess); err != nil {
		return dto.SessionOutput{}, err
	}
	return toOutput(sess), nil
}

func (i *Interactor) Delete(ctx context.Context, id int64) error {
	sess, err := i.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !sess.EditableOn(i.clock.Now()) {
		return apperrors.ErrNotEditableToday
	}
	return i.store.Delete(ctx, id)
}

func (i *Interactor) TotalPoints(ctx context.Context) (float64, error) {
	return i.store.SumAllPoints(ctx)
}

func (i *Interactor) DayProgress(ctx context.Context, date time.Time) (dto.DayProgressOutput, error) {
	out := dto.DayProgressOutput{Date: domain.DateOf(date)}
	var err error
	if out.DayJobMinutes, err = i.store.SumMinutesOnDate(ctx, date, domain.CategoryDayJob); err != nil {
		return dto.DayProgressOutput{}, err
	}
	if out.SideWorkMinutes, err = i.store.SumMinutesOnDate(ctx, date, domain.CategorySideWork); err != nil {
		return dto.DayProgressOutput{}, err
	}
	if out.EarlyMorningMinutes, err = i.store.SumMinutesOnDate(ctx, date, domain.CategoryEarlyMorning); err != nil {
		return dto.DayProgressOutput{}, err
	}
	return out, nil
}

func (i *Interactor) previewFor(ctx context.Context, sess domain.Session, input dto.EditInput) (service.Preview, error) {
	streakDays := 0
	if i.streak != nil {
		current, err := i.streak.Current(ctx)
		if err != nil {
			return service.Preview{}, err
		}
		streakDays = current
	}
	return i.svc.PreviewEdit(ctx, sess, input.StartTime, input.EndTime, streakDays)
}

func toOutput(sess domain.Session) dto.SessionOutput {
	return dto.SessionOutput{
		ID:                 sess.ID,
		StartTime:          sess.StartTime,
		EndTime:            sess.EndTime,
		DurationMinutes:    sess.DurationMinutes,
		Points:             sess.PointsEarned,
		Category:           string(sess.Category),
		CategoryLabel:      sess.Category.Label(),
		Completed:          sess.Completed(),
		Paused:             sess.Paused,
		TotalPausedMinutes: sess.TotalPausedMinutes,
	}
}

func toOutputs(sessions []domain.Session) []dto.SessionOutput {
	outs := make([]dto.SessionOutput, len(sessions))
	for idx, sess := range sessions {
		outs[idx] = toOutput(sess)
	}
	return outs
}
