package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	badgedomain "grind/internal/modules/badge/domain"
	"grind/internal/modules/streak/domain"
	"grind/internal/modules/streak/dto"
	"grind/internal/modules/streak/service"
	"grind/internal/modules/streak/usecase"
)

type fakeClock struct {
	values []time.Time
	idx    int
}

func (f *fakeClock) Now() time.Time {
	if f.idx >= len(f.values) {
		return f.values[len(f.values)-1]
	}
	v := f.values[f.idx]
	f.idx++
	return v
}

type memSettingsStore struct {
	state    domain.State
	goals    domain.Goals
	goalsSet bool
}

func (m *memSettingsStore) GetStreakState(context.Context) (domain.State, error) { return m.state, nil }
func (m *memSettingsStore) PutStreakState(_ context.Context, state domain.State) error {
	m.state = state
	return nil
}
func (m *memSettingsStore) GetGoals(context.Context) (domain.Goals, bool, error) {
	return m.goals, m.goalsSet, nil
}
func (m *memSettingsStore) PutGoals(_ context.Context, goals domain.Goals) error {
	m.goals, m.goalsSet = goals, true
	return nil
}

func at(yearDay, hour int) time.Time {
	return time.Date(2025, 1, yearDay, hour, 0, 0, 0, time.Local)
}

func TestRecordBuildsStreakAcrossDays(t *testing.T) {
	t.Parallel()
	store := &memSettingsStore{}
	clk := &fakeClock{values: []time.Time{at(12, 21)}}
	uc := usecase.NewInteractor(service.NewStreakService(clk, store))
	ctx := context.Background()

	for day := 10; day <= 12; day++ {
		if err := uc.Record(ctx, at(day, 20), at(day, 21)); err != nil {
			t.Fatalf("record day %d: %v", day, err)
		}
	}

	current, err := uc.Current(ctx)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if current != 3 {
		t.Fatalf("streak after 3 days = %d, want 3", current)
	}
	if store.state.ConsecutiveWorkDays != 3 {
		t.Fatalf("consecutive days = %d, want 3", store.state.ConsecutiveWorkDays)
	}
}

func TestRecordSameDayIsIdempotent(t *testing.T) {
	t.Parallel()
	store := &memSettingsStore{}
	clk := &fakeClock{values: []time.Time{at(10, 23)}}
	uc := usecase.NewInteractor(service.NewStreakService(clk, store))
	ctx := context.Background()

	if err := uc.Record(ctx, at(10, 9), at(10, 10)); err != nil {
		t.Fatalf("first record: %v", err)
	}
	if err := uc.Record(ctx, at(10, 20), at(10, 22)); err != nil {
		t.Fatalf("second record: %v", err)
	}

	if current, _ := uc.Current(ctx); current != 1 {
		t.Fatalf("streak = %d, want 1 after two sessions same day", current)
	}
	if !store.state.LastSessionEnd.Equal(at(10, 22)) {
		t.Fatalf("LastSessionEnd = %v, want the later session end", store.state.LastSessionEnd)
	}
}

func TestCurrentExpiresWithoutWork(t *testing.T) {
	t.Parallel()
	store := &memSettingsStore{state: domain.State{
		CurrentStreak:  6,
		LastWorkDate:   at(10, 0),
		LastSessionEnd: at(10, 20),
	}}
	clk := &fakeClock{values: []time.Time{at(13, 10)}} // 62h later
	uc := usecase.NewInteractor(service.NewStreakService(clk, store))

	current, err := uc.Current(context.Background())
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if current != 0 {
		t.Fatalf("expired streak = %d, want 0", current)
	}
	if store.state.CurrentStreak != 6 {
		t.Fatal("reads must not rewrite stored state")
	}
}

func TestInfoReportsRiskInsideUrgencyWindow(t *testing.T) {
	t.Parallel()
	store := &memSettingsStore{state: domain.State{
		CurrentStreak:  4,
		LastWorkDate:   at(10, 0),
		LastSessionEnd: at(10, 20),
	}}
	clk := &fakeClock{values: []time.Time{at(11, 22)}} // 26h later, 10h of grace left
	uc := usecase.NewInteractor(service.NewStreakService(clk, store))

	info, err := uc.Info(context.Background())
	if err != nil {
		t.Fatalf("info: %v", err)
	}
	if info.CurrentStreak != 4 {
		t.Errorf("CurrentStreak = %d, want 4", info.CurrentStreak)
	}
	if info.Grace.HoursRemaining != 10 || !info.Grace.Urgent {
		t.Errorf("grace = %+v, want 10 urgent hours", info.Grace)
	}
	if !info.AtRisk {
		t.Error("expected at-risk inside the urgency window")
	}
}

func TestMessagePrefersRiskWarning(t *testing.T) {
	t.Parallel()
	store := &memSettingsStore{state: domain.State{
		CurrentStreak:  9,
		LastWorkDate:   at(10, 0),
		LastSessionEnd: at(10, 20),
	}}
	clk := &fakeClock{values: []time.Time{at(11, 22)}}
	uc := usecase.NewInteractor(service.NewStreakService(clk, store))

	msg, err := uc.Message(context.Background(), []string{string(badgedomain.EarlyBird)})
	if err != nil {
		t.Fatalf("message: %v", err)
	}
	if !strings.Contains(msg, "Only 10h left") {
		t.Fatalf("message = %q, want the risk warning", msg)
	}
}

func TestGoalsDefaultUntilOverridden(t *testing.T) {
	t.Parallel()
	store := &memSettingsStore{}
	clk := &fakeClock{values: []time.Time{at(10, 10)}}
	uc := usecase.NewInteractor(service.NewStreakService(clk, store))
	ctx := context.Background()

	goals, err := uc.Goals(ctx)
	if err != nil {
		t.Fatalf("goals: %v", err)
	}
	if goals.DayJobHours != 7.5 || goals.SideWorkHours != 4.0 {
		t.Fatalf("default goals = %+v", goals)
	}

	if err := uc.SetGoals(ctx, dto.GoalsInput{DayJobHours: 6, SideWorkHours: 2.5}); err != nil {
		t.Fatalf("set goals: %v", err)
	}
	goals, err = uc.Goals(ctx)
	if err != nil {
		t.Fatalf("goals after set: %v", err)
	}
	if goals.DayJobHours != 6 || goals.SideWorkHours != 2.5 {
		t.Fatalf("overridden goals = %+v", goals)
	}
}

func TestSetGoalsRejectsNegative(t *testing.T) {
	t.Parallel()
	store := &memSettingsStore{}
	clk := &fakeClock{values: []time.Time{at(10, 10)}}
	uc := usecase.NewInteractor(service.NewStreakService(clk, store))

	if err := uc.SetGoals(context.Background(), dto.GoalsInput{DayJobHours: -1}); err == nil {
		t.Fatal("negative goal hours must be rejected")
	}
}
