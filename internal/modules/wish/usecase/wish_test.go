package usecase_test

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	sessiondto "grind/internal/modules/session/dto"
	wishadapter "grind/internal/modules/wish/adapter/out"
	"grind/internal/modules/wish/dto"
	wishin "grind/internal/modules/wish/port/in"
	"grind/internal/modules/wish/service"
	"grind/internal/modules/wish/usecase"
	apperrors "grind/internal/platform/errors"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

// fakeSessions serves only the lifetime points total.
type fakeSessions struct {
	total float64
}

func (f *fakeSessions) Get(context.Context, int64) (sessiondto.SessionOutput, error) {
	return sessiondto.SessionOutput{}, nil
}
func (f *fakeSessions) ListRecent(context.Context, int) ([]sessiondto.SessionOutput, error) {
	return nil, nil
}
func (f *fakeSessions) History(context.Context, time.Time, time.Time) ([]sessiondto.SessionOutput, error) {
	return nil, nil
}
func (f *fakeSessions) Preview(context.Context, sessiondto.EditInput) (sessiondto.PreviewOutput, error) {
	return sessiondto.PreviewOutput{}, nil
}
func (f *fakeSessions) Edit(context.Context, sessiondto.EditInput) (sessiondto.SessionOutput, error) {
	return sessiondto.SessionOutput{}, nil
}
func (f *fakeSessions) Delete(context.Context, int64) error { return nil }
func (f *fakeSessions) TotalPoints(context.Context) (float64, error) {
	return f.total, nil
}
func (f *fakeSessions) DayProgress(context.Context, time.Time) (sessiondto.DayProgressOutput, error) {
	return sessiondto.DayProgressOutput{}, nil
}

func newWishUsecase(t *testing.T, sessions *fakeSessions) wishin.Usecase {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "grind.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	store, err := wishadapter.NewSQLiteWishStore(db)
	if err != nil {
		t.Fatalf("wish store: %v", err)
	}
	clk := &fakeClock{now: time.Date(2025, 1, 10, 12, 0, 0, 0, time.Local)}
	return usecase.NewInteractor(service.NewWishService(clk, store), store, sessions)
}

func TestAddAndListWishItems(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc := newWishUsecase(t, &fakeSessions{total: 12})

	added, err := uc.Add(ctx, dto.AddInput{Name: "Mechanical keyboard", Price: 95, URL: "https://example.com/kb"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if math.Abs(added.PointsRequired-10) > 1e-9 {
		t.Errorf("PointsRequired = %v, want 10", added.PointsRequired)
	}
	if !added.Affordable {
		t.Error("12 points must afford a 10-point item")
	}

	items, err := uc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Mechanical keyboard" {
		t.Fatalf("list = %+v", items)
	}
}

func TestAddRejectsBlankNameAndZeroPrice(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc := newWishUsecase(t, &fakeSessions{})

	if _, err := uc.Add(ctx, dto.AddInput{Name: "   ", Price: 50}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Errorf("blank name: err = %v", err)
	}
	if _, err := uc.Add(ctx, dto.AddInput{Name: "Thing", Price: 0}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Errorf("zero price: err = %v", err)
	}
}

func TestRedeemRequiresEnoughPoints(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	sessions := &fakeSessions{total: 5}
	uc := newWishUsecase(t, sessions)

	added, err := uc.Add(ctx, dto.AddInput{Name: "Headphones", Price: 95})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if _, err := uc.Redeem(ctx, added.ID); !errors.Is(err, apperrors.ErrNotEnoughPoints) {
		t.Fatalf("redeem with 5 points: err = %v", err)
	}

	sessions.total = 10.5
	redeemed, err := uc.Redeem(ctx, added.ID)
	if err != nil {
		t.Fatalf("redeem: %v", err)
	}
	if !redeemed.Redeemed || redeemed.RedeemedAt.IsZero() {
		t.Errorf("redeemed = %+v", redeemed)
	}

	// Redeeming never spends points; a second redeem is a no-op.
	again, err := uc.Redeem(ctx, added.ID)
	if err != nil {
		t.Fatalf("second redeem: %v", err)
	}
	if !again.Redeemed {
		t.Error("second redeem must keep the item redeemed")
	}
}

func TestNextTargetPicksCheapestOutOfReach(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc := newWishUsecase(t, &fakeSessions{total: 10})

	for _, input := range []dto.AddInput{
		{Name: "affordable", Price: 47.5},
		{Name: "far", Price: 950},
		{Name: "near", Price: 190},
	} {
		if _, err := uc.Add(ctx, input); err != nil {
			t.Fatalf("add %s: %v", input.Name, err)
		}
	}

	target, err := uc.NextTarget(ctx)
	if err != nil {
		t.Fatalf("next target: %v", err)
	}
	if !target.Found || target.Item.Name != "near" {
		t.Fatalf("target = %+v, want the 20-point item", target)
	}
	if math.Abs(target.PointsNeeded-10) > 1e-9 {
		t.Errorf("PointsNeeded = %v, want 10", target.PointsNeeded)
	}
}

func TestDeleteWishItem(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc := newWishUsecase(t, &fakeSessions{})

	added, err := uc.Add(ctx, dto.AddInput{Name: "Short-lived", Price: 20})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := uc.Delete(ctx, added.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	items, err := uc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("list after delete = %+v", items)
	}
}
