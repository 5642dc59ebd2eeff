package bootstrap

import (
	"database/sql"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	_ "modernc.org/sqlite"

	badgeinadapter "grind/internal/modules/badge/adapter/in"
	badgeusecase "grind/internal/modules/badge/usecase"
	sessioninadapter "grind/internal/modules/session/adapter/in"
	sessionoutadapter "grind/internal/modules/session/adapter/out"
	sessionservice "grind/internal/modules/session/service"
	sessionusecase "grind/internal/modules/session/usecase"
	streakinadapter "grind/internal/modules/streak/adapter/in"
	streakoutadapter "grind/internal/modules/streak/adapter/out"
	streakservice "grind/internal/modules/streak/service"
	streakusecase "grind/internal/modules/streak/usecase"
	timerinadapter "grind/internal/modules/timer/adapter/in"
	timeroutadapter "grind/internal/modules/timer/adapter/out"
	timerusecase "grind/internal/modules/timer/usecase"
	wishinadapter "grind/internal/modules/wish/adapter/in"
	wishoutadapter "grind/internal/modules/wish/adapter/out"
	wishservice "grind/internal/modules/wish/service"
	wishusecase "grind/internal/modules/wish/usecase"
	"grind/internal/platform/clock"
	"grind/internal/platform/config"
	"grind/internal/platform/tx"
	uiapp "grind/internal/ui/app"
)

type App struct {
	TimerCLI   timerinadapter.CLIHandler
	SessionCLI sessioninadapter.CLIHandler
	StreakCLI  streakinadapter.CLIHandler
	BadgeCLI   badgeinadapter.CLIHandler
	WishCLI    wishinadapter.CLIHandler
}

func New(cfg config.Config) (*App, error) {
	clk := clock.SystemClock{}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	db, err := sql.Open("sqlite", cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sessionStore, err := sessionoutadapter.NewSQLiteSessionStore(db)
	if err != nil {
		return nil, fmt.Errorf("new session store: %w", err)
	}
	settingsStore, err := streakoutadapter.NewSQLiteSettingsStore(db)
	if err != nil {
		return nil, fmt.Errorf("new settings store: %w", err)
	}
	wishStore, err := wishoutadapter.NewSQLiteWishStore(db)
	if err != nil {
		return nil, fmt.Errorf("new wish store: %w", err)
	}
	timerStore := timeroutadapter.NewFileActiveTimerStore(cfg.TimerPath)

	streakUC := streakusecase.NewInteractor(streakservice.NewStreakService(clk, settingsStore))
	sessionUC := sessionusecase.NewInteractor(
		sessionservice.NewSessionService(clk, sessionStore),
		sessionStore,
		streakUC,
		clk,
	)
	// Single local writer; the tx seam stays a pass-through.
	timerUC := timerusecase.NewInteractor(timerStore, sessionStore, streakUC, tx.NoopManager{}, clk)
	badgeUC := badgeusecase.NewInteractor(sessionStore, streakUC, clk)
	wishUC := wishusecase.NewInteractor(wishservice.NewWishService(clk, wishStore), wishStore, sessionUC)

	return &App{
		TimerCLI:   timerinadapter.NewCLIHandler(timerUC),
		SessionCLI: sessioninadapter.NewCLIHandler(sessionUC),
		StreakCLI:  streakinadapter.NewCLIHandler(streakUC),
		BadgeCLI:   badgeinadapter.NewCLIHandler(badgeUC),
		WishCLI:    wishinadapter.NewCLIHandler(wishUC),
	}, nil
}

func RunTUI(cfg config.Config, app *App) error {
	model := uiapp.NewModel(
		cfg.UserName, cfg.CurrencySymbol,
		app.TimerCLI, app.SessionCLI, app.StreakCLI, app.BadgeCLI, app.WishCLI,
	)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
