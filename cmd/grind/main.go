package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"grind/internal/bootstrap"
	"grind/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataDir string

	root := &cobra.Command{
		Use:           "grind",
		Short:         "Work session accounting from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTUI(dataDir)
		},
	}
	root.PersistentFlags().StringVar(&dataDir, "data", "", "data directory (default ~/.grind)")

	root.AddCommand(newTUICmd(&dataDir))
	root.AddCommand(newStatusCmd(&dataDir))
	root.AddCommand(newTimerCmd(&dataDir))
	root.AddCommand(newSessionCmd(&dataDir))
	root.AddCommand(newStreakCmd(&dataDir))
	root.AddCommand(newBadgesCmd(&dataDir))
	root.AddCommand(newWishCmd(&dataDir))
	root.AddCommand(newGoalCmd(&dataDir))
	return root
}

func loadApp(dataDir string) (*bootstrap.App, config.Config, error) {
	cfg, err := config.New(dataDir)
	if err != nil {
		return nil, config.Config{}, err
	}
	app, err := bootstrap.New(cfg)
	return app, cfg, err
}

func runTUI(dataDir string) error {
	app, cfg, err := loadApp(dataDir)
	if err != nil {
		return err
	}
	return bootstrap.RunTUI(cfg, app)
}

func newTUICmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run grind terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTUI(*dataDir)
		},
	}
}

func newStatusCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "One-screen dashboard: timer, streak, today, next target",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, cfg, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			ctx := context.Background()

			timer, err := app.TimerCLI.Status(ctx)
			if err != nil {
				return err
			}
			if timer.Status == "IDLE" {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "timer: idle")
			} else {
				elapsed := time.Duration(timer.ElapsedSeconds) * time.Second
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "timer: %s %s since %s (%s)\n",
					strings.ToLower(timer.Status), timer.CategoryLabel, timer.StartTime.Format("15:04"), elapsed)
			}

			info, err := app.StreakCLI.Info(ctx)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "streak: %d days", info.CurrentStreak)
			if info.AtRisk {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), " — at risk, %dh %dm of grace left",
					info.Grace.HoursRemaining, info.Grace.MinutesRemaining)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout())

			goals, err := app.StreakCLI.Goals(ctx)
			if err != nil {
				return err
			}
			day, err := app.SessionCLI.DayProgress(ctx, time.Now())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "today: day job %.1f/%.1fh, side work %.1f/%.1fh, early %.1fh\n",
				float64(day.DayJobMinutes)/60, goals.DayJobHours,
				float64(day.SideWorkMinutes)/60, goals.SideWorkHours,
				float64(day.EarlyMorningMinutes)/60)

			total, err := app.SessionCLI.TotalPoints(ctx)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "points: %.1f total\n", total)

			target, err := app.WishCLI.NextTarget(ctx)
			if err != nil {
				return err
			}
			if target.Found {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "next target: %s (%s%.2f, %.1f pts to go)\n",
					target.Item.Name, cfg.CurrencySymbol, target.Item.Price, target.PointsNeeded)
			}

			badges, err := app.BadgeCLI.Highlighted(ctx)
			if err != nil {
				return err
			}
			codes := make([]string, len(badges))
			for i, b := range badges {
				codes[i] = b.Code
			}
			message, err := app.StreakCLI.Message(ctx, codes)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), message)
			return nil
		},
	}
}

func newTimerCmd(dataDir *string) *cobra.Command {
	timer := &cobra.Command{Use: "timer", Short: "Timer lifecycle"}

	timer.AddCommand(&cobra.Command{
		Use:   "start",
		Short: "Start a work session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.TimerCLI.Start(context.Background())
			if err != nil {
				return err
			}
			if !out.Started {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "a timer is already running")
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "started session %d (%s) at %s\n", out.SessionID, out.Category, out.StartTime.Format("15:04"))
			return nil
		},
	})

	timer.AddCommand(&cobra.Command{
		Use:   "pause",
		Short: "Pause the running timer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.TimerCLI.Pause(context.Background())
			if err != nil {
				return err
			}
			if !out.Changed {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "nothing to pause")
				return nil
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "timer paused")
			return nil
		},
	})

	timer.AddCommand(&cobra.Command{
		Use:   "resume",
		Short: "Resume a paused timer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.TimerCLI.Resume(context.Background())
			if err != nil {
				return err
			}
			if !out.Changed {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "nothing to resume")
				return nil
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "timer resumed")
			return nil
		},
	})

	timer.AddCommand(&cobra.Command{
		Use:   "stop",
		Short: "Stop the timer and score the session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.TimerCLI.Stop(context.Background())
			if err != nil {
				return err
			}
			switch {
			case !out.Stopped:
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no timer running")
			case out.Discarded:
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "session under 15 minutes — discarded")
			default:
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session %d saved: %s %dm %.2f pts (base %.2f × %.2f)\n",
					out.SessionID, out.CategoryLabel, out.DurationMinutes, out.Points, out.BasePoints, out.Multiplier)
				if out.FirstOfDay {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "first qualifying session today: +0.5 bonus applied")
				}
			}
			return nil
		},
	})

	timer.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show timer state",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.TimerCLI.Status(context.Background())
			if err != nil {
				return err
			}
			if out.Status == "IDLE" {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no timer running")
				return nil
			}
			elapsed := time.Duration(out.ElapsedSeconds) * time.Second
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s session %d (%s) since %s elapsed=%s\n",
				strings.ToLower(out.Status), out.SessionID, out.CategoryLabel, out.StartTime.Format("15:04"), elapsed)
			if out.TotalPausedMinutes > 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "paused %dm total\n", out.TotalPausedMinutes)
			}
			return nil
		},
	})

	return timer
}

func newSessionCmd(dataDir *string) *cobra.Command {
	session := &cobra.Command{Use: "session", Short: "Recorded session commands"}

	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List recent sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			sessions, err := app.SessionCLI.ListRecent(context.Background(), limit)
			if err != nil {
				return err
			}
			if len(sessions) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sessions recorded")
				return nil
			}
			for _, s := range sessions {
				end := "running"
				if s.Completed {
					end = s.EndTime.Format("15:04")
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s-%s\t%s\t%dm\t%.2f pts\n",
					s.ID, s.StartTime.Format("2006-01-02"), s.StartTime.Format("15:04"), end, s.CategoryLabel, s.DurationMinutes, s.Points)
			}
			return nil
		},
	}
	list.Flags().IntVar(&limit, "limit", 20, "max sessions to list")
	session.AddCommand(list)

	session.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show one session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid session id %q", args[0])
			}
			app, _, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			s, err := app.SessionCLI.Get(context.Background(), id)
			if err != nil {
				return err
			}
			end := "running"
			if s.Completed {
				end = s.EndTime.Format("15:04")
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "id: %d\ndate: %s\nstart: %s\nend: %s\ncategory: %s\nduration: %dm\npaused: %dm\npoints: %.2f\n",
				s.ID, s.StartTime.Format("2006-01-02"), s.StartTime.Format("15:04"), end, s.CategoryLabel, s.DurationMinutes, s.TotalPausedMinutes, s.Points)
			return nil
		},
	})

	var startStr, endStr string
	var preview bool
	edit := &cobra.Command{
		Use:   "edit <id> --start HH:MM [--end HH:MM]",
		Short: "Re-time a session recorded today",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid session id %q", args[0])
			}
			if strings.TrimSpace(startStr) == "" {
				return fmt.Errorf("--start is required")
			}
			app, _, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			ctx := context.Background()
			current, err := app.SessionCLI.Get(ctx, id)
			if err != nil {
				return err
			}
			start, err := clockOnDay(current.StartTime, startStr)
			if err != nil {
				return err
			}
			end := current.EndTime
			if strings.TrimSpace(endStr) != "" {
				if end, err = clockOnDay(current.StartTime, endStr); err != nil {
					return err
				}
			}
			if preview {
				p, err := app.SessionCLI.Preview(ctx, id, start, end)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "preview: %s %dm %.2f pts (base %.2f × %.2f)\n",
					p.CategoryLabel, p.DurationMinutes, p.Points, p.BasePoints, p.Multiplier)
				return nil
			}
			out, err := app.SessionCLI.Edit(ctx, id, start, end)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session %d updated: %s %dm %.2f pts\n",
				out.ID, out.CategoryLabel, out.DurationMinutes, out.Points)
			return nil
		},
	}
	edit.Flags().StringVar(&startStr, "start", "", "new start time HH:MM")
	edit.Flags().StringVar(&endStr, "end", "", "new end time HH:MM")
	edit.Flags().BoolVar(&preview, "preview", false, "show recomputed points without saving")
	session.AddCommand(edit)

	session.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid session id %q", args[0])
			}
			app, _, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			if err := app.SessionCLI.Delete(context.Background(), id); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session %d deleted\n", id)
			return nil
		},
	})

	return session
}

func newStreakCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "streak",
		Short: "Show the current streak",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			ctx := context.Background()
			info, err := app.StreakCLI.Info(ctx)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "streak: %d days (%d consecutive work days)\n",
				info.CurrentStreak, info.ConsecutiveWorkDays)
			if !info.LastWorkDate.IsZero() {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "last work day: %s\n", info.LastWorkDate.Format("2006-01-02"))
			}
			if info.Grace.Available {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "grace: %dh %dm remaining", info.Grace.HoursRemaining, info.Grace.MinutesRemaining)
				if info.Grace.Urgent {
					_, _ = fmt.Fprint(cmd.OutOrStdout(), " (urgent)")
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout())
			}
			badges, err := app.BadgeCLI.Highlighted(ctx)
			if err != nil {
				return err
			}
			codes := make([]string, len(badges))
			for i, b := range badges {
				codes[i] = b.Code
			}
			message, err := app.StreakCLI.Message(ctx, codes)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), message)
			return nil
		},
	}
}

func newBadgesCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "badges",
		Short: "Show the badge catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			catalog, err := app.BadgeCLI.Catalog(context.Background())
			if err != nil {
				return err
			}
			for _, b := range catalog {
				marker := " "
				if b.Earned {
					marker = "✓"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s — %s\n", marker, b.Icon, b.Name, b.Description)
			}
			return nil
		},
	}
}

func newWishCmd(dataDir *string) *cobra.Command {
	wish := &cobra.Command{Use: "wish", Short: "Wishlist rewards"}

	var url string
	add := &cobra.Command{
		Use:   "add <price> <name...>",
		Short: "Add a wishlist item",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			price, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid price %q", args[0])
			}
			app, _, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.WishCLI.Add(context.Background(), strings.Join(args[1:], " "), price, url)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added %q: %.1f pts required\n", out.Name, out.PointsRequired)
			return nil
		},
	}
	add.Flags().StringVar(&url, "url", "", "product link")
	wish.AddCommand(add)

	wish.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List wishlist items",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, cfg, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			ctx := context.Background()
			items, err := app.WishCLI.List(ctx)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "wishlist is empty")
				return nil
			}
			for _, item := range items {
				state := " "
				switch {
				case item.Redeemed:
					state = "✓"
				case item.Affordable:
					state = "$"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %d\t%s%.2f\t%.1f pts\t%s\n",
					state, item.ID, cfg.CurrencySymbol, item.Price, item.PointsRequired, item.Name)
			}
			target, err := app.WishCLI.NextTarget(ctx)
			if err != nil {
				return err
			}
			if target.Found {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "next target: %s (%.1f pts to go)\n", target.Item.Name, target.PointsNeeded)
			}
			return nil
		},
	})

	wish.AddCommand(&cobra.Command{
		Use:   "redeem <id>",
		Short: "Redeem an affordable item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid wish id %q", args[0])
			}
			app, _, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.WishCLI.Redeem(context.Background(), id)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "redeemed %q 🎉\n", out.Name)
			return nil
		},
	})

	wish.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a wishlist item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid wish id %q", args[0])
			}
			app, _, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			if err := app.WishCLI.Delete(context.Background(), id); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wish %d removed\n", id)
			return nil
		},
	})

	return wish
}

func newGoalCmd(dataDir *string) *cobra.Command {
	goal := &cobra.Command{Use: "goal", Short: "Daily hour goals"}

	goal.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show daily goals and today's progress",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			ctx := context.Background()
			goals, err := app.StreakCLI.Goals(ctx)
			if err != nil {
				return err
			}
			day, err := app.SessionCLI.DayProgress(ctx, time.Now())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "day job:   %.1fh of %.1fh\n", float64(day.DayJobMinutes)/60, goals.DayJobHours)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "side work: %.1fh of %.1fh\n", float64(day.SideWorkMinutes)/60, goals.SideWorkHours)
			if day.EarlyMorningMinutes > 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "early:     %.1fh\n", float64(day.EarlyMorningMinutes)/60)
			}
			return nil
		},
	})

	goal.AddCommand(&cobra.Command{
		Use:   "set <day-job-hours> <side-work-hours>",
		Short: "Set daily hour goals",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dayJob, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid day job hours %q", args[0])
			}
			side, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid side work hours %q", args[1])
			}
			app, _, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			if err := app.StreakCLI.SetGoals(context.Background(), dayJob, side); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "goals set: day job %.1fh, side work %.1fh\n", dayJob, side)
			return nil
		},
	})

	return goal
}

// clockOnDay places an HH:MM reading on the same calendar day as ref.
func clockOnDay(ref time.Time, clock string) (time.Time, error) {
	parsed, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: want HH:MM", clock)
	}
	return time.Date(ref.Year(), ref.Month(), ref.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, ref.Location()), nil
}
