package domain

import (
	"fmt"

	badgedomain "grind/internal/modules/badge/domain"
)

// Info is the read-model for the streak panel.
type Info struct {
	CurrentStreak       int
	ConsecutiveWorkDays int
	Grace               GraceStatus
	AtRisk              bool
}

func hasBadge(badges []badgedomain.Badge, want badgedomain.Badge) bool {
	for _, b := range badges {
		if b == want {
			return true
		}
	}
	return false
}

// Message picks the single motivational line for the dashboard. Risk warnings
// outrank celebrations; badge nudges only surface when no streak milestone
// applies.
func Message(info Info, badges []badgedomain.Badge) string {
	switch {
	case info.AtRisk && info.Grace.HoursRemaining > 0:
		return fmt.Sprintf("⚠️ Only %dh left to keep your %d-day streak!", info.Grace.HoursRemaining, info.CurrentStreak)
	case info.AtRisk:
		return fmt.Sprintf("⚠️ Your %d-day streak is about to expire!", info.CurrentStreak)
	case info.CurrentStreak >= 30:
		return fmt.Sprintf("🔥 Incredible! %d days and counting!", info.CurrentStreak)
	case info.CurrentStreak >= 7:
		return "🔥 Amazing week streak! Keep it going!"
	case hasBadge(badges, badgedomain.EarlyBird):
		return "🐦 You're an early bird! Keep those morning sessions coming!"
	case hasBadge(badges, badgedomain.Consistent):
		return "📅 Great consistency! You're building a solid habit!"
	case info.CurrentStreak > 0:
		return fmt.Sprintf("💪 %d day streak! Keep it up!", info.CurrentStreak)
	default:
		return "🚀 Start a session today to begin your streak!"
	}
}
