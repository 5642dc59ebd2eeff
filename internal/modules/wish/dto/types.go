package dto

import "time"

type AddInput struct {
	Name  string
	Price float64
	URL   string
}

type WishOutput struct {
	ID             int64
	Name           string
	Price          float64
	URL            string
	PointsRequired float64
	Affordable     bool
	Redeemed       bool
	RedeemedAt     time.Time
	CreatedAt      time.Time
}

// TargetOutput is the "next thing to grind for" summary.
type TargetOutput struct {
	Found        bool
	Item         WishOutput
	PointsNeeded float64
}
