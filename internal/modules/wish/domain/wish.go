package domain

import "time"

// CurrencyPerPoint converts wishlist prices to points: one earned point is
// worth 9.5 currency units.
const CurrencyPerPoint = 9.5

// WishItem is a reward the user is saving points toward. Redeeming marks the
// item; it never deducts points, the lifetime total only grows.
type WishItem struct {
	ID         int64
	Name       string
	Price      float64
	URL        string
	Redeemed   bool
	RedeemedAt time.Time
	CreatedAt  time.Time
}

func (w WishItem) PointsRequired() float64 {
	return PriceToPoints(w.Price)
}

func (w WishItem) Affordable(totalPoints float64) bool {
	return totalPoints >= w.PointsRequired()
}

func PriceToPoints(price float64) float64 {
	return price / CurrencyPerPoint
}

// NextTarget picks the cheapest unredeemed item not yet affordable: the next
// thing worth grinding for. ok is false when everything is either redeemed
// or already within reach.
func NextTarget(items []WishItem, totalPoints float64) (target WishItem, ok bool) {
	for _, item := range items {
		if item.Redeemed || item.Affordable(totalPoints) {
			continue
		}
		if !ok || item.PointsRequired() < target.PointsRequired() {
			target, ok = item, true
		}
	}
	return target, ok
}
