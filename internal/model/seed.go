package model

import (
	"time"

	"github.com/google/uuid"
)

// Tagline is shown under the title on every page.
const Tagline = "A public list of the problems nobody fixes."

var seedFrustrations = []struct {
	text     string
	category Category
	impact   Impact
}{
	{"Customer support is hidden behind bots.", CategoryTech, Impact7},
	{"Canceling services is intentionally harder than signing up.", CategoryMoney, Impact7},
	{"Doctor offices rarely answer the phone.", CategoryHealth, Impact7},
	{"I spend more time in meetings than doing real work.", CategoryWork, Impact7},
	{"Everything requires an account now.", CategoryOther, Impact5},
	{"Prices change without explanation.", CategoryMoney, Impact5},
	{"Medical bills arrive months later.", CategoryHealth, Impact7},
	{"Unlimited PTO still makes people afraid to take time off.", CategoryWork, Impact5},
}

// SeedItems returns the example catalog published on startup, newest first.
// Each item is one hour older than the one before it.
func SeedItems(now time.Time) []Item {
	items := make([]Item, 0, len(seedFrustrations))
	for i, s := range seedFrustrations {
		items = append(items, Item{
			ID:        uuid.New(),
			Text:      s.text,
			Category:  s.category,
			Impact:    s.impact,
			CreatedAt: now.Add(-time.Duration(i) * time.Hour),
		})
	}
	return items
}
