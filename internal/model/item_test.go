package model

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem_TrimsAndAssignsID(t *testing.T) {
	now := time.Now()
	item, err := NewItem("  Parking is impossible downtown \n", CategoryTravel, Impact7, now)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, item.ID)
	assert.Equal(t, "Parking is impossible downtown", item.Text)
	assert.Equal(t, CategoryTravel, item.Category)
	assert.Equal(t, Impact7, item.Impact)
	assert.Equal(t, now, item.CreatedAt)
}

func TestNewItem_RejectsShortText(t *testing.T) {
	for _, text := range []string{"", "hi", "   hi   ", "1234567", "\t\n       "} {
		_, err := NewItem(text, CategoryWork, Impact5, time.Now())

		var verr *ValidationError
		require.True(t, errors.As(err, &verr), "text %q should fail validation", text)
		assert.Equal(t, "text", verr.Field)
		assert.Equal(t, "Please write a bit more.", verr.Message)
	}

	// Exactly eight characters is enough
	_, err := NewItem("12345678", CategoryWork, Impact5, time.Now())
	assert.NoError(t, err)
}

func TestNewItem_RejectsOutOfDomainValues(t *testing.T) {
	_, err := NewItem("A perfectly long text", CategoryAll, Impact5, time.Now())
	assert.Error(t, err)

	_, err = NewItem("A perfectly long text", CategoryWork, Impact(4), time.Now())
	assert.Error(t, err)
}

func TestNewItem_UniqueIDs(t *testing.T) {
	seen := map[uuid.UUID]bool{}
	for i := 0; i < 100; i++ {
		item, err := NewItem("Another frustration here", CategoryOther, ImpactMild, time.Now())
		require.NoError(t, err)
		assert.False(t, seen[item.ID])
		seen[item.ID] = true
	}
}

func TestParseImpact(t *testing.T) {
	for _, raw := range []string{"1", "3", "5", "7", "10"} {
		_, err := ParseImpact(raw)
		assert.NoError(t, err, raw)
	}
	for _, raw := range []string{"", "0", "2", "11", "five", "-1"} {
		_, err := ParseImpact(raw)
		assert.Error(t, err, raw)
	}

	assert.Equal(t, "1 (Mild)", ImpactMild.Label())
	assert.Equal(t, "7", Impact7.Label())
	assert.Equal(t, "10 (Raging)", ImpactRaging.Label())
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory("Travel")
	require.NoError(t, err)
	assert.Equal(t, CategoryTravel, c)

	_, err = ParseCategory("All")
	assert.Error(t, err, "All is a filter value, not a category")

	_, err = ParseCategory("travel")
	assert.Error(t, err)

	c, err = ParseFilterCategory("")
	require.NoError(t, err)
	assert.Equal(t, CategoryAll, c)

	c, err = ParseFilterCategory("All")
	require.NoError(t, err)
	assert.Equal(t, CategoryAll, c)
}

func TestParseView(t *testing.T) {
	v, ok := ParseView("Admin")
	assert.True(t, ok)
	assert.Equal(t, ViewAdmin, v)

	_, ok = ParseView("settings")
	assert.False(t, ok)

	assert.Equal(t, "Top this week", ViewTop.Label())
}

func TestSeedItems_Staggered(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	items := SeedItems(now)
	require.Len(t, items, 8)

	for i, item := range items {
		assert.Equal(t, now.Add(-time.Duration(i)*time.Hour), item.CreatedAt)
		assert.True(t, item.Category.Valid())
		assert.True(t, item.Impact.Valid())
		assert.GreaterOrEqual(t, len(item.Text), MinTextLength)
	}
	assert.Equal(t, "Customer support is hidden behind bots.", items[0].Text)

	// Fresh IDs on every call
	again := SeedItems(now)
	assert.NotEqual(t, items[0].ID, again[0].ID)
}
