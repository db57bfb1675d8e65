package sqlitestore_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dinneragent"
	"dinneragent/sqlitestore"
)

func newStore(t *testing.T) *sqlitestore.Store {
	t.Helper()
	store, err := sqlitestore.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestInStock_ReturnsOnlyStockedItems(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	require.NoError(t, store.AddItem(ctx, dinneragent.InventoryItem{
		PageID: "p1", ID: "I-1", Title: "chicken", Category: dinneragent.CategoryFridge, Note: "open", InStock: true,
	}))
	require.NoError(t, store.AddItem(ctx, dinneragent.InventoryItem{
		PageID: "p2", ID: "I-2", Title: "old rice", Category: dinneragent.CategoryPantry, InStock: false,
	}))

	items, err := store.InStock(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "I-1", items[0].ID)
	assert.Equal(t, "chicken", items[0].Title)
	assert.Equal(t, dinneragent.CategoryFridge, items[0].Category)
	assert.Equal(t, "open", items[0].Note)
	assert.True(t, items[0].InStock)
	assert.Nil(t, items[0].LastUsed)
}

func TestMarkUsed(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	require.NoError(t, store.AddItem(ctx, dinneragent.InventoryItem{
		PageID: "p1", ID: "I-1", Title: "chicken", Category: dinneragent.CategoryFridge, InStock: true,
	}))

	day := time.Date(2025, 1, 6, 18, 30, 0, 0, time.UTC)
	require.NoError(t, store.MarkUsed(ctx, "p1", day))

	items, err := store.InStock(ctx)
	require.NoError(t, err)
	assert.Empty(t, items, "consumed item must leave the in-stock view")

	// Marking an unknown page is a no-op, mirroring the skip-on-no-match rule.
	require.NoError(t, store.MarkUsed(ctx, "missing-page", day))
}

func TestRunLog_AppendAndLatest(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	_, err := store.Latest(ctx)
	assert.ErrorIs(t, err, dinneragent.ErrNoRunFound)

	first := dinneragent.Run{
		Title:    "Run – 2025-01-05 18:00",
		Status:   dinneragent.RunStatusOK,
		DateLine: "Sunday Dinner Plan",
		Meal1:    "Soup",
		RawJSON:  `{"meals":[]}`,
	}
	require.NoError(t, store.Create(ctx, first))

	second := dinneragent.Run{
		Title:         "Run – 2025-01-06 18:00 [ERROR]",
		Status:        dinneragent.RunStatusError,
		Encouragement: "Oops — AI output missing JSON block at the end",
	}
	require.NoError(t, store.Create(ctx, second))

	latest, err := store.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.Title, latest.Title)
	assert.Equal(t, dinneragent.RunStatusError, latest.Status)
	assert.Equal(t, second.Encouragement, latest.Encouragement)
	assert.False(t, latest.CreatedTime.IsZero())

	count, err := store.RunCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count, "runs are append-only")
}

func TestRunLog_LatestPrefersNewestInsert(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	for _, title := range []string{"run-a", "run-b", "run-c"} {
		require.NoError(t, store.Create(ctx, dinneragent.Run{Title: title, Status: dinneragent.RunStatusOK}))
	}

	latest, err := store.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "run-c", latest.Title)
}
