package planner_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dinneragent"
)

func okRun(rawJSON string) dinneragent.Run {
	return dinneragent.Run{
		Title:   "Run – 2025-01-06 18:00",
		Status:  dinneragent.RunStatusOK,
		RawJSON: rawJSON,
	}
}

func TestCook_ConsumesMatchingItems(t *testing.T) {
	inv := &fakeInventory{items: stockedChicken()}
	runs := &fakeRuns{runs: []dinneragent.Run{
		okRun(`{"meals":[{"id":"M1","title":"Chicken stir fry","items":["I-1"]}]}`),
	}}
	p := newTestPlanner(inv, runs, &fakeLLM{})

	result, err := p.Cook(context.Background(), "M1")
	require.NoError(t, err)

	assert.Equal(t, "M1", result.MealID)
	assert.Equal(t, "Chicken stir fry", result.Title)
	assert.Equal(t, []string{"I-1"}, result.Requested)
	assert.Equal(t, 1, result.Updated)

	require.False(t, inv.items[0].InStock)
	require.NotNil(t, inv.items[0].LastUsed)
	assert.Equal(t, testClock().Truncate(24*time.Hour), inv.items[0].LastUsed.Truncate(24*time.Hour))

	// Cooking the same meal again is a no-op, not an error.
	again, err := p.Cook(context.Background(), "M1")
	require.NoError(t, err)
	assert.Equal(t, 0, again.Updated)
	assert.Equal(t, []string{"I-1"}, again.Requested)
}

func TestCook_UnmatchedIdsAreSkipped(t *testing.T) {
	inv := &fakeInventory{items: stockedChicken()}
	runs := &fakeRuns{runs: []dinneragent.Run{
		okRun(`{"meals":[{"id":"M2","title":"Pasta","items":["I-1","I-99"]}]}`),
	}}
	p := newTestPlanner(inv, runs, &fakeLLM{})

	result, err := p.Cook(context.Background(), "M2")
	require.NoError(t, err)

	// The full requested list is echoed so callers can see partial application.
	assert.Equal(t, []string{"I-1", "I-99"}, result.Requested)
	assert.Equal(t, 1, result.Updated)
}

func TestCook_InvalidMealIDFailsBeforeStore(t *testing.T) {
	runs := &fakeRuns{}
	p := newTestPlanner(&fakeInventory{}, runs, &fakeLLM{})

	for _, id := range []string{"", "M4", "m1", "M10", "dinner"} {
		_, err := p.Cook(context.Background(), id)
		assert.ErrorIs(t, err, dinneragent.ErrInvalidMealID, "meal_id %q", id)
	}
	assert.Zero(t, runs.latestCalls, "validation must happen before any store call")
}

func TestCook_ErrorLadder(t *testing.T) {
	tests := []struct {
		name    string
		runs    []dinneragent.Run
		wantErr error
	}{
		{
			name:    "no run found",
			runs:    nil,
			wantErr: dinneragent.ErrNoRunFound,
		},
		{
			name:    "stored JSON invalid",
			runs:    []dinneragent.Run{okRun(`{"meals":[}`)},
			wantErr: dinneragent.ErrRunJSONInvalid,
		},
		{
			name:    "absent raw JSON defaults to empty object",
			runs:    []dinneragent.Run{okRun("")},
			wantErr: dinneragent.ErrMealNotFound,
		},
		{
			name:    "meal not in plan",
			runs:    []dinneragent.Run{okRun(`{"meals":[{"id":"M1","title":"Soup","items":["I-1"]}]}`)},
			wantErr: dinneragent.ErrMealNotFound,
		},
		{
			name:    "meal has no items",
			runs:    []dinneragent.Run{okRun(`{"meals":[{"id":"M2","title":"Pasta","items":[]}]}`)},
			wantErr: dinneragent.ErrNoItemsForMeal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPlanner(&fakeInventory{items: stockedChicken()}, &fakeRuns{runs: tt.runs}, &fakeLLM{})
			_, err := p.Cook(context.Background(), "M2")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCook_UsesLatestRun(t *testing.T) {
	inv := &fakeInventory{items: stockedChicken()}
	runs := &fakeRuns{runs: []dinneragent.Run{
		okRun(`{"meals":[{"id":"M1","title":"Old soup","items":["I-9"]}]}`),
		okRun(`{"meals":[{"id":"M1","title":"New stir fry","items":["I-1"]}]}`),
	}}
	p := newTestPlanner(inv, runs, &fakeLLM{})

	result, err := p.Cook(context.Background(), "M1")
	require.NoError(t, err)
	assert.Equal(t, "New stir fry", result.Title)
	assert.Equal(t, 1, result.Updated)
}
