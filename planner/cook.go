package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"

	"dinneragent"
)

// CookResult reports what the meal consumer changed. Requested carries the
// full id list from the plan (not just the matched subset) so a caller can
// detect partial application.
type CookResult struct {
	MealID    string
	Title     string
	Requested []string
	Updated   int
}

// Cook resolves a meal against the most recent run and marks each matching
// in-stock item as consumed. Ids with no matching in-stock item are skipped
// silently; that tolerates items already consumed or never stocked, and it
// is what makes cooking the same meal twice a no-op rather than an error.
func (p *Planner) Cook(ctx context.Context, mealID string) (CookResult, error) {
	ctx, span := otel.Tracer(dinneragent.TracerNameConsumer).Start(ctx, "Planner.Cook")
	defer span.End()

	// Validated before any store call.
	if !dinneragent.ValidMealID(mealID) {
		return CookResult{}, dinneragent.ErrInvalidMealID
	}

	inv := dinneragent.InvocationLog{Pipeline: "cook-meal", Timestamp: p.clock(), MealID: mealID}

	result, err := p.cook(ctx, mealID)
	if err != nil {
		inv.Status = string(dinneragent.RunStatusError)
		inv.Error = err.Error()
		p.logInvocation(inv)
		return CookResult{}, err
	}

	inv.Status = string(dinneragent.RunStatusOK)
	inv.Updated = result.Updated
	p.logInvocation(inv)
	return result, nil
}

func (p *Planner) cook(ctx context.Context, mealID string) (CookResult, error) {
	run, err := p.runs.Latest(ctx)
	if err != nil {
		return CookResult{}, err
	}

	raw := run.RawJSON
	if strings.TrimSpace(raw) == "" {
		raw = "{}"
	}

	var plan dinneragent.MealPlan
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		return CookResult{}, dinneragent.ErrRunJSONInvalid
	}

	meal, ok := plan.FindMeal(mealID)
	if !ok {
		return CookResult{}, dinneragent.ErrMealNotFound
	}
	if len(meal.Items) == 0 {
		return CookResult{}, dinneragent.ErrNoItemsForMeal
	}

	items, err := p.inventory.InStock(ctx)
	if err != nil {
		return CookResult{}, fmt.Errorf("load inventory: %w", err)
	}

	wanted := make(map[string]bool, len(meal.Items))
	for _, id := range meal.Items {
		wanted[id] = true
	}

	today := p.clock()
	updated := 0
	for _, item := range items {
		if item.ID == "" || !wanted[item.ID] {
			continue
		}
		if err := p.inventory.MarkUsed(ctx, item.PageID, today); err != nil {
			return CookResult{}, fmt.Errorf("mark %s used: %w", item.ID, err)
		}
		updated++
	}

	slog.Info("CONSUMER: Meal cooked",
		"meal_id", mealID,
		"title", meal.Title,
		"requested", len(meal.Items),
		"updated", updated,
	)

	return CookResult{
		MealID:    mealID,
		Title:     meal.Title,
		Requested: meal.Items,
		Updated:   updated,
	}, nil
}
