package dinneragent

import "errors"

// Pipeline error kinds. The HTTP layer maps these to status codes with
// errors.Is; messages are surfaced to callers verbatim.
var (
	// ErrNoItemsInStock means the inventory has nothing to plan with.
	// Surfaced as a precondition failure; no run record is written for it.
	ErrNoItemsInStock = errors.New("No items in stock")

	// ErrMissingJSONBlock means the reply has no trailing { ... } block.
	ErrMissingJSONBlock = errors.New("AI output missing JSON block at the end")

	// ErrInvalidJSON means the trailing block was found but failed to parse.
	ErrInvalidJSON = errors.New("AI output has Invalid JSON (parse failed)")

	// ErrMissingMealsArray means the JSON parsed but lacks a meals array.
	ErrMissingMealsArray = errors.New("AI output JSON missing meals array")

	// ErrNoRunFound means the run log is empty.
	ErrNoRunFound = errors.New("no run found")

	// ErrRunJSONInvalid means a stored run's raw JSON no longer parses.
	ErrRunJSONInvalid = errors.New("AI JSON invalid")

	// ErrMealNotFound means the requested meal id is absent from the plan.
	ErrMealNotFound = errors.New("meal not found")

	// ErrNoItemsForMeal means the matched meal lists no inventory items.
	ErrNoItemsForMeal = errors.New("no items for this meal")

	// ErrInvalidMealID means the meal id is outside the M1|M2|M3 set.
	ErrInvalidMealID = errors.New("invalid meal_id, expected M1, M2 or M3")
)
