package dinneragent

import (
	"context"
	"net/http"
	"time"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// CompletionClient is the interface for text-completion backends.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// InventoryStore reads and updates stocked items. The pipeline never creates
// or deletes items; ownership stays with the backing record store.
type InventoryStore interface {
	InStock(ctx context.Context) ([]InventoryItem, error)
	MarkUsed(ctx context.Context, pageID string, day time.Time) error
}

// RunStore appends and reads run records. Runs are immutable once created.
type RunStore interface {
	Create(ctx context.Context, run Run) error
	Latest(ctx context.Context) (Run, error)
}

// Category is the fixed set of inventory buckets.
type Category string

const (
	CategoryLimitedShelfLife Category = "Limited shelf life"
	CategoryFridge           Category = "Fridge"
	CategoryFreezer          Category = "Freezer"
	CategoryPantry           Category = "Pantry"
)

// Categories lists the buckets in display order.
var Categories = []Category{
	CategoryLimitedShelfLife,
	CategoryFridge,
	CategoryFreezer,
	CategoryPantry,
}

// InventoryItem represents one stocked item. PageID is the record store's
// internal handle (needed for updates); ID is the external `I-<n>` identifier.
type InventoryItem struct {
	PageID   string
	ID       string
	Title    string
	Category Category
	Note     string
	InStock  bool
	LastUsed *time.Time
}

// RunStatus marks a run record as a success or failure outcome.
type RunStatus string

const (
	RunStatusOK    RunStatus = "OK"
	RunStatusError RunStatus = "ERROR"
)

// Run represents one plan-generator invocation outcome, append-only.
// A failed attempt produces a new ERROR run; the latest OK run is never
// overwritten.
type Run struct {
	PageID        string
	Title         string
	Status        RunStatus
	DateLine      string
	Meal1         string
	Meal2         string
	Meal3         string
	Encouragement string
	RawJSON       string
	CreatedTime   time.Time
}

// MealPlan is the machine-readable payload embedded at the end of the
// model's reply. It is the only part of the reply consumed programmatically.
type MealPlan struct {
	Meals []Meal `json:"meals"`
}

// Meal is one suggested meal inside the plan JSON.
type Meal struct {
	ID    string   `json:"id"`
	Title string   `json:"title"`
	Items []string `json:"items"`
}

// MealIDs is the closed set of meal identifiers a consumer may request.
var MealIDs = []string{"M1", "M2", "M3"}

// ValidMealID reports whether id belongs to the closed M1|M2|M3 set.
func ValidMealID(id string) bool {
	for _, m := range MealIDs {
		if id == m {
			return true
		}
	}
	return false
}

// FindMeal returns the meal with the given id, if present.
func (mp *MealPlan) FindMeal(id string) (Meal, bool) {
	for _, m := range mp.Meals {
		if m.ID == id {
			return m, true
		}
	}
	return Meal{}, false
}
