package notion

import (
	"context"
	"time"

	"dinneragent"
)

// Inventory database property names.
const (
	propItem     = "Item"
	propCategory = "Category"
	propNote     = "Note"
	propID       = "ID"
	propInStock  = "In stock"
	propLastUsed = "Last used"
)

// InventoryStore reads and updates the inventory database. It never creates
// or archives pages.
type InventoryStore struct {
	client     *Client
	databaseID string
}

func NewInventoryStore(client *Client, databaseID string) *InventoryStore {
	return &InventoryStore{client: client, databaseID: databaseID}
}

// InStock returns every item whose "In stock" checkbox is set. Items with a
// missing title or id are returned as-is; the formatter and updater apply
// their own invariants.
func (s *InventoryStore) InStock(ctx context.Context) ([]dinneragent.InventoryItem, error) {
	pages, err := s.client.QueryDatabase(ctx, s.databaseID, Query{
		Filter: &Filter{Property: propInStock, Checkbox: &CheckboxFilter{Equals: true}},
	})
	if err != nil {
		return nil, err
	}

	items := make([]dinneragent.InventoryItem, 0, len(pages))
	for _, page := range pages {
		items = append(items, itemFromPage(page))
	}
	return items, nil
}

// MarkUsed clears the stock flag and stamps the usage date on one page.
func (s *InventoryStore) MarkUsed(ctx context.Context, pageID string, day time.Time) error {
	return s.client.UpdatePage(ctx, pageID, map[string]Property{
		propInStock:  NewCheckbox(false),
		propLastUsed: NewDate(day),
	})
}

func itemFromPage(page Page) dinneragent.InventoryItem {
	category := dinneragent.Category(page.SelectValue(propCategory))
	if category == "" {
		category = dinneragent.CategoryPantry
	}
	return dinneragent.InventoryItem{
		PageID:   page.ID,
		ID:       page.UniqueIDValue(propID),
		Title:    page.TitleValue(propItem),
		Category: category,
		Note:     page.TextValue(propNote),
		InStock:  page.CheckboxValue(propInStock),
		LastUsed: page.DateValue(propLastUsed),
	}
}
