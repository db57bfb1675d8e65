// Package planner implements the two pipelines: plan generation
// (inventory → prompt → completion → parse → persist) and meal consumption
// (latest run → meal resolution → inventory updates).
package planner

import (
	"fmt"
	"strings"

	"dinneragent"
)

// FormatInventory renders in-stock items into the four fixed category
// buckets, in display order, one line per bucket:
//
//	Limited shelf life: [I-3] chicken (open), [I-14] salad bag
//	Fridge: ...
//
// Items with a missing title or id are silently dropped, as are items in an
// unknown category. Within a bucket, input order is preserved.
func FormatInventory(items []dinneragent.InventoryItem) string {
	grouped := make(map[dinneragent.Category][]string, len(dinneragent.Categories))
	for _, cat := range dinneragent.Categories {
		grouped[cat] = []string{}
	}

	for _, item := range items {
		if item.Title == "" || item.ID == "" {
			continue
		}
		entries, ok := grouped[item.Category]
		if !ok {
			continue
		}

		entry := fmt.Sprintf("[%s] %s", item.ID, item.Title)
		if item.Note != "" {
			entry = fmt.Sprintf("[%s] %s (%s)", item.ID, item.Title, item.Note)
		}
		grouped[item.Category] = append(entries, entry)
	}

	lines := make([]string, 0, len(dinneragent.Categories))
	for _, cat := range dinneragent.Categories {
		lines = append(lines, fmt.Sprintf("%s: %s", cat, strings.Join(grouped[cat], ", ")))
	}
	return strings.Join(lines, "\n")
}
