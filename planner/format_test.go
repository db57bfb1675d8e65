package planner_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dinneragent"
	"dinneragent/planner"
)

func TestFormatInventory(t *testing.T) {
	tests := []struct {
		name  string
		items []dinneragent.InventoryItem
		want  string
	}{
		{
			name:  "no items yields four empty buckets",
			items: nil,
			want:  "Limited shelf life: \nFridge: \nFreezer: \nPantry: ",
		},
		{
			name: "items land in their buckets with notes",
			items: []dinneragent.InventoryItem{
				{ID: "I-3", Title: "chicken", Category: dinneragent.CategoryFridge, Note: "open"},
				{ID: "I-14", Title: "salad bag", Category: dinneragent.CategoryLimitedShelfLife},
				{ID: "I-7", Title: "rice", Category: dinneragent.CategoryPantry},
			},
			want: "Limited shelf life: [I-14] salad bag\nFridge: [I-3] chicken (open)\nFreezer: \nPantry: [I-7] rice",
		},
		{
			name: "bucket order is fixed regardless of input order",
			items: []dinneragent.InventoryItem{
				{ID: "I-2", Title: "peas", Category: dinneragent.CategoryFreezer},
				{ID: "I-1", Title: "milk", Category: dinneragent.CategoryFridge},
			},
			want: "Limited shelf life: \nFridge: [I-1] milk\nFreezer: [I-2] peas\nPantry: ",
		},
		{
			name: "within-category order follows input order",
			items: []dinneragent.InventoryItem{
				{ID: "I-9", Title: "beans", Category: dinneragent.CategoryPantry},
				{ID: "I-4", Title: "flour", Category: dinneragent.CategoryPantry},
			},
			want: "Limited shelf life: \nFridge: \nFreezer: \nPantry: [I-9] beans, [I-4] flour",
		},
		{
			name: "items without title or id are dropped",
			items: []dinneragent.InventoryItem{
				{ID: "", Title: "ghost", Category: dinneragent.CategoryPantry},
				{ID: "I-5", Title: "", Category: dinneragent.CategoryPantry},
				{ID: "I-6", Title: "pasta", Category: dinneragent.CategoryPantry},
			},
			want: "Limited shelf life: \nFridge: \nFreezer: \nPantry: [I-6] pasta",
		},
		{
			name: "unknown category is dropped",
			items: []dinneragent.InventoryItem{
				{ID: "I-8", Title: "cumin", Category: dinneragent.Category("Spice rack")},
			},
			want: "Limited shelf life: \nFridge: \nFreezer: \nPantry: ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, planner.FormatInventory(tt.items))
		})
	}
}

// The four category labels appear in fixed order for any input.
func TestFormatInventory_LabelsAlwaysPresent(t *testing.T) {
	inputs := [][]dinneragent.InventoryItem{
		nil,
		{{ID: "I-1", Title: "milk", Category: dinneragent.CategoryFridge}},
		{{ID: "I-2", Title: "peas", Category: dinneragent.CategoryFreezer}, {ID: "I-3", Title: "rice", Category: dinneragent.CategoryPantry}},
	}

	for _, items := range inputs {
		lines := strings.Split(planner.FormatInventory(items), "\n")
		require.Len(t, lines, 4)
		assert.True(t, strings.HasPrefix(lines[0], "Limited shelf life: "))
		assert.True(t, strings.HasPrefix(lines[1], "Fridge: "))
		assert.True(t, strings.HasPrefix(lines[2], "Freezer: "))
		assert.True(t, strings.HasPrefix(lines[3], "Pantry: "))
	}
}
