package planner

// promptFraming sits between the operator-supplied template and the live
// inventory block. The example lines show the model the exact inventory
// format so it can reference items by their bracketed ids.
const promptFraming = `

Inventory data must be formatted cleanly like:

Limited shelf life: [I-003] chicken (open), [I-014] salad bag

Fridge: ...

Freezer: ...

Pantry: ...

Here is my inventory now:

`

// BuildPrompt concatenates the template, the instructional framing and the
// formatted inventory into one prompt. Pure and deterministic.
func BuildPrompt(template, inventoryText string) string {
	return template + promptFraming + inventoryText + "\n"
}
