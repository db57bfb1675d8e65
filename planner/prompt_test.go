package planner_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"dinneragent/planner"
)

func TestBuildPrompt(t *testing.T) {
	template := "Plan three dinners from my inventory."
	inventory := "Fridge: [I-1] chicken"

	prompt := planner.BuildPrompt(template, inventory)

	assert.True(t, strings.HasPrefix(prompt, template))
	assert.Contains(t, prompt, "Inventory data must be formatted cleanly like:")
	assert.Contains(t, prompt, "Here is my inventory now:")
	assert.True(t, strings.HasSuffix(prompt, inventory+"\n"))

	// The framing sits between template and inventory.
	assert.Less(t, strings.Index(prompt, template), strings.Index(prompt, "Here is my inventory now:"))
	assert.Less(t, strings.Index(prompt, "Here is my inventory now:"), strings.Index(prompt, inventory))

	// Pure function: same inputs, same prompt.
	assert.Equal(t, prompt, planner.BuildPrompt(template, inventory))
}
