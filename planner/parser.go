package planner

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"

	"dinneragent"
)

// rawJSONMaxLen caps the stored copy of the JSON block; the record store's
// rich-text fields have a hard size limit.
const rawJSONMaxLen = 2000

// jsonBlockRE greedily matches from the first '{' to the last '}' anchored
// at the end of the text. The model is instructed to place the JSON object
// as the final content block; if it emits two objects the match spans both
// and fails JSON parsing rather than guessing which one was meant.
var jsonBlockRE = regexp.MustCompile(`(?s)\{.*\}\s*$`)

// bulletMarkerRE strips a leading bullet marker and the whitespace after it.
var bulletMarkerRE = regexp.MustCompile(`^[•\-\*]\s*`)

// planSchema is the contract for the machine-readable block: an object with
// a meals array. Prose around it is free-form; this is the only part
// consumed programmatically downstream.
var planSchema = &jsonschema.Schema{
	Type: "object",
	Properties: map[string]*jsonschema.Schema{
		"meals": {Type: "array"},
	},
	Required: []string{"meals"},
}

var resolvedPlanSchema *jsonschema.Resolved

func init() {
	resolved, err := planSchema.Resolve(nil)
	if err != nil {
		panic(fmt.Sprintf("resolve plan schema: %v", err))
	}
	resolvedPlanSchema = resolved
}

// ParseResult holds the structured fields extracted from one model reply.
type ParseResult struct {
	DateLine      string
	Meal1         string
	Meal2         string
	Meal3         string
	Encouragement string

	// RawJSON is the matched block, truncated to rawJSONMaxLen for storage.
	RawJSON string

	// Plan is the validated payload decoded from the block.
	Plan dinneragent.MealPlan
}

// ParseResponse extracts the structured fields from a raw completion reply.
//
// The prose heuristics are deliberately permissive (the upstream text is not
// contractually structured) while the JSON contract is strict. Extraction
// order matters:
//
//  1. lines = trimmed, non-empty lines in original order
//  2. date line = first line
//  3. meals 1..3 = first three bullet lines (•, - or *), marker stripped
//  4. encouragement = first plain prose line: not the date line, not a
//     bullet, not part of the JSON block
//  5. trailing { ... } block, parsed and shape-checked
//
// The three JSON failure modes are distinct: ErrMissingJSONBlock when no
// trailing block exists, ErrInvalidJSON when it does not parse, and
// ErrMissingMealsArray when it parses but lacks a meals array.
func ParseResponse(text string) (ParseResult, error) {
	var res ParseResult

	lines := make([]string, 0)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}

	if len(lines) > 0 {
		res.DateLine = lines[0]
	}

	meals := make([]string, 0, 3)
	for _, line := range lines {
		if !isBullet(line) {
			continue
		}
		meals = append(meals, bulletMarkerRE.ReplaceAllString(line, ""))
		if len(meals) == 3 {
			break
		}
	}
	if len(meals) > 0 {
		res.Meal1 = meals[0]
	}
	if len(meals) > 1 {
		res.Meal2 = meals[1]
	}
	if len(meals) > 2 {
		res.Meal3 = meals[2]
	}

	for _, line := range lines {
		if line == res.DateLine || isBullet(line) ||
			strings.HasPrefix(line, "{") || strings.HasPrefix(line, "}") {
			continue
		}
		res.Encouragement = line
		break
	}

	raw := jsonBlockRE.FindString(text)
	if raw == "" {
		return res, dinneragent.ErrMissingJSONBlock
	}
	raw = strings.TrimSpace(raw)

	res.RawJSON = raw
	if len(res.RawJSON) > rawJSONMaxLen {
		res.RawJSON = res.RawJSON[:rawJSONMaxLen]
	}

	var value any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return res, dinneragent.ErrInvalidJSON
	}
	if err := resolvedPlanSchema.Validate(value); err != nil {
		return res, dinneragent.ErrMissingMealsArray
	}
	if err := json.Unmarshal([]byte(raw), &res.Plan); err != nil {
		return res, fmt.Errorf("%w: %v", dinneragent.ErrMissingMealsArray, err)
	}

	return res, nil
}

func isBullet(line string) bool {
	return strings.HasPrefix(line, "•") ||
		strings.HasPrefix(line, "-") ||
		strings.HasPrefix(line, "*")
}
