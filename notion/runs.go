package notion

import (
	"context"

	"dinneragent"
)

// Run-log database property names.
const (
	propRun           = "Run"
	propStatus        = "Status"
	propDateLine      = "Date line"
	propMeal1         = "Meal 1"
	propMeal2         = "Meal 2"
	propMeal3         = "Meal 3"
	propEncouragement = "Encouragement"
	propRawJSON       = "Raw JSON"
)

// RunStore appends run records to the run-log database and reads back the
// most recent one. Existing pages are never touched, which is what keeps the
// "latest OK never overwritten" guarantee.
type RunStore struct {
	client     *Client
	databaseID string
}

func NewRunStore(client *Client, databaseID string) *RunStore {
	return &RunStore{client: client, databaseID: databaseID}
}

func (s *RunStore) Create(ctx context.Context, run dinneragent.Run) error {
	props := map[string]Property{
		propRun:    NewTitle(run.Title),
		propStatus: NewSelect(string(run.Status)),
	}
	// Empty structured fields are omitted, matching the error-path records
	// that carry only a title, status and encouragement.
	setText(props, propDateLine, run.DateLine)
	setText(props, propMeal1, run.Meal1)
	setText(props, propMeal2, run.Meal2)
	setText(props, propMeal3, run.Meal3)
	setText(props, propEncouragement, run.Encouragement)
	setText(props, propRawJSON, run.RawJSON)

	_, err := s.client.CreatePage(ctx, s.databaseID, props)
	return err
}

// Latest returns the most recently created run, or ErrNoRunFound when the
// run log is empty.
func (s *RunStore) Latest(ctx context.Context) (dinneragent.Run, error) {
	pages, err := s.client.QueryDatabase(ctx, s.databaseID, Query{
		Sorts:    []Sort{{Timestamp: "created_time", Direction: "descending"}},
		PageSize: 1,
	})
	if err != nil {
		return dinneragent.Run{}, err
	}
	if len(pages) == 0 {
		return dinneragent.Run{}, dinneragent.ErrNoRunFound
	}
	return runFromPage(pages[0]), nil
}

func runFromPage(page Page) dinneragent.Run {
	return dinneragent.Run{
		PageID:        page.ID,
		Title:         page.TitleValue(propRun),
		Status:        dinneragent.RunStatus(page.SelectValue(propStatus)),
		DateLine:      page.TextValue(propDateLine),
		Meal1:         page.TextValue(propMeal1),
		Meal2:         page.TextValue(propMeal2),
		Meal3:         page.TextValue(propMeal3),
		Encouragement: page.TextValue(propEncouragement),
		RawJSON:       page.TextValue(propRawJSON),
		CreatedTime:   page.CreatedTime,
	}
}

func setText(props map[string]Property, name, value string) {
	if value != "" {
		props[name] = NewText(value)
	}
}
