package notion

import (
	"strconv"
	"time"
)

// Page is a typed projection of a Notion page. Callers read fields through
// the named accessors below instead of walking raw nested maps.
type Page struct {
	ID          string              `json:"id"`
	CreatedTime time.Time           `json:"created_time"`
	Properties  map[string]Property `json:"properties"`
}

// Property carries one named attribute of a page. Only the attribute kinds
// the pipelines touch are modeled; Type is populated on reads.
type Property struct {
	Type     string        `json:"type,omitempty"`
	Title    []RichText    `json:"title,omitempty"`
	RichText []RichText    `json:"rich_text,omitempty"`
	Select   *SelectOption `json:"select,omitempty"`
	Checkbox *bool         `json:"checkbox,omitempty"`
	Date     *DateValue    `json:"date,omitempty"`
	UniqueID *UniqueID     `json:"unique_id,omitempty"`
}

// RichText holds PlainText on reads and Text on writes.
type RichText struct {
	PlainText string       `json:"plain_text,omitempty"`
	Text      *TextContent `json:"text,omitempty"`
}

type TextContent struct {
	Content string `json:"content"`
}

type SelectOption struct {
	Name string `json:"name"`
}

type DateValue struct {
	Start string `json:"start"`
}

// UniqueID is Notion's prefix+number identifier, e.g. prefix "I-" number 7.
type UniqueID struct {
	Prefix string `json:"prefix"`
	Number *int   `json:"number"`
}

// TitleValue returns the plain text of a title property, or "".
func (p Page) TitleValue(name string) string {
	return joinPlainText(p.Properties[name].Title)
}

// TextValue returns the plain text of a rich_text property, or "".
func (p Page) TextValue(name string) string {
	return joinPlainText(p.Properties[name].RichText)
}

// SelectValue returns the selected option name, or "".
func (p Page) SelectValue(name string) string {
	if s := p.Properties[name].Select; s != nil {
		return s.Name
	}
	return ""
}

// CheckboxValue returns the checkbox state, false when absent.
func (p Page) CheckboxValue(name string) bool {
	if b := p.Properties[name].Checkbox; b != nil {
		return *b
	}
	return false
}

// DateValue returns the start date of a date property, or nil.
func (p Page) DateValue(name string) *time.Time {
	d := p.Properties[name].Date
	if d == nil || d.Start == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", d.Start)
	if err != nil {
		// Dates may carry a full timestamp instead of a bare day.
		t, err = time.Parse(time.RFC3339, d.Start)
		if err != nil {
			return nil
		}
	}
	return &t
}

// UniqueIDValue renders a unique_id property as "<prefix><number>", or ""
// when prefix or number is missing.
func (p Page) UniqueIDValue(name string) string {
	uid := p.Properties[name].UniqueID
	if uid == nil || uid.Prefix == "" || uid.Number == nil {
		return ""
	}
	return uid.Prefix + strconv.Itoa(*uid.Number)
}

func joinPlainText(parts []RichText) string {
	out := ""
	for _, part := range parts {
		out += part.PlainText
	}
	return out
}

// Write-side property constructors.

func NewTitle(s string) Property {
	return Property{Title: []RichText{{Text: &TextContent{Content: s}}}}
}

func NewText(s string) Property {
	return Property{RichText: []RichText{{Text: &TextContent{Content: s}}}}
}

func NewSelect(name string) Property {
	return Property{Select: &SelectOption{Name: name}}
}

func NewCheckbox(v bool) Property {
	return Property{Checkbox: &v}
}

func NewDate(t time.Time) Property {
	return Property{Date: &DateValue{Start: t.Format("2006-01-02")}}
}
