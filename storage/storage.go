// Package storage provides sources for the prompt template text.
package storage

import (
	"context"
	"errors"
)

// TemplateSource loads the prompt template the plan generator prepends to
// the inventory block.
type TemplateSource interface {
	Load(ctx context.Context) (string, error)
}

// StaticTemplateSource serves a template held in memory (typically decoded
// straight from the environment).
type StaticTemplateSource struct {
	Text string
}

func NewStaticTemplateSource(text string) *StaticTemplateSource {
	return &StaticTemplateSource{Text: text}
}

func (s *StaticTemplateSource) Load(ctx context.Context) (string, error) {
	return s.Text, nil
}

// TestTemplateSource is a simple in-memory implementation for testing.
type TestTemplateSource struct {
	text string
	err  error
}

func NewTestTemplateSource(text string) *TestTemplateSource {
	return &TestTemplateSource{text: text}
}

func NewTestTemplateSourceWithError() *TestTemplateSource {
	return &TestTemplateSource{err: errors.New("not found")}
}

func (t *TestTemplateSource) Load(ctx context.Context) (string, error) {
	if t.err != nil {
		return "", t.err
	}
	return t.text, nil
}
