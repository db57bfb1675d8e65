// Package mock provides a deterministic completion backend for tests and
// local demos without an inference endpoint.
package mock

import (
	"context"
	"log/slog"
)

// DefaultReply is a well-formed model reply: date line, encouragement,
// three bullets and a trailing JSON block.
const DefaultReply = `Monday Dinner Plan
You're doing great!
• Chicken stir fry
• Pasta
• Soup
{"meals":[{"id":"M1","title":"Chicken stir fry","items":["I-1"]},{"id":"M2","title":"Pasta","items":[]},{"id":"M3","title":"Soup","items":[]}]}`

type Client struct {
	replies []string
	err     error
	calls   int
}

// NewClient returns a client that replays the given replies in order,
// repeating the last one once exhausted. With no replies it serves
// DefaultReply.
func NewClient(replies ...string) *Client {
	if len(replies) == 0 {
		replies = []string{DefaultReply}
	}
	return &Client{replies: replies}
}

// NewClientWithError returns a client whose Complete always fails.
func NewClientWithError(err error) *Client {
	return &Client{err: err}
}

func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	slog.Info("LLM_CLIENT: Invoked", "prompt_len", len(prompt), "call", c.calls+1)

	if c.err != nil {
		return "", c.err
	}

	i := c.calls
	if i >= len(c.replies) {
		i = len(c.replies) - 1
	}
	c.calls++
	return c.replies[i], nil
}
