package engine

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const (
	// DefaultContextItems caps Context output when maxItems is unset.
	DefaultContextItems = 5

	// contextExcerptLen truncates long memories in context output.
	contextExcerptLen = 400
)

// Context recalls memories for the query and formats them as one block
// ready for prompt injection. Scoring and access tracking are Recall's;
// this only layers presentation on top.
func (e *Engine) Context(ctx context.Context, query string, maxItems int) (string, error) {
	if maxItems <= 0 {
		maxItems = DefaultContextItems
	}

	results, err := e.Recall(ctx, query, maxItems)
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return "", nil
	}

	now := e.clock().UTC()
	var b strings.Builder
	b.WriteString("Relevant memories:\n")
	for i, r := range results {
		content := r.Record.Content
		if len(content) > contextExcerptLen {
			content = content[:contextExcerptLen] + "..."
		}
		fmt.Fprintf(&b, "%d. [%s] %s (%s)\n", i+1, r.Record.Type, content, relativeAge(r.Record.CreatedAt, now))
	}
	return b.String(), nil
}

// relativeAge renders how long ago t was, coarsely.
func relativeAge(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
