package jsonlit

import (
	"context"
	"strings"
)

// ListCommand lists document ids in a store.
type ListCommand struct {
	Store DocumentStore
}

// NewListCommand creates a ListCommand with explicit dependencies.
func NewListCommand(store DocumentStore) *ListCommand {
	return &ListCommand{
		Store: store,
	}
}

// ListResult holds the result of a list operation.
type ListResult struct {
	IDs []string
}

// Run lists documents matching pattern. An empty pattern lists every document.
func (c *ListCommand) Run(_ context.Context, pattern string) (ListResult, error) {
	ids, err := c.Store.List(pattern)
	if err != nil {
		return ListResult{}, err
	}
	return ListResult{IDs: ids}, nil
}

// Format prints one id per line.
func (r ListResult) Format(_ FormatOptions) FormatResult {
	if len(r.IDs) == 0 {
		return FormatResult{}
	}
	return FormatResult{Stdout: strings.Join(r.IDs, "\n") + "\n"}
}
