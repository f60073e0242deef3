package sequence

import (
	"context"
	"fmt"
)

// Counter reports how many records of a collection exist.
type Counter func(ctx context.Context) (int, error)

// Generator derives the next id from the size of a collection, so ids are
// 1-based and sequential as long as records are only ever appended and one
// session owns the collection.
type Generator struct {
	count Counter
}

func New(count Counter) *Generator {
	return &Generator{count: count}
}

func (g *Generator) GetID(ctx context.Context) (int, error) {
	n, err := g.count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}

	return n + 1, nil
}
