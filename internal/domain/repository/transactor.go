package repository

import "context"

// Transactor runs fn so that every repository write made with the ctx it
// receives commits or rolls back together.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Fields is a partial document for set-with-merge writes, keyed by stored field name.
type Fields map[string]interface{}
