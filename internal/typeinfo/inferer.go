package typeinfo

//go:generate mockgen -package typeinfo -source inferer.go -destination inferer_mock.go

import (
	"context"

	"jsxstream/internal/types"
)

// Inferer computes the exports of a file on a cache miss. The driver
// implements it with the parser and the inference pass.
type Inferer interface {
	Infer(ctx context.Context, path string, content []byte) (types.Exports, error)
}

// InfererFunc adapts a function to Inferer.
type InfererFunc func(ctx context.Context, path string, content []byte) (types.Exports, error)

func (f InfererFunc) Infer(ctx context.Context, path string, content []byte) (types.Exports, error) {
	return f(ctx, path, content)
}
