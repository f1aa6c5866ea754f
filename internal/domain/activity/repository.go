package activity

import "context"

type Repository interface {
	Create(ctx context.Context, e Entry) error
	ListByAccount(ctx context.Context, account string, filter ListFilter) ([]Entry, error)
}

type ListFilter struct {
	Kinds []Kind
	Limit int
}

const (
	DefaultLimit = 20
	MaxLimit     = 200
)

// NormalizeLimit aplica default y tope; compartido por los repos.
func NormalizeLimit(n int) int {
	if n <= 0 {
		return DefaultLimit
	}
	if n > MaxLimit {
		return MaxLimit
	}
	return n
}
