package domain

import "context"

type StateRepository interface {
	Insert(ctx context.Context, s IndicatorState) (int64, error)
	Latest(ctx context.Context) (IndicatorState, bool, error)
	ListRecent(ctx context.Context, limit int) ([]IndicatorState, error)
	Prune(ctx context.Context, keep int) (int64, error)
}
