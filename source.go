package vista

import "context"

// DataSource fetches the item list for a position and category.
//
// Fetch returns a channel that yields exactly one terminal ViewState
// (StatusSuccess with items, or StatusError) and is then closed. Canceling
// ctx abandons the fetch: implementations must release any timers or
// goroutines they hold and must not emit afterwards.
type DataSource interface {
	Fetch(ctx context.Context, position int, category string) (<-chan ViewState, error)
}

// SourceFunc adapts a function into a DataSource.
type SourceFunc func(ctx context.Context, position int, category string) (<-chan ViewState, error)

// Fetch calls f.
func (f SourceFunc) Fetch(ctx context.Context, position int, category string) (<-chan ViewState, error) {
	return f(ctx, position, category)
}

// Ensure SourceFunc implements DataSource.
var _ DataSource = SourceFunc(nil)
