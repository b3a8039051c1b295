package mcs

import "context"

// ctxCheckInterval is how many ticks pass between context polls.  Must be a
// power of two.
const ctxCheckInterval = 1024

// SearchBudget is a monotonically increasing iteration counter with a fixed
// ceiling.  One budget belongs to one sub-search and is passed explicitly down
// its recursion; once exhausted every further Tick fails and the search
// unwinds reporting a timeout.  Cancelling the context exhausts the budget as
// well.
//
// A SearchBudget is not safe for concurrent use.
type SearchBudget struct {
	ctx      context.Context
	limit    int64
	used     int64
	exceeded bool
}

// NewSearchBudget returns a budget allowing limit ticks.  A limit of zero or
// less means unlimited; the context still applies.
func NewSearchBudget(ctx context.Context, limit int64) *SearchBudget {
	if ctx == nil {
		ctx = context.Background()
	}
	return &SearchBudget{ctx: ctx, limit: limit}
}

// Tick consumes one iteration and reports whether the search may continue.
func (b *SearchBudget) Tick() bool {
	if b.exceeded {
		return false
	}
	b.used++
	if b.limit > 0 && b.used > b.limit {
		b.exceeded = true
		return false
	}
	if b.used == 1 || b.used&(ctxCheckInterval-1) == 0 {
		if b.ctx.Err() != nil {
			b.exceeded = true
			return false
		}
	}
	return true
}

// Exceeded reports whether the budget has run out.
func (b *SearchBudget) Exceeded() bool { return b.exceeded }

// Used returns the number of ticks consumed, including the failing one.
func (b *SearchBudget) Used() int64 { return b.used }

// Limit returns the configured ceiling.
func (b *SearchBudget) Limit() int64 { return b.limit }
