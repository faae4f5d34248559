package budget

// Budget is a snapshot of the assistant token budget for one period.
// A zero limit means unlimited; remaining is then -1.
type Budget struct {
	tokensLimit     int64
	tokensUsed      int64
	tokensRemaining int64
	isExhausted     bool
	resetsAt        int64 // unix millis
}

// New creates a Budget snapshot.
func New(limit, used, remaining int64, resetsAt int64) Budget {
	return Budget{
		tokensLimit:     limit,
		tokensUsed:      used,
		tokensRemaining: remaining,
		isExhausted:     limit > 0 && remaining <= 0,
		resetsAt:        resetsAt,
	}
}

// TokensLimit returns the token cap.
func (b Budget) TokensLimit() int64 { return b.tokensLimit }

// TokensUsed returns tokens consumed in the period.
func (b Budget) TokensUsed() int64 { return b.tokensUsed }

// TokensRemaining returns tokens left, -1 when unlimited.
func (b Budget) TokensRemaining() int64 { return b.tokensRemaining }

// Unlimited reports whether no cap is configured.
func (b Budget) Unlimited() bool { return b.tokensLimit == 0 }

// IsExhausted reports whether the budget is spent.
func (b Budget) IsExhausted() bool { return b.isExhausted }

// ResetsAt returns the reset timestamp (unix millis).
func (b Budget) ResetsAt() int64 { return b.resetsAt }
