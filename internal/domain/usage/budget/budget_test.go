package budget

import "testing"

func TestNew(t *testing.T) {
	b := New(1000000, 384200, 615800, 1700000000000)
	if b.TokensLimit() != 1000000 {
		t.Errorf("TokensLimit() = %d", b.TokensLimit())
	}
	if b.TokensUsed() != 384200 {
		t.Errorf("TokensUsed() = %d", b.TokensUsed())
	}
	if b.TokensRemaining() != 615800 {
		t.Errorf("TokensRemaining() = %d", b.TokensRemaining())
	}
	if b.IsExhausted() {
		t.Error("IsExhausted() = true, want false")
	}
	if b.ResetsAt() != 1700000000000 {
		t.Errorf("ResetsAt() = %d", b.ResetsAt())
	}
}

func TestNew_Exhausted(t *testing.T) {
	b := New(1000, 1200, 0, 0)
	if !b.IsExhausted() {
		t.Error("IsExhausted() = false, want true")
	}
}

func TestNew_Unlimited(t *testing.T) {
	b := New(0, 5000, -1, 0)
	if !b.Unlimited() {
		t.Error("Unlimited() = false, want true")
	}
	if b.IsExhausted() {
		t.Error("unlimited budget cannot be exhausted")
	}
}
