package ledger

import (
	"fmt"
	"strings"
	"testing"
)

func TestUniqueAllocatorAcceptsFreshValues(t *testing.T) {
	n := 0
	alloc := NewUniqueAllocator(
		func() string {
			n++
			return fmt.Sprintf("user%d@example.com", n)
		},
		func(seq int64) string { return fmt.Sprintf("fallback%d@mail.com", seq) },
	)

	a := alloc.Next(1)
	b := alloc.Next(2)
	if a != "user1@example.com" || b != "user2@example.com" {
		t.Errorf("got %q, %q, want generator output in order", a, b)
	}
}

func TestUniqueAllocatorFallsBackOnCollision(t *testing.T) {
	alloc := NewUniqueAllocator(
		func() string { return "a@b.com" },
		func(seq int64) string { return fmt.Sprintf("user%d@gmail.com", seq) },
	)

	first := alloc.Next(1)
	if first != "a@b.com" {
		t.Fatalf("first value = %q, want a@b.com", first)
	}
	second := alloc.Next(7)
	if second != "user7@gmail.com" {
		t.Errorf("second value = %q, want fallback user7@gmail.com", second)
	}
	if !strings.Contains(second, "7") {
		t.Errorf("fallback %q does not carry the sequence number", second)
	}
}

func TestUniqueAllocatorNeverRepeats(t *testing.T) {
	alloc := NewUniqueAllocator(
		func() string { return "dup@b.com" },
		func(seq int64) string { return fmt.Sprintf("u%d@b.com", seq) },
	)

	seen := make(map[string]struct{})
	for i := int64(1); i <= 50; i++ {
		v := alloc.Next(i)
		if _, ok := seen[v]; ok {
			t.Fatalf("value %q issued twice", v)
		}
		seen[v] = struct{}{}
	}
}
