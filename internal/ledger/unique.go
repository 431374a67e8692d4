package ledger

// uniqueAttempts bounds how many candidates are tried before falling back
// to the deterministic constructor.
const uniqueAttempts = 10

// UniqueAllocator hands out run-scoped unique string values. Candidates come
// from generate; after uniqueAttempts duplicates in a row the fallback value
// is used instead. The fallback must be collision-free by construction, so
// callers build it from the record's monotonic sequence number.
type UniqueAllocator struct {
	generate func() string
	fallback func(seq int64) string
	seen     map[string]struct{}
}

func NewUniqueAllocator(generate func() string, fallback func(seq int64) string) *UniqueAllocator {
	return &UniqueAllocator{
		generate: generate,
		fallback: fallback,
		seen:     make(map[string]struct{}),
	}
}

// Next returns a value not handed out before in this run. seq is the
// requesting record's sequence number.
func (a *UniqueAllocator) Next(seq int64) string {
	for i := 0; i < uniqueAttempts; i++ {
		v := a.generate()
		if _, dup := a.seen[v]; !dup {
			a.seen[v] = struct{}{}
			return v
		}
	}
	v := a.fallback(seq)
	a.seen[v] = struct{}{}
	return v
}
