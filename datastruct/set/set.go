package set

// Intner is a source of uniformly distributed integers in [0, n).
// *math/rand.Rand and *golang.org/x/exp/rand.Rand both satisfy it.
type Intner interface {
	Intn(n int) int
}

type Set[E comparable] interface {
	Add(val E) bool
	Remove(val E) bool
	Has(val E) bool
	Len() int
	ToSlice() []E
	ForEach(consumer func(member E) bool)
	Intersect(another Set[E]) Set[E]
	Union(another Set[E]) Set[E]
	Diff(another Set[E]) Set[E]
	PollRandom(rnd Intner) (E, bool)
	RandomMember(rnd Intner) (E, bool)
	RandomMembers(rnd Intner, limit int) []E
	RandomDistinctMembers(rnd Intner, limit int) []E
}
