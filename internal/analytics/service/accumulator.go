package service

// Accumulator sums quantities per canonical material name, folding spelling
// variants into the first key that was stored for their cluster.
// Not safe for concurrent use; build one per aggregation run.
type Accumulator struct {
	threshold float64
	score     Scorer

	keys   []string // порядок вставки
	folded []string // keys[i] в виде для сравнения
	totals map[string]int64
}

func NewAccumulator(threshold float64, score Scorer) *Accumulator {
	if score == nil {
		score = sequenceRatio
	}
	return &Accumulator{
		threshold: threshold,
		score:     score,
		totals:    make(map[string]int64),
	}
}

// Add canonicalizes name and adds qty to the closest existing key scoring at
// least the threshold, or to a new key when nothing is close enough.
// It returns the key that received the quantity.
func (a *Accumulator) Add(name string, qty int64) string {
	key := a.Match(Canonicalize(name))
	if _, ok := a.totals[key]; !ok {
		a.keys = append(a.keys, key)
		a.folded = append(a.folded, foldForCompare(key))
	}
	a.totals[key] += qty
	return key
}

// Match returns the stored key a canonical name would merge into, or the name
// itself when no stored key is similar enough. Each key is scored as
// score(key, name); the ratio is not symmetric. Equal best scores resolve to
// the key inserted first.
func (a *Accumulator) Match(canonical string) string {
	if _, ok := a.totals[canonical]; ok {
		return canonical
	}
	cmp := foldForCompare(canonical)
	best, bestScore := -1, -1.0
	for i, k := range a.folded {
		s := a.score(k, cmp)
		if s >= a.threshold && s > bestScore {
			best, bestScore = i, s
		}
	}
	if best < 0 {
		return canonical
	}
	return a.keys[best]
}

// Get returns the accumulated quantity for key, 0 when absent.
func (a *Accumulator) Get(key string) int64 { return a.totals[key] }

// Has reports whether key is stored.
func (a *Accumulator) Has(key string) bool {
	_, ok := a.totals[key]
	return ok
}

// Keys returns stored keys in insertion order.
func (a *Accumulator) Keys() []string {
	out := make([]string, len(a.keys))
	copy(out, a.keys)
	return out
}

func (a *Accumulator) Len() int { return len(a.keys) }

// Total is the sum of every quantity ever added.
func (a *Accumulator) Total() int64 {
	var sum int64
	for _, v := range a.totals {
		sum += v
	}
	return sum
}
