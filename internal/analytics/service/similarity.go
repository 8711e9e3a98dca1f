package service

import (
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/antzucaro/matchr"
)

// Scorer returns a similarity in [0..1] for two already folded names.
type Scorer func(a, b string) float64

const MetricRatio = "ratio"

var scorers = map[string]Scorer{
	MetricRatio:   sequenceRatio,
	"levenshtein": levenshteinSimilarity,
	"damerau":     damerauSimilarity,
	"jarowinkler": jaroWinklerSimilarity,
}

// ScorerFor picks a scorer by name; unknown or empty names get the ratio scorer.
func ScorerFor(metric string) Scorer {
	if s, ok := scorers[strings.ToLower(strings.TrimSpace(metric))]; ok {
		return s
	}
	return sequenceRatio
}

// KnownMetric reports whether ScorerFor would honour the name.
func KnownMetric(metric string) bool {
	_, ok := scorers[strings.ToLower(strings.TrimSpace(metric))]
	return ok
}

// Similarity scores two raw names with the given metric after case and
// whitespace folding.
func Similarity(metric, a, b string) float64 {
	return ScorerFor(metric)(foldForCompare(a), foldForCompare(b))
}

// sequenceRatio is 2*M/T where M is the number of runes covered by the
// matching blocks (longest common substring, then recursively left and right
// of it) and T is the combined length. Two empty strings score 1.
func sequenceRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	t := len(ra) + len(rb)
	if t == 0 {
		return 1
	}
	return 2 * float64(matchingRunes(ra, rb)) / float64(t)
}

func matchingRunes(a, b []rune) int {
	// позиции каждого символа в b, по возрастанию
	b2j := make(map[rune][]int, len(b))
	for j, r := range b {
		b2j[r] = append(b2j[r], j)
	}

	type span struct{ alo, ahi, blo, bhi int }
	queue := []span{{0, len(a), 0, len(b)}}
	total := 0
	for len(queue) > 0 {
		s := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		i, j, k := longestMatch(a, b2j, s.alo, s.ahi, s.blo, s.bhi)
		if k == 0 {
			continue
		}
		total += k
		if s.alo < i && s.blo < j {
			queue = append(queue, span{s.alo, i, s.blo, j})
		}
		if i+k < s.ahi && j+k < s.bhi {
			queue = append(queue, span{i + k, s.ahi, j + k, s.bhi})
		}
	}
	return total
}

// longestMatch finds the longest block a[i:i+k] == b[j:j+k] inside the given
// ranges. Among equally long blocks the one starting earliest in a wins, then
// earliest in b.
func longestMatch(a []rune, b2j map[rune][]int, alo, ahi, blo, bhi int) (besti, bestj, bestk int) {
	besti, bestj = alo, blo
	j2len := map[int]int{}
	for i := alo; i < ahi; i++ {
		next := map[int]int{}
		for _, j := range b2j[a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := j2len[j-1] + 1
			next[j] = k
			if k > bestk {
				besti, bestj, bestk = i-k+1, j-k+1, k
			}
		}
		j2len = next
	}
	return besti, bestj, bestk
}

func levenshteinSimilarity(a, b string) float64 {
	return distanceToSimilarity(levenshtein.ComputeDistance(a, b), a, b)
}

func damerauSimilarity(a, b string) float64 {
	return distanceToSimilarity(osaDistance(a, b), a, b)
}

// normalized edit distance: 1 - d/max(len)
func distanceToSimilarity(d int, a, b string) float64 {
	m := max(len([]rune(a)), len([]rune(b)))
	if m == 0 {
		return 1
	}
	return 1 - float64(d)/float64(m)
}

func jaroWinklerSimilarity(a, b string) float64 {
	if a == b {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}
	return matchr.JaroWinkler(a, b, true)
}
