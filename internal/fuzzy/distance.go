package fuzzy

// Distance returns the Levenshtein edit distance between a and b, counted in
// runes.
func Distance(a, b string) int {
	outer, inner := []rune(a), []rune(b)
	if len(outer) < len(inner) {
		outer, inner = inner, outer
	}

	prev := make([]int, len(inner)+1)
	cur := make([]int, len(inner)+1)
	for j := range prev {
		prev[j] = j
	}
	for i, or := range outer {
		cur[0] = i + 1
		for j, ir := range inner {
			cost := 1
			if or == ir {
				cost = 0
			}
			cur[j+1] = min(prev[j+1]+1, cur[j]+1, prev[j]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(inner)]
}
