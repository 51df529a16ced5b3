package match

// SequenceMetric is a Ratcliff/Obershelp similarity ratio: twice the number
// of matching characters over the total length of both strings. Matching
// characters are found by recursively locating the longest common substring
// and matching to its left and right.
type SequenceMetric struct{}

// Ratio returns the similarity of a and b in [0,1]. Comparison is
// byte-exact; no case folding is applied so results cannot vary by locale.
func (SequenceMetric) Ratio(a, b string) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return 1.0
	}
	matches := matchingBlocks(a, b)
	return 2.0 * float64(matches) / float64(total)
}

func matchingBlocks(a, b string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	ai, bi, size := longestMatch(a, b)
	if size == 0 {
		return 0
	}
	return size +
		matchingBlocks(a[:ai], b[:bi]) +
		matchingBlocks(a[ai+size:], b[bi+size:])
}

// longestMatch finds the leftmost longest common substring of a and b,
// returning its start in each string and its length.
func longestMatch(a, b string) (besti, bestj, bestSize int) {
	// b2j: positions of each byte in b.
	b2j := make(map[byte][]int, len(b))
	for j := 0; j < len(b); j++ {
		b2j[b[j]] = append(b2j[b[j]], j)
	}

	// j2len[j] = length of the match ending at a[i-1], b[j-1].
	j2len := make(map[int]int)
	for i := 0; i < len(a); i++ {
		newj2len := make(map[int]int)
		for _, j := range b2j[a[i]] {
			k := j2len[j-1] + 1
			newj2len[j] = k
			if k > bestSize {
				besti = i - k + 1
				bestj = j - k + 1
				bestSize = k
			}
		}
		j2len = newj2len
	}
	return besti, bestj, bestSize
}
