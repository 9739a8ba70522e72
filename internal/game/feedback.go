package game

// Score implements the two-pass feedback algorithm.
//
// Pass 1:
//   - Mark exact matches as MarkExact.
//   - Count the secret letters at every non-exact position.
//
// Pass 2:
//   - For each unmarked attempt letter: if a count remains for that letter,
//     mark MarkPresent and decrement it; otherwise mark MarkAbsent.
//
// The number of non-absent marks for any letter never exceeds its count in
// secret, and duplicate credit goes to the leftmost attempt positions.
// If the lengths differ every position is MarkAbsent.
func Score(attempt, secret string) []Mark {
	n := len(attempt)
	res := make([]Mark, n)
	if len(secret) != n {
		for i := range res {
			res[i] = MarkAbsent
		}
		return res
	}

	remaining := make(map[byte]int, n)

	// First pass: exact matches and counts for the leftover secret letters.
	for i := 0; i < n; i++ {
		if attempt[i] == secret[i] {
			res[i] = MarkExact
		} else {
			remaining[secret[i]]++
		}
	}

	// Second pass: presents/absents for the non-exact positions.
	for i := 0; i < n; i++ {
		if res[i] == MarkExact {
			continue
		}
		c := attempt[i]
		if remaining[c] > 0 {
			res[i] = MarkPresent
			remaining[c]--
		} else {
			res[i] = MarkAbsent
		}
	}
	return res
}

