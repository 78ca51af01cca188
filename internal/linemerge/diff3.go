package linemerge

import "strings"

// fallbackMerge3 is a pure-Go line-level three-way merge used only when the
// git binary isn't available. It aligns base against left and against right
// with a longest-common-subsequence diff, uses base lines common to both
// diffs as synchronization anchors, and falls back to diff3-style conflict
// markers (with a base section, matching git merge-file --diff3's own
// format) wherever the two sides changed a region differently.
func fallbackMerge3(base, left, right string) (merged string, conflicted bool, err error) {
	baseLines := splitLines(base)
	leftLines := splitLines(left)
	rightLines := splitLines(right)

	leftMatch := lcsMatch(baseLines, leftLines)
	rightMatch := lcsMatch(baseLines, rightLines)

	type anchor struct{ base, left, right int }
	anchors := []anchor{{-1, -1, -1}}
	for b := 0; b < len(baseLines); b++ {
		l, okL := leftMatch[b]
		r, okR := rightMatch[b]
		if okL && okR {
			anchors = append(anchors, anchor{b, l, r})
		}
	}
	anchors = append(anchors, anchor{len(baseLines), len(leftLines), len(rightLines)})

	var out []string
	for i := 1; i < len(anchors); i++ {
		prev, cur := anchors[i-1], anchors[i]
		baseSeg := baseLines[prev.base+1 : cur.base]
		leftSeg := leftLines[prev.left+1 : cur.left]
		rightSeg := rightLines[prev.right+1 : cur.right]

		switch {
		case linesEqual(leftSeg, baseSeg):
			out = append(out, rightSeg...)
		case linesEqual(rightSeg, baseSeg):
			out = append(out, leftSeg...)
		case linesEqual(leftSeg, rightSeg):
			out = append(out, leftSeg...)
		default:
			conflicted = true
			out = append(out, "<<<<<<< LEFT")
			out = append(out, leftSeg...)
			out = append(out, "||||||| BASE")
			out = append(out, baseSeg...)
			out = append(out, "=======")
			out = append(out, rightSeg...)
			out = append(out, ">>>>>>> RIGHT")
		}

		if cur.base < len(baseLines) {
			out = append(out, baseLines[cur.base])
		}
	}

	return strings.Join(out, "\n"), conflicted, nil
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

func linesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// lcsMatch computes a longest-common-subsequence alignment between a and b,
// returning a map from index in a to the aligned index in b for every line
// that participates in the LCS.
func lcsMatch(a, b []string) map[int]int {
	n, m := len(a), len(b)
	dp := make([][]int, n+1)
	for i := range dp {
		dp[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if a[i] == b[j] {
				dp[i][j] = dp[i+1][j+1] + 1
			} else if dp[i+1][j] >= dp[i][j+1] {
				dp[i][j] = dp[i+1][j]
			} else {
				dp[i][j] = dp[i][j+1]
			}
		}
	}

	match := make(map[int]int)
	i, j := 0, 0
	for i < n && j < m {
		switch {
		case a[i] == b[j]:
			match[i] = j
			i++
			j++
		case dp[i+1][j] >= dp[i][j+1]:
			i++
		default:
			j++
		}
	}
	return match
}
