package analyze

const (
	// DefaultBatchChars bounds the approximate size of one classifier
	// request.
	DefaultBatchChars = 40_000
	// commitOverhead approximates the per-commit prompt framing.
	commitOverhead = 400
)

// approxLen estimates a commit's contribution to a batch.
func approxLen(c EnrichedCommit) int {
	return len(c.Message) + len(c.DiffSnippet) + commitOverhead
}

// SplitIntoBatches greedily packs commits, in input order, into batches
// whose accumulated approxLen stays within maxChars. A single commit larger
// than the whole budget is placed alone rather than dropped or split. The
// result is a stable partition of the input.
func SplitIntoBatches(commits []EnrichedCommit, maxChars int) [][]EnrichedCommit {
	if maxChars <= 0 {
		maxChars = DefaultBatchChars
	}
	var batches [][]EnrichedCommit
	var current []EnrichedCommit
	size := 0
	for _, c := range commits {
		n := approxLen(c)
		if len(current) > 0 && size+n > maxChars {
			batches = append(batches, current)
			current = nil
			size = 0
		}
		current = append(current, c)
		size += n
	}
	if len(current) > 0 {
		batches = append(batches, current)
	}
	return batches
}
