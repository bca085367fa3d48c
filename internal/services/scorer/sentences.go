package scorer

import "strings"

// splitSentences breaks text on sentence terminators and drops blanks.
func splitSentences(text string) []string {
	var sentences []string
	var b strings.Builder

	flush := func() {
		s := strings.TrimSpace(b.String())
		if s != "" {
			sentences = append(sentences, s)
		}
		b.Reset()
	}

	for _, r := range text {
		switch r {
		case '.', '!', '?':
			flush()
		default:
			b.WriteRune(r)
		}
	}
	flush()

	return sentences
}

// batchSentences slices sentences into consecutive groups of size n.
func batchSentences(sentences []string, n int) [][]string {
	if n <= 0 {
		return nil
	}
	var batches [][]string
	for i := 0; i < len(sentences); i += n {
		end := i + n
		if end > len(sentences) {
			end = len(sentences)
		}
		batches = append(batches, sentences[i:end])
	}
	return batches
}
