package utils

// Default chunking parameters for document ingestion. The overlap keeps a
// sentence that straddles a boundary retrievable from either chunk.
const (
	DefaultChunkSize    = 1500
	DefaultChunkOverlap = 200
)

// SplitText splits a long string into chunks of approximately chunkSize
// characters with the given overlap. Character-based on purpose: strict
// slicing is safer than losing data to a clever word-boundary heuristic.
func SplitText(text string, chunkSize int, overlap int) []string {
	if len(text) <= chunkSize {
		return []string{text}
	}

	var chunks []string
	runes := []rune(text)
	totalLen := len(runes)

	step := chunkSize - overlap
	if step <= 0 {
		step = chunkSize // fallback if overlap >= chunkSize
	}

	for i := 0; i < totalLen; i += step {
		end := i + chunkSize
		if end > totalLen {
			end = totalLen
		}

		chunks = append(chunks, string(runes[i:end]))

		if end == totalLen {
			break
		}
	}

	return chunks
}
