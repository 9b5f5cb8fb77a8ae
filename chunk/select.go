// CLAUDE:SUMMARY Token-budget chunk selection: whole set when it fits, greedy by importance otherwise, output in document order.
package chunk

import (
	"sort"
	"strconv"
	"strings"
)

// SelectWithinBudget chooses the subset of chunks whose combined token count
// fits budget. When everything fits the full set is returned; otherwise
// chunks are taken greedily by descending importance. The result is always
// ordered by document position regardless of selection order, so the
// narrative reads front to back.
func SelectWithinBudget(chunks []Chunk, budget int) []Chunk {
	if len(chunks) == 0 {
		return nil
	}

	total := 0
	for _, c := range chunks {
		total += c.Metadata.TokenCount
	}
	selected := make([]Chunk, len(chunks))
	copy(selected, chunks)

	if budget > 0 && total > budget {
		sort.SliceStable(selected, func(i, j int) bool {
			return selected[i].Metadata.Importance > selected[j].Metadata.Importance
		})
		used := 0
		picked := selected[:0]
		for _, c := range selected {
			if used+c.Metadata.TokenCount > budget {
				continue
			}
			picked = append(picked, c)
			used += c.Metadata.TokenCount
		}
		selected = picked
	}

	sort.SliceStable(selected, func(i, j int) bool {
		return chunkOrdinal(selected[i].ID) < chunkOrdinal(selected[j].ID)
	})
	return selected
}

// chunkOrdinal extracts the numeric suffix from a "chunk-<N>" id. Unparsable
// ids sort last.
func chunkOrdinal(id string) int {
	idx := strings.LastIndexByte(id, '-')
	if idx < 0 || idx+1 >= len(id) {
		return int(^uint(0) >> 1)
	}
	n, err := strconv.Atoi(id[idx+1:])
	if err != nil {
		return int(^uint(0) >> 1)
	}
	return n
}
