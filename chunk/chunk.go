// CLAUDE:SUMMARY Token-budgeted chunking engine: structure-aware and semantic strategies, overlap seeding, importance ranking.
// Package chunk partitions extracted document content into token-budgeted,
// context-preserving chunks for generation. Two strategies are available:
// structure-aware (follows section boundaries and heading context) and
// semantic fallback (paragraph and sentence splitting). Both share one token
// estimation heuristic and one overlap policy.
//
// All functions are pure and stateless; concurrent chunking runs never share
// state.
package chunk

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hazyhaar/quizforge/docpipe"
)

// Metadata carries per-chunk annotations used for selection and prompting.
type Metadata struct {
	TokenCount int                 `json:"token_count"`
	WordCount  int                 `json:"word_count"`
	Type       docpipe.SectionType `json:"type"`
	Importance float64             `json:"importance"` // 0..1
	Topics     []string            `json:"topics"`
	// Context is the nearest preceding heading title, when known.
	Context string `json:"context,omitempty"`
}

// Chunk is one generation unit. IDs follow "chunk-<N>" with N ascending in
// document order, so sorting by numeric suffix recovers the original order.
type Chunk struct {
	ID            string           `json:"id"`
	Content       string           `json:"content"`
	Metadata      Metadata         `json:"metadata"`
	SourceSection *docpipe.Section `json:"source_section,omitempty"`
}

// Options tunes a chunking run.
type Options struct {
	// TargetTokens is the soft ceiling that triggers a chunk boundary.
	TargetTokens int
	// MaxTokens is the hard ceiling before a section is force-split by
	// sentence. A single sentence longer than MaxTokens stays intact.
	MaxTokens int
	// MinTokens merges an undersized trailing chunk into its predecessor.
	MinTokens int
	// OverlapTokens is the amount of trailing content repeated across
	// adjacent chunks for cross-chunk context.
	OverlapTokens int
	// MaxChunks caps the result; lowest-importance chunks are dropped first.
	MaxChunks int
	// PreserveStructure follows section boundaries when sections exist.
	PreserveStructure bool
	// PrioritizeImportant sorts output by importance instead of document order.
	PrioritizeImportant bool
}

func (o *Options) defaults() {
	if o.TargetTokens <= 0 {
		o.TargetTokens = 2000
	}
	if o.MaxTokens < o.TargetTokens {
		o.MaxTokens = o.TargetTokens * 3 / 2
	}
	if o.OverlapTokens < 0 {
		o.OverlapTokens = 0
	}
	if o.MaxChunks <= 0 {
		o.MaxChunks = 25
	}
}

// Split partitions extracted content into chunks under opts. Returns nil for
// empty content. When the whole document fits within TargetTokens a single
// full-coverage chunk with importance 1.0 is returned.
func Split(content *docpipe.ExtractedContent, opts Options) []Chunk {
	opts.defaults()
	if content == nil || strings.TrimSpace(content.Text) == "" {
		return nil
	}

	if EstimateTokens(content.Text) <= opts.TargetTokens {
		c := makeChunk(0, content.Text, "", nil)
		c.Metadata.Importance = 1.0
		return []Chunk{c}
	}

	var chunks []Chunk
	if opts.PreserveStructure && len(content.Sections) > 0 {
		chunks = splitStructured(content, opts)
	} else {
		chunks = splitSemantic(content.Text, opts)
	}

	chunks = mergeTrailingRunt(chunks, opts)
	return rankAndOptimize(chunks, opts)
}

// splitStructured iterates sections in document order, accumulating them
// into a working buffer. Headings update the running context; a section
// whose token estimate exceeds MaxTokens is split internally by sentence
// under the same target budget.
func splitStructured(content *docpipe.ExtractedContent, opts Options) []Chunk {
	b := newBuilder(opts)
	for i := range content.Sections {
		sec := &content.Sections[i]
		if sec.Type == docpipe.SectionHeading {
			b.context = sec.Title
		}

		tokens := EstimateTokens(sec.Content)
		if tokens > opts.MaxTokens {
			b.flush(false)
			for _, sub := range splitOversized(sec.Content, opts) {
				b.emit(sub, sec)
			}
			continue
		}

		if b.bufTokens+tokens > opts.TargetTokens && b.hasContent() {
			b.flush(true)
		}
		b.add(sec.Content, tokens, sec)
	}
	b.flush(false)
	return b.chunks
}

// splitSemantic is the fallback strategy for unstructured text: split by
// paragraph, sub-split oversized paragraphs by sentence, accumulate into
// budgeted chunks with the shared overlap policy.
func splitSemantic(text string, opts Options) []Chunk {
	b := newBuilder(opts)
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}

		tokens := EstimateTokens(para)
		if tokens > opts.MaxTokens {
			b.flush(false)
			for _, sub := range splitOversized(para, opts) {
				b.emit(sub, nil)
			}
			continue
		}

		if b.bufTokens+tokens > opts.TargetTokens && b.hasContent() {
			b.flush(true)
		}
		b.add(para, tokens, nil)
	}
	b.flush(false)
	return b.chunks
}

// splitOversized breaks a single oversized text span at sentence boundaries
// under the target budget, carrying a two-sentence trailing overlap into
// each following piece. A span that cannot be split (one sentence) is
// returned intact: the irreducible case.
func splitOversized(text string, opts Options) []string {
	sentences := splitSentences(text)
	if len(sentences) <= 1 {
		return []string{text}
	}

	var parts []string
	var cur []string
	curTokens := 0
	seed := 0 // leading sentences of cur carried over as overlap

	for _, s := range sentences {
		st := EstimateTokens(s)
		// Only flush once cur holds a sentence beyond the carried overlap;
		// otherwise huge sentences would emit overlap-only duplicates.
		if curTokens+st > opts.TargetTokens && len(cur) > seed {
			parts = append(parts, strings.Join(cur, " "))
			tail := cur
			if len(tail) > 2 {
				tail = tail[len(tail)-2:]
			}
			cur = append([]string(nil), tail...)
			seed = len(cur)
			curTokens = 0
			for _, ts := range cur {
				curTokens += EstimateTokens(ts)
			}
		}
		cur = append(cur, s)
		curTokens += st
	}
	if len(cur) > seed {
		parts = append(parts, strings.Join(cur, " "))
	}
	return parts
}

// builder accumulates content pieces and emits chunks with sequential IDs.
type builder struct {
	opts      Options
	chunks    []Chunk
	next      int
	context   string
	buf       []string
	bufTokens int
	seedCount int // leading buf items carried over as overlap, not new content
	src       *docpipe.Section
	srcCtx    string // context at the time the first real item was added
}

func newBuilder(opts Options) *builder {
	return &builder{opts: opts}
}

func (b *builder) hasContent() bool { return len(b.buf) > b.seedCount }

// add appends a content piece. A seed-only buffer that cannot absorb the
// piece under MaxTokens drops its seed first; overlap never pushes a chunk
// past the hard ceiling.
func (b *builder) add(text string, tokens int, src *docpipe.Section) {
	if !b.hasContent() {
		if b.bufTokens+tokens > b.opts.MaxTokens {
			b.buf = nil
			b.bufTokens = 0
			b.seedCount = 0
		}
		b.src = src
		b.srcCtx = b.context
	}
	b.buf = append(b.buf, text)
	b.bufTokens += tokens
}

// flush emits the buffered content as one chunk. With withOverlap set, the
// tail of the flushed buffer seeds the next one.
func (b *builder) flush(withOverlap bool) {
	if !b.hasContent() {
		return
	}
	content := strings.Join(b.buf, "\n\n")
	b.emitWithContext(content, b.src, b.srcCtx)

	var seed []string
	seedTokens := 0
	if withOverlap && b.opts.OverlapTokens > 0 {
		seed, seedTokens = overlapTail(b.buf, b.opts.OverlapTokens)
	}
	b.buf = seed
	b.bufTokens = seedTokens
	b.seedCount = len(seed)
	b.src = nil
	b.srcCtx = ""
}

func (b *builder) emit(content string, src *docpipe.Section) {
	b.emitWithContext(content, src, b.context)
}

func (b *builder) emitWithContext(content string, src *docpipe.Section, context string) {
	c := makeChunk(b.next, content, context, src)
	b.next++
	b.chunks = append(b.chunks, c)
}

// makeChunk assembles a chunk with derived metadata.
func makeChunk(n int, content, context string, src *docpipe.Section) Chunk {
	topics := extractTopics(content)
	secType := docpipe.SectionParagraph
	if src != nil {
		secType = src.Type
	}
	return Chunk{
		ID:      fmt.Sprintf("chunk-%d", n),
		Content: content,
		Metadata: Metadata{
			TokenCount: EstimateTokens(content),
			WordCount:  CountWords(content),
			Type:       secType,
			Importance: scoreImportance(content, topics, src),
			Topics:     topics,
			Context:    context,
		},
		SourceSection: src,
	}
}

// overlapTail walks backward through just-flushed items, accumulating whole
// items under the overlap budget. When the final item alone exceeds the
// budget, its trailing sentences are taken instead.
func overlapTail(items []string, budget int) ([]string, int) {
	var seed []string
	total := 0

	for i := len(items) - 1; i >= 0; i-- {
		tokens := EstimateTokens(items[i])
		if total+tokens > budget {
			if len(seed) == 0 {
				if tail, tt := sentenceTail(items[i], budget); tail != "" {
					seed = []string{tail}
					total = tt
				}
			}
			break
		}
		seed = append([]string{items[i]}, seed...)
		total += tokens
	}
	return seed, total
}

// sentenceTail returns the trailing sentences of text fitting the budget.
// Returns "" when even the last sentence is over budget.
func sentenceTail(text string, budget int) (string, int) {
	sentences := splitSentences(text)
	var tail []string
	total := 0
	for i := len(sentences) - 1; i >= 0; i-- {
		st := EstimateTokens(sentences[i])
		if total+st > budget {
			break
		}
		tail = append([]string{sentences[i]}, tail...)
		total += st
	}
	if len(tail) == 0 {
		return "", 0
	}
	return strings.Join(tail, " "), total
}

// scoreImportance assigns a 0..1 importance from structural and textual
// signals: heading source, high-confidence source, topic richness, sentence
// quality, and a usable word count.
func scoreImportance(content string, topics []string, src *docpipe.Section) float64 {
	score := 0.5
	if src != nil {
		if src.Type == docpipe.SectionHeading {
			score += 0.3
		}
		if src.Confidence > 0.8 {
			score += 0.2
		}
	}

	topicBonus := 0.05 * float64(len(topics))
	if topicBonus > 0.2 {
		topicBonus = 0.2
	}
	score += topicBonus

	if countWellFormedSentences(content) >= 3 {
		score += 0.1
	}

	wc := CountWords(content)
	if wc >= 50 && wc <= 500 {
		score += 0.1
	}
	if wc < 20 {
		score -= 0.3
	}

	return clamp01(score)
}

// mergeTrailingRunt folds a final chunk under MinTokens into its
// predecessor when the merge stays within the hard ceiling.
func mergeTrailingRunt(chunks []Chunk, opts Options) []Chunk {
	if opts.MinTokens <= 0 || len(chunks) < 2 {
		return chunks
	}
	last := &chunks[len(chunks)-1]
	prev := &chunks[len(chunks)-2]
	if last.Metadata.TokenCount >= opts.MinTokens {
		return chunks
	}
	if prev.Metadata.TokenCount+last.Metadata.TokenCount > opts.MaxTokens {
		return chunks
	}

	merged := makeChunk(0, prev.Content+"\n\n"+last.Content, prev.Metadata.Context, prev.SourceSection)
	merged.ID = prev.ID
	chunks[len(chunks)-2] = merged
	return chunks[:len(chunks)-1]
}

// rankAndOptimize applies the noise filter, the chunk-count cap, and the
// optional importance ordering. The cap (default 25) is a hard ceiling;
// callers estimating coverage must account for it.
func rankAndOptimize(chunks []Chunk, opts Options) []Chunk {
	kept := chunks[:0]
	for _, c := range chunks {
		if c.Metadata.WordCount < 5 || len(c.Content) < 20 {
			continue
		}
		kept = append(kept, c)
	}

	if len(kept) > opts.MaxChunks {
		ranked := make([]Chunk, len(kept))
		copy(ranked, kept)
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].Metadata.Importance > ranked[j].Metadata.Importance
		})
		keepIDs := make(map[string]bool, opts.MaxChunks)
		for _, c := range ranked[:opts.MaxChunks] {
			keepIDs[c.ID] = true
		}
		capped := kept[:0]
		for _, c := range kept {
			if keepIDs[c.ID] {
				capped = append(capped, c)
			}
		}
		kept = capped
	}

	if opts.PrioritizeImportant {
		sort.SliceStable(kept, func(i, j int) bool {
			return kept[i].Metadata.Importance > kept[j].Metadata.Importance
		})
	}
	return kept
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
