package rag

import (
	"fmt"
	"strings"

	"github.com/jaisngh/arxiv-rag/internal/store"
)

const (
	// maxContextAuthors is the number of authors listed per context block
	// before the list is truncated with an "et al." suffix.
	maxContextAuthors = 3
	etAlSuffix        = " et al."

	// blockSeparator joins the per-paper context blocks.
	blockSeparator = "\n---\n"
)

// systemInstruction carries the four prompt directives: research-assistant
// role, answer only from the provided papers, acknowledge insufficiency,
// cite arXiv IDs inline.
const systemInstruction = `You are a helpful research assistant with expertise in analyzing scientific papers.
Use the following research papers to answer the user's question. Base your answer on the provided papers.
If the papers don't contain enough information to fully answer the question, acknowledge this limitation.
Always cite which paper(s) you're referencing in your answer using their arXiv IDs.`

// noResultsAnswer is the designed fallback when retrieval comes back
// empty. It is not a failure.
const noResultsAnswer = "I couldn't find any relevant papers in the database. Please try indexing some papers first."

// formatAuthors renders the ordered author list, truncated after the
// first three with an "et al." suffix.
func formatAuthors(authors []string) string {
	if len(authors) <= maxContextAuthors {
		return strings.Join(authors, ", ")
	}
	return strings.Join(authors[:maxContextAuthors], ", ") + etAlSuffix
}

// buildContext renders one block per retrieved paper, 1-indexed, in
// retrieval order, with the full untruncated abstract.
func buildContext(matches []store.Match) string {
	blocks := make([]string, 0, len(matches))
	for i, m := range matches {
		blocks = append(blocks, fmt.Sprintf(
			"[Paper %d]\nTitle: %s\nAuthors: %s\narXiv ID: %s\nAbstract: %s\n",
			i+1, m.Title, formatAuthors(m.Authors), m.ArxivID, m.Abstract,
		))
	}
	return strings.Join(blocks, blockSeparator)
}

// buildPrompt combines the system instruction, the assembled context and
// the literal user question, in that fixed order.
func buildPrompt(question, context string) string {
	return fmt.Sprintf(`%s

RESEARCH PAPERS:
%s

USER QUESTION: %s

Please provide a comprehensive answer based on the papers above:`, systemInstruction, context, question)
}
