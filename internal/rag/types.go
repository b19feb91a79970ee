package rag

// Source identifies one retrieved paper backing an answer.
type Source struct {
	// ArxivID is the paper's arXiv identifier.
	ArxivID string `json:"arxiv_id"`
	// Title is the paper title.
	Title string `json:"title"`
	// Similarity is the cosine similarity between the query and the paper.
	Similarity float64 `json:"similarity"`
}

// Answer is the result of a RAG query.
type Answer struct {
	// Text is the generated answer.
	Text string `json:"answer"`
	// Sources lists the retrieved papers in retrieval order. It is always
	// the full retrieved set, never filtered by what the text cites.
	Sources []Source `json:"sources"`
}

// StreamEvent is one incremental event of a streamed answer. Sources is
// attached only to the final event (Done = true).
type StreamEvent struct {
	Token   string   `json:"token"`
	Done    bool     `json:"done"`
	Sources []Source `json:"sources,omitempty"`
}
