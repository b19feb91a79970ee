package store

import "time"

// Paper is a stored paper record. ArxivID is the unique natural key;
// re-upserting the same ID overwrites the other fields in place.
type Paper struct {
	ArxivID    string   `json:"arxiv_id"`
	Title      string   `json:"title"`
	Abstract   string   `json:"abstract"`
	Authors    []string `json:"authors"`
	Categories []string `json:"categories"`
	// Published is the zero time when the source catalog omitted the date.
	Published time.Time `json:"published_date,omitzero"`
	// Embedding is nil until computed. Its dimension must match the
	// vector column width configured at schema initialization.
	Embedding []float32 `json:"-"`
}

// Match is a paper returned by a similarity search. Similarity is
// 1 - cosine_distance(query, embedding), in [0, 1].
type Match struct {
	Paper
	Similarity float64 `json:"similarity"`
}
