package rag

// QueryRequest is the payload of a question posed to the engine.
type QueryRequest struct {
	Query string `json:"query"`
}

// SourceDocument is one retrieved chunk returned alongside the answer so the
// caller can see what grounded it.
type SourceDocument struct {
	Content string `json:"content"`
	Source  string `json:"source"`
}

// QueryResponse is the answer together with the chunks that grounded it.
type QueryResponse struct {
	Answer          string           `json:"answer"`
	SourceDocuments []SourceDocument `json:"source_documents"`
}
