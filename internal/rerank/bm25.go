// Package rerank reorders retrieved candidates by keyword-overlap score,
// independent of vector similarity. The re-ranking is a local permutation of
// an already-retrieved set: it never expands or filters the candidates.
package rerank

import (
	"math"
	"sort"
	"strings"
)

// BM25 Okapi parameters.
const (
	defaultK1 = 1.2
	defaultB  = 0.75
)

// Document is a retrieved chunk to be scored against a query.
type Document struct {
	Content string
	Source  string
	Score   float32 // vector similarity score from retrieval
}

// Reranker scores documents against a query using BM25 over the candidate
// set as corpus.
type Reranker struct {
	k1 float64
	b  float64
}

// New creates a re-ranker with the standard Okapi parameters.
func New() *Reranker {
	return &Reranker{k1: defaultK1, b: defaultB}
}

// Rerank returns the documents reordered by descending BM25 score against
// query. The sort is stable, so ties keep their original (vector-ranked)
// order; applying Rerank twice with the same query is a no-op after the
// first. An empty query or empty document set is returned unchanged.
func (r *Reranker) Rerank(query string, docs []Document) []Document {
	queryTokens := tokenize(query)
	if len(docs) == 0 || len(queryTokens) == 0 {
		return docs
	}

	corpus := make([][]string, len(docs))
	totalLen := 0
	for i, doc := range docs {
		corpus[i] = tokenize(doc.Content)
		totalLen += len(corpus[i])
	}
	avgDl := float64(totalLen) / float64(len(docs))
	if avgDl == 0 {
		return docs
	}

	// Document frequency per query term over the candidate corpus.
	df := make(map[string]int, len(queryTokens))
	for _, tokens := range corpus {
		seen := make(map[string]struct{}, len(tokens))
		for _, tok := range tokens {
			seen[tok] = struct{}{}
		}
		for _, term := range queryTokens {
			if _, ok := seen[term]; ok {
				df[term]++
			}
		}
	}

	n := float64(len(docs))
	scores := make([]float64, len(docs))
	for i, tokens := range corpus {
		tf := make(map[string]int, len(tokens))
		for _, tok := range tokens {
			tf[tok]++
		}
		dl := float64(len(tokens))

		for _, term := range queryTokens {
			freq := float64(tf[term])
			if freq == 0 {
				continue
			}
			nq := float64(df[term])
			idf := math.Log((n-nq+0.5)/(nq+0.5) + 1)
			scores[i] += idf * (freq * (r.k1 + 1)) / (freq + r.k1*(1-r.b+r.b*dl/avgDl))
		}
	}

	ranked := make([]Document, len(docs))
	order := make([]int, len(docs))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})
	for i, idx := range order {
		ranked[i] = docs[idx]
	}
	return ranked
}

// tokenize lowercases and splits on whitespace. Intentionally naive: no
// stemming, no stopword removal.
func tokenize(text string) []string {
	return strings.Fields(strings.ToLower(text))
}
