package vendors

import (
	"math"
	"strings"
	"unicode"
)

// tfidfIndex is a small word 1-2 gram TF-IDF index with cosine
// nearest-neighbor lookup over a tenant's canonical vendor names.
type tfidfIndex struct {
	vocab map[string]int
	idf   []float64
	docs  []map[int]float64
}

func tokenize(s string) []string {
	s = strings.ToLower(s)
	words := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	grams := make([]string, 0, len(words)*2)
	grams = append(grams, words...)
	for i := 0; i+1 < len(words); i++ {
		grams = append(grams, words[i]+" "+words[i+1])
	}
	return grams
}

func fitIndex(names []string) *tfidfIndex {
	idx := &tfidfIndex{vocab: make(map[string]int)}

	docGrams := make([][]string, len(names))
	df := make(map[int]int)
	for i, name := range names {
		grams := tokenize(name)
		docGrams[i] = grams
		seen := make(map[int]bool)
		for _, g := range grams {
			id, ok := idx.vocab[g]
			if !ok {
				id = len(idx.vocab)
				idx.vocab[g] = id
			}
			if !seen[id] {
				df[id]++
				seen[id] = true
			}
		}
	}

	n := float64(len(names))
	idx.idf = make([]float64, len(idx.vocab))
	for id := range idx.idf {
		idx.idf[id] = math.Log((1+n)/(1+float64(df[id]))) + 1
	}

	idx.docs = make([]map[int]float64, len(names))
	for i, grams := range docGrams {
		idx.docs[i] = idx.vectorize(grams)
	}
	return idx
}

// vectorize builds an l2-normalized tf-idf vector; grams outside the
// fitted vocabulary are dropped.
func (idx *tfidfIndex) vectorize(grams []string) map[int]float64 {
	vec := make(map[int]float64)
	for _, g := range grams {
		if id, ok := idx.vocab[g]; ok {
			vec[id] += idx.idf[id]
		}
	}
	var norm float64
	for _, w := range vec {
		norm += w * w
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for id := range vec {
			vec[id] /= norm
		}
	}
	return vec
}

// nearest returns the index of the closest name and its cosine similarity.
func (idx *tfidfIndex) nearest(raw string) (int, float64) {
	query := idx.vectorize(tokenize(raw))
	best, bestSim := -1, 0.0
	for i, doc := range idx.docs {
		var sim float64
		for id, w := range query {
			sim += w * doc[id]
		}
		if best == -1 || sim > bestSim {
			best, bestSim = i, sim
		}
	}
	return best, bestSim
}
