package vendors

import (
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

const (
	MethodNN    = "nn"
	MethodFuzzy = "fuzzy"
	MethodNone  = "none"

	// DefaultFuzzyThreshold is the token-set similarity percentage the
	// fallback scorer must reach before a canonical name is accepted.
	DefaultFuzzyThreshold = 75

	nnSimilarityFloor = 0.6
)

// Result is the outcome of one normalization call. Canonical is nil when
// no known vendor name was close enough.
type Result struct {
	Input     string  `json:"input"`
	Canonical *string `json:"canonical"`
	Score     float64 `json:"score"`
	Method    string  `json:"method"`
}

// Directory resolves raw vendor strings against a tenant's canonical
// vendor names using a similarity index with a fuzzy token-set fallback.
type Directory struct {
	names []string
	index *tfidfIndex
}

func NewDirectory() *Directory {
	return &Directory{}
}

// Train deduplicates the input preserving first-seen order and rebuilds
// the similarity index, discarding any previous one. Returns the
// canonical list actually trained on.
func (d *Directory) Train(names []string) []string {
	seen := make(map[string]bool, len(names))
	deduped := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		deduped = append(deduped, name)
	}
	d.names = deduped
	d.index = nil
	if len(deduped) > 0 {
		d.index = fitIndex(deduped)
	}
	return deduped
}

func (d *Directory) Names() []string {
	return d.names
}

// Normalize resolves a raw vendor string. fuzzyThreshold is a 0-100
// percentage; pass DefaultFuzzyThreshold unless the caller tuned it.
func (d *Directory) Normalize(raw string, fuzzyThreshold int) Result {
	none := Result{Input: raw, Method: MethodNone}

	name := strings.TrimSpace(raw)
	if name == "" {
		return none
	}

	if d.index != nil {
		if i, sim := d.index.nearest(name); i >= 0 && sim >= nnSimilarityFloor {
			return Result{Input: raw, Canonical: &d.names[i], Score: sim, Method: MethodNN}
		}
	}

	// TokenSetRatio does no case folding of its own, so both sides are
	// lowercased to keep the fallback case-insensitive like the nn path.
	var best *string
	bestScore := 0
	lowered := strings.ToLower(name)
	for i, candidate := range d.names {
		if score := fuzzy.TokenSetRatio(lowered, strings.ToLower(candidate)); score > bestScore {
			best, bestScore = &d.names[i], score
		}
	}
	if best != nil && bestScore >= fuzzyThreshold {
		return Result{Input: raw, Canonical: best, Score: float64(bestScore) / 100.0, Method: MethodFuzzy}
	}
	return none
}
