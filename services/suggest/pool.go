package suggest

import (
	"math/rand"

	"github.com/alexandreovs/oqueassitir/models"
)

// pool is the working set of fetched candidates for one rotation session,
// together with the titles already shown. The deduplication key is the
// title, not the catalog id: two distinct entries sharing a title count as
// one. That collapse is intentional and kept as-is.
//
// Not safe for concurrent use; the owning session serializes access.
type pool struct {
	rng        *rand.Rand
	candidates []models.Candidate
	shown      map[string]struct{}
}

func newPool(rng *rand.Rand) *pool {
	return &pool{
		rng:   rng,
		shown: make(map[string]struct{}),
	}
}

// Seed replaces all stored candidates and forgets every shown title.
func (p *pool) Seed(candidates []models.Candidate) {
	p.candidates = candidates
	p.shown = make(map[string]struct{})
}

// PickUnshown selects uniformly at random among candidates whose title has
// not been shown. Reports false when none remain.
func (p *pool) PickUnshown() (models.Candidate, bool) {
	unshown := make([]models.Candidate, 0, len(p.candidates))
	for _, c := range p.candidates {
		if _, seen := p.shown[c.Title]; !seen {
			unshown = append(unshown, c)
		}
	}
	if len(unshown) == 0 {
		return models.Candidate{}, false
	}
	return unshown[p.rng.Intn(len(unshown))], true
}

// MarkShown records the candidate's title as shown.
func (p *pool) MarkShown(c models.Candidate) {
	p.shown[c.Title] = struct{}{}
}

// Exhausted reports whether no unshown candidate remains.
func (p *pool) Exhausted() bool {
	for _, c := range p.candidates {
		if _, seen := p.shown[c.Title]; !seen {
			return false
		}
	}
	return true
}

func (p *pool) Len() int {
	return len(p.candidates)
}
