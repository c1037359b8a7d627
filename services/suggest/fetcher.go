package suggest

import (
	"context"
	"fmt"
	"log"

	concpool "github.com/sourcegraph/conc/pool"

	"github.com/alexandreovs/oqueassitir/models"
	"github.com/alexandreovs/oqueassitir/services/catalog"
)

// Catalog is the slice of the TMDB client the fetcher needs.
type Catalog interface {
	Discover(ctx context.Context, q catalog.DiscoverQuery) ([]catalog.DiscoverResult, error)
	MovieRuntime(ctx context.Context, id int64) (int, error)
	ProviderRegions(ctx context.Context, providerID int) ([]string, error)
}

// Fetcher turns a FilterSpec into an enriched candidate batch.
type Fetcher struct {
	catalog           Catalog
	detailConcurrency int
}

func NewFetcher(c Catalog, detailConcurrency int) *Fetcher {
	if detailConcurrency <= 0 {
		detailConcurrency = 8
	}
	return &Fetcher{catalog: c, detailConcurrency: detailConcurrency}
}

// Fetch resolves the filters, runs the discovery query and enriches every
// result with its exact runtime. The returned batch is authoritative: the
// caller replaces its pool contents wholesale.
//
// A chosen provider that cannot be resolved, or whose regional directory
// probe fails, silently drops the provider filter rather than failing the
// fetch. A failed runtime lookup degrades that one title to runtime 0.
func (f *Fetcher) Fetch(ctx context.Context, spec models.FilterSpec) ([]models.Candidate, error) {
	genreID, err := GenreForMood(spec.Mood)
	if err != nil {
		return nil, err
	}

	bracket := BracketFor(spec.TimeBudgetMinutes)
	dq := catalog.DiscoverQuery{
		GenreID:    genreID,
		MinRuntime: bracket.MinMinutes,
		MaxRuntime: bracket.MaxMinutes,
	}

	providerApplied := false
	if spec.ProviderKey != "" {
		if providerID, ok := ProviderID(spec.ProviderKey); ok {
			regions, err := f.catalog.ProviderRegions(ctx, providerID)
			if err != nil {
				log.Printf("[suggest] provider directory probe for %q failed, dropping provider filter: %v", spec.ProviderKey, err)
			} else if len(regions) > 0 {
				dq.ProviderID = providerID
				dq.Region = regions[0]
				providerApplied = true
			}
		}
	}

	results, err := f.catalog.Discover(ctx, dq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	if len(results) == 0 {
		return nil, ErrNoResults
	}

	// Discovery payloads carry no runtime; fan out one details lookup per
	// title. A failed lookup leaves that title's runtime at 0 and never
	// aborts the batch.
	runtimes := make([]int, len(results))
	p := concpool.New().WithMaxGoroutines(f.detailConcurrency)
	for i, r := range results {
		p.Go(func() {
			minutes, err := f.catalog.MovieRuntime(ctx, r.ID)
			if err != nil {
				log.Printf("[suggest] runtime lookup for %q (%d) failed: %v", r.Title, r.ID, err)
				return
			}
			runtimes[i] = minutes
		})
	}
	p.Wait()

	label := GenericStreamingLabel
	if providerApplied {
		label = ProviderDisplayName(spec.ProviderKey)
	}

	candidates := make([]models.Candidate, 0, len(results))
	for i, r := range results {
		// Entries without a poster or title are unpresentable; drop them
		// at ingestion.
		if r.PosterPath == "" || r.Title == "" {
			continue
		}
		candidates = append(candidates, models.Candidate{
			ID:             r.ID,
			Title:          r.Title,
			Overview:       r.Overview,
			PosterPath:     r.PosterPath,
			ReleaseDate:    r.ReleaseDate,
			RuntimeMinutes: runtimes[i],
			VoteAverage:    r.VoteAverage,
			StreamingLabel: label,
		})
	}
	if len(candidates) == 0 {
		return nil, ErrNoResults
	}
	return candidates, nil
}
