package suggest

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/alexandreovs/oqueassitir/models"
)

// Mode selects how many candidates a session presents up front.
type Mode string

const (
	ModeSingle   Mode = "single"
	ModeMultiple Mode = "multiple"
)

// CandidateSource produces the enriched candidate batch for a FilterSpec.
type CandidateSource interface {
	Fetch(ctx context.Context, spec models.FilterSpec) ([]models.Candidate, error)
}

// Rotation is the result of starting (or restarting) a session.
type Rotation struct {
	SessionID  string
	Mode       Mode
	Candidates []models.Candidate
}

// session is the per-FilterSpec rotation state. The pool and shown-title set
// are owned here and mutated nowhere else.
type session struct {
	mu         sync.Mutex
	filter     models.FilterSpec
	pool       *pool
	fetching   bool
	lastActive time.Time
}

// Controller orchestrates fetches and rotations across sessions. At most one
// fetch per session is in flight; requests arriving during a fetch are
// rejected, not queued.
type Controller struct {
	source          CandidateSource
	maxInitialCards int
	sessionTTL      time.Duration

	mu       sync.RWMutex
	sessions map[string]*session

	done      chan struct{}
	closeOnce sync.Once
}

func NewController(source CandidateSource, maxInitialCards int, sessionTTL time.Duration) *Controller {
	if maxInitialCards <= 0 {
		maxInitialCards = 3
	}
	if sessionTTL <= 0 {
		sessionTTL = 30 * time.Minute
	}
	c := &Controller{
		source:          source,
		maxInitialCards: maxInitialCards,
		sessionTTL:      sessionTTL,
		sessions:        make(map[string]*session),
		done:            make(chan struct{}),
	}
	go c.janitor()
	return c
}

// Close stops the session janitor.
func (c *Controller) Close() {
	c.closeOnce.Do(func() { close(c.done) })
}

// Start begins a rotation for the given filters, fetching and seeding a
// fresh pool. Passing an existing session id replaces that session's filters
// (the rotation restarts); an empty id creates a new session. Time and mood
// are validated before any network call.
func (c *Controller) Start(ctx context.Context, sessionID string, spec models.FilterSpec, mode Mode) (*Rotation, error) {
	if spec.TimeBudgetMinutes <= 0 {
		return nil, ErrMissingTime
	}
	if spec.Mood == "" {
		return nil, ErrMissingMood
	}
	if mode != ModeMultiple {
		mode = ModeSingle
	}

	created := false
	var s *session
	if sessionID == "" {
		sessionID = uuid.NewString()
		s = &session{
			pool:       newPool(rand.New(rand.NewSource(rand.Int63()))),
			lastActive: time.Now(),
		}
		c.mu.Lock()
		c.sessions[sessionID] = s
		c.mu.Unlock()
		created = true
	} else {
		c.mu.RLock()
		s = c.sessions[sessionID]
		c.mu.RUnlock()
		if s == nil {
			return nil, ErrSessionNotFound
		}
	}

	s.mu.Lock()
	if s.fetching {
		s.mu.Unlock()
		return nil, ErrFetchInProgress
	}
	s.fetching = true
	// The pool lives and dies with one FilterSpec: discard it as soon as the
	// filters change, not only once the replacement fetch succeeds, so a
	// failed restart can never serve the previous filter's candidates.
	if s.filter != spec {
		s.pool.Seed(nil)
	}
	s.filter = spec
	tag := spec
	s.mu.Unlock()

	candidates, err := c.source.Fetch(ctx, tag)

	s.mu.Lock()
	s.fetching = false
	s.lastActive = time.Now()
	if err != nil {
		s.mu.Unlock()
		if created {
			c.remove(sessionID)
		}
		return nil, err
	}
	defer s.mu.Unlock()
	// Results only apply to the FilterSpec they were fetched for.
	if s.filter != tag {
		return nil, ErrFetchInProgress
	}

	s.pool.Seed(candidates)
	n := 1
	if mode == ModeMultiple {
		n = c.maxInitialCards
	}
	picked := make([]models.Candidate, 0, n)
	for len(picked) < n {
		cand, ok := s.pool.PickUnshown()
		if !ok {
			break
		}
		s.pool.MarkShown(cand)
		picked = append(picked, cand)
	}
	return &Rotation{SessionID: sessionID, Mode: mode, Candidates: picked}, nil
}

// Next serves one more unshown candidate for the session. An exhausted pool
// triggers a single refetch with the session's FilterSpec before giving up
// with ErrPoolExhausted.
func (c *Controller) Next(ctx context.Context, sessionID string) (models.Candidate, error) {
	c.mu.RLock()
	s := c.sessions[sessionID]
	c.mu.RUnlock()
	if s == nil {
		return models.Candidate{}, ErrSessionNotFound
	}

	s.mu.Lock()
	if s.fetching {
		s.mu.Unlock()
		return models.Candidate{}, ErrFetchInProgress
	}
	s.lastActive = time.Now()
	if cand, ok := s.pool.PickUnshown(); ok {
		s.pool.MarkShown(cand)
		s.mu.Unlock()
		return cand, nil
	}
	s.fetching = true
	tag := s.filter
	s.mu.Unlock()

	candidates, err := c.source.Fetch(ctx, tag)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetching = false
	s.lastActive = time.Now()
	if err != nil {
		if errors.Is(err, ErrNoResults) {
			return models.Candidate{}, ErrPoolExhausted
		}
		return models.Candidate{}, err
	}
	if s.filter != tag {
		return models.Candidate{}, ErrFetchInProgress
	}

	// Reseeding forgets shown titles, so a refill may legitimately repeat
	// titles from the previous rotation.
	s.pool.Seed(candidates)
	cand, ok := s.pool.PickUnshown()
	if !ok {
		return models.Candidate{}, ErrPoolExhausted
	}
	s.pool.MarkShown(cand)
	return cand, nil
}

// Discard drops a session. Unknown ids are a no-op.
func (c *Controller) Discard(sessionID string) {
	c.remove(sessionID)
}

func (c *Controller) remove(sessionID string) {
	c.mu.Lock()
	delete(c.sessions, sessionID)
	c.mu.Unlock()
}

func (c *Controller) janitor() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-c.sessionTTL)
			c.mu.RLock()
			snapshot := make(map[string]*session, len(c.sessions))
			for id, s := range c.sessions {
				snapshot[id] = s
			}
			c.mu.RUnlock()
			for id, s := range snapshot {
				s.mu.Lock()
				idle := !s.fetching && s.lastActive.Before(cutoff)
				s.mu.Unlock()
				if idle {
					c.remove(id)
				}
			}
		}
	}
}
