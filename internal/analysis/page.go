package analysis

import (
	"context"
	"sync"

	"github.com/chattolabs/chatto/internal/api"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Page is the result-page controller, parameterized over the analysis kind.
// It loads a result and the current chat collection in parallel, tracks
// whether the originating chat still exists, diffs the editable form against
// the stored parameters, and gates the re-analyze action on all three.
//
// Results are immutable: Reanalyze returns a brand-new record and the caller
// navigates to its id, never mutating the loaded one.
type Page struct {
	mu      sync.Mutex
	kind    api.Kind
	id      string
	result  *api.Analysis
	form    api.Params
	tracker *SourceTracker
	loading bool
	lastErr string

	client *api.Client
	logger *zap.Logger
}

// NewPage creates a controller for one result id.
func NewPage(client *api.Client, kind api.Kind, resultID string, logger *zap.Logger) *Page {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Page{
		kind:    kind,
		id:      resultID,
		tracker: NewSourceTracker(""),
		client:  client,
		logger:  logger,
	}
}

// Load fetches the analysis detail and the chat collection concurrently,
// then seeds the form from the stored parameters and the tracker from the
// fetched chat ids.
func (p *Page) Load(ctx context.Context) error {
	p.mu.Lock()
	p.loading = true
	p.mu.Unlock()

	var (
		result *api.Analysis
		ids    []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := p.client.GetAnalysis(gctx, p.kind, p.id)
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	g.Go(func() error {
		chatList, err := p.client.ListChats(gctx, api.ModeFor(p.kind))
		if err != nil {
			return err
		}
		ids = make([]string, len(chatList))
		for i, c := range chatList {
			ids[i] = c.ID
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		p.mu.Lock()
		p.loading = false
		p.lastErr = err.Error()
		p.mu.Unlock()
		return err
	}

	tracker := NewSourceTracker(result.ChatID)
	tracker.Seed(ids)

	p.mu.Lock()
	p.result = result
	p.form = result.Params
	p.tracker = tracker
	p.loading = false
	p.lastErr = ""
	p.mu.Unlock()
	return nil
}

// Result returns the loaded analysis, or nil before Load completes.
func (p *Page) Result() *api.Analysis {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.result
}

// Kind returns the analysis kind this page renders.
func (p *Page) Kind() api.Kind { return p.kind }

// Err returns the retained error message, or "".
func (p *Page) Err() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

// Form returns the current editable parameter values.
func (p *Page) Form() api.Params {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.form
}

// SetField writes one form field. Date fields must be normalized by the
// caller before being set.
func (p *Page) SetField(k FieldKey, value string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	Set(&p.form, k, value)
}

// ResetForm reverts the form to the stored parameters.
func (p *Page) ResetForm() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.result != nil {
		p.form = p.result.Params
	}
}

// ChatDeleted is wired as the chat list's OnDeleted observer: the tracker is
// updated incrementally instead of re-fetching the collection.
func (p *Page) ChatDeleted(chatID string) {
	p.tracker.ChatDeleted(chatID)
}

// Gate evaluates whether re-analysis is currently actionable.
func (p *Page) Gate() Gate {
	p.mu.Lock()
	defer p.mu.Unlock()
	g := Gate{Loading: p.loading || p.result == nil}
	if g.Loading {
		return g
	}
	g.HasSourceChat = p.tracker.HasSourceChat()
	g.Unchanged = Same(p.kind, p.form, p.result.Params)
	return g
}

// Reanalyze submits a new analysis request for the original chat with the
// normalized form values and returns the new record. The loaded result is
// left untouched.
func (p *Page) Reanalyze(ctx context.Context) (*api.Analysis, error) {
	if g := p.Gate(); !g.Allowed() {
		return nil, &api.Error{Message: g.Reason()}
	}

	p.mu.Lock()
	chatID := p.result.ChatID
	params := Normalize(p.kind, p.form)
	p.mu.Unlock()

	fresh, err := p.client.RequestAnalysis(ctx, p.kind, chatID, params)
	if err != nil {
		p.mu.Lock()
		p.lastErr = err.Error()
		p.mu.Unlock()
		return nil, err
	}

	p.logger.Info("reanalysis requested",
		zap.String("kind", string(p.kind)),
		zap.String("chat_id", chatID),
		zap.String("new_id", fresh.ID),
	)
	return fresh, nil
}
