package revset

import (
	"context"
	"sort"

	"github.com/ethereum/go-ethereum/log"
)

// PrefetchPipeline is a function registered against a prefetch tag: given a
// base context stream, it returns a stream with that tag's fields
// populated. Pipelines are looked up on the owning Repo's registry, not a
// process-wide global, so multiple logical repositories can register
// independent pipelines for the same tag.
type PrefetchPipeline func(repo *Repo, in CtxIterator) (CtxIterator, error)

// RegisterPrefetch adds a pipeline for tag to r's registry, replacing any
// previous registration.
func (r *Repo) RegisterPrefetch(tag string, pipeline PrefetchPipeline) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prefetch[tag] = pipeline
}

// RegisterTemplateSymbol records that evaluating template symbol sym
// requires the given prefetch tags.
func (r *Repo) RegisterTemplateSymbol(sym string, tags ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	set, ok := r.symbols[sym]
	if !ok {
		set = make(map[string]struct{})
		r.symbols[sym] = set
	}
	for _, t := range tags {
		set[t] = struct{}{}
	}
}

// PrefetchTagsForTemplateSymbol answers "given this template symbol, which
// prefetch tags does it need?". An unregistered symbol needs nothing.
func (r *Repo) PrefetchTagsForTemplateSymbol(sym string) map[string]struct{} {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]struct{}, len(r.symbols[sym]))
	for t := range r.symbols[sym] {
		out[t] = struct{}{}
	}
	return out
}

// pipelineFor looks up a registered pipeline; ok is false if tag is unknown.
func (r *Repo) pipelineFor(tag string) (PrefetchPipeline, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.prefetch[tag]
	return p, ok
}

// baseCtxIterator adapts a plain RevIterator into a CtxIterator with empty
// field maps, the starting point every prefetch pipeline chain runs from.
type baseCtxIterator struct {
	it RevIterator
}

func (b *baseCtxIterator) Next() bool { return b.it.Next() }
func (b *baseCtxIterator) Ctx() *CommitCtx {
	return &CommitCtx{Rev: b.it.Rev(), Fields: make(map[string]interface{})}
}
func (b *baseCtxIterator) Err() error { return nil }

// applyPrefetch pipes base through every pipeline registered for tags, in
// deterministic sorted order, so iteration order never depends on map
// iteration order. An unknown tag is ErrUnknownPrefetchField.
func applyPrefetch(ctx context.Context, repo weakRef, base CtxIterator, tags map[string]struct{}) (CtxIterator, error) {
	if len(tags) == 0 {
		return base, nil
	}
	r, err := repo.resolve()
	if err != nil {
		return nil, err
	}

	sorted := make([]string, 0, len(tags))
	for t := range tags {
		sorted = append(sorted, t)
	}
	sort.Strings(sorted)

	cur := base
	for _, tag := range sorted {
		pipeline, ok := r.pipelineFor(tag)
		if !ok {
			return nil, ErrUnknownPrefetchField
		}
		next, err := pipeline(r, cur)
		if err != nil {
			return nil, err
		}
		if next == nil {
			err := ProgrammingError("prefetch pipeline %q returned a nil iterator with a nil error", tag)
			log.Error(err.Error())
			return nil, err
		}
		cur = next
	}
	_ = ctx
	return cur, nil
}

// mergeTags returns the union of a and extra as a fresh map, used whenever a
// combinator needs to propagate prefetch tags onto a derived set.
func mergeTags(a map[string]struct{}, extra ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(a)+len(extra))
	for t := range a {
		out[t] = struct{}{}
	}
	for _, t := range extra {
		out[t] = struct{}{}
	}
	return out
}
