package fetch

import (
	"context"
	"sync"
	"time"
)

// DefaultPreviewTTL is how long a fetched preview stays fresh. Official pages
// change rarely; a day keeps the comparison view snappy without going stale.
const DefaultPreviewTTL = 24 * time.Hour

// Previewer fetches page previews with an in-memory TTL cache keyed by URL.
// Failed fetches are not cached, so transient outages retry naturally.
type Previewer struct {
	options *Options
	ttl     time.Duration

	mu    sync.RWMutex
	cache map[string]cachedPreview
}

type cachedPreview struct {
	preview   *Preview
	fetchedAt time.Time
}

// PreviewerConfig holds configuration for the previewer.
type PreviewerConfig struct {
	TTL     time.Duration
	Options *Options
}

// NewPreviewer creates a previewer. A nil config uses the defaults.
func NewPreviewer(config *PreviewerConfig) *Previewer {
	if config == nil {
		config = &PreviewerConfig{}
	}
	if config.Options == nil {
		config.Options = DefaultOptions()
	}
	if config.TTL == 0 {
		config.TTL = DefaultPreviewTTL
	}
	return &Previewer{
		options: config.Options,
		ttl:     config.TTL,
		cache:   make(map[string]cachedPreview),
	}
}

// Fetch returns the preview for a URL, from cache when fresh.
func (p *Previewer) Fetch(ctx context.Context, urlStr string) (*Preview, error) {
	p.mu.RLock()
	entry, ok := p.cache[urlStr]
	p.mu.RUnlock()
	if ok && time.Since(entry.fetchedAt) < p.ttl {
		return entry.preview, nil
	}

	result, err := URL(ctx, urlStr, p.options)
	if err != nil {
		return nil, err
	}

	preview, err := ExtractPreview(urlStr, result.HTML)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.cache[urlStr] = cachedPreview{preview: preview, fetchedAt: time.Now()}
	p.mu.Unlock()
	return preview, nil
}

// Invalidate drops the cached preview for a URL, forcing a re-fetch.
func (p *Previewer) Invalidate(urlStr string) {
	p.mu.Lock()
	delete(p.cache, urlStr)
	p.mu.Unlock()
}
