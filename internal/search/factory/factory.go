package factory

import (
	"errors"
	"fmt"
	"time"

	"github.com/iWorld-y/news2lesson/internal/config"
	"github.com/iWorld-y/news2lesson/internal/search"
	"github.com/iWorld-y/news2lesson/internal/searxng"
	"github.com/iWorld-y/news2lesson/internal/tavily"
)

const (
	ProviderTavily  = "tavily"
	ProviderSearXNG = "searxng"
)

var ErrNoProvider = errors.New("search provider not configured")

// NewSearcher 未指定 provider 时，有 Tavily key 就用 Tavily
func NewSearcher(cfg *config.Config) (search.Searcher, error) {
	sc := cfg.Search
	provider := sc.Provider
	if provider == "" {
		if sc.Tavily.APIKey == "" {
			return nil, ErrNoProvider
		}
		provider = ProviderTavily
	}

	switch provider {
	case ProviderTavily:
		if sc.Tavily.APIKey == "" {
			return nil, fmt.Errorf("%w: tavily api key is missing", ErrNoProvider)
		}
		return tavily.NewClient(sc.Tavily.APIKey), nil
	case ProviderSearXNG:
		if sc.SearXNG.BaseURL == "" {
			return nil, fmt.Errorf("%w: searxng base url is missing", ErrNoProvider)
		}
		c, err := searxng.NewClient(sc.SearXNG.BaseURL,
			searxng.WithTimeout(time.Duration(sc.SearXNG.Timeout)*time.Second),
			searxng.WithUserAgent(cfg.Fetch.UserAgent),
		)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	return nil, fmt.Errorf("unknown search provider: %s", provider)
}
