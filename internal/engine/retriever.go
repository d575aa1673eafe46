package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/iWorld-y/news2lesson/internal/fetch"
	"github.com/iWorld-y/news2lesson/internal/llm"
	"github.com/iWorld-y/news2lesson/internal/model"
	"github.com/iWorld-y/news2lesson/internal/search"
)

const (
	untranslatedSuffix = " (未翻譯)"
	fallbackSummaryLen = 50
)

// RetrieverOptions 搜索与过滤参数
type RetrieverOptions struct {
	MaxResults int // 向搜索服务请求的条数
	Days       int // 时间窗口
	Keep       int // 过滤后最多保留的条数
}

// NewsRetriever 搜索新闻，再交给模型做相关性/安全过滤和翻译
type NewsRetriever struct {
	searcher search.Searcher
	llm      Completer
	opts     RetrieverOptions
}

// NewNewsRetriever 创建新闻检索器，零值参数使用默认值 8 / 180 / 3
func NewNewsRetriever(s search.Searcher, c Completer, opts RetrieverOptions) *NewsRetriever {
	if opts.MaxResults <= 0 {
		opts.MaxResults = 8
	}
	if opts.Days <= 0 {
		opts.Days = 180
	}
	if opts.Keep <= 0 {
		opts.Keep = 3
	}
	return &NewsRetriever{searcher: s, llm: c, opts: opts}
}

// Retrieve 搜索服务失败时返回失败；模型过滤失败时降级为原始结果前几条
func (r *NewsRetriever) Retrieve(ctx context.Context, topic, query string) ([]model.NewsItem, Outcome) {
	start := time.Now()

	resp, err := r.searcher.Search(ctx, &search.Request{
		Query:         query,
		Topic:         "news",
		MaxResults:    r.opts.MaxResults,
		Days:          r.opts.Days,
		IncludeImages: false,
	})
	if err != nil {
		oc := failed(StageRetrieve, "search provider request failed", fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err))
		oc.record(ctx, start)
		return nil, oc
	}

	hits := toRawHits(resp.Results)
	if len(hits) == 0 {
		oc := succeeded(StageRetrieve)
		oc.record(ctx, start)
		return []model.NewsItem{}, oc
	}

	items, err := r.filter(ctx, topic, hits)
	if err != nil {
		oc := degraded(StageRetrieve, "news filter unusable, returning raw hits", err)
		oc.record(ctx, start)
		return FallbackItems(hits, r.opts.Keep), oc
	}

	oc := succeeded(StageRetrieve)
	oc.record(ctx, start)
	return items, oc
}

func (r *NewsRetriever) filter(ctx context.Context, topic string, hits []model.RawHit) ([]model.NewsItem, error) {
	raw, err := json.Marshal(hits)
	if err != nil {
		return nil, fmt.Errorf("marshal raw hits: %w", err)
	}

	text, err := r.llm.Complete(ctx, buildFilterPrompt(topic, r.opts.Keep, raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
	}

	var parsed []model.NewsItem
	if err := llm.DecodeJSON(text, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	items := backfill(parsed, hits)
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: filter returned no usable items", ErrMalformedResponse)
	}
	if len(items) > r.opts.Keep {
		items = items[:r.opts.Keep]
	}
	return items, nil
}

// backfill 用同 URL 的原始结果补齐缺失的来源与正文；没有标题或补齐后仍无正文的条目丢弃
func backfill(items []model.NewsItem, hits []model.RawHit) []model.NewsItem {
	byURL := make(map[string]model.RawHit, len(hits))
	for _, h := range hits {
		byURL[h.URL] = h
	}

	out := make([]model.NewsItem, 0, len(items))
	for _, it := range items {
		if it.TitleZh == "" {
			continue
		}
		if h, ok := byURL[it.URL]; ok {
			if it.Source == "" {
				it.Source = h.Source
			}
			if it.Content == "" {
				it.Content = h.Content
			}
		}
		if it.Content == "" {
			continue
		}
		out = append(out, it)
	}
	return out
}

// FallbackItems 按提供方顺序取前 keep 条原始结果，原样映射为 NewsItem
func FallbackItems(hits []model.RawHit, keep int) []model.NewsItem {
	if len(hits) < keep {
		keep = len(hits)
	}
	items := make([]model.NewsItem, 0, keep)
	for _, h := range hits[:keep] {
		items = append(items, model.NewsItem{
			TitleZh:   h.Title + untranslatedSuffix,
			SummaryZh: fetch.Truncate(h.Content, fallbackSummaryLen) + "...",
			Source:    h.Source,
			URL:       h.URL,
			Content:   h.Content,
		})
	}
	return items
}

func toRawHits(results []search.Result) []model.RawHit {
	hits := make([]model.RawHit, 0, len(results))
	for _, r := range results {
		hits = append(hits, model.RawHit{
			Title:         r.Title,
			Content:       r.Content,
			Source:        r.Source,
			URL:           r.URL,
			PublishedDate: r.PublishedDate,
		})
	}
	return hits
}
