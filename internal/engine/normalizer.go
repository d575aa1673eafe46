package engine

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/iWorld-y/news2lesson/internal/fetch"
	"github.com/iWorld-y/news2lesson/internal/llm"
	"github.com/iWorld-y/news2lesson/internal/model"
	"github.com/iWorld-y/news2lesson/internal/search"
)

const userInputSource = "User Input"

// PageFetcher 抓取网页纯文本
type PageFetcher interface {
	Fetch(ctx context.Context, pageURL *url.URL) (string, error)
}

// ContentNormalizer 把 URL 或粘贴文本整理成 NewsItem
type ContentNormalizer struct {
	fetcher  PageFetcher
	llm      Completer
	maxChars int
}

// NewContentNormalizer maxChars 同时用于粘贴文本的截断
func NewContentNormalizer(f PageFetcher, c Completer, maxChars int) *ContentNormalizer {
	return &ContentNormalizer{fetcher: f, llm: c, maxChars: maxChars}
}

type normalizedFields struct {
	TitleZh   string `json:"title_zh"`
	SummaryZh string `json:"summary_zh"`
	Content   string `json:"content"`
}

// Normalize 网页抓取失败时用占位文本继续；模型调用或解析失败则整体失败
func (n *ContentNormalizer) Normalize(ctx context.Context, in model.DirectInput) (model.NewsItem, Outcome) {
	start := time.Now()
	raw := strings.TrimSpace(in.Content)

	var (
		text     string
		item     model.NewsItem
		fetchErr error
	)
	switch in.Kind {
	case model.InputURL:
		pageURL, err := fetch.ValidateURL(raw)
		if err != nil {
			oc := failed(StageNormalize, "invalid url", fmt.Errorf("%w: %w", ErrInvalidInput, err))
			oc.record(ctx, start)
			return model.NewsItem{}, oc
		}
		item.Source = search.SourceFromURL(raw)
		item.URL = raw

		text, fetchErr = n.fetcher.Fetch(ctx, pageURL)
		if fetchErr != nil {
			text = FetchFailedText(raw, fetchErr)
		}

	case model.InputText:
		if raw == "" {
			oc := failed(StageNormalize, "empty text", fmt.Errorf("%w: content is empty", ErrInvalidInput))
			oc.record(ctx, start)
			return model.NewsItem{}, oc
		}
		item.Source = userInputSource
		text = fetch.Truncate(raw, n.maxChars)

	default:
		oc := failed(StageNormalize, "unknown input kind", fmt.Errorf("%w: kind %q", ErrInvalidInput, in.Kind))
		oc.record(ctx, start)
		return model.NewsItem{}, oc
	}

	out, err := n.llm.Complete(ctx, buildNormalizePrompt(item.Source, text))
	if err != nil {
		oc := failed(StageNormalize, "normalize model call failed", fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err))
		oc.record(ctx, start)
		return model.NewsItem{}, oc
	}

	var fields normalizedFields
	if err := llm.DecodeJSON(out, &fields); err != nil {
		oc := failed(StageNormalize, "normalize response unparsable", fmt.Errorf("%w: %w", ErrMalformedResponse, err))
		oc.record(ctx, start)
		return model.NewsItem{}, oc
	}
	if fields.TitleZh == "" {
		oc := failed(StageNormalize, "normalize response missing title", fmt.Errorf("%w: empty title_zh", ErrMalformedResponse))
		oc.record(ctx, start)
		return model.NewsItem{}, oc
	}

	item.TitleZh = fields.TitleZh
	item.SummaryZh = fields.SummaryZh
	item.Content = fields.Content
	if item.Content == "" {
		item.Content = text
	}

	oc := succeeded(StageNormalize)
	if fetchErr != nil {
		oc = degraded(StageNormalize, "page fetch failed, normalized from sentinel text", fetchErr)
	}
	oc.record(ctx, start)
	return item, oc
}

// FetchFailedText 抓取失败时交给模型的占位正文
func FetchFailedText(rawURL string, err error) string {
	return fmt.Sprintf("[Fetch failed: %v] Source URL: %s", err, rawURL)
}
