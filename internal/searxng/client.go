package searxng

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/iWorld-y/news2lesson/internal/search"
)

const defaultTimeout = 30 * time.Second

// Client 自建 SearXNG 实例的 JSON 搜索客户端
type Client struct {
	endpoint  *url.URL
	userAgent string
	client    *http.Client
}

// Option 客户端选项
type Option func(*Client)

// WithTimeout 请求超时，<=0 时使用默认 30s
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.client = &http.Client{Timeout: d}
		}
	}
}

// WithUserAgent 部分实例会拦截默认 UA
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// NewClient baseURL 可以带路径前缀，例如 https://host/searx
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil || base.Host == "" {
		return nil, fmt.Errorf("invalid searxng base url %q", baseURL)
	}
	if base.Path == "" {
		base.Path = "/"
	}
	c := &Client{
		endpoint: base.JoinPath("search"),
		client:   &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

var _ search.Searcher = (*Client)(nil)

type searchResponse struct {
	Query   string      `json:"query"`
	Results []hitResult `json:"results"`
}

type hitResult struct {
	Title         string  `json:"title"`
	URL           string  `json:"url"`
	Content       string  `json:"content"`
	PublishedDate string  `json:"publishedDate"`
	Score         float64 `json:"score"`
}

// timeRange SearXNG 只支持 day/week/month/year 四档
func timeRange(days int) string {
	switch {
	case days <= 0:
		return ""
	case days <= 1:
		return "day"
	case days <= 7:
		return "week"
	case days <= 31:
		return "month"
	default:
		return "year"
	}
}

func (c *Client) buildURL(req *search.Request) string {
	u := *c.endpoint
	q := url.Values{}
	q.Set("q", req.Query)
	q.Set("format", "json")
	q.Set("pageno", strconv.Itoa(1))
	category := "general"
	if req.Topic == "news" {
		category = "news"
	}
	q.Set("categories", category)
	if tr := timeRange(req.Days); tr != "" {
		q.Set("time_range", tr)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// Search 没有条数参数，按 MaxResults 在客户端截断；没有 URL 的结果直接丢弃
func (c *Client) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.buildURL(req), nil)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}

	res, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("searxng request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return nil, fmt.Errorf("searxng api error (status %d): %s", res.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload searchResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode searxng response failed: %w", err)
	}

	results := make([]search.Result, 0, len(payload.Results))
	for _, r := range payload.Results {
		if r.URL == "" {
			continue
		}
		if req.MaxResults > 0 && len(results) == req.MaxResults {
			break
		}
		results = append(results, search.Result{
			Title:         r.Title,
			URL:           r.URL,
			Content:       r.Content,
			Source:        search.SourceFromURL(r.URL),
			Score:         r.Score,
			PublishedDate: r.PublishedDate,
		})
	}
	return &search.Response{Results: results}, nil
}
