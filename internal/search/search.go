package search

import (
	"context"
	"net/url"
	"strings"
)

// Searcher 定义通用的搜索接口
type Searcher interface {
	Search(ctx context.Context, req *Request) (*Response, error)
}

// Request 通用搜索请求
type Request struct {
	Query         string
	Topic         string // "news" or "general"
	MaxResults    int
	Days          int // 只搜索最近 N 天
	IncludeImages bool
}

// Response 通用搜索响应
type Response struct {
	Results []Result
}

// Result 单条搜索结果，按提供方的排序返回
type Result struct {
	Title         string  `json:"title"`
	URL           string  `json:"url"`
	Content       string  `json:"content"`
	Source        string  `json:"source"`
	Score         float64 `json:"score,omitempty"`
	PublishedDate string  `json:"published_date,omitempty"`
}

// SourceFromURL 用域名作为来源名称，解析失败时返回原串
func SourceFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}
