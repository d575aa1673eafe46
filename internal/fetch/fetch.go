package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
)

// 网页正文之外的噪声节点
const noiseSelector = "script, style, noscript, iframe, svg, nav, header, footer, aside, form, " +
	`[role="navigation"], [role="banner"], [aria-hidden="true"], ` +
	`.ad, .ads, .advert, .advertisement, .sponsored, [id^="ad-"], [class*="ad-slot"]`

const maxBodyBytes = 5 << 20

// ErrNoContent 页面中没有可读正文
var ErrNoContent = errors.New("no readable content")

// Fetcher 抓取网页并提取纯文本
type Fetcher struct {
	client    *http.Client
	userAgent string
	maxChars  int
}

// NewFetcher timeout 为单次抓取的上限，maxChars 为正文截断长度（按字符计）
func NewFetcher(timeout time.Duration, userAgent string, maxChars int) *Fetcher {
	return &Fetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
		maxChars:  maxChars,
	}
}

// ValidateURL 只接受带 host 的 http/https 地址
func ValidateURL(raw string) (*url.URL, error) {
	u, err := url.ParseRequestURI(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid url scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid url: missing host")
	}
	return u, nil
}

// Fetch 抓取 URL，去掉脚本/样式/导航/广告后返回截断的纯文本
func (f *Fetcher) Fetch(ctx context.Context, pageURL *url.URL) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL.String(), nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return "", fmt.Errorf("fetch page: unexpected status %s", resp.Status)
	}

	text, err := Extract(io.LimitReader(resp.Body, maxBodyBytes), pageURL)
	if err != nil {
		return "", err
	}
	return Truncate(text, f.maxChars), nil
}

// Extract 解析 HTML，去除噪声后优先用 readability 提取正文，失败时退回 body 文本
func Extract(r io.Reader, pageURL *url.URL) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("parse document: %w", err)
	}
	doc.Find(noiseSelector).Remove()

	var text string
	if html, err := doc.Html(); err == nil {
		if article, err := readability.FromReader(strings.NewReader(html), pageURL); err == nil {
			text = CollapseSpace(article.TextContent)
		}
	}
	if text == "" {
		text = CollapseSpace(doc.Find("body").Text())
	}
	if text == "" {
		return "", ErrNoContent
	}
	return text, nil
}

// CollapseSpace 把连续空白压缩为单个空格
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Truncate 保留前 n 个字符，n <= 0 表示不截断
func Truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
