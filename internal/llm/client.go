package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"golang.org/x/time/rate"

	"github.com/iWorld-y/news2lesson/internal/config"
	"github.com/iWorld-y/news2lesson/internal/logger"
)

// ErrEmptyResponse 模型返回了空文本
var ErrEmptyResponse = errors.New("llm returned empty response")

// Client 对 eino ChatModel 的单轮调用封装，带限流和 429 退避
type Client struct {
	chatModel  model.BaseChatModel
	limiter    *rate.Limiter
	maxRetries int
	baseDelay  time.Duration
	name       string
}

// Option 客户端选项
type Option func(*Client)

// WithLimiter 设置限流器
func WithLimiter(l *rate.Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

// WithRetry 设置 429 重试次数与初始退避
func WithRetry(maxRetries int, baseDelay time.Duration) Option {
	return func(c *Client) {
		c.maxRetries = maxRetries
		c.baseDelay = baseDelay
	}
}

// WithModelName 仅用于日志和横幅展示
func WithModelName(name string) Option {
	return func(c *Client) { c.name = name }
}

// NewClient 包装任意 eino ChatModel
func NewClient(cm model.BaseChatModel, opts ...Option) *Client {
	c := &Client{
		chatModel:  cm,
		limiter:    rate.NewLimiter(rate.Inf, 1),
		maxRetries: 2,
		baseDelay:  2 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewFromConfig 通过 OpenAI 兼容协议初始化模型
func NewFromConfig(ctx context.Context, cfg *config.Config) (*Client, error) {
	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: cfg.LLM.BaseURL,
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM 初始化失败: %w", err)
	}

	limit := rate.Limit(float64(cfg.Concurrency.RPM) / 60.0)
	limiter := rate.NewLimiter(limit, cfg.Concurrency.QPS)
	logger.Log.Infof("限流器已配置: Limit=%.2f req/s, Burst=%d", limit, cfg.Concurrency.QPS)

	return NewClient(chatModel,
		WithLimiter(limiter),
		WithRetry(cfg.Retries(), 2*time.Second),
		WithModelName(cfg.LLM.Model),
	), nil
}

// ModelName 配置的模型名称
func (c *Client) ModelName() string {
	return c.name
}

// Complete 发送单条提示词并返回去除首尾空白的文本
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	var lastErr error

	for i := 0; i <= c.maxRetries; i++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("limiter wait error: %w", err)
		}

		resp, err := c.chatModel.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)})
		if err != nil {
			if isRateLimited(err) && i < c.maxRetries {
				lastErr = err
				delay := c.baseDelay * time.Duration(1<<i)
				logger.Log.Warnf("触发 429 限流，等待 %v 后重试 (%d/%d)...", delay, i+1, c.maxRetries)
				select {
				case <-ctx.Done():
					return "", ctx.Err()
				case <-time.After(delay):
					continue
				}
			}
			return "", err
		}

		if resp == nil || strings.TrimSpace(resp.Content) == "" {
			return "", ErrEmptyResponse
		}
		return strings.TrimSpace(resp.Content), nil
	}

	return "", fmt.Errorf("max retries exceeded: %w", lastErr)
}

func isRateLimited(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") || strings.Contains(msg, "too many requests")
}
