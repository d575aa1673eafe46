package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 项目配置结构体
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	LLM         LLMConfig         `yaml:"llm"`
	Search      SearchConfig      `yaml:"search"`
	Fetch       FetchConfig       `yaml:"fetch"`
	Log         LogConfig         `yaml:"log"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
}

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	Addr    string `yaml:"addr"`
	Timeout string `yaml:"timeout"`
}

// LLMConfig LLM 相关配置
type LLMConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
}

// SearchConfig 搜索相关配置
type SearchConfig struct {
	Provider   string        `yaml:"provider"`
	Tavily     TavilyConfig  `yaml:"tavily"`
	SearXNG    SearXNGConfig `yaml:"searxng"`
	MaxResults int           `yaml:"max_results"`
	Days       int           `yaml:"days"`
}

// TavilyConfig Tavily 配置
type TavilyConfig struct {
	APIKey string `yaml:"api_key"`
}

// SearXNGConfig SearXNG 配置
type SearXNGConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout int    `yaml:"timeout"`
}

// FetchConfig 网页抓取配置
type FetchConfig struct {
	Timeout   int    `yaml:"timeout"` // 秒
	MaxChars  int    `yaml:"max_chars"`
	UserAgent string `yaml:"user_agent"`
}

// LogConfig 日志相关配置
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// ConcurrencyConfig 并发控制配置
type ConcurrencyConfig struct {
	QPS        int `yaml:"qps"`
	RPM        int `yaml:"rpm"`
	MaxRetries *int `yaml:"max_retries"` // 未配置时为 2，0 表示不重试
}

const (
	DefaultAddr       = ":3000"
	DefaultTimeout    = "300s"
	DefaultMaxRetries = 2
	DefaultLLMBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"
	DefaultLLMModel   = "gemini-2.5-pro"
	DefaultUserAgent  = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// LoadConfig 从指定路径加载配置，并用环境变量覆盖密钥
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyEnv(os.Getenv)
	cfg.ApplyDefaults()
	return &cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv("LLM_API_KEY"); v != "" {
		c.LLM.APIKey = v
	} else if v := getenv("GEMINI_API_KEY"); v != "" {
		c.LLM.APIKey = v
	}
	if v := getenv("TAVILY_API_KEY"); v != "" {
		c.Search.Tavily.APIKey = v
	}
	if v := getenv("PORT"); v != "" {
		c.Server.Addr = ":" + v
	}
}

// ApplyDefaults 填充未配置的字段
func (c *Config) ApplyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.Timeout == "" {
		c.Server.Timeout = DefaultTimeout
	}
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = DefaultLLMBaseURL
	}
	if c.LLM.Model == "" {
		c.LLM.Model = DefaultLLMModel
	}
	if c.Search.MaxResults <= 0 {
		c.Search.MaxResults = 8
	}
	if c.Search.Days <= 0 {
		c.Search.Days = 180
	}
	if c.Fetch.Timeout <= 0 {
		c.Fetch.Timeout = 10
	}
	if c.Fetch.MaxChars <= 0 {
		c.Fetch.MaxChars = 15000
	}
	if c.Fetch.UserAgent == "" {
		c.Fetch.UserAgent = DefaultUserAgent
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Concurrency.RPM <= 0 {
		c.Concurrency.RPM = 60
	}
	if c.Concurrency.QPS <= 0 {
		c.Concurrency.QPS = 1
	}
	if c.Concurrency.MaxRetries == nil {
		n := DefaultMaxRetries
		c.Concurrency.MaxRetries = &n
	} else if *c.Concurrency.MaxRetries < 0 {
		n := 0
		c.Concurrency.MaxRetries = &n
	}
}

// Retries 429 重试次数
func (c *Config) Retries() int {
	if c.Concurrency.MaxRetries == nil {
		return DefaultMaxRetries
	}
	return *c.Concurrency.MaxRetries
}

// FetchTimeout 抓取超时
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.Fetch.Timeout) * time.Second
}

// Validate 校验必填项
func (c *Config) Validate() error {
	if c.LLM.APIKey == "" {
		return fmt.Errorf("配置错误: 未设置 llm.api_key")
	}
	switch c.Search.Provider {
	case "", "tavily":
		if c.Search.Tavily.APIKey == "" {
			return fmt.Errorf("配置错误: 未设置 search.tavily.api_key")
		}
	case "searxng":
		if c.Search.SearXNG.BaseURL == "" {
			return fmt.Errorf("配置错误: 未设置 search.searxng.base_url")
		}
	default:
		return fmt.Errorf("配置错误: 未知的搜索提供方 %q", c.Search.Provider)
	}
	return nil
}
