package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/google/uuid"

	"github.com/iWorld-y/news2lesson/internal/config"
	"github.com/iWorld-y/news2lesson/internal/fetch"
	"github.com/iWorld-y/news2lesson/internal/llm"
	"github.com/iWorld-y/news2lesson/internal/logger"
	"github.com/iWorld-y/news2lesson/internal/model"
	"github.com/iWorld-y/news2lesson/internal/search"
	"github.com/iWorld-y/news2lesson/internal/search/factory"
)

// 对调用方报告的错误原因
const (
	ReasonInvalidArgument     = "INVALID_ARGUMENT"
	ReasonUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"
	ReasonMalformedResponse   = "MALFORMED_UPSTREAM_RESPONSE"
)

// 对外只暴露笼统的失败信息，具体原因写日志
const (
	msgSearchFailed    = "搜尋失敗"
	msgNormalizeFailed = "解析失敗"
	msgGenerateFailed  = "生成失敗"
)

// Engine 串联各阶段，负责错误归类与日志
type Engine struct {
	optimizer  *QueryOptimizer
	retriever  *NewsRetriever
	normalizer *ContentNormalizer
	generator  *LessonGenerator
	modelName  string
}

// Deps 引擎依赖
type Deps struct {
	Searcher  search.Searcher
	LLM       Completer
	Fetcher   PageFetcher
	Retriever RetrieverOptions
	MaxChars  int
	ModelName string
}

// NewEngine 根据配置初始化模型、搜索客户端和网页抓取器
func NewEngine(ctx context.Context, cfg *config.Config) (*Engine, error) {
	client, err := llm.NewFromConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	searcher, err := factory.NewSearcher(cfg)
	if err != nil {
		return nil, fmt.Errorf("搜索客户端初始化失败: %w", err)
	}

	return NewWithDeps(Deps{
		Searcher: searcher,
		LLM:      client,
		Fetcher:  fetch.NewFetcher(cfg.FetchTimeout(), cfg.Fetch.UserAgent, cfg.Fetch.MaxChars),
		Retriever: RetrieverOptions{
			MaxResults: cfg.Search.MaxResults,
			Days:       cfg.Search.Days,
		},
		MaxChars:  cfg.Fetch.MaxChars,
		ModelName: client.ModelName(),
	}), nil
}

// NewWithDeps 用现成依赖组装引擎
func NewWithDeps(d Deps) *Engine {
	return &Engine{
		optimizer:  NewQueryOptimizer(d.LLM),
		retriever:  NewNewsRetriever(d.Searcher, d.LLM, d.Retriever),
		normalizer: NewContentNormalizer(d.Fetcher, d.LLM, d.MaxChars),
		generator:  NewLessonGenerator(d.LLM),
		modelName:  d.ModelName,
	}
}

// ModelName 当前使用的模型
func (e *Engine) ModelName() string {
	return e.modelName
}

// begin 分配请求 ID；流水线一旦开始不随调用方取消而中断
func begin(ctx context.Context, op string) context.Context {
	entry := logger.FromContext(ctx).WithFields(map[string]interface{}{
		"request_id": uuid.NewString(),
		"op":         op,
	})
	return logger.ContextWithEntry(context.WithoutCancel(ctx), entry)
}

// SearchNews 话题 -> 优化查询 -> 搜索并过滤；没有结果时返回空列表
func (e *Engine) SearchNews(ctx context.Context, topic string) ([]model.NewsItem, error) {
	ctx = begin(ctx, "search-news")
	log := logger.FromContext(ctx)

	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, report(ctx, msgSearchFailed, fmt.Errorf("%w: topic is empty", ErrInvalidInput))
	}
	log.Infof("🔍 [收到請求] 原始關鍵字: %s", topic)

	query, _ := e.optimizer.Optimize(ctx, topic)
	log.Infof("👉 優化後的搜尋指令: [ %s ]", query)

	items, oc := e.retriever.Retrieve(ctx, topic, query)
	if oc.Failed() {
		return nil, report(ctx, msgSearchFailed, oc.Err)
	}
	log.Infof("✅ 回傳 %d 筆新聞 (%s)", len(items), oc.Kind)
	return items, nil
}

// DirectInput URL 或粘贴文本 -> NewsItem，替代搜索路径
func (e *Engine) DirectInput(ctx context.Context, in model.DirectInput) (*model.NewsItem, error) {
	ctx = begin(ctx, "direct-input")
	logger.FromContext(ctx).Infof("📥 直接輸入 kind=%s", in.Kind)

	item, oc := e.normalizer.Normalize(ctx, in)
	if oc.Failed() {
		return nil, report(ctx, msgNormalizeFailed, oc.Err)
	}
	return &item, nil
}

// GenerateLesson 根据选中的新闻和风格生成课程包
func (e *Engine) GenerateLesson(ctx context.Context, item model.NewsItem, styleName string) (*model.LessonPackage, error) {
	ctx = begin(ctx, "generate-content")
	log := logger.FromContext(ctx)

	if strings.TrimSpace(item.Content) == "" && strings.TrimSpace(item.TitleZh) == "" {
		return nil, report(ctx, msgGenerateFailed, fmt.Errorf("%w: news item is empty", ErrInvalidInput))
	}
	log.Infof("✍️ [生成開始] 風格: %s", styleName)

	pkg, oc := e.generator.Generate(ctx, item, styleName)
	if oc.Failed() {
		return nil, report(ctx, msgGenerateFailed, oc.Err)
	}
	log.Info("✅ 內容生成完畢")
	return &pkg, nil
}

// report 把组件错误归类为对外的 kratos 错误
func report(ctx context.Context, msg string, err error) error {
	logger.FromContext(ctx).Errorf("❌ %s: %v", msg, err)

	var kerr *kerrors.Error
	switch {
	case errors.Is(err, ErrInvalidInput):
		kerr = kerrors.BadRequest(ReasonInvalidArgument, msg)
	case errors.Is(err, ErrMalformedResponse):
		kerr = kerrors.New(502, ReasonMalformedResponse, msg)
	default:
		kerr = kerrors.New(502, ReasonUpstreamUnavailable, msg)
	}
	return kerr.WithCause(err)
}
