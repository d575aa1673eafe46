package server

import (
	"context"
	"encoding/json"
	nethttp "net/http"
	"strings"
	"time"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/middleware"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iWorld-y/news2lesson/internal/config"
	"github.com/iWorld-y/news2lesson/internal/logger"
	"github.com/iWorld-y/news2lesson/internal/metrics"
	"github.com/iWorld-y/news2lesson/internal/model"
	"github.com/iWorld-y/news2lesson/internal/style"
)

// Pipeline 由 engine.Engine 实现
type Pipeline interface {
	SearchNews(ctx context.Context, topic string) ([]model.NewsItem, error)
	DirectInput(ctx context.Context, in model.DirectInput) (*model.NewsItem, error)
	GenerateLesson(ctx context.Context, item model.NewsItem, styleName string) (*model.LessonPackage, error)
	ModelName() string
}

type searchNewsRequest struct {
	Query string `json:"query"`
	Date  string `json:"date,omitempty"`
}

type directInputRequest struct {
	Content string          `json:"content"`
	Kind    model.InputKind `json:"kind"`
}

type generateContentRequest struct {
	NewsContent model.NewsItem `json:"newsContent"`
	Style       string         `json:"style"`
}

// NewHTTPServer 注册 /api 路由、健康检查和 /metrics
func NewHTTPServer(c config.ServerConfig, p Pipeline) *http.Server {
	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
		),
		http.Filter(metrics.Filter),
		http.NotFoundHandler(nethttp.HandlerFunc(notFound)),
	}
	if c.Addr != "" {
		opts = append(opts, http.Address(c.Addr))
	}
	if c.Timeout != "" {
		if d, err := time.ParseDuration(c.Timeout); err == nil {
			opts = append(opts, http.Timeout(d))
		}
	}

	srv := http.NewServer(opts...)
	h := &handler{p: p}

	r := srv.Route("/")
	r.POST("/api/search-news", h.searchNews)
	r.POST("/api/direct-input", h.directInput)
	r.POST("/api/generate-content", h.generateContent)
	r.GET("/api/styles", h.styles)
	r.GET("/healthz", h.healthz)

	srv.Handle("/metrics", promhttp.Handler())
	return srv
}

type handler struct {
	p Pipeline
}

// invoke 按生成代码的方式经过 server 中间件链，保证 recovery 生效
func invoke(ctx http.Context, operation string, req interface{}, call middleware.Handler) error {
	http.SetOperation(ctx, operation)
	h := ctx.Middleware(call)
	out, err := h(ctx, req)
	if err != nil {
		return err
	}
	return ctx.JSON(nethttp.StatusOK, out)
}

func (h *handler) searchNews(ctx http.Context) error {
	var req searchNewsRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(err)
	}
	if req.Date != "" {
		logger.Log.Debugf("search-news date=%s (ignored)", req.Date)
	}

	return invoke(ctx, "/api/search-news", &req, func(ctx context.Context, in interface{}) (interface{}, error) {
		return h.p.SearchNews(ctx, in.(*searchNewsRequest).Query)
	})
}

// directInput 返回单元素列表，和搜索接口保持同样的形状
func (h *handler) directInput(ctx http.Context) error {
	var req directInputRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(err)
	}

	return invoke(ctx, "/api/direct-input", &req, func(ctx context.Context, in interface{}) (interface{}, error) {
		r := in.(*directInputRequest)
		item, err := h.p.DirectInput(ctx, model.DirectInput{Content: r.Content, Kind: r.Kind})
		if err != nil {
			return nil, err
		}
		return []model.NewsItem{*item}, nil
	})
}

func (h *handler) generateContent(ctx http.Context) error {
	var req generateContentRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(err)
	}

	return invoke(ctx, "/api/generate-content", &req, func(ctx context.Context, in interface{}) (interface{}, error) {
		r := in.(*generateContentRequest)
		return h.p.GenerateLesson(ctx, r.NewsContent, r.Style)
	})
}

func (h *handler) styles(ctx http.Context) error {
	return invoke(ctx, "/api/styles", nil, func(context.Context, interface{}) (interface{}, error) {
		return style.Names(), nil
	})
}

func (h *handler) healthz(ctx http.Context) error {
	call := ctx.Middleware(func(context.Context, interface{}) (interface{}, error) {
		return "News2Lesson backend is running (model: " + h.p.ModelName() + ")", nil
	})
	out, err := call(ctx, nil)
	if err != nil {
		return err
	}
	return ctx.String(nethttp.StatusOK, out.(string))
}

func badRequest(err error) error {
	return kerrors.BadRequest("INVALID_ARGUMENT", "請求格式錯誤").WithCause(err)
}

func notFound(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !strings.HasPrefix(r.URL.Path, "/api/") {
		nethttp.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(nethttp.StatusNotFound)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "API Not Found"})
}
