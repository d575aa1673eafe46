package engine

import (
	"context"
	"errors"
	"time"

	"github.com/iWorld-y/news2lesson/internal/logger"
	"github.com/iWorld-y/news2lesson/internal/metrics"
)

var (
	// ErrUpstreamUnavailable 搜索服务、网页或模型无法访问
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	// ErrMalformedResponse 模型返回内容无法解析为预期结构
	ErrMalformedResponse = errors.New("malformed upstream response")
	// ErrInvalidInput 调用方输入不合法
	ErrInvalidInput = errors.New("invalid input")
)

// OutcomeKind 阶段结果类型
type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeDegraded
	OutcomeFailed
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeDegraded:
		return "degraded"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// 阶段名称，同时用作指标标签
const (
	StageOptimize  = "optimize"
	StageRetrieve  = "retrieve"
	StageNormalize = "normalize"
	StageGenerate  = "generate"
)

// Outcome 单个阶段的结果：成功、降级（附原因）或失败（附原因和错误）
type Outcome struct {
	Stage  string
	Kind   OutcomeKind
	Reason string
	Err    error
}

func succeeded(stage string) Outcome {
	return Outcome{Stage: stage, Kind: OutcomeSuccess}
}

func degraded(stage, reason string, cause error) Outcome {
	return Outcome{Stage: stage, Kind: OutcomeDegraded, Reason: reason, Err: cause}
}

func failed(stage, reason string, err error) Outcome {
	return Outcome{Stage: stage, Kind: OutcomeFailed, Reason: reason, Err: err}
}

// Failed 阶段是否失败
func (o Outcome) Failed() bool {
	return o.Kind == OutcomeFailed
}

// record 写日志和指标；降级为 WARN，失败为 ERROR
func (o Outcome) record(ctx context.Context, start time.Time) {
	metrics.ObserveStage(o.Stage, o.Kind.String(), time.Since(start))

	entry := logger.FromContext(ctx).WithField("stage", o.Stage)
	switch o.Kind {
	case OutcomeDegraded:
		entry.Warnf("阶段降级: %s (%v)", o.Reason, o.Err)
	case OutcomeFailed:
		entry.Errorf("阶段失败: %s: %v", o.Reason, o.Err)
	default:
		entry.Debug("阶段完成")
	}
}
