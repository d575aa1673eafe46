package engine

import (
	"context"
	"strings"
	"time"

	"github.com/iWorld-y/news2lesson/internal/llm"
)

// Completer 单条提示词的模型调用
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

var (
	fallbackScopeTerms     = []string{"news", "science", "nature"}
	fallbackExclusionTerms = []string{"-business", "-politics", "-restaurant", "-crime"}
)

// QueryOptimizer 把话题改写为消歧义、带排除词的搜索语句
type QueryOptimizer struct {
	llm Completer
}

// NewQueryOptimizer 创建查询优化器
func NewQueryOptimizer(c Completer) *QueryOptimizer {
	return &QueryOptimizer{llm: c}
}

// Optimize 永远返回可用的查询；模型失败时静默回退到固定模板
func (o *QueryOptimizer) Optimize(ctx context.Context, topic string) (string, Outcome) {
	start := time.Now()

	out, err := o.llm.Complete(ctx, buildQueryPrompt(topic))
	if err == nil {
		if q := cleanQuery(out); q != "" {
			oc := succeeded(StageOptimize)
			if !hasExclusion(q) {
				q = q + " " + strings.Join(fallbackExclusionTerms, " ")
			}
			oc.record(ctx, start)
			return q, oc
		}
		err = llm.ErrEmptyResponse
	}

	oc := degraded(StageOptimize, "query model unavailable, using fallback query", err)
	oc.record(ctx, start)
	return FallbackQuery(topic), oc
}

// FallbackQuery 确定性的兜底查询
func FallbackQuery(topic string) string {
	terms := append([]string{`"` + strings.TrimSpace(topic) + `"`}, fallbackScopeTerms...)
	terms = append(terms, fallbackExclusionTerms...)
	return strings.Join(terms, " ")
}

var queryWrappers = [][2]string{{`"`, `"`}, {`'`, `'`}, {"“", "”"}, {"`", "`"}}

// cleanQuery 整段回复即查询：去掉代码块、合并成一行，并去掉整体包裹的引号
func cleanQuery(text string) string {
	q := strings.Join(strings.Fields(llm.StripFences(text)), " ")
	for _, w := range queryWrappers {
		open, closing := w[0], w[1]
		if len(q) < len(open)+len(closing) || !strings.HasPrefix(q, open) || !strings.HasSuffix(q, closing) {
			continue
		}
		inner := q[len(open) : len(q)-len(closing)]
		if !strings.Contains(inner, open) && !strings.Contains(inner, closing) {
			q = strings.TrimSpace(inner)
		}
	}
	return q
}

func hasExclusion(q string) bool {
	for _, f := range strings.Fields(q) {
		if len(f) > 1 && f[0] == '-' {
			return true
		}
	}
	return false
}
