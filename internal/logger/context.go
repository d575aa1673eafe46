package logger

import (
	"context"

	"github.com/sirupsen/logrus"
)

type ctxKey struct{}

// ContextWithEntry 把带请求字段的日志条目放入 context
func ContextWithEntry(ctx context.Context, entry *logrus.Entry) context.Context {
	return context.WithValue(ctx, ctxKey{}, entry)
}

// FromContext 取出请求日志条目，没有时返回全局 Log 的条目
func FromContext(ctx context.Context) *logrus.Entry {
	if e, ok := ctx.Value(ctxKey{}).(*logrus.Entry); ok {
		return e
	}
	return logrus.NewEntry(Log)
}
