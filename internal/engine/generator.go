package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/iWorld-y/news2lesson/internal/llm"
	"github.com/iWorld-y/news2lesson/internal/logger"
	"github.com/iWorld-y/news2lesson/internal/model"
	"github.com/iWorld-y/news2lesson/internal/style"
)

// LessonGenerator 生成课程包：故事/词汇/测验由模型生成，幻灯片指令由代码组装
type LessonGenerator struct {
	llm Completer
}

// NewLessonGenerator 创建课程生成器
func NewLessonGenerator(c Completer) *LessonGenerator {
	return &LessonGenerator{llm: c}
}

type writerFields struct {
	SynopsisZh     string `json:"synopsis_zh"`
	SourceMaterial string `json:"source_material"`
}

// Generate 模型失败或返回无法解析时直接失败，没有兜底内容
func (g *LessonGenerator) Generate(ctx context.Context, item model.NewsItem, styleName string) (model.LessonPackage, Outcome) {
	start := time.Now()

	profile := style.Resolve(styleName)
	if profile.Name != styleName {
		logger.FromContext(ctx).Infof("未知风格 %q，使用默认风格 %q", styleName, profile.Name)
	}
	instruction := style.Instruction(profile)

	itemJSON, err := marshalItem(item)
	if err != nil {
		oc := failed(StageGenerate, "marshal news item", err)
		oc.record(ctx, start)
		return model.LessonPackage{}, oc
	}

	out, err := g.llm.Complete(ctx, buildWriterPrompt(itemJSON))
	if err != nil {
		oc := failed(StageGenerate, "writer model call failed", fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err))
		oc.record(ctx, start)
		return model.LessonPackage{}, oc
	}

	var fields writerFields
	if err := llm.DecodeJSON(out, &fields); err != nil {
		oc := failed(StageGenerate, "writer response unparsable", fmt.Errorf("%w: %w", ErrMalformedResponse, err))
		oc.record(ctx, start)
		return model.LessonPackage{}, oc
	}
	if fields.SourceMaterial == "" {
		oc := failed(StageGenerate, "writer response missing source_material", fmt.Errorf("%w: empty source_material", ErrMalformedResponse))
		oc.record(ctx, start)
		return model.LessonPackage{}, oc
	}

	oc := succeeded(StageGenerate)
	oc.record(ctx, start)
	return model.LessonPackage{
		SynopsisZh:            fields.SynopsisZh,
		SourceMaterial:        fields.SourceMaterial,
		NotebookLMInstruction: instruction,
	}, oc
}

// marshalItem 不转义 <>&，模型看到的是新闻原文
func marshalItem(item model.NewsItem) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(item); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
