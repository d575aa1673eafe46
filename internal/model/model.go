package model

// NewsItem 生成课程所用的标准新闻条目，五个字段都不为 nil
type NewsItem struct {
	TitleZh   string `json:"title_zh"`
	SummaryZh string `json:"summary_zh"`
	Source    string `json:"source"`
	URL       string `json:"url"`
	Content   string `json:"content"` // 最完整的正文，作为生成输入
}

// RawHit 搜索提供方返回的原始结果
type RawHit struct {
	Title         string `json:"title"`
	Content       string `json:"content"`
	Source        string `json:"source"`
	URL           string `json:"url"`
	PublishedDate string `json:"published_date,omitempty"`
}

// InputKind 直接输入的类型
type InputKind string

const (
	InputURL  InputKind = "url"
	InputText InputKind = "text"
)

// DirectInput 用户直接提供的 URL 或粘贴文本
type DirectInput struct {
	Content string    `json:"content"`
	Kind    InputKind `json:"kind"`
}

// LessonPackage 最终生成的课程包
type LessonPackage struct {
	SynopsisZh            string `json:"synopsis_zh"`
	SourceMaterial        string `json:"source_material"` // markdown
	NotebookLMInstruction string `json:"notebooklm_instruction"`
}
