package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// StripFences 去掉模型输出中所有 markdown 代码块标记
func StripFences(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}

// DecodeJSON 去掉代码块标记后解析 JSON
func DecodeJSON(text string, v any) error {
	clean := StripFences(text)
	if err := json.Unmarshal([]byte(clean), v); err != nil {
		return fmt.Errorf("json unmarshal error: %w, content: %.200s", err, clean)
	}
	return nil
}
