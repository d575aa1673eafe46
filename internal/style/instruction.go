package style

import (
	"fmt"
	"strings"
	"text/template"
)

const (
	characterRule = "MUST instruct NotebookLM to visualize Doraemon and Nobita presenting the news in the *Visual Prompts* of the slides."
	genericGuard  = "Stick to the generic visual style provided. DO NOT include specific copyrighted characters unless requested."
)

const instructionTpl = `# Role
You are a "Zero-Prep" Online ESL Teacher's Assistant.
**Target Audience:** 10-year-old non-native English speakers.
**Goal:** Create a comprehensive **Lesson Slide Deck** based on the uploaded story.

# Constraint: Flexible Slide Count
- **Minimum Slides:** 15
- **Maximum Slides:** No limit (Expand as needed).
- **CRITICAL RULE:** Do NOT overcrowd a slide. If a Story Chapter is long, **split it into multiple slides** (e.g., Chapter 1 Part A, Chapter 1 Part B). Ensure the text size remains readable for children.

# Source Material
Use the provided **Story Chapters** and **Bilingual Vocabulary Data** as the core content.

# Visual Style Requirement
For the "Visual Prompt" section of every slide, use the following style:
👉 **{{.Prompt}}** 👈

---

# Task: Generate the Slide Deck
Output the content for each slide following this structure:

## Slide [Number]: [Topic/Title]

**1. Visual Prompt:**
*(Describe the image for AI generation based on the style above. {{.VisualRule}})*

**2. Student Reading (The Text):**
*(Copy text chunks from the Source Story. **Keep paragraphs short.** If the chapter is long, stop here and continue the rest on the next slide.)*

**3. Vocabulary Box (Bilingual):**
*(Select 1-2 keywords from the text on this slide. Format: **English Word** - **Chinese Translation** - Definition)*

**4. Teacher's Script & Action:**
*(Exact instructions for the teacher)*
- **Script:** "Teacher says: [Simple sentence]..."
- **Action:** (e.g., "Ask student to read.")
- **Check Question:** (Simple comprehension question)

---

# Suggested Outline (Use this as a guide, but add slides if needed):

**Phase 1: Warm-up & Pre-teach**
* **Slide 1:** Title Page & Visual Hook (Main Character).
* **Slide 2:** Vocabulary Pre-teach (First 3 key words from data).
* **Slide 3:** Vocabulary Pre-teach (Next 3 key words from data).

**Phase 2: The Story (The Core Reading)**
*(Instruction: Iterate through all 6 Chapters. **Create as many slides as necessary** to cover the full story text comfortably.)*
* **Slide 4+:** Chapter 1 (The Setting & Problem)
* **Slide [Next]:** Chapter 2 (The Challenge)
* **Slide [Next]:** ... (Continue for Chapters 3, 4, 5)
* **Slide [Next]:** Chapter 6 (The Happy Ending)
*(Note: Insert an "Interactive Pause" slide with a discussion question in the middle of the story.)*

**Phase 3: Review & Wrap-up**
* **Slide [Final-2]:** Comprehension Quiz (3 Multiple Choice Questions).
* **Slide [Final-1]:** Vocabulary Matching Game (English <-> Chinese).
* **Slide [Final]:** Homework & Summary (1 sentence summary).
`

var instruction = template.Must(template.New("notebooklm").Parse(instructionTpl))

// CharacterRule 仅对需要角色整合的风格返回非空规则
func CharacterRule(p Profile) string {
	if p.CharacterIntegration {
		return characterRule
	}
	return ""
}

// Instruction 组装给 NotebookLM 的幻灯片指令，纯字符串拼装，同一输入输出逐字节一致
func Instruction(p Profile) string {
	visualRule := CharacterRule(p)
	if visualRule == "" {
		visualRule = genericGuard
	}

	var sb strings.Builder
	err := instruction.Execute(&sb, struct {
		Prompt     string
		VisualRule string
	}{p.Prompt, visualRule})
	if err != nil {
		panic(fmt.Sprintf("style: render instruction for %q: %v", p.Name, err))
	}
	return sb.String()
}
