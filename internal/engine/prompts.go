package engine

import "fmt"

const queryPromptTpl = `
You are a Search Query Optimizer for an educational kids' news app.

User Topic: "%[1]s"

Goal: Create a strict search query string for a news search API to find REAL NEWS suitable for children (Science, Animals, Space, Nature).

Rules:
1. **Disambiguate**: If the topic is "Panda", ensure we find the ANIMAL, not "Panda Express" (restaurant) or "Foodpanda". If "Mars", find the PLANET, not the chocolate bar.
2. **Exclude Noise**: ALWAYS include negative keywords to remove business, politics, and crime.
3. **Format**: Output ONLY the raw query string. No quotes, no explanations.

Example Input: "Panda"
Example Output: "Giant Panda" conservation zoo news -restaurant -food -delivery -express -business

Example Input: "Space"
Example Output: space exploration nasa astronomy news -military -war -politics

Now, optimize for: "%[1]s"
`

const filterPromptTpl = `
You are a strict "Child Safety News Editor".
User Original Topic: "%s"

Task:
1. Review the news search results.
2. **RELEVANCE**: Keep stories about the biological/scientific subject. DISCARD commercial/business news (e.g., stocks, restaurants).
3. **SAFETY**: DISCARD politics, crime, violence.
4. Select TOP %d best stories.
5. Translate "title_zh" and "summary_zh" to **Traditional Chinese (Taiwan)**. Keep "content" in its original language.

Output JSON Array: [{ "title_zh", "summary_zh", "source", "url", "content" }]

Raw Data:
%s
`

const normalizePromptTpl = `
You are a "Kids News Editor". The text below was provided directly by a teacher, either pasted or scraped from a web page.

Source: %s

Task:
1. Write a short, child-friendly news title in **Traditional Chinese (Taiwan)**.
2. Write a one-sentence summary in **Traditional Chinese (Taiwan)**.
3. Produce a cleaned body: remove menus, ads, cookie notices and unrelated fragments, keep the story paragraphs in their original language.
4. If the text only says the page could not be fetched, infer what you can from the URL and say so in the summary.

Output a single JSON object: { "title_zh", "summary_zh", "content" }

Raw Text:
%s
`

const writerPromptTpl = `
# Role
You are the "News Hunter & Content Architect." Convert the news into **ENGLISH** educational materials for ESL students.

SOURCE NEWS:
%s

# Workflow & Output (JSON Format)

Please generate a JSON object with exactly these 2 fields (Note: Field 3 is handled by code):

## Field 1: "synopsis_zh" (Brief Summary)
- Language: Traditional Chinese.
- Length: Short and concise (approx. 50-80 words).
- Content: Quickly summarize the main event of the story.

## Field 2: "source_material" (The Content for NotebookLM)
- Format: Markdown string.
- Content Requirements:
  1. **Meta Data**: Original Source Link & Date.
  2. **The Story**:
     - Language: **ENGLISH ONLY**.
     - Write 6 distinct chapters.
     - Style: **Narrative Story (Non-fiction adapted as a story)**.
     - **CRITICAL**: The story must be about the ACTUAL news event. **DO NOT introduce fictional characters like Doraemon or Nobita into the text of the story.** Keep it factual but engaging for 10-year-olds (A2/B1 level).
  3. **Bilingual Vocabulary Data**:
     - List 10-12 words.
     - Format: **English Word** (Traditional Chinese Translation) : Simple English Definition.
  4. **Comprehension Check Data**:
     - Language: **ENGLISH**.
     - 5 multiple choice questions.
     - **DO NOT mark the correct answer.**
`

func buildQueryPrompt(topic string) string {
	return fmt.Sprintf(queryPromptTpl, topic)
}

func buildFilterPrompt(topic string, keep int, rawJSON []byte) string {
	return fmt.Sprintf(filterPromptTpl, topic, keep, rawJSON)
}

func buildNormalizePrompt(source, text string) string {
	return fmt.Sprintf(normalizePromptTpl, source, text)
}

func buildWriterPrompt(itemJSON []byte) string {
	return fmt.Sprintf(writerPromptTpl, itemJSON)
}
