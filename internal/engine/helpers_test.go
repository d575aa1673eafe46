package engine

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/iWorld-y/news2lesson/internal/llm"
	"github.com/iWorld-y/news2lesson/internal/llm/llmtest"
	"github.com/iWorld-y/news2lesson/internal/search"
)

type fakeSearcher struct {
	results []search.Result
	err     error
	last    *search.Request
}

func (f *fakeSearcher) Search(_ context.Context, req *search.Request) (*search.Response, error) {
	f.last = req
	if f.err != nil {
		return nil, f.err
	}
	return &search.Response{Results: f.results}, nil
}

type fakeFetcher struct {
	text string
	err  error
}

func (f *fakeFetcher) Fetch(context.Context, *url.URL) (string, error) {
	return f.text, f.err
}

// routedModel 按提示词内容分派到各阶段的回复
type routedModel struct {
	query, filter, normalize, writer string
	queryErr, filterErr              error
}

func (r routedModel) chatModel() *llmtest.ChatModel {
	return &llmtest.ChatModel{Handler: func(prompt string) (string, error) {
		switch {
		case strings.Contains(prompt, "Search Query Optimizer"):
			return r.query, r.queryErr
		case strings.Contains(prompt, "Child Safety News Editor"):
			return r.filter, r.filterErr
		case strings.Contains(prompt, "Kids News Editor"):
			return r.normalize, nil
		case strings.Contains(prompt, "Content Architect"):
			return r.writer, nil
		}
		return "", errors.New("unexpected prompt")
	}}
}

func newCompleter(cm *llmtest.ChatModel) *llm.Client {
	return llm.NewClient(cm, llm.WithRetry(0, 0))
}

func sampleResults(n int) []search.Result {
	all := []search.Result{
		{Title: "Panda twins born at zoo", URL: "https://zoo.example.org/panda-twins", Content: "Two giant panda cubs were born at the city zoo on Monday and both are healthy.", Source: "zoo.example.org"},
		{Title: "Panda Express opens store", URL: "https://biz.example.com/panda-express", Content: "The restaurant chain opened a new store downtown.", Source: "biz.example.com"},
		{Title: "Scientists track wild pandas", URL: "https://science.example.net/wild-pandas", Content: "Researchers used GPS collars to follow pandas in Sichuan.", Source: "science.example.net"},
		{Title: "Bamboo forests grow", URL: "https://nature.example.com/bamboo", Content: "New bamboo forests give pandas more food.", Source: "nature.example.com"},
		{Title: "Panda cub first steps", URL: "https://zoo.example.org/first-steps", Content: "The cub took its first steps.", Source: "zoo.example.org"},
	}
	return all[:n]
}
