package server

import (
	"context"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	kerrors "github.com/go-kratos/kratos/v2/errors"

	"github.com/iWorld-y/news2lesson/internal/config"
	"github.com/iWorld-y/news2lesson/internal/model"
	"github.com/iWorld-y/news2lesson/internal/style"
)

type fakePipeline struct {
	topic string
	input model.DirectInput
	style string
	err   error
}

func (f *fakePipeline) SearchNews(_ context.Context, topic string) ([]model.NewsItem, error) {
	f.topic = topic
	if f.err != nil {
		return nil, f.err
	}
	return []model.NewsItem{{TitleZh: "熊貓", URL: "https://zoo.example.org/a"}}, nil
}

func (f *fakePipeline) DirectInput(_ context.Context, in model.DirectInput) (*model.NewsItem, error) {
	f.input = in
	if f.err != nil {
		return nil, f.err
	}
	return &model.NewsItem{TitleZh: "火星", Source: "User Input"}, nil
}

func (f *fakePipeline) GenerateLesson(_ context.Context, item model.NewsItem, styleName string) (*model.LessonPackage, error) {
	f.style = styleName
	if f.err != nil {
		return nil, f.err
	}
	return &model.LessonPackage{SynopsisZh: item.TitleZh, SourceMaterial: "# Meta Data", NotebookLMInstruction: "Visual Style"}, nil
}

func (f *fakePipeline) ModelName() string { return "fake-model" }

func serve(t *testing.T, p Pipeline, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	srv := NewHTTPServer(config.ServerConfig{Timeout: "5s"}, p)

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestSearchNews(t *testing.T) {
	p := &fakePipeline{}
	rec := serve(t, p, nethttp.MethodPost, "/api/search-news", `{"query":"panda","date":"2025-12-01"}`)
	if rec.Code != nethttp.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body)
	}
	if p.topic != "panda" {
		t.Errorf("topic = %q", p.topic)
	}

	var items []model.NewsItem
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(items) != 1 || items[0].TitleZh != "熊貓" {
		t.Errorf("items = %+v", items)
	}
}

func TestDirectInput(t *testing.T) {
	p := &fakePipeline{}
	rec := serve(t, p, nethttp.MethodPost, "/api/direct-input", `{"content":"Rover lands","kind":"text"}`)
	if rec.Code != nethttp.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body)
	}
	if p.input.Kind != model.InputText || p.input.Content != "Rover lands" {
		t.Errorf("input = %+v", p.input)
	}

	var items []model.NewsItem
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil || len(items) != 1 {
		t.Fatalf("body = %s (%v)", rec.Body, err)
	}
}

func TestGenerateContent(t *testing.T) {
	p := &fakePipeline{}
	body := `{"newsContent":{"title_zh":"熊貓","summary_zh":"s","source":"zoo","url":"","content":"c"},"style":"Classic Doraemon"}`
	rec := serve(t, p, nethttp.MethodPost, "/api/generate-content", body)
	if rec.Code != nethttp.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body)
	}
	if p.style != "Classic Doraemon" {
		t.Errorf("style = %q", p.style)
	}

	var pkg model.LessonPackage
	if err := json.Unmarshal(rec.Body.Bytes(), &pkg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if pkg.SynopsisZh != "熊貓" || pkg.NotebookLMInstruction == "" {
		t.Errorf("pkg = %+v", pkg)
	}
}

func TestPipelineErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"invalid", kerrors.BadRequest("INVALID_ARGUMENT", "搜尋失敗"), nethttp.StatusBadRequest},
		{"upstream", kerrors.New(502, "UPSTREAM_UNAVAILABLE", "搜尋失敗"), nethttp.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, &fakePipeline{err: tt.err}, nethttp.MethodPost, "/api/search-news", `{"query":"panda"}`)
			if rec.Code != tt.code {
				t.Errorf("status = %d, want %d", rec.Code, tt.code)
			}
			if !strings.Contains(rec.Body.String(), "搜尋失敗") {
				t.Errorf("body = %s", rec.Body)
			}
		})
	}
}

func TestStylesAndHealth(t *testing.T) {
	rec := serve(t, &fakePipeline{}, nethttp.MethodGet, "/api/styles", "")
	var names []string
	if err := json.Unmarshal(rec.Body.Bytes(), &names); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(names) != len(style.Names()) || names[0] != style.Names()[0] {
		t.Errorf("names = %v", names)
	}

	rec = serve(t, &fakePipeline{}, nethttp.MethodGet, "/healthz", "")
	if rec.Code != nethttp.StatusOK || !strings.Contains(rec.Body.String(), "fake-model") {
		t.Errorf("healthz = %d %s", rec.Code, rec.Body)
	}
}

func TestUnknownAPI(t *testing.T) {
	rec := serve(t, &fakePipeline{}, nethttp.MethodGet, "/api/nope", "")
	if rec.Code != nethttp.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || body["error"] != "API Not Found" {
		t.Errorf("body = %s (%v)", rec.Body, err)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	serve(t, &fakePipeline{}, nethttp.MethodGet, "/api/styles", "")
	rec := serve(t, &fakePipeline{}, nethttp.MethodGet, "/metrics", "")
	if !strings.Contains(rec.Body.String(), "news2lesson_http_request_duration_seconds") {
		t.Errorf("metrics output missing http histogram")
	}
}

type panickingPipeline struct{ fakePipeline }

func (panickingPipeline) SearchNews(context.Context, string) ([]model.NewsItem, error) {
	panic("boom")
}

func (panickingPipeline) GenerateLesson(context.Context, model.NewsItem, string) (*model.LessonPackage, error) {
	panic("boom")
}

func TestHandlerPanicRecovered(t *testing.T) {
	cases := []struct{ path, body string }{
		{"/api/search-news", `{"query":"panda"}`},
		{"/api/generate-content", `{"newsContent":{"title_zh":"x","content":"y"},"style":""}`},
	}
	for _, c := range cases {
		rec := serve(t, &panickingPipeline{}, nethttp.MethodPost, c.path, c.body)
		if rec.Code != nethttp.StatusInternalServerError {
			t.Errorf("%s: status = %d, want 500", c.path, rec.Code)
		}
	}
}
