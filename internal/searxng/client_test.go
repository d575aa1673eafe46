package searxng

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/iWorld-y/news2lesson/internal/search"
)

func TestClient_Search(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if r.URL.Path != "/searx/search" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if q.Get("format") != "json" || q.Get("categories") != "news" || q.Get("time_range") != "year" {
			t.Errorf("unexpected query %v", q)
		}
		if r.Header.Get("User-Agent") != "kids-bot" {
			t.Errorf("User-Agent = %q", r.Header.Get("User-Agent"))
		}
		w.Write([]byte(`{"results":[
			{"title":"a","url":"https://a.com/1","content":"x"},
			{"title":"no link","url":"","content":"skip"},
			{"title":"b","url":"https://www.b.com/2","content":"y"},
			{"title":"c","url":"https://c.com/3","content":"z"}
		]}`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL+"/searx", WithTimeout(5*time.Second), WithUserAgent("kids-bot"))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	resp, err := c.Search(context.Background(), &search.Request{Query: "mars", Topic: "news", MaxResults: 2, Days: 180})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("len(Results) = %d, want 2", len(resp.Results))
	}
	if resp.Results[1].Source != "b.com" {
		t.Errorf("Source = %q", resp.Results[1].Source)
	}
}

func TestClient_SearchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c, _ := NewClient(srv.URL)
	_, err := c.Search(context.Background(), &search.Request{Query: "mars"})
	if err == nil || !strings.Contains(err.Error(), "429") {
		t.Fatalf("err = %v, want status 429", err)
	}
}

func TestNewClient_InvalidBase(t *testing.T) {
	if _, err := NewClient("localhost"); err == nil {
		t.Error("expected error for base url without scheme")
	}
}

func TestTimeRange(t *testing.T) {
	cases := map[int]string{0: "", 1: "day", 3: "week", 30: "month", 180: "year"}
	for days, want := range cases {
		if got := timeRange(days); got != want {
			t.Errorf("timeRange(%d) = %q, want %q", days, got, want)
		}
	}
}
