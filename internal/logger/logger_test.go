package logger

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/sirupsen/logrus"
)

func TestCustomFormatter(t *testing.T) {
	entry := &logrus.Entry{
		Time:    time.Date(2025, 12, 5, 8, 30, 0, 0, time.UTC),
		Level:   logrus.WarnLevel,
		Message: "fallback used",
		Data:    logrus.Fields{"stage": "retrieve", "request_id": "abc"},
	}

	out, err := (&CustomFormatter{}).Format(entry)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	want := "[2025-12-05 08:30:00] [WARN] [] fallback used request_id=abc stage=retrieve\n"
	if string(out) != want {
		t.Errorf("Format() = %q, want %q", out, want)
	}
}

func TestInitLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	if err := InitLogger("bogus", path); err != nil {
		t.Fatalf("InitLogger() error = %v", err)
	}
	if Log.GetLevel() != logrus.InfoLevel {
		t.Errorf("level = %v, want info", Log.GetLevel())
	}
}

func TestKratosLogger(t *testing.T) {
	var buf bytes.Buffer
	prev := Log
	defer func() { Log = prev }()

	Log = logrus.New()
	Log.SetOutput(&buf)
	Log.SetFormatter(&CustomFormatter{})

	kl := NewKratosLogger()
	if err := kl.Log(log.LevelInfo, log.DefaultMessageKey, "server started", "addr", ":3000"); err != nil {
		t.Fatalf("Log() error = %v", err)
	}

	got := buf.String()
	if !strings.Contains(got, "server started") || !strings.Contains(got, "addr=:3000") {
		t.Errorf("unexpected output %q", got)
	}
}

func TestFromContext(t *testing.T) {
	ctx := context.Background()
	if FromContext(ctx) == nil {
		t.Fatal("FromContext() returned nil without entry")
	}

	entry := Log.WithField("request_id", "r-1")
	got := FromContext(ContextWithEntry(ctx, entry))
	if got.Data["request_id"] != "r-1" {
		t.Errorf("request_id = %v", got.Data["request_id"])
	}
}
