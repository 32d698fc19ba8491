package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
)

func TestWithContextAddsRequestFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("production", &buf)

	ctx := context.WithValue(context.Background(), RequestIDKey, "req-1")
	ctx = context.WithValue(ctx, StoreKey, "DEFAULT")
	log.WithContext(ctx).Info("hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if entry["request_id"] != "req-1" || entry["store"] != "DEFAULT" {
		t.Fatalf("unexpected fields: %v", entry)
	}
	if _, ok := entry["user_id"]; ok {
		t.Fatalf("expected no user_id, got %v", entry)
	}
}

func TestAuthEventFailureIsWarning(t *testing.T) {
	var buf bytes.Buffer
	NewWithWriter("production", &buf).AuthEvent("login", "alice", false, "password mismatch")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if entry["level"] != "WARN" || entry["reason"] != "password mismatch" {
		t.Fatalf("unexpected entry: %v", entry)
	}
}
