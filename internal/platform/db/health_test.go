package db

import (
	"encoding/json"
	"testing"
)

func TestPoolStatus_WireShape(t *testing.T) {
	status := PoolStatus{
		TotalConns:    8,
		IdleConns:     3,
		AcquiredConns: 5,
		MaxConns:      20,
	}

	raw, err := json.Marshal(status)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got map[string]int32
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]int32{
		"totalConns":    8,
		"idleConns":     3,
		"acquiredConns": 5,
		"maxConns":      20,
	}
	for key, v := range want {
		if got[key] != v {
			t.Errorf("key %s: got %d, want %d", key, got[key], v)
		}
	}
	if len(got) != len(want) {
		t.Errorf("expected %d keys, got %d: %s", len(want), len(got), raw)
	}
}
