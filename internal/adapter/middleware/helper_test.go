package middleware

import (
	"strings"
	"testing"
	"time"
)

func Test_bodyHash_StableAndDistinct(t *testing.T) {
	a := bodyHash([]byte(`{"x":1}`))
	b := bodyHash([]byte(`{"x":1}`))
	c := bodyHash([]byte(`{"x":2}`))
	if a != b {
		t.Fatalf("same body hashed differently: %s vs %s", a, b)
	}
	if a == c {
		t.Fatal("different bodies hashed identically")
	}
	if len(a) != 64 {
		t.Fatalf("hash length = %d, want 64 hex chars", len(a))
	}
}

func Test_buildKey(t *testing.T) {
	key := buildKey("POST", "/applications", "op-17", "req-1")
	if !strings.HasPrefix(key, "idemp:cre:post:") {
		t.Fatalf("key = %q, missing prefix", key)
	}
	for _, part := range []string{"/applications", "op-17", "req-1"} {
		if !strings.Contains(key, part) {
			t.Fatalf("key %q missing %q", key, part)
		}
	}
}

func Test_validReqID(t *testing.T) {
	cases := []struct {
		id   string
		want bool
	}{
		{"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", true},
		{"AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA", true}, // lowercased before matching
		{"6ba7b810-9dad-11d1-80b4-00c04fd430c8", true},
		{"short", false},
		{"", false},
		{"zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz", false},
	}
	for _, tc := range cases {
		if got := validReqID(tc.id); got != tc.want {
			t.Errorf("validReqID(%q) = %v, want %v", tc.id, got, tc.want)
		}
	}
}

func Test_parseRequestAt(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)

	got, err := parseRequestAt("1736123456")
	if err != nil {
		t.Fatalf("epoch seconds: %v", err)
	}
	if got.Unix() != 1736123456 {
		t.Fatalf("epoch seconds = %v", got)
	}

	got, err = parseRequestAt("1736123456789")
	if err != nil {
		t.Fatalf("epoch ms: %v", err)
	}
	if got.UnixMilli() != 1736123456789 {
		t.Fatalf("epoch ms = %v", got)
	}

	got, err = parseRequestAt(now.Format(time.RFC3339))
	if err != nil {
		t.Fatalf("rfc3339: %v", err)
	}
	if !got.Equal(now) {
		t.Fatalf("rfc3339 = %v, want %v", got, now)
	}

	for _, bad := range []string{"", "2026-08-29T10:00:00", "yesterday"} {
		if _, err := parseRequestAt(bad); err == nil {
			t.Errorf("parseRequestAt(%q) accepted, want error", bad)
		}
	}
}
