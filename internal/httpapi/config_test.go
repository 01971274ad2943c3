package httpapi

import (
	"testing"
	"time"
)

func TestSetMaxBodyBytes(t *testing.T) {
	defer SetMaxBodyBytes(0)
	SetMaxBodyBytes(42)
	if maxBodyBytes != 42 {
		t.Fatalf("maxBodyBytes=%d", maxBodyBytes)
	}
	SetMaxBodyBytes(-1)
	if maxBodyBytes != 1<<20 {
		t.Fatalf("expected default after non-positive, got %d", maxBodyBytes)
	}
}

func TestSetChatTimeoutSeconds(t *testing.T) {
	defer SetChatTimeoutSeconds(0)
	SetChatTimeoutSeconds(3)
	if chatTimeout != 3*time.Second {
		t.Fatalf("chatTimeout=%v", chatTimeout)
	}
	SetChatTimeoutSeconds(-5)
	if chatTimeout != 0 {
		t.Fatalf("negative should disable, got %v", chatTimeout)
	}
}

func TestSetChatRateLimit(t *testing.T) {
	defer SetChatRateLimit(0, 0)
	SetChatRateLimit(2, 0)
	if chatLimiter == nil || chatLimiter.Burst() != 1 {
		t.Fatalf("limiter=%v", chatLimiter)
	}
	SetChatRateLimit(0, 5)
	if chatLimiter != nil {
		t.Fatalf("rps 0 should disable")
	}
}

func TestSetCORSOptionsCopies(t *testing.T) {
	defer SetCORSOptions(false, nil, nil, nil)
	origins := []string{"a"}
	SetCORSOptions(true, origins, nil, nil)
	origins[0] = "b"
	if !corsEnabled || corsAllowedOrigins[0] != "a" {
		t.Fatalf("origins=%v enabled=%v", corsAllowedOrigins, corsEnabled)
	}
}
