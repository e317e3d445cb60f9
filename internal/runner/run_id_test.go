package runner

import (
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

// TestStampRunID verifies the timestamp prefix is rendered in UTC.
func TestStampRunID(t *testing.T) {
	berlin := time.FixedZone("CET", 3600)
	at := time.Date(2024, 6, 7, 9, 9, 10, 0, berlin)
	id := uuid.MustParse("00112233-4455-6677-8899-aabbccddeeff")
	if got := stampRunID(at, id); got != "20240607T080910Z-001122334455" {
		t.Fatalf("unexpected run id: %q", got)
	}
}

// TestNewRunIDShape verifies generated ids are timestamped and unique.
func TestNewRunIDShape(t *testing.T) {
	shape := regexp.MustCompile(`^\d{8}T\d{6}Z-[0-9a-f]{12}$`)
	first, err := NewRunID()
	if err != nil {
		t.Fatalf("NewRunID: %v", err)
	}
	second, err := NewRunID()
	if err != nil {
		t.Fatalf("NewRunID: %v", err)
	}
	if !shape.MatchString(first) {
		t.Fatalf("unexpected run id shape: %q", first)
	}
	if first == second {
		t.Fatalf("expected distinct run ids, got %q twice", first)
	}
}

// TestPickRunIDErrors verifies generator failures and empty ids are rejected.
func TestPickRunIDErrors(t *testing.T) {
	if _, err := pickRunID(func() (string, error) { return "", errors.New("entropy") }); err == nil || !strings.Contains(err.Error(), "entropy") {
		t.Fatalf("expected wrapped generator error, got %v", err)
	}
	if _, err := pickRunID(func() (string, error) { return "  ", nil }); err == nil {
		t.Fatalf("expected empty id error")
	}
	got, err := pickRunID(func() (string, error) { return "fixed", nil })
	if err != nil || got != "fixed" {
		t.Fatalf("expected fixed id, got %q (%v)", got, err)
	}
}
