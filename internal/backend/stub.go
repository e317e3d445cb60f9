package backend

import (
	"context"
	"strings"
)

// Stub defaults.
const (
	DefaultStubAnswer  = "B"
	DefaultStubVerdict = "CORRECT"
)

// Stub is a deterministic offline backend used for wiring checks and tests.
type Stub struct {
	answer  string
	verdict string
}

// NewStub returns a stub that always solves with answer and verifies with
// verdict.
func NewStub(answer, verdict string) *Stub {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		answer = DefaultStubAnswer
	}
	verdict = strings.TrimSpace(verdict)
	if verdict == "" {
		verdict = DefaultStubVerdict
	}
	return &Stub{answer: answer, verdict: verdict}
}

// Name identifies the stub.
func (s *Stub) Name() string {
	return string(ProviderStub)
}

// Complete returns the canned response for req.Purpose with zero latency.
func (s *Stub) Complete(ctx context.Context, req Request) (Response, error) {
	if err := ctx.Err(); err != nil {
		return Response{}, &BackendError{Provider: ProviderStub, Op: string(req.Purpose), Err: err}
	}
	if req.Purpose == PurposeVerify {
		return Response{Text: s.verdict}, nil
	}
	return Response{Text: "No model is wired, so I default to a fixed choice.\nAnswer: " + s.answer}, nil
}
