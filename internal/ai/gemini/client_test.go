package gemini

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/spigell/resume-matcher/internal/ai"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

type fakeResponse struct {
	resp *genai.GenerateContentResponse
	err  error
}

type callRecord struct {
	model   string
	prompt  string
	config  *genai.GenerateContentConfig
	timeout bool
}

type fakeModels struct {
	mu    sync.Mutex
	queue []fakeResponse
	calls []callRecord
}

func (f *fakeModels) enqueue(resp *genai.GenerateContentResponse, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queue = append(f.queue, fakeResponse{resp: resp, err: err})
}

func (f *fakeModels) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, hasDeadline := ctx.Deadline()
	record := callRecord{model: model, config: config, timeout: hasDeadline}
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		record.prompt = contents[0].Parts[0].Text
	}
	f.calls = append(f.calls, record)

	if len(f.queue) == 0 {
		return nil, errors.New("unexpected call")
	}
	res := f.queue[0]
	f.queue = f.queue[1:]
	return res.resp, res.err
}

func textResponse(parts ...string) *genai.GenerateContentResponse {
	content := &genai.Content{}
	for _, p := range parts {
		content.Parts = append(content.Parts, &genai.Part{Text: p})
	}
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{Content: content}}}
}

func noSleep(t *testing.T) {
	t.Helper()
	original := sleep
	sleep = func(time.Duration) {}
	t.Cleanup(func() { sleep = original })
}

func TestCompleteSendsPromptAndConfig(t *testing.T) {
	models := &fakeModels{}
	models.enqueue(textResponse(" {\"name\": ", "\"Jane\"} "), nil)

	g := newGenerator(models, Options{Model: "gemini-test"}, zap.NewNop())

	output, err := g.Complete(context.Background(), ai.CompletionRequest{
		Prompt:          "  extract  ",
		Temperature:     0.1,
		MaxOutputTokens: 2048,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if output != "{\"name\":\n\"Jane\"}" {
		t.Fatalf("unexpected output: %q", output)
	}

	if len(models.calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(models.calls))
	}
	call := models.calls[0]
	if call.model != "gemini-test" {
		t.Fatalf("unexpected model: %q", call.model)
	}
	if call.prompt != "extract" {
		t.Fatalf("unexpected prompt: %q", call.prompt)
	}
	if call.config == nil || call.config.Temperature == nil || *call.config.Temperature != 0.1 {
		t.Fatalf("expected temperature 0.1, got %+v", call.config)
	}
	if call.config.MaxOutputTokens != 2048 {
		t.Fatalf("expected max output tokens 2048, got %d", call.config.MaxOutputTokens)
	}
	if !call.timeout {
		t.Fatal("expected request context to carry a deadline")
	}
}

func TestNewGeneratorDefaults(t *testing.T) {
	g := newGenerator(&fakeModels{}, Options{}, nil)

	if g.Model() != defaultModel {
		t.Fatalf("expected default model, got %q", g.Model())
	}
	if g.timeout != defaultTimeout {
		t.Fatalf("expected default timeout, got %s", g.timeout)
	}
	if g.maxAttempts != defaultMaxAttempts {
		t.Fatalf("expected default attempts, got %d", g.maxAttempts)
	}
}

func TestCompleteRejectsEmptyPrompt(t *testing.T) {
	g := newGenerator(&fakeModels{}, Options{}, zap.NewNop())

	_, err := g.Complete(context.Background(), ai.CompletionRequest{Prompt: "   "})
	var svcErr *ai.ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected ServiceError, got %v", err)
	}
}

func TestCompleteEmptyResponseIsServiceError(t *testing.T) {
	models := &fakeModels{}
	models.enqueue(textResponse("  "), nil)

	g := newGenerator(models, Options{}, zap.NewNop())

	_, err := g.Complete(context.Background(), ai.CompletionRequest{Prompt: "p"})
	var svcErr *ai.ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected ServiceError, got %v", err)
	}
	if svcErr.Provider != ProviderName {
		t.Fatalf("unexpected provider: %q", svcErr.Provider)
	}
	if len(models.calls) != 1 {
		t.Fatalf("empty responses must not be retried, got %d calls", len(models.calls))
	}
}

func TestCompleteRetriesOnTemporaryError(t *testing.T) {
	noSleep(t)

	models := &fakeModels{}
	models.enqueue(nil, genai.APIError{Code: http.StatusInternalServerError, Status: "INTERNAL"})
	models.enqueue(textResponse("retry ok"), nil)

	g := newGenerator(models, Options{MaxAttempts: 2}, zap.NewNop())

	output, err := g.Complete(context.Background(), ai.CompletionRequest{Prompt: "p"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if output != "retry ok" {
		t.Fatalf("unexpected output: %q", output)
	}
	if len(models.calls) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(models.calls))
	}
}

func TestCompleteStopsAfterRetriesExhausted(t *testing.T) {
	noSleep(t)

	models := &fakeModels{}
	tempErr := genai.APIError{Code: http.StatusServiceUnavailable, Status: "UNAVAILABLE"}
	models.enqueue(nil, tempErr)
	models.enqueue(nil, tempErr)

	g := newGenerator(models, Options{MaxAttempts: 2}, zap.NewNop())

	_, err := g.Complete(context.Background(), ai.CompletionRequest{Prompt: "p"})
	if err == nil {
		t.Fatal("expected error after retries exhausted")
	}
	if len(models.calls) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(models.calls))
	}
}

func TestCompleteDoesNotRetryOnLongQuotaDelay(t *testing.T) {
	models := &fakeModels{}
	models.enqueue(nil, genai.APIError{
		Code:    http.StatusTooManyRequests,
		Status:  "RESOURCE_EXHAUSTED",
		Message: "quota exhausted, retry after 60 seconds",
	})

	g := newGenerator(models, Options{MaxAttempts: 3}, zap.NewNop())

	_, err := g.Complete(context.Background(), ai.CompletionRequest{Prompt: "p"})
	if err == nil {
		t.Fatal("expected error when quota delay too long")
	}
	if len(models.calls) != 1 {
		t.Fatalf("expected single call, got %d", len(models.calls))
	}
}

func TestCompleteDoesNotRetryClientErrors(t *testing.T) {
	models := &fakeModels{}
	models.enqueue(nil, genai.APIError{Code: http.StatusBadRequest, Status: "INVALID_ARGUMENT"})

	g := newGenerator(models, Options{MaxAttempts: 3}, zap.NewNop())

	if _, err := g.Complete(context.Background(), ai.CompletionRequest{Prompt: "p"}); err == nil {
		t.Fatal("expected error")
	}
	if len(models.calls) != 1 {
		t.Fatalf("expected single call, got %d", len(models.calls))
	}
}

func TestCompleteSingleAttemptByDefault(t *testing.T) {
	models := &fakeModels{}
	models.enqueue(nil, genai.APIError{Code: http.StatusInternalServerError, Status: "INTERNAL"})

	g := newGenerator(models, Options{}, zap.NewNop())

	if _, err := g.Complete(context.Background(), ai.CompletionRequest{Prompt: "p"}); err == nil {
		t.Fatal("expected error")
	}
	if len(models.calls) != 1 {
		t.Fatalf("expected single call, got %d", len(models.calls))
	}
}
