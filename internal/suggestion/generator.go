package suggestion

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aevon-lab/behavior-ledger/internal/metrics"
)

// MockReplyPrefix starts every reply produced by MockGenerator.
const MockReplyPrefix = "[MOCK_MODEL_REPLY]"

const mockPromptPreview = 20

// TextGenerator produces free text from a prompt and optional structured hints.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, hints map[string]interface{}) (string, error)
}

// MockGenerator returns a deterministic reply without calling any model.
type MockGenerator struct{}

func (MockGenerator) Generate(_ context.Context, prompt string, hints map[string]interface{}) (string, error) {
	preview := []rune(prompt)
	ellipsis := ""
	if len(preview) > mockPromptPreview {
		preview = preview[:mockPromptPreview]
		ellipsis = "..."
	}
	metrics.GeneratorRequests.WithLabelValues("mock", "success").Inc()
	return fmt.Sprintf("%s prompt=%s%s context=%v", MockReplyPrefix, string(preview), ellipsis, hints), nil
}

// IsMockReply reports whether reply was produced by MockGenerator.
func IsMockReply(reply string) bool {
	return strings.HasPrefix(reply, MockReplyPrefix)
}

// FallbackGenerator tries Primary and answers with Fallback when it fails.
type FallbackGenerator struct {
	Primary  TextGenerator
	Fallback TextGenerator
}

func NewFallbackGenerator(primary, fallback TextGenerator) *FallbackGenerator {
	if primary == nil {
		panic("suggestion: primary generator must not be nil")
	}
	if fallback == nil {
		panic("suggestion: fallback generator must not be nil")
	}
	return &FallbackGenerator{Primary: primary, Fallback: fallback}
}

func (g *FallbackGenerator) Generate(ctx context.Context, prompt string, hints map[string]interface{}) (string, error) {
	reply, err := g.Primary.Generate(ctx, prompt, hints)
	if err == nil {
		return reply, nil
	}

	slog.Warn("[Suggestion] Primary generator failed, using fallback", "error", err)
	return g.Fallback.Generate(ctx, prompt, hints)
}
