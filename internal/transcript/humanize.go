// Package transcript turns raw machine transcripts into human-readable
// AGENT/CUSTOMER dialogue via a model call, persisting the result next to
// the raw artifact.
package transcript

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/disclosure-cli/pkg/anthropic"
	"github.com/sells-group/disclosure-cli/pkg/objectstore"
)

// maxRawLines bounds how much of a raw transcript is read. Content beyond
// the cap is silently truncated.
const maxRawLines = 10000

const outputSuffix = "_TRANSCRIPT.txt"

// DerivedKey returns the key the humanized transcript is persisted under:
// the raw key with its .json suffix replaced.
func DerivedKey(rawKey string) string {
	return strings.TrimSuffix(rawKey, ".json") + outputSuffix
}

// Humanizer transforms raw transcripts through a text-generation model.
type Humanizer struct {
	store     objectstore.Client
	ai        anthropic.Client
	model     string
	maxTokens int64
}

// NewHumanizer creates a Humanizer invoking the given model ID.
func NewHumanizer(store objectstore.Client, ai anthropic.Client, model string, maxTokens int64) *Humanizer {
	return &Humanizer{store: store, ai: ai, model: model, maxTokens: maxTokens}
}

// Humanize fetches the raw transcript at rawKey, relabels it as
// AGENT/CUSTOMER dialogue via the model, and persists the result under the
// derived key, which it returns. Any failure means the caller must fall
// back to disclosing the raw artifact instead.
func (h *Humanizer) Humanize(ctx context.Context, bucket, rawKey string) (string, error) {
	body, err := h.store.Get(ctx, bucket, rawKey)
	if err != nil {
		return "", err
	}
	defer body.Close() //nolint:errcheck

	raw, err := readCappedLines(body, maxRawLines)
	if err != nil {
		return "", eris.Wrap(err, "transcript: read raw content")
	}

	// The raw artifact must be JSON; compacting normalizes it before it is
	// embedded in the prompt.
	var compacted bytes.Buffer
	if err := json.Compact(&compacted, []byte(raw)); err != nil {
		return "", eris.Wrap(err, "transcript: raw content is not valid JSON")
	}

	temperature := 0.0
	resp, err := h.ai.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       h.model,
		MaxTokens:   h.maxTokens,
		Temperature: &temperature,
		Messages: []anthropic.Message{
			{Role: "user", Content: buildPrompt(compacted.String())},
		},
	})
	if err != nil {
		return "", err
	}

	text := resp.FirstText()
	if strings.TrimSpace(text) == "" {
		return "", eris.New("transcript: model returned no text")
	}

	zap.L().Info("transcript: humanized",
		zap.String("key", rawKey),
		zap.Int64("input_tokens", resp.Usage.InputTokens),
		zap.Int64("output_tokens", resp.Usage.OutputTokens),
	)

	outKey := DerivedKey(rawKey)
	if err := h.store.Put(ctx, bucket, outKey, "text/plain", []byte(text)); err != nil {
		return "", err
	}
	return outKey, nil
}

// readCappedLines concatenates up to maxLines lines without separators.
func readCappedLines(r io.Reader, maxLines int) (string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)

	var sb strings.Builder
	lines := 0
	for scanner.Scan() {
		lines++
		if lines > maxLines {
			break
		}
		sb.WriteString(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return sb.String(), nil
}
