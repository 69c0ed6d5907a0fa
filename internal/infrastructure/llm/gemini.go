package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"docconnect/config"

	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidTranscript = errors.New("invalid transcript")
	ErrSummaryFailed     = errors.New("summary generation failed")
)

const summaryPrompt = `You are an AI assistant to a doctor summarizing the key points of a video consultation with a patient. The doctor will use this summary to quickly recall the consultation and save it to the patient's record.

Summarize the key points discussed in the following consultation transcript:

Transcript: %s`

// Summarizer turns a consultation transcript into a short summary.
type Summarizer interface {
	Summarize(ctx context.Context, transcript string) (string, error)
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

type GeminiClient struct {
	httpClient *http.Client
	endpoint   string
	model      string
	apiKey     string
	log        *logrus.Logger
}

func NewGeminiClient(cfg config.LLMConfig, log *logrus.Logger) *GeminiClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &GeminiClient{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   strings.TrimRight(cfg.Endpoint, "/"),
		model:      cfg.Model,
		apiKey:     cfg.APIKey,
		log:        log,
	}
}

func (c *GeminiClient) Summarize(ctx context.Context, transcript string) (string, error) {
	if strings.TrimSpace(transcript) == "" {
		return "", ErrInvalidTranscript
	}

	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{
			Role:  "user",
			Parts: []geminiPart{{Text: fmt.Sprintf(summaryPrompt, transcript)}},
		}},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSummaryFailed, err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.endpoint, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSummaryFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warnf("Failed to call summary model: %+v", err)
		return "", fmt.Errorf("%w: %v", ErrSummaryFailed, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSummaryFailed, err)
	}

	if resp.StatusCode != http.StatusOK {
		c.log.WithField("status", resp.StatusCode).Warnf("Summary model returned an error: %s", raw)
		return "", fmt.Errorf("%w: status %d", ErrSummaryFailed, resp.StatusCode)
	}

	var parsed geminiResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("%w: %v", ErrSummaryFailed, err)
	}

	var summary strings.Builder
	if len(parsed.Candidates) > 0 {
		for _, part := range parsed.Candidates[0].Content.Parts {
			summary.WriteString(part.Text)
		}
	}
	if strings.TrimSpace(summary.String()) == "" {
		return "", fmt.Errorf("%w: empty response", ErrSummaryFailed)
	}

	return strings.TrimSpace(summary.String()), nil
}
