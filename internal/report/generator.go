package report

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nikolay-ai/hackevent/internal/config"
	"github.com/nikolay-ai/hackevent/internal/markdown"
)

const (
	DefaultBaseURL = "https://openrouter.ai/api/v1"
	DefaultModel   = "z-ai/glm-4.6"
	DefaultDays    = 7
)

var (
	// ErrGeneratorConfig indicates the generator is missing credentials or a model.
	ErrGeneratorConfig = fmt.Errorf("%w: news generator", config.ErrInvalidConfig)
	// ErrUpstream indicates the text-generation service failed or answered garbage.
	ErrUpstream = errors.New("news generation upstream error")
)

// maxResponseBytes caps how much of an upstream response is read.
const maxResponseBytes = 8 << 20

// GeneratorConfig configures a Generator.
type GeneratorConfig struct {
	APIKey     string
	Model      string
	BaseURL    string
	OutputDir  string
	HTTPClient *http.Client
	Now        func() time.Time
}

// Generator produces weekly news reports through an OpenAI-compatible chat
// completions API.
type Generator struct {
	apiKey    string
	model     string
	baseURL   string
	outputDir string
	client    *http.Client
	now       func() time.Time
}

// Model is an entry returned by ListModels.
type Model struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NewGenerator validates cfg and returns a Generator.
func NewGenerator(cfg GeneratorConfig) (*Generator, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("%w: API key is required (set OPENROUTER_API_KEY)", ErrGeneratorConfig)
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, fmt.Errorf("%w: model is empty (set OPENROUTER_MODEL or --model)", ErrGeneratorConfig)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "news_database"
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 120 * time.Second}
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Generator{
		apiKey:    cfg.APIKey,
		model:     cfg.Model,
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		outputDir: cfg.OutputDir,
		client:    cfg.HTTPClient,
		now:       cfg.Now,
	}, nil
}

// Model returns the model the generator will request.
func (g *Generator) Model() string { return g.model }

// Prompt builds the news request for the period ending now.
func Prompt(now time.Time, daysBack int) string {
	start := now.AddDate(0, 0, -daysBack)
	return fmt.Sprintf(`Please generate a comprehensive weekly AI news summary covering the period from %s to %s.

Include the following sections:
1. Major AI Model Releases and Updates
2. Industry News and Partnerships
3. Research Breakthroughs
4. Regulatory and Policy Updates
5. Notable AI Applications and Use Cases

For each section, provide:
- Brief description of the news item
- Key companies or researchers involved
- Potential impact on the AI industry

Format the output as a well-structured markdown document with appropriate headings, bullet points, and links where relevant.
Make it informative yet concise, suitable for a weekly newsletter.`,
		start.Format("2006-01-02"), now.Format("2006-01-02"))
}

// Banner is the metadata header prepended to every report. The markdown
// transformer strips it again when building the page.
func Banner(now time.Time, daysBack int) string {
	start := now.AddDate(0, 0, -daysBack)
	return fmt.Sprintf("# %s\n\n*Generated on %s*\n*Covering the period from %s to %s*\n\n---\n\n",
		markdown.DefaultBannerTitle,
		now.Format("2006-01-02 15:04:05"),
		start.Format("2006-01-02"),
		now.Format("2006-01-02"))
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Generate requests a report covering daysBack days and returns it with the
// banner prepended.
func (g *Generator) Generate(ctx context.Context, daysBack int) (string, error) {
	if daysBack <= 0 {
		daysBack = DefaultDays
	}
	now := g.now()

	payload, err := json.Marshal(chatRequest{
		Model:    g.model,
		Messages: []chatMessage{{Role: "user", Content: Prompt(now, daysBack)}},
	})
	if err != nil {
		return "", fmt.Errorf("encode chat request: %w", err)
	}

	slog.Info("requesting news report", "model", g.model, "days", daysBack)
	body, err := g.do(ctx, http.MethodPost, "/chat/completions", payload)
	if err != nil {
		return "", err
	}

	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("%w: decode chat response: %v", ErrUpstream, err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("%w: no choices in chat response", ErrUpstream)
	}

	return Banner(now, daysBack) + resp.Choices[0].Message.Content, nil
}

// Save writes content to output, or to a timestamped file in the output
// directory when output is empty. It returns the path written.
func (g *Generator) Save(content, output string) (string, error) {
	if output == "" {
		output = filepath.Join(g.outputDir, "ai_news_"+g.now().Format("20060102_150405")+".md")
	}
	if dir := filepath.Dir(output); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create report dir: %w", err)
		}
	}
	if err := os.WriteFile(output, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return output, nil
}

// ListModels returns the models the upstream service offers.
func (g *Generator) ListModels(ctx context.Context) ([]Model, error) {
	body, err := g.do(ctx, http.MethodGet, "/models", nil)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Data []Model `json:"data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: decode models response: %v", ErrUpstream, err)
	}
	return resp.Data, nil
}

func (g *Generator) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrUpstream, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		slog.Error("news upstream non-2xx", "status", resp.StatusCode, "path", path)
		return nil, fmt.Errorf("%w: status %d: %s", ErrUpstream, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}
