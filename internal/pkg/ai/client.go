package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/aylin/campuswell/internal/app/models"
)

const (
	// maxClassifyInput caps user text sent to the remote model to bound
	// cost and latency.
	maxClassifyInput = 6000

	// maxInsightTexts caps the number of texts compiled into one
	// institutional-insight prompt.
	maxInsightTexts = 50

	defaultTimeout = 8 * time.Second
)

// Config holds the remote provider settings. An empty APIKey disables the
// remote path entirely; every method then answers from the deterministic
// fallbacks in fallback.go.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Client talks to an OpenAI-compatible chat-completions endpoint. It
// implements Provider.
type Client struct {
	cfg    Config
	http   *http.Client
	logger zerolog.Logger
}

// NewClient creates a new Client
func NewClient(cfg Config, logger zerolog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.groq.com/openai/v1"
	}

	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// Enabled reports whether the remote provider is configured.
func (c *Client) Enabled() bool {
	return c.cfg.APIKey != ""
}

// Classify assesses free text for crisis risk. Remote errors and malformed
// model output both degrade to the low-risk default; with no provider
// configured the keyword fallback runs instead.
func (c *Client) Classify(ctx context.Context, text string) RiskAssessment {
	if !c.Enabled() {
		return classifyFallback(text)
	}

	raw, err := c.chatJSON(ctx,
		`Analyze the following text for instant mental health crisis risk (suicide, self-harm, extreme distress). Return valid JSON only: { "riskLevel": "low"|"moderate"|"severe", "reason": "brief explanation" }.`,
		truncate(text, maxClassifyInput),
	)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Crisis classification call failed, using keyword fallback")
		return classifyFallback(text)
	}

	var result RiskAssessment
	if err := json.Unmarshal(raw, &result); err != nil || !models.ValidRiskLevel(string(result.RiskLevel)) {
		c.logger.Warn().Str("raw", string(raw)).Msg("Unparseable crisis classification output")
		return RiskAssessment{RiskLevel: models.RiskLow, Reason: "analysis error"}
	}
	if result.Reason == "" {
		result.Reason = "AI analysis"
	}
	return result
}

// AnalyzeAssessment produces a prose summary of a screening submission.
func (c *Client) AnalyzeAssessment(ctx context.Context, answers map[string]int, total int) string {
	if !c.Enabled() {
		return mockAnalysis(total)
	}

	content, err := c.chatText(ctx,
		"You are an empathetic mental health assistant. Analyze the user's questionnaire answers (GAD-7/PHQ-9 style) and provide a supportive, non-clinical summary of their mental state and actionable self-care recommendations. Do NOT diagnose. Keep it under 150 words.",
		fmt.Sprintf("Total Score: %d. Answers: %s", total, formatAnswers(answers)),
	)
	if err != nil || content == "" {
		if err != nil {
			c.logger.Warn().Err(err).Msg("Assessment analysis call failed, using mock analysis")
		}
		return mockAnalysis(total)
	}
	return content
}

// ChatReply answers one AI-counselor message.
func (c *Client) ChatReply(ctx context.Context, message string) string {
	if !c.Enabled() {
		return fallbackChatReply
	}

	content, err := c.chatText(ctx,
		"You are a supportive, empathetic AI counselor. Listen actively and provide brief, comforting responses.",
		truncate(message, maxClassifyInput),
	)
	if err != nil || content == "" {
		if err != nil {
			c.logger.Warn().Err(err).Msg("Counselor chat call failed, using canned reply")
		}
		return fallbackChatUnavailable
	}
	return content
}

// WellnessActions suggests three personalized micro-habits from the user's
// latest mood context.
func (c *Client) WellnessActions(ctx context.Context, moodScore int, note string) []WellnessAction {
	if !c.Enabled() {
		return fallbackActions()
	}

	raw, err := c.chatJSON(ctx,
		`You are an expert behavioral psychologist. Given the user's recent mood and note, generate 3 specific, actionable, and novel "Wellness Micro-Habits" for them to try today. Do NOT suggest generic things like "Meditate" or "Sleep". Return valid JSON: { "actions": [ { "title": "Catchy Title", "description": "One sentence instruction" } ] }`,
		fmt.Sprintf("Mood score (1-5): %d. Note: %s", moodScore, truncate(note, 500)),
	)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Wellness actions call failed, using static actions")
		return fallbackActions()
	}

	var result struct {
		Actions []WellnessAction `json:"actions"`
	}
	if err := json.Unmarshal(raw, &result); err != nil || len(result.Actions) == 0 {
		return fallbackActions()
	}
	return result.Actions
}

// InstitutionalInsights analyzes anonymous campus texts for the admin
// dashboard.
func (c *Client) InstitutionalInsights(ctx context.Context, texts []string) InsightResult {
	if !c.Enabled() || len(texts) == 0 {
		return insufficientDataInsight()
	}

	if len(texts) > maxInsightTexts {
		texts = texts[:maxInsightTexts]
	}

	raw, err := c.chatJSON(ctx,
		`You are a Chief Wellbeing Officer for a university. Analyze the provided list of anonymous user thoughts/posts. Identify the collective mood, top 3 recurring themes/stressors (e.g. Exams, Loneliness), and 1 strategic high-level intervention. Return valid JSON: { "summary": "1 sentence overview", "topConcerns": ["Concern 1", "Concern 2"], "recommendation": "Strategic advice" }`,
		"Anonymous Student Voices: "+strings.Join(texts, " ... "),
	)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Institutional insights call failed")
		return InsightResult{Summary: "AI unavailable", TopConcerns: []string{}, Recommendation: "Check logs"}
	}

	var result InsightResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return InsightResult{Summary: "AI unavailable", TopConcerns: []string{}, Recommendation: "Check logs"}
	}
	if result.Summary == "" {
		result.Summary = "Analysis complete."
	}
	if result.TopConcerns == nil {
		result.TopConcerns = []string{}
	}
	if result.Recommendation == "" {
		result.Recommendation = "Monitor situation."
	}
	return result
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	ResponseFormat *struct {
		Type string `json:"type"`
	} `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// chatText performs one chat completion and returns the raw text content.
func (c *Client) chatText(ctx context.Context, system, user string) (string, error) {
	return c.complete(ctx, chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	})
}

// chatJSON performs one chat completion in JSON-object mode and returns the
// raw JSON document produced by the model.
func (c *Client) chatJSON(ctx context.Context, system, user string) (json.RawMessage, error) {
	req := chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	}
	req.ResponseFormat = &struct {
		Type string `json:"type"`
	}{Type: "json_object"}

	content, err := c.complete(ctx, req)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(content), nil
}

func (c *Client) complete(ctx context.Context, reqBody chatRequest) (string, error) {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimRight(c.cfg.BaseURL, "/")+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build chat request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("chat completion request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read chat response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat completion returned status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode chat response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	return parsed.Choices[0].Message.Content, nil
}

// truncate caps s at max bytes without splitting a multi-byte rune at the
// boundary, so truncated prompts stay valid UTF-8.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}

// formatAnswers renders the answer map with stable key ordering so prompts
// are reproducible.
func formatAnswers(answers map[string]int) string {
	keys := make([]string, 0, len(answers))
	for k := range answers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("{")
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %d", k, answers[k])
	}
	b.WriteString("}")
	return b.String()
}
