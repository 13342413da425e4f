// internal/engine/aigateway/handler.go
package aigateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"solar-insight/internal/common/logger"
	"solar-insight/internal/common/metrics"
)

// ErrAnalysisFailed covers every gateway failure: transport errors, non-2xx
// responses, and payloads from which no JSON object can be extracted. The
// caller falls back to rule-based generation as a whole; partial results are
// never surfaced.
var ErrAnalysisFailed = errors.New("AI_ANALYSIS_FAILED")

// maxPromptRows caps how many sample rows are embedded in the prompt,
// regardless of sheet size.
const maxPromptRows = 5

// resultSchema is checked loosely on a parsed payload: only types of fields
// that are present are constrained, nothing is required. Strictness against
// the real headers is the assembler's job.
const resultSchema = `{
	"type": "object",
	"properties": {
		"title":             {"type": "string"},
		"description":       {"type": "string"},
		"insights":          {"type": "array", "items": {"type": "string"}},
		"recommendedFields": {"type": "array", "items": {"type": "string"}},
		"pvSolarInsights":   {"type": "object"}
	}
}`

var fencedJSON = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")

type Handler struct {
	config *Config
	client *http.Client
	logger logger.Logger
	schema *gojsonschema.Schema
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(resultSchema))
	if err != nil {
		// The schema is a compile-time constant; failing to parse it is a
		// programming error.
		panic(fmt.Sprintf("aigateway: invalid result schema: %v", err))
	}
	return &Handler{
		config: config,
		// No client-level timeout: the request is bounded only by the
		// caller's context, matching the transport-owned cancellation model.
		client: &http.Client{},
		logger: log.With(map[string]interface{}{"component": "ai-gateway"}),
		schema: schema,
	}
}

// Execute sends exactly one generation request and parses the response.
// There are no retries; any failure returns ErrAnalysisFailed and the caller
// switches to the rule-based path.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Result, error) {
	result, err := h.execute(ctx, input)
	if err != nil {
		metrics.AIGatewayRequests.WithLabelValues("failure").Inc()
		return nil, err
	}
	metrics.AIGatewayRequests.WithLabelValues("success").Inc()
	return result, nil
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Result, error) {
	prompt := h.buildPrompt(input)
	requestBody := map[string]interface{}{
		"messages": []map[string]interface{}{
			{"role": "user", "content": prompt},
		},
		"options": map[string]interface{}{
			"provider":    h.config.Provider,
			"model":       h.config.Model,
			"temperature": h.config.Temperature,
			"max_tokens":  h.config.MaxTokens,
		},
	}

	body, _ := json.Marshal(requestBody)
	req, err := http.NewRequestWithContext(ctx, "POST", h.config.BaseURL+"/callai", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAnalysisFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if h.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+h.config.APIKey)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAnalysisFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		h.logger.Warn("generation endpoint returned non-success status", map[string]interface{}{
			"status": resp.StatusCode,
		})
		return nil, fmt.Errorf("%w: status %d", ErrAnalysisFailed, resp.StatusCode)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrAnalysisFailed, err)
	}

	text, err := extractContent(payload)
	if err != nil {
		return nil, err
	}

	raw, err := extractJSONObject(text)
	if err != nil {
		h.logger.Warn("no parsable JSON object in generation response", map[string]interface{}{
			"length": len(text),
		})
		return nil, err
	}

	h.validateLoosely(raw)

	var result Result
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("%w: decode recommendation: %v", ErrAnalysisFailed, err)
	}
	return &result, nil
}

func (h *Handler) buildPrompt(input *Input) string {
	var parts []string

	parts = append(parts, "You are a solar power plant data analyst. Review the spreadsheet summary below and recommend how to visualize it.")
	parts = append(parts, fmt.Sprintf("\nSheet: %s (%d records, %d columns)", input.SheetName, input.RecordCount, input.ColumnCount))

	p := input.Profile
	parts = append(parts, "\nDetected characteristics:")
	parts = append(parts, fmt.Sprintf("- energy data: %t", p.HasEnergyData))
	parts = append(parts, fmt.Sprintf("- production data: %t", p.HasProductionData))
	parts = append(parts, fmt.Sprintf("- weather data: %t", p.HasWeatherData))
	parts = append(parts, fmt.Sprintf("- time data: %t", p.HasTimeData))
	parts = append(parts, fmt.Sprintf("- location data: %t", p.HasLocationData))
	parts = append(parts, fmt.Sprintf("- performance data: %t", p.HasPerformanceData))
	if len(p.EnergyUnits) > 0 {
		parts = append(parts, fmt.Sprintf("- energy units: %s", strings.Join(p.EnergyUnits, ", ")))
	}

	if rows := sampleLines(input.Headers, input.SampleRows); len(rows) > 0 {
		parts = append(parts, "\nSample rows:")
		parts = append(parts, rows...)
	}

	parts = append(parts, "\nRespond with ONLY a JSON object, no prose, using these keys:")
	parts = append(parts, `{"title": string, "description": string, "insights": [string], "recommendedFields": [column names from the sheet], "pvSolarInsights": {"peakProductionTimes": [string], "weatherFactors": [string], "maintenancePatterns": [string], "performanceMetrics": [string]}}`)

	return strings.Join(parts, "\n")
}

// sampleLines renders up to maxPromptRows data rows, each cell prefixed by
// its header name.
func sampleLines(headers []string, rows [][]any) []string {
	var lines []string
	for r := 1; r < len(rows) && len(lines) < maxPromptRows; r++ {
		var cells []string
		for i, h := range headers {
			if h == "" || i >= len(rows[r]) {
				continue
			}
			cells = append(cells, fmt.Sprintf("%s: %v", h, rows[r][i]))
		}
		if len(cells) > 0 {
			lines = append(lines, "- "+strings.Join(cells, " | "))
		}
	}
	return lines
}

// extractContent pulls the generated text out of the service envelope:
// {"success": true, "data": {"response": {"content": <text>} | <text>}}.
func extractContent(payload []byte) (string, error) {
	var envelope struct {
		Success bool `json:"success"`
		Data    struct {
			Response json.RawMessage `json:"response"`
		} `json:"data"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return "", fmt.Errorf("%w: decode envelope: %v", ErrAnalysisFailed, err)
	}
	if !envelope.Success || len(envelope.Data.Response) == 0 {
		return "", fmt.Errorf("%w: envelope reports no result", ErrAnalysisFailed)
	}

	var wrapped struct {
		Content string `json:"content"`
	}
	if err := json.Unmarshal(envelope.Data.Response, &wrapped); err == nil && wrapped.Content != "" {
		return wrapped.Content, nil
	}

	var plain string
	if err := json.Unmarshal(envelope.Data.Response, &plain); err == nil && plain != "" {
		return plain, nil
	}

	return "", fmt.Errorf("%w: unrecognized response shape", ErrAnalysisFailed)
}

// extractJSONObject tries, in order: the whole text as JSON, a fenced
// ```json block, and the first balanced {...} span.
func extractJSONObject(text string) (json.RawMessage, error) {
	trimmed := strings.TrimSpace(text)
	if json.Valid([]byte(trimmed)) && strings.HasPrefix(trimmed, "{") {
		return json.RawMessage(trimmed), nil
	}

	if m := fencedJSON.FindStringSubmatch(text); len(m) == 2 && json.Valid([]byte(m[1])) {
		return json.RawMessage(m[1]), nil
	}

	if span := balancedSpan(text); span != "" && json.Valid([]byte(span)) {
		return json.RawMessage(span), nil
	}

	return nil, fmt.Errorf("%w: no JSON object found", ErrAnalysisFailed)
}

// balancedSpan returns the first {...} span with balanced braces, ignoring
// braces inside double-quoted strings.
func balancedSpan(text string) string {
	start := strings.Index(text, "{")
	if start < 0 {
		return ""
	}
	depth := 0
	inString := false
	for i := start; i < len(text); i++ {
		c := text[i]
		switch {
		case inString:
			if c == '\\' {
				i++
			} else if c == '"' {
				inString = false
			}
		case c == '"':
			inString = true
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}
	return ""
}

// validateLoosely runs the schema check and logs violations without failing:
// presence of the expected keys is desirable, not enforced here.
func (h *Handler) validateLoosely(raw json.RawMessage) {
	res, err := h.schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil || res == nil {
		return
	}
	for _, violation := range res.Errors() {
		h.logger.Warn("generation payload deviates from expected shape", map[string]interface{}{
			"field":  violation.Field(),
			"detail": violation.Description(),
		})
	}
}
