package compliance

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Generator produces a JSON text completion for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// AnalysisRecorder observes each analysis outcome.
type AnalysisRecorder interface {
	RecordAnalysis(fallback bool)
}

type Analyzer struct {
	// Generator is nil when no provider credential is configured.
	Generator Generator
	Recorder  AnalysisRecorder
}

func NewAnalyzer(gen Generator) *Analyzer {
	return &Analyzer{Generator: gen}
}

// AtRisk selects employed staff with at least ten granted days who have used
// fewer than five.
func AtRisk(employees []EmployeeSummary) []EmployeeSummary {
	var out []EmployeeSummary
	for _, e := range employees {
		if e.Status == StatusEmployed && e.GrantedTotal >= RiskGrantedThreshold && e.UsedTotal < RiskUsedThreshold {
			out = append(out, e)
		}
	}
	return out
}

func BuildPrompt(employees, atRisk []EmployeeSummary) string {
	lines := make([]string, 0, maxPromptNames)
	for i, e := range atRisk {
		if i == maxPromptNames {
			break
		}
		lines = append(lines, fmt.Sprintf("%s: %s日", e.Name, formatDays(e.UsedTotal)))
	}

	var b strings.Builder
	b.WriteString("日本の労働基準法（年5日有給休暇取得義務化）に基づき、以下のデータを分析してください。\n")
	fmt.Fprintf(&b, "従業員総数: %d\n", len(employees))
	fmt.Fprintf(&b, "法的リスク対象: %d名\n", len(atRisk))
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n\n")
	b.WriteString("3つのインサイト（法的コンプライアンス警告、具体的アクションプラン、ポジティブな予測）を日本語のJSON形式で返してください。\n")
	b.WriteString(`各要素は {"title": string, "description": string, "type": "warning" | "info" | "success"} の配列としてください。`)
	return b.String()
}

func formatDays(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Analyze never fails: a missing provider yields a single info insight and a
// provider failure yields a single warning insight.
func (a *Analyzer) Analyze(ctx context.Context, employees []EmployeeSummary) []Insight {
	if a == nil || a.Generator == nil {
		a.record(true)
		return []Insight{{
			Title:       "AI分析未設定",
			Description: "GEMINI_API_KEYがバックエンドで設定されていません。",
			Type:        InsightInfo,
		}}
	}
	if len(employees) == 0 {
		a.record(false)
		return []Insight{}
	}

	atRisk := AtRisk(employees)
	insights, err := a.generate(ctx, BuildPrompt(employees, atRisk))
	if err != nil {
		slog.Warn("compliance analysis failed", "err", err, "employees", len(employees), "atRisk", len(atRisk))
		a.record(true)
		return []Insight{{
			Title:       "法的分析オフライン",
			Description: fmt.Sprintf("AIエラー: %v", err),
			Type:        InsightWarning,
		}}
	}
	a.record(false)
	return insights
}

func (a *Analyzer) record(fallback bool) {
	if a == nil || a.Recorder == nil {
		return
	}
	a.Recorder.RecordAnalysis(fallback)
}

func (a *Analyzer) generate(ctx context.Context, prompt string) ([]Insight, error) {
	text, err := a.Generator.Generate(ctx, prompt)
	if err != nil {
		return nil, &ExternalServiceError{Err: err}
	}
	insights, err := ParseInsights(text)
	if err != nil {
		return nil, &ExternalServiceError{Err: err}
	}
	return insights, nil
}

// ParseInsights accepts either a JSON array of insights or an object whose
// first array-valued field holds them. At most three insights are kept.
func ParseInsights(text string) ([]Insight, error) {
	raw := []byte(strings.TrimSpace(stripCodeFence(text)))
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrMalformedResponse)
	}

	var insights []Insight
	switch raw[0] {
	case '[':
		if err := json.Unmarshal(raw, &insights); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
	case '{':
		var wrapper map[string]json.RawMessage
		if err := json.Unmarshal(raw, &wrapper); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		found := false
		for _, key := range slices.Sorted(maps.Keys(wrapper)) {
			var candidate []Insight
			if err := json.Unmarshal(wrapper[key], &candidate); err == nil && candidate != nil {
				insights = candidate
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: no insight list in object", ErrMalformedResponse)
		}
	default:
		return nil, fmt.Errorf("%w: unexpected body", ErrMalformedResponse)
	}

	if len(insights) > maxInsights {
		insights = insights[:maxInsights]
	}
	if insights == nil {
		insights = []Insight{}
	}
	return insights, nil
}

func stripCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimPrefix(trimmed, "json")
	return strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
}
