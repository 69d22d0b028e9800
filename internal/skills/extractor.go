package skills

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"resume-jobmatch/internal/llm"
	"resume-jobmatch/internal/shared/metrics"
	"resume-jobmatch/internal/shared/telemetry"
)

const promptTemplate = `Extract technical skills and professional competencies from the following resume text.
Return ONLY a JSON array of strings with the skills. Do not include any explanations or additional text.
Here is the resume text:

%s
`

// BuildPrompt embeds the resume text in the extraction instructions.
func BuildPrompt(text string) string {
	return fmt.Sprintf(promptTemplate, text)
}

type outcomeKind int

const (
	outcomeSuccess outcomeKind = iota
	outcomeParseFailure
	outcomeUnavailable
)

func (k outcomeKind) String() string {
	switch k {
	case outcomeSuccess:
		return "success"
	case outcomeParseFailure:
		return "parse_failure"
	default:
		return "service_unavailable"
	}
}

type aiOutcome struct {
	kind   outcomeKind
	skills []string
	err    error
}

// Source tells where a skill set came from.
type Source string

const (
	SourceAI       Source = "ai"
	SourceFallback Source = "fallback"
)

// Result is a skill set plus its provenance.
type Result struct {
	Skills []string `json:"skills"`
	Source Source   `json:"source"`
}

// Extractor turns resume text into a skill set. It never fails: any problem on
// the model path degrades to the keyword and cue-phrase heuristics.
type Extractor struct {
	completer llm.Completer
	timeout   time.Duration
}

// NewExtractor wires an extractor to a completion client. A nil completer
// behaves like an unconfigured provider.
func NewExtractor(completer llm.Completer, timeout time.Duration) *Extractor {
	if completer == nil {
		completer = llm.PlaceholderClient{}
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Extractor{completer: completer, timeout: timeout}
}

// Extract returns the skills found in text. The slice is never nil.
func (e *Extractor) Extract(ctx context.Context, text string) []string {
	return e.ExtractWithSource(ctx, text).Skills
}

// ExtractWithSource is Extract plus the path that produced the result.
func (e *Extractor) ExtractWithSource(ctx context.Context, text string) Result {
	outcome := e.ask(ctx, text)
	if outcome.kind == outcomeSuccess {
		return Result{Skills: dedupe(outcome.skills), Source: SourceAI}
	}

	metrics.IncSkillsFallback()
	fields := map[string]any{
		"reason":   outcome.kind.String(),
		"provider": llm.NameOf(e.completer),
	}
	if outcome.err != nil {
		fields["error"] = outcome.err
	}
	telemetry.Warn("skills.fallback", fields)

	return Result{Skills: Fallback(text), Source: SourceFallback}
}

func (e *Extractor) ask(ctx context.Context, text string) (outcome aiOutcome) {
	defer func() {
		if rec := recover(); rec != nil {
			outcome = aiOutcome{kind: outcomeUnavailable, err: fmt.Errorf("completion panic: %v", rec)}
		}
	}()

	if strings.TrimSpace(text) == "" {
		return aiOutcome{kind: outcomeUnavailable, err: errors.New("empty resume text")}
	}

	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	raw, err := e.completer.Complete(callCtx, BuildPrompt(text))
	if err != nil {
		return aiOutcome{kind: outcomeUnavailable, err: err}
	}
	if strings.TrimSpace(raw) == "" {
		return aiOutcome{kind: outcomeUnavailable, err: errors.New("empty completion")}
	}

	parsed, err := ParseResponse(raw)
	if err != nil {
		return aiOutcome{kind: outcomeParseFailure, err: err}
	}
	return aiOutcome{kind: outcomeSuccess, skills: parsed}
}

// dedupe keeps the first occurrence of each trimmed, non-empty skill.
func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
