package estimation

import (
	"fmt"
	"strconv"
	"strings"
)

// TraceStep is one entry of the derivation trace: a label, the literal arithmetic that produced the
// value and the value itself. TeX holds the same step as a LaTeX equation.
type TraceStep struct {
	Label      string `json:"label"`
	Expression string `json:"expression,omitempty"`
	Value      string `json:"value"`
	Unit       string `json:"unit,omitempty"`
	TeX        string `json:"tex"`
}

// TraceOption configures a TraceStep.
type TraceOption func(*TraceStep, *string)

// WithExpression attaches the arithmetic behind a value, in plain and LaTeX notation.
func WithExpression(plain, tex string) TraceOption {
	return func(s *TraceStep, texExpr *string) {
		s.Expression = plain
		*texExpr = tex
	}
}

// WithUnit attaches a unit to the value, e.g. "minutes".
func WithUnit(unit string) TraceOption {
	return func(s *TraceStep, _ *string) {
		s.Unit = unit
	}
}

// NewTraceStep builds a trace step and renders its LaTeX form.
func NewTraceStep(label, value string, opts ...TraceOption) TraceStep {
	s := TraceStep{Label: label, Value: value}
	var texExpr string
	for _, opt := range opts {
		opt(&s, &texExpr)
	}

	parts := []string{fmt.Sprintf(`\text{%s}`, texEscape(label))}
	if texExpr != "" {
		parts = append(parts, texExpr)
	}
	texValue := value
	if _, err := strconv.ParseFloat(value, 64); err != nil {
		texValue = fmt.Sprintf(`\text{%s}`, texEscape(value))
	}
	if s.Unit != "" {
		texValue += fmt.Sprintf(`\text{ %s}`, texEscape(s.Unit))
	}
	s.TeX = strings.Join(append(parts, texValue), " = ")
	return s
}

// String renders the step as "Label = expression = value unit".
func (s TraceStep) String() string {
	var b strings.Builder
	b.WriteString(s.Label)
	b.WriteString(" = ")
	if s.Expression != "" {
		b.WriteString(s.Expression)
		b.WriteString(" = ")
	}
	b.WriteString(s.Value)
	if s.Unit != "" {
		b.WriteString(" ")
		b.WriteString(s.Unit)
	}
	return b.String()
}

var texReplacer = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`$`, `\$`,
	`%`, `\%`,
	`&`, `\&`,
	`#`, `\#`,
	`_`, `\_`,
	`{`, `\{`,
	`}`, `\}`,
)

func texEscape(s string) string {
	return texReplacer.Replace(s)
}
