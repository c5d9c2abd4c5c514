package script

import (
	"strings"

	"github.com/aretw0/parley/pkg/domain"
	"github.com/google/uuid"
)

// Parser converts scripts into line and response records.
// It holds no state between calls and is safe for concurrent use.
type Parser struct {
	newID func() string
}

// Option configures a Parser.
type Option func(*Parser)

// WithIDGenerator sets the function used to mint record IDs.
// The default is a random UUID.
func WithIDGenerator(fn func() string) Option {
	return func(p *Parser) {
		p.newID = fn
	}
}

// NewParser creates a new parser instance.
func NewParser(opts ...Option) *Parser {
	p := &Parser{newID: uuid.NewString}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var defaultParser = NewParser()

// ParseLines parses a line script with the default parser.
func ParseLines(text string, nodes []domain.Node) ([]domain.Line, error) {
	return defaultParser.Lines(text, nodes)
}

// ParseResponses parses a response script with the default parser.
func ParseResponses(text string, nodes []domain.Node) ([]domain.Response, error) {
	return defaultParser.Responses(text, nodes)
}

// Lines returns one Line per physical line of text, blank lines included.
// Goto targets are resolved against nodes. A malformed conditional aborts the
// whole call with a *domain.ParseError.
func (p *Parser) Lines(text string, nodes []domain.Node) ([]domain.Line, error) {
	idx := NewIndex(nodes)
	raw := physicalLines(text)
	lines := make([]domain.Line, 0, len(raw))
	for i, l := range raw {
		line, err := p.classify(strings.TrimSpace(l), i+1, idx)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func (p *Parser) classify(s string, lineNo int, idx Index) (domain.Line, error) {
	id := p.newID()
	condition, rest, err := cutCondition(s, lineNo)
	if err != nil {
		return nil, err
	}

	// Mutations and comments take no condition; a conditioned one is kept
	// verbatim as dialogue text.
	if condition == "" {
		if expr, ok := cutMutation(rest); ok {
			return domain.Mutation{ID: id, Expression: expr}, nil
		}
		if strings.HasPrefix(rest, "#") {
			return domain.Comment{ID: id, Text: strings.TrimSpace(rest[1:])}, nil
		}
	}

	if target, ok := cutArrow(rest); ok {
		return domain.Goto{ID: id, Condition: condition, TargetName: target, TargetID: idx.Resolve(target)}, nil
	}
	if character, text, ok := cutSpeaker(rest); ok {
		return domain.Dialogue{ID: id, Condition: condition, Character: character, Text: text}, nil
	}
	if rest == "" {
		return domain.Blank{ID: id}, nil
	}
	return domain.Dialogue{ID: id, Condition: condition, Text: rest}, nil
}

// Responses returns one Response per non-blank line of text.
// Line numbers in errors still count the blank lines.
func (p *Parser) Responses(text string, nodes []domain.Node) ([]domain.Response, error) {
	idx := NewIndex(nodes)
	var responses []domain.Response
	for i, l := range physicalLines(text) {
		s := strings.TrimSpace(l)
		if s == "" {
			continue
		}
		condition, rest, err := cutCondition(s, i+1)
		if err != nil {
			return nil, err
		}

		prompt, target := rest, domain.EndTarget
		if j := strings.LastIndex(rest, "->"); j >= 0 {
			prompt = strings.TrimSpace(rest[:j])
			target = targetOrEnd(rest[j+2:])
		}

		responses = append(responses, domain.Response{
			ID:         p.newID(),
			Condition:  condition,
			Prompt:     prompt,
			TargetName: target,
			TargetID:   idx.Resolve(target),
		})
	}
	return responses, nil
}
