package template

import (
	"fmt"
	"strings"
)

// Node is one piece of rendered output. A node with an empty Field is
// literal template text; otherwise it is a field replacement and Text holds
// the field value after filters.
type Node struct {
	Text    string
	Field   string
	Filters []string
}

// IsReplacement reports whether n came from a field reference.
func (n Node) IsReplacement() bool {
	return n.Field != ""
}

// Output is a rendered card.
type Output struct {
	Question []Node
	Answer   []Node
}

// UnknownFieldError is returned when a template references a field the
// note does not have.
type UnknownFieldError struct {
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown field %q", e.Field)
}

// Render renders the question and answer templates against fields. Every
// field of the note type must be present in fields, empty or not.
func Render(question, answer string, fields map[string]string) (Output, error) {
	qTree, err := parse(question)
	if err != nil {
		return Output{}, err
	}
	aTree, err := parse(answer)
	if err != nil {
		return Output{}, err
	}

	q, err := renderTree(qTree, fields, nil)
	if err != nil {
		return Output{}, fmt.Errorf("question: %w", err)
	}
	a, err := renderTree(aTree, fields, q)
	if err != nil {
		return Output{}, fmt.Errorf("answer: %w", err)
	}
	return Output{Question: q, Answer: a}, nil
}

// renderTree evaluates elems. front is nil while rendering the question, so
// {{FrontSide}} is only meaningful on the answer.
func renderTree(elems []element, fields map[string]string, front []Node) ([]Node, error) {
	var out []Node
	for _, e := range elems {
		switch e := e.(type) {
		case textElem:
			out = appendText(out, e.text)
		case replaceElem:
			if e.field == FrontSide {
				if front == nil {
					return nil, &UnknownFieldError{Field: FrontSide}
				}
				for _, n := range front {
					if n.IsReplacement() {
						out = append(out, n)
					} else {
						out = appendText(out, n.Text)
					}
				}
				continue
			}
			val, ok := fields[e.field]
			if !ok {
				return nil, &UnknownFieldError{Field: e.field}
			}
			out = append(out, Node{
				Text:    ApplyFilters(val, e.filters),
				Field:   e.field,
				Filters: e.filters,
			})
		case sectionElem:
			val, ok := fields[e.field]
			if !ok {
				return nil, &UnknownFieldError{Field: e.field}
			}
			if nonBlank(val) == e.inverted {
				continue
			}
			inner, err := renderTree(e.body, fields, front)
			if err != nil {
				return nil, err
			}
			for _, n := range inner {
				if n.IsReplacement() {
					out = append(out, n)
				} else {
					out = appendText(out, n.Text)
				}
			}
		}
	}
	if out == nil {
		out = []Node{}
	}
	return out, nil
}

// appendText merges adjacent literal text.
func appendText(out []Node, s string) []Node {
	if s == "" {
		return out
	}
	if n := len(out); n > 0 && !out[n-1].IsReplacement() {
		out[n-1].Text += s
		return out
	}
	return append(out, Node{Text: s})
}

func nonBlank(s string) bool {
	return strings.TrimSpace(StripHTML(s)) != ""
}
