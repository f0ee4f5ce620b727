// Package template renders note fields through card templates written in
// the double-brace field syntax ({{Field}}, {{filter:Field}},
// {{#Field}}...{{/Field}}, {{^Field}}...{{/Field}}, {{FrontSide}}).
package template

import (
	"fmt"
	"strings"
)

// FrontSide is the special replacement that expands to the rendered
// question inside an answer template.
const FrontSide = "FrontSide"

const (
	openDelim  = "{{"
	closeDelim = "}}"
)

// ParseError reports a malformed template.
type ParseError struct {
	Template string
	Reason   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("template %q: %s", e.Template, e.Reason)
}

type tokenKind int

const (
	tokText tokenKind = iota
	tokReplace
	tokOpen
	tokOpenInverted
	tokClose
)

type token struct {
	kind tokenKind
	text string
}

// element is one parsed template piece.
type element interface{ isElement() }

type textElem struct{ text string }

type replaceElem struct {
	field   string
	filters []string
}

type sectionElem struct {
	field    string
	inverted bool
	body     []element
}

func (textElem) isElement()    {}
func (replaceElem) isElement() {}
func (sectionElem) isElement() {}

func tokenize(src string) ([]token, error) {
	var toks []token
	rest := src
	for rest != "" {
		i := strings.Index(rest, openDelim)
		if i < 0 {
			toks = append(toks, token{kind: tokText, text: rest})
			break
		}
		if i > 0 {
			toks = append(toks, token{kind: tokText, text: rest[:i]})
		}
		rest = rest[i+len(openDelim):]
		j := strings.Index(rest, closeDelim)
		if j < 0 {
			return nil, &ParseError{Template: src, Reason: "unterminated {{"}
		}
		inner := strings.TrimSpace(rest[:j])
		rest = rest[j+len(closeDelim):]
		if inner == "" {
			return nil, &ParseError{Template: src, Reason: "empty tag"}
		}
		switch inner[0] {
		case '#':
			toks = append(toks, token{kind: tokOpen, text: strings.TrimSpace(inner[1:])})
		case '^':
			toks = append(toks, token{kind: tokOpenInverted, text: strings.TrimSpace(inner[1:])})
		case '/':
			toks = append(toks, token{kind: tokClose, text: strings.TrimSpace(inner[1:])})
		default:
			toks = append(toks, token{kind: tokReplace, text: inner})
		}
	}
	return toks, nil
}

// parse builds the element tree for src, checking that sections nest.
func parse(src string) ([]element, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}

	type frame struct {
		section sectionElem
		parent  []element
	}
	var stack []frame
	var cur []element

	for _, t := range toks {
		switch t.kind {
		case tokText:
			cur = append(cur, textElem{text: t.text})
		case tokReplace:
			parts := strings.Split(t.text, ":")
			field := strings.TrimSpace(parts[len(parts)-1])
			// Filters run from the field name outwards, so {{upper:text:Back}}
			// is stored as [text upper].
			filters := make([]string, 0, len(parts)-1)
			for i := len(parts) - 2; i >= 0; i-- {
				if f := strings.TrimSpace(parts[i]); f != "" {
					filters = append(filters, f)
				}
			}
			cur = append(cur, replaceElem{field: field, filters: filters})
		case tokOpen, tokOpenInverted:
			if t.text == "" {
				return nil, &ParseError{Template: src, Reason: "section without a field name"}
			}
			stack = append(stack, frame{
				section: sectionElem{field: t.text, inverted: t.kind == tokOpenInverted},
				parent:  cur,
			})
			cur = nil
		case tokClose:
			if len(stack) == 0 {
				return nil, &ParseError{Template: src, Reason: fmt.Sprintf("unexpected {{/%s}}", t.text)}
			}
			top := stack[len(stack)-1]
			if top.section.field != t.text {
				return nil, &ParseError{Template: src, Reason: fmt.Sprintf("{{/%s}} closes {{#%s}}", t.text, top.section.field)}
			}
			stack = stack[:len(stack)-1]
			top.section.body = cur
			cur = append(top.parent, top.section)
		}
	}
	if len(stack) > 0 {
		return nil, &ParseError{Template: src, Reason: fmt.Sprintf("unclosed section %q", stack[len(stack)-1].section.field)}
	}
	return cur, nil
}
