package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var basicFields = map[string]string{
	"Front": "hablar",
	"Back":  "to <b>speak</b>",
	"Extra": "",
}

func TestRender_Basic(t *testing.T) {
	out, err := Render("{{Front}}", "{{FrontSide}}<hr id=answer>{{Back}}", basicFields)
	require.NoError(t, err)

	assert.Equal(t, []Node{{Text: "hablar", Field: "Front", Filters: []string{}}}, out.Question)
	require.Len(t, out.Answer, 3)
	assert.Equal(t, "Front", out.Answer[0].Field)
	assert.Equal(t, Node{Text: "<hr id=answer>"}, out.Answer[1])
	assert.Equal(t, "to <b>speak</b>", out.Answer[2].Text)
}

func TestRender_Filters(t *testing.T) {
	out, err := Render("{{upper:text:Back}} {{kana:Front}}", "", basicFields)
	require.NoError(t, err)
	require.Len(t, out.Question, 3)

	assert.Equal(t, "TO SPEAK", out.Question[0].Text)
	assert.Equal(t, []string{"text", "upper"}, out.Question[0].Filters)
	assert.Equal(t, out.Question[0].Text, ApplyFilters(basicFields["Back"], out.Question[0].Filters))
	assert.Equal(t, " ", out.Question[1].Text)
	// unknown filter is listed but has no effect
	assert.Equal(t, "hablar", out.Question[2].Text)
	assert.Equal(t, []string{"kana"}, out.Question[2].Filters)
}

func TestRender_FilterOrder(t *testing.T) {
	out, err := Render("{{upper:lower:Front}}|{{lower:upper:Front}}", "", map[string]string{"Front": "Hablar"})
	require.NoError(t, err)
	require.Len(t, out.Question, 3)

	assert.Equal(t, "HABLAR", out.Question[0].Text)
	assert.Equal(t, []string{"lower", "upper"}, out.Question[0].Filters)
	assert.Equal(t, "hablar", out.Question[2].Text)
	assert.Equal(t, []string{"upper", "lower"}, out.Question[2].Filters)

	for _, n := range []Node{out.Question[0], out.Question[2]} {
		assert.Equal(t, n.Text, ApplyFilters("Hablar", n.Filters))
	}
}

func TestRender_Sections(t *testing.T) {
	tests := []struct {
		name string
		tmpl string
		want string
	}{
		{"shown when set", "a{{#Front}}[{{Front}}]{{/Front}}b", "a[hablar]b"},
		{"hidden when blank", "a{{#Extra}}[{{Extra}}]{{/Extra}}b", "ab"},
		{"inverted when blank", "{{^Extra}}none{{/Extra}}", "none"},
		{"inverted when set", "{{^Front}}none{{/Front}}", ""},
		{"nested", "{{#Front}}{{#Back}}both{{/Back}}{{/Front}}", "both"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Render(tt.tmpl, "", basicFields)
			require.NoError(t, err)
			var got string
			for _, n := range out.Question {
				got += n.Text
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRender_MarkupOnlyFieldIsBlank(t *testing.T) {
	fields := map[string]string{"Hint": "<br> "}
	out, err := Render("{{#Hint}}hint{{/Hint}}", "", fields)
	require.NoError(t, err)
	assert.Empty(t, out.Question)
}

func TestRender_Errors(t *testing.T) {
	tests := []struct {
		name     string
		question string
		answer   string
	}{
		{"unknown field", "{{Missing}}", ""},
		{"unknown section field", "{{#Missing}}x{{/Missing}}", ""},
		{"unclosed section", "{{#Front}}x", ""},
		{"stray close", "x{{/Front}}", ""},
		{"mismatched close", "{{#Front}}{{/Back}}", ""},
		{"unterminated tag", "{{Front", ""},
		{"empty tag", "{{ }}", ""},
		{"front side on question", "{{FrontSide}}", ""},
		{"unknown field on answer", "{{Front}}", "{{Nope}}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Render(tt.question, tt.answer, basicFields)
			assert.Error(t, err)
		})
	}
}

func TestRender_UnknownFieldErrorType(t *testing.T) {
	_, err := Render("{{Nope}}", "", basicFields)
	var ufe *UnknownFieldError
	require.ErrorAs(t, err, &ufe)
	assert.Equal(t, "Nope", ufe.Field)
}

func TestRender_EmptyTemplate(t *testing.T) {
	out, err := Render("", "", basicFields)
	require.NoError(t, err)
	assert.NotNil(t, out.Question)
	assert.Empty(t, out.Question)
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"<b>bold</b> text", "bold text"},
		{"a &amp; b", "a & b"},
		{"one<br>two", "one two"},
		{"x<script>alert(1)</script>y", "xy"},
		{"<style>b{}</style>z", "z"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StripHTML(tt.in), tt.in)
	}
}
