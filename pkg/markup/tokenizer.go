// Package markup parses the scene markup format: a small XML-ish
// dialect of nested <view> and <span> elements with id and style
// attributes, text content, and <script> blocks collected for the
// scripting layer. Whitespace-only text between tags is dropped;
// significant spaces belong inside an element's text.
package markup

import (
	"fmt"
	"html"
	"strings"
	"unicode"
)

type TokenType int

const (
	TokenStartTag TokenType = iota
	TokenEndTag
	TokenText
	TokenEOF
)

type Token struct {
	Type        TokenType
	Tag         string
	Attrs       map[string]string
	Text        string
	SelfClosing bool
}

// Tokenizer splits scene markup into tags and text runs.
type Tokenizer struct {
	input string
	pos   int
}

func NewTokenizer(src string) *Tokenizer {
	return &Tokenizer{input: src}
}

// Next returns the next token, or a TokenEOF token at end of input.
func (t *Tokenizer) Next() (Token, error) {
	if t.pos >= len(t.input) {
		return Token{Type: TokenEOF}, nil
	}
	if t.input[t.pos] == '<' {
		return t.readTag()
	}
	return t.readText()
}

func (t *Tokenizer) readTag() (Token, error) {
	t.pos++

	// <!-- comments --> are skipped entirely.
	if strings.HasPrefix(t.input[t.pos:], "!--") {
		t.pos += 3
		if end := strings.Index(t.input[t.pos:], "-->"); end >= 0 {
			t.pos += end + 3
		} else {
			t.pos = len(t.input)
		}
		return t.Next()
	}

	isEnd := false
	if t.pos < len(t.input) && t.input[t.pos] == '/' {
		isEnd = true
		t.pos++
	}
	tag := t.readName()
	if tag == "" {
		return Token{}, fmt.Errorf("markup: expected tag name at offset %d", t.pos)
	}
	if isEnd {
		if err := t.skipTo('>'); err != nil {
			return Token{}, err
		}
		t.pos++
		return Token{Type: TokenEndTag, Tag: tag}, nil
	}

	attrs := make(map[string]string)
	for {
		t.skipSpace()
		if t.pos >= len(t.input) {
			return Token{}, fmt.Errorf("markup: unterminated <%s> tag", tag)
		}
		if t.input[t.pos] == '>' {
			t.pos++
			return Token{Type: TokenStartTag, Tag: tag, Attrs: attrs}, nil
		}
		if t.input[t.pos] == '/' {
			t.pos++
			t.skipSpace()
			if t.pos < len(t.input) && t.input[t.pos] == '>' {
				t.pos++
				return Token{Type: TokenStartTag, Tag: tag, Attrs: attrs, SelfClosing: true}, nil
			}
			return Token{}, fmt.Errorf("markup: stray '/' in <%s> tag", tag)
		}
		name, value, err := t.readAttr()
		if err != nil {
			return Token{}, err
		}
		attrs[name] = value
	}
}

func (t *Tokenizer) readName() string {
	start := t.pos
	for t.pos < len(t.input) && isNameChar(t.input[t.pos]) {
		t.pos++
	}
	return strings.ToLower(t.input[start:t.pos])
}

func (t *Tokenizer) readAttr() (string, string, error) {
	name := t.readName()
	if name == "" {
		return "", "", fmt.Errorf("markup: expected attribute name at offset %d", t.pos)
	}
	t.skipSpace()
	if t.pos >= len(t.input) || t.input[t.pos] != '=' {
		// Bare attribute with no value.
		return name, "", nil
	}
	t.pos++
	t.skipSpace()
	value, err := t.readAttrValue()
	if err != nil {
		return "", "", fmt.Errorf("markup: attribute %q: %w", name, err)
	}
	return name, value, nil
}

func (t *Tokenizer) readAttrValue() (string, error) {
	if t.pos >= len(t.input) {
		return "", fmt.Errorf("missing value at offset %d", t.pos)
	}
	if quote := t.input[t.pos]; quote == '"' || quote == '\'' {
		t.pos++
		start := t.pos
		for t.pos < len(t.input) && t.input[t.pos] != quote {
			t.pos++
		}
		if t.pos >= len(t.input) {
			return "", fmt.Errorf("unterminated value")
		}
		value := t.input[start:t.pos]
		t.pos++
		return html.UnescapeString(value), nil
	}
	start := t.pos
	for t.pos < len(t.input) && !unicode.IsSpace(rune(t.input[t.pos])) && t.input[t.pos] != '>' {
		t.pos++
	}
	return html.UnescapeString(t.input[start:t.pos]), nil
}

func (t *Tokenizer) readText() (Token, error) {
	start := t.pos
	for t.pos < len(t.input) && t.input[t.pos] != '<' {
		t.pos++
	}
	raw := t.input[start:t.pos]
	// Indentation and newlines between tags are formatting, not content.
	if strings.TrimSpace(raw) == "" {
		return t.Next()
	}
	return Token{Type: TokenText, Text: html.UnescapeString(collapseSpace(raw))}, nil
}

// collapseSpace folds each whitespace run into a single space. Leading and
// trailing runs survive as one space so words stay separated across
// element boundaries ("hello <span>world</span>").
func collapseSpace(s string) string {
	out := strings.Join(strings.Fields(s), " ")
	if unicode.IsSpace(rune(s[0])) {
		out = " " + out
	}
	if unicode.IsSpace(rune(s[len(s)-1])) {
		out = out + " "
	}
	return out
}

// ReadRawUntil consumes input verbatim up to the given closing tag and
// returns it, leaving the tokenizer positioned after the tag. Used for
// <script>, where '<' inside the content has no markup meaning. If the
// closing tag never appears the rest of the input is returned.
func (t *Tokenizer) ReadRawUntil(endTag string) string {
	needle := "</" + endTag + ">"
	start := t.pos
	for t.pos+len(needle) <= len(t.input) {
		if strings.EqualFold(t.input[t.pos:t.pos+len(needle)], needle) {
			content := t.input[start:t.pos]
			t.pos += len(needle)
			return content
		}
		t.pos++
	}
	t.pos = len(t.input)
	return t.input[start:]
}

func (t *Tokenizer) skipSpace() {
	for t.pos < len(t.input) && unicode.IsSpace(rune(t.input[t.pos])) {
		t.pos++
	}
}

func (t *Tokenizer) skipTo(target byte) error {
	for t.pos < len(t.input) && t.input[t.pos] != target {
		t.pos++
	}
	if t.pos >= len(t.input) {
		return fmt.Errorf("markup: expected %q before end of input", string(target))
	}
	return nil
}

func isNameChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '-' || c == '_'
}
