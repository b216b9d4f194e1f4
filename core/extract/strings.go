package extract

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrSyntax is matched by every *SyntaxError.
var ErrSyntax = errors.New("strings file syntax error")

// SyntaxError reports malformed .strings content.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

func (e *SyntaxError) Is(target error) bool {
	return target == ErrSyntax
}

// ParseStrings reads an Apple .strings file:
//
//	/* Translator hint */
//	"key" = "value";
//
// The encoding is detected from the byte order mark; files without one are
// read as UTF-8. The block comment directly preceding an entry becomes its
// Comment.
func ParseStrings(r io.Reader) ([]Item, error) {
	decoded, err := io.ReadAll(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	if err != nil {
		return nil, fmt.Errorf("failed to decode strings file: %w", err)
	}

	p := &stringsParser{src: []rune(string(decoded)), line: 1}
	return p.parse()
}

type stringsParser struct {
	src  []rune
	pos  int
	line int
}

func (p *stringsParser) parse() ([]Item, error) {
	var items []Item
	var comment string
	pending := false

	for {
		p.skipSpace()
		if p.eof() {
			return items, nil
		}

		switch {
		case p.peekString("/*"):
			text, err := p.blockComment()
			if err != nil {
				return nil, err
			}
			comment, pending = text, true
		case p.peekString("//"):
			p.lineComment()
		case p.peek() == '"':
			item, err := p.entry()
			if err != nil {
				return nil, err
			}
			if pending {
				item.Comment = comment
			}
			items = append(items, item)
			comment, pending = "", false
		default:
			return nil, p.errorf("unexpected %q", p.peek())
		}
	}
}

func (p *stringsParser) entry() (Item, error) {
	line := p.line
	key, err := p.quoted()
	if err != nil {
		return Item{}, err
	}

	p.skipTrivia()
	if p.peek() != '=' {
		return Item{}, p.errorf("expected '=' after key %q", key)
	}
	p.advance()

	p.skipTrivia()
	if p.peek() != '"' {
		return Item{}, p.errorf("expected value for key %q", key)
	}
	value, err := p.quoted()
	if err != nil {
		return Item{}, err
	}

	p.skipTrivia()
	if p.peek() != ';' {
		return Item{}, p.errorf("expected ';' after value of key %q", key)
	}
	p.advance()

	return Item{Key: key, Text: value, Line: line}, nil
}

func (p *stringsParser) quoted() (string, error) {
	start := p.line
	p.advance() // opening quote

	var b strings.Builder
	for !p.eof() {
		c := p.advance()
		switch c {
		case '"':
			return b.String(), nil
		case '\\':
			if p.eof() {
				break
			}
			esc := p.advance()
			switch esc {
			case 'n':
				b.WriteRune('\n')
			case 't':
				b.WriteRune('\t')
			case 'r':
				b.WriteRune('\r')
			case 'U', 'u':
				r, ok := p.hex4()
				if !ok {
					return "", p.errorf("invalid unicode escape")
				}
				b.WriteRune(r)
			default:
				b.WriteRune(esc)
			}
		default:
			b.WriteRune(c)
		}
	}
	return "", &SyntaxError{Line: start, Msg: "unterminated string"}
}

func (p *stringsParser) hex4() (rune, bool) {
	if p.pos+4 > len(p.src) {
		return 0, false
	}
	var r rune
	for i := 0; i < 4; i++ {
		c := p.src[p.pos+i]
		switch {
		case c >= '0' && c <= '9':
			r = r<<4 | (c - '0')
		case c >= 'a' && c <= 'f':
			r = r<<4 | (c - 'a' + 10)
		case c >= 'A' && c <= 'F':
			r = r<<4 | (c - 'A' + 10)
		default:
			return 0, false
		}
	}
	p.pos += 4
	return r, true
}

func (p *stringsParser) blockComment() (string, error) {
	start := p.line
	p.pos += 2
	var b strings.Builder
	for !p.eof() {
		if p.peekString("*/") {
			p.pos += 2
			return strings.TrimSpace(b.String()), nil
		}
		b.WriteRune(p.advance())
	}
	return "", &SyntaxError{Line: start, Msg: "unterminated comment"}
}

func (p *stringsParser) lineComment() {
	for !p.eof() && p.peek() != '\n' {
		p.advance()
	}
}

// skipTrivia skips whitespace and comments between the parts of an entry.
func (p *stringsParser) skipTrivia() {
	for {
		p.skipSpace()
		switch {
		case p.peekString("/*"):
			if _, err := p.blockComment(); err != nil {
				return
			}
		case p.peekString("//"):
			p.lineComment()
		default:
			return
		}
	}
}

func (p *stringsParser) skipSpace() {
	for !p.eof() {
		switch p.peek() {
		case ' ', '\t', '\r', '\n', '\uFEFF':
			p.advance()
		default:
			return
		}
	}
}

func (p *stringsParser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *stringsParser) peek() rune {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *stringsParser) peekString(s string) bool {
	rs := []rune(s)
	if p.pos+len(rs) > len(p.src) {
		return false
	}
	for i, r := range rs {
		if p.src[p.pos+i] != r {
			return false
		}
	}
	return true
}

func (p *stringsParser) advance() rune {
	c := p.src[p.pos]
	p.pos++
	if c == '\n' {
		p.line++
	}
	return c
}

func (p *stringsParser) errorf(format string, args ...any) error {
	return &SyntaxError{Line: p.line, Msg: fmt.Sprintf(format, args...)}
}

// Entry is one line of a rendered .strings file.
type Entry struct {
	Key     string
	Value   string
	Comment string
}

// WriteStrings renders entries as a UTF-16 .strings file with a byte order
// mark, the encoding Xcode writes.
func WriteStrings(w io.Writer, entries []Entry) error {
	var buf bytes.Buffer
	for i, e := range entries {
		if i > 0 {
			buf.WriteString("\n")
		}
		if e.Comment != "" {
			fmt.Fprintf(&buf, "/* %s */\n", strings.ReplaceAll(e.Comment, "*/", "* /"))
		}
		fmt.Fprintf(&buf, "%s = %s;\n", quoteStrings(e.Key), quoteStrings(e.Value))
	}

	enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	tw := transform.NewWriter(w, enc)
	if _, err := tw.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to encode strings file: %w", err)
	}
	return tw.Close()
}

func quoteStrings(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, c := range s {
		switch c {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}
