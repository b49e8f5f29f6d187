package stringsfile

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// Decoder parses `.strings` table files.
//
// Parsing is all-or-nothing: any grammar violation anywhere in the
// input fails the whole file and no partial entry list is returned.
type Decoder struct {
	reader *bufio.Reader
	pos    Position
}

func NewDecoder() *Decoder {
	return &Decoder{
		reader: bufio.NewReader(nil),
	}
}

func (p *Decoder) errSyntax(expected string) Error {
	return Error{Pos: p.pos, Expected: expected}
}

func (p *Decoder) errEOF(expected string) Error {
	return Error{Pos: p.pos, Expected: expected, Err: ErrUnexpectedEOF}
}

// Decode decodes a `.strings` table from r.
// Entries are returned in file order, unsorted.
func (p *Decoder) Decode(filename string, r io.Reader) ([]Entry, error) {
	p.reader.Reset(r)
	p.pos.Filename, p.pos.Index, p.pos.Line, p.pos.Column = filename, 0, 1, 1

	var entries []Entry
	var message string

	for {
		if err := p.readWhitespace(); err != nil {
			if errors.Is(err, io.EOF) {
				return entries, nil
			}
			return nil, err
		}

		b, err := p.peekByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return entries, nil
			}
			return nil, err
		}

		switch b {
		case '/':
			m, err := p.readComment()
			if err != nil {
				return nil, err
			}
			// Only the comment immediately preceding a key attaches
			// to it; a later comment overwrites an earlier one.
			message = strings.TrimSpace(m)
		case '"':
			e, err := p.readEntry()
			if err != nil {
				return nil, err
			}
			e.Message = message
			message = ""
			entries = append(entries, e)
		default:
			return nil, p.errSyntax("comment or key")
		}
	}
}

func (p *Decoder) advanceByte(n uint32) {
	p.pos.Index += n
	p.pos.Column += n
}

func (p *Decoder) advanceLine() {
	p.pos.Index++
	p.pos.Line++
	p.pos.Column = 1
}

// advance accounts for a single consumed byte.
func (p *Decoder) advance(b byte) {
	if b == '\n' {
		p.advanceLine()
		return
	}
	p.advanceByte(1)
}

// readWhitespace reads spaces, tabs, carriage-returns and line-breaks.
func (p *Decoder) readWhitespace() error {
	for {
		b, err := p.reader.ReadByte()
		if err != nil {
			return err
		}
		switch b {
		case ' ', '\r', '\t':
			p.advanceByte(1)
			continue
		case '\n':
			p.advanceLine()
			continue
		}
		if err := p.reader.UnreadByte(); err != nil {
			panic(err) // Should never happen.
		}
		break
	}
	return nil
}

func (p *Decoder) peekByte() (byte, error) {
	b, err := p.reader.ReadByte()
	if err != nil {
		return 0, err
	}
	if err := p.reader.UnreadByte(); err != nil {
		panic(err) // Should never happen.
	}
	return b, nil
}

func (p *Decoder) expectByte(b byte, expected string) error {
	got, err := p.reader.ReadByte()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return p.errEOF(expected)
		}
		return err
	}
	if got != b {
		if err := p.reader.UnreadByte(); err != nil {
			panic(err) // Should never happen.
		}
		return p.errSyntax(expected)
	}
	p.advance(got)
	return nil
}

// readComment reads a `/* ... */` comment and returns its raw contents.
func (p *Decoder) readComment() (string, error) {
	if err := p.expectByte('/', "comment"); err != nil {
		return "", err
	}
	if err := p.expectByte('*', "comment"); err != nil {
		return "", err
	}

	var b strings.Builder
	var star bool
	for {
		c, err := p.reader.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", p.errEOF("end of comment")
			}
			return "", err
		}
		p.advance(c)
		if star && c == '/' {
			s := b.String()
			return s[:len(s)-1], nil // Drop the trailing '*'.
		}
		star = c == '*'
		b.WriteByte(c)
	}
}

// readEntry reads one `"key" = "value";` statement.
func (p *Decoder) readEntry() (Entry, error) {
	var e Entry

	key, err := p.readKey()
	if err != nil {
		return e, err
	}
	e.Key = key

	if err := p.readWhitespace(); err != nil && !errors.Is(err, io.EOF) {
		return e, err
	}
	if err := p.expectByte('=', "equals sign"); err != nil {
		return e, err
	}
	if err := p.readWhitespace(); err != nil && !errors.Is(err, io.EOF) {
		return e, err
	}

	value, err := p.readValue()
	if err != nil {
		return e, err
	}
	e.Value = value

	if err := p.readWhitespace(); err != nil && !errors.Is(err, io.EOF) {
		return e, err
	}
	if err := p.expectByte(';', "semicolon"); err != nil {
		return e, err
	}
	return e, nil
}

// readKey reads a double-quoted key.
// Keys have no escape sequences, a literal quote can't appear in one.
func (p *Decoder) readKey() (string, error) {
	if err := p.expectByte('"', "key"); err != nil {
		return "", err
	}
	var b strings.Builder
	for {
		c, err := p.reader.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", p.errEOF("end of key")
			}
			return "", err
		}
		p.advance(c)
		if c == '"' {
			return b.String(), nil
		}
		b.WriteByte(c)
	}
}

// readValue reads a double-quoted value unescaping `\"` to `"`.
// The value ends at the first unescaped quote.
func (p *Decoder) readValue() (string, error) {
	if err := p.expectByte('"', "value"); err != nil {
		return "", err
	}
	var b strings.Builder
	var escaped bool
	for {
		c, err := p.reader.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", p.errEOF("end of value")
			}
			return "", err
		}
		p.advance(c)
		switch {
		case escaped:
			if c != '"' {
				// Only `\"` is an escape sequence,
				// any other backslash is literal.
				b.WriteByte('\\')
			}
			b.WriteByte(c)
			escaped = false
		case c == '\\':
			escaped = true
		case c == '"':
			return b.String(), nil
		default:
			b.WriteByte(c)
		}
	}
}
