// Package stringsfile provides a decoder and encoder for Apple
// `.strings` localization table files.
//
// WARNING: This implementation covers the flat key/value dialect only
// (optional `/* comment */`, `"key" = "value";`) and is not a general
// property list reader.
package stringsfile

import (
	"errors"
	"fmt"
)

// Entry is one key/value pair of a `.strings` table.
// Message holds the comment annotation immediately preceding the key,
// or "" if the key has none.
type Entry struct {
	Key     string
	Value   string
	Message string
}

type Position struct {
	Filename     string
	Index        uint32
	Line, Column uint32
}

type Error struct {
	Pos      Position
	Expected string
	Err      error
}

func (e Error) Error() string {
	err := e.Err
	if err == nil {
		err = ErrUnexpectedToken
	}
	if e.Expected == "" {
		return fmt.Sprintf("%s:%d:%d: %s",
			e.Pos.Filename, e.Pos.Line, e.Pos.Column, err.Error())
	}
	return fmt.Sprintf("%s:%d:%d: expected %s; %s",
		e.Pos.Filename, e.Pos.Line, e.Pos.Column, e.Expected, err.Error())
}

func (e Error) Unwrap() error { return e.Err }

var (
	ErrUnexpectedToken = errors.New("found unexpected token")
	ErrUnexpectedEOF   = errors.New("unexpected end of file")
)
