package diff

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/signadot/dataobject"
	"github.com/signadot/dataobject/encode"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

type Op int

const (
	Equal Op = iota
	Insert
	Delete
)

func (o Op) Prefix() string {
	switch o {
	case Insert:
		return "+ "
	case Delete:
		return "- "
	}
	return "  "
}

// Line is one line of a diff, without its trailing newline.
type Line struct {
	Op   Op
	Text string
}

type Result struct {
	Lines []Line
}

// Equal reports whether the diffed texts are the same.
func (r *Result) Equal() bool {
	for _, ln := range r.Lines {
		if ln.Op != Equal {
			return false
		}
	}
	return true
}

// Stats returns the number of inserted and deleted lines.
func (r *Result) Stats() (ins, del int) {
	for _, ln := range r.Lines {
		switch ln.Op {
		case Insert:
			ins++
		case Delete:
			del++
		}
	}
	return
}

// Docs diffs the encodings of from and to under opts. Colour options are
// ignored; see WithColor.
func Docs(from, to dataobject.Typed, opts ...encode.EncodeOption) (*Result, error) {
	opts = append(opts, encode.EncodeColors(nil))
	fbuf := bytes.NewBuffer(nil)
	if err := encode.Encode(from, fbuf, opts...); err != nil {
		return nil, fmt.Errorf("encoding from: %w", err)
	}
	tbuf := bytes.NewBuffer(nil)
	if err := encode.Encode(to, tbuf, opts...); err != nil {
		return nil, fmt.Errorf("encoding to: %w", err)
	}
	return Text(fbuf.String(), tbuf.String()), nil
}

// Text diffs from and to line by line.
func Text(from, to string) *Result {
	dmp := diffpatch.New()
	fc, tc, lines := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffMain(fc, tc, false)
	diffs = dmp.DiffCharsToLines(diffs, lines)
	res := &Result{}
	for _, d := range diffs {
		var op Op
		switch d.Type {
		case diffpatch.DiffInsert:
			op = Insert
		case diffpatch.DiffDelete:
			op = Delete
		default:
			op = Equal
		}
		for _, ln := range splitLines(d.Text) {
			res.Lines = append(res.Lines, Line{Op: op, Text: ln})
		}
	}
	return res
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

type writeState struct {
	color   bool
	context int
}

type WriteOption func(*writeState)

func WithColor(v bool) WriteOption {
	return func(ws *writeState) { ws.color = v }
}

// Context limits unchanged lines to n around each change. Negative n,
// the default, shows every line.
func Context(n int) WriteOption {
	return func(ws *writeState) { ws.context = n }
}

// Write writes r with "+ ", "- " and "  " line prefixes. Runs of
// unchanged lines elided by Context are written as a single "...".
func (r *Result) Write(w io.Writer, opts ...WriteOption) error {
	ws := &writeState{context: -1}
	for _, opt := range opts {
		opt(ws)
	}
	ins := color.New(color.FgGreen).SprintFunc()
	del := color.New(color.FgRed).SprintFunc()
	elided := false
	for i, ln := range r.Lines {
		if ln.Op == Equal && ws.context >= 0 && !r.near(i, ws.context) {
			if !elided {
				if _, err := io.WriteString(w, "...\n"); err != nil {
					return err
				}
			}
			elided = true
			continue
		}
		elided = false
		text := ln.Op.Prefix() + ln.Text
		if ws.color {
			switch ln.Op {
			case Insert:
				text = ins(text)
			case Delete:
				text = del(text)
			}
		}
		if _, err := io.WriteString(w, text+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// near reports whether a change lies within n lines of line i.
func (r *Result) near(i, n int) bool {
	lo, hi := max(0, i-n), min(len(r.Lines)-1, i+n)
	for j := lo; j <= hi; j++ {
		if r.Lines[j].Op != Equal {
			return true
		}
	}
	return false
}

func (r *Result) String() string {
	buf := bytes.NewBuffer(nil)
	_ = r.Write(buf)
	return buf.String()
}
