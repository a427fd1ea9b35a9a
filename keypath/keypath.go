package keypath

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Path is a key path into a node tree:
//   - "a.b" → key "b" of the value under key "a"
//   - "a[0]" → element 0 of the sequence under key "a"
//
// A Path is a linked list of segments; each segment has exactly one of
// Field or Index set. The nil *Path is the empty path (the root).
type Path struct {
	Field *string
	Index *int
	Next  *Path
}

func Field(name string) *Path {
	return &Path{Field: &name}
}

func Index(i int) *Path {
	return &Path{Index: &i}
}

// String returns the key path representation of p. Fields that could
// not be read back unambiguously are double quoted.
func (p *Path) String() string {
	if p == nil {
		return ""
	}
	buf := bytes.NewBuffer(nil)
	for x := p; x != nil; x = x.Next {
		if x.Field != nil {
			if buf.Len() > 0 {
				buf.WriteByte('.')
			}
			buf.WriteString(quoteField(*x.Field))
			continue
		}
		if x.Index != nil {
			fmt.Fprintf(buf, "[%d]", *x.Index)
		}
	}
	return buf.String()
}

func (p *Path) SegmentString() string {
	if p == nil {
		return ""
	}
	if p.Field != nil {
		return quoteField(*p.Field)
	}
	if p.Index != nil {
		return "[" + strconv.Itoa(*p.Index) + "]"
	}
	return ""
}

func quoteField(f string) string {
	if needsQuote(f) {
		return strconv.Quote(f)
	}
	return f
}

func needsQuote(f string) bool {
	if f == "" {
		return true
	}
	return strings.ContainsAny(f, ".[]\"' \t\n\\")
}

// Append returns a copy of p with q appended. Neither p nor q is modified.
func (p *Path) Append(q *Path) *Path {
	if p == nil {
		return q.clone()
	}
	res := p.clone()
	last := res
	for last.Next != nil {
		last = last.Next
	}
	last.Next = q.clone()
	return res
}

// Child is shorthand for p.Append(Field(name)).
func (p *Path) Child(name string) *Path {
	return p.Append(Field(name))
}

// At is shorthand for p.Append(Index(i)).
func (p *Path) At(i int) *Path {
	return p.Append(Index(i))
}

func (p *Path) clone() *Path {
	if p == nil {
		return nil
	}
	var (
		head *Path
		tail *Path
	)
	for x := p; x != nil; x = x.Next {
		seg := &Path{}
		if x.Field != nil {
			f := *x.Field
			seg.Field = &f
		}
		if x.Index != nil {
			i := *x.Index
			seg.Index = &i
		}
		if head == nil {
			head = seg
		} else {
			tail.Next = seg
		}
		tail = seg
	}
	return head
}

// Len returns the number of segments in p.
func (p *Path) Len() int {
	n := 0
	for x := p; x != nil; x = x.Next {
		n++
	}
	return n
}

// Parent returns p without its last segment, or nil if p has at most one.
func (p *Path) Parent() *Path {
	if p == nil || p.Next == nil {
		return nil
	}
	res := p.clone()
	x := res
	for x.Next.Next != nil {
		x = x.Next
	}
	x.Next = nil
	return res
}

// Last returns the last segment of p.
func (p *Path) Last() *Path {
	if p == nil {
		return nil
	}
	x := p
	for x.Next != nil {
		x = x.Next
	}
	return x
}

// Parse parses a key path such as `nested.arr[0]."odd.key"`.
// The empty string parses to the nil path.
func Parse(s string) (*Path, error) {
	if s == "" {
		return nil, nil
	}
	root := &Path{}
	if err := parseFrag(s, root, true); err != nil {
		return nil, fmt.Errorf("invalid key path %q: %w", s, err)
	}
	return root, nil
}

func parseFrag(frag string, parent *Path, first bool) error {
	if len(frag) == 0 {
		return nil
	}
	var rest string
	switch frag[0] {
	case '[':
		i := strings.IndexByte(frag[1:], ']')
		if i == -1 {
			return fmt.Errorf("expected '[' <index> ']'")
		}
		index, err := strconv.ParseUint(frag[1:i+1], 10, 31)
		if err != nil {
			return fmt.Errorf("invalid index %q: %v", frag[1:i+1], err)
		}
		idx := int(index)
		parent.Index = &idx
		rest = frag[i+2:]
	case '.':
		if first {
			return fmt.Errorf("unexpected leading '.'")
		}
		field, r, err := parseField(frag[1:])
		if err != nil {
			return err
		}
		parent.Field = &field
		rest = r
	default:
		if !first {
			return fmt.Errorf("expected '.' or '[', got %q", frag[0])
		}
		field, r, err := parseField(frag)
		if err != nil {
			return err
		}
		parent.Field = &field
		rest = r
	}
	if len(rest) == 0 {
		return nil
	}
	next := &Path{}
	if err := parseFrag(rest, next, false); err != nil {
		return err
	}
	parent.Next = next
	return nil
}

func parseField(frag string) (field, rest string, err error) {
	if len(frag) == 0 {
		return "", "", fmt.Errorf("expected field at end of string")
	}
	if frag[0] == '"' {
		end := quotedEnd(frag)
		if end == -1 {
			return "", "", fmt.Errorf("unterminated quoted field")
		}
		field, err = strconv.Unquote(frag[:end])
		if err != nil {
			return "", "", fmt.Errorf("invalid quoted field: %w", err)
		}
		return field, frag[end:], nil
	}
	i := strings.IndexAny(frag, ".[")
	if i == -1 {
		return frag, "", nil
	}
	if i == 0 {
		return "", "", fmt.Errorf("empty field")
	}
	return frag[:i], frag[i:], nil
}

// quotedEnd returns the index just past the closing quote of the
// double quoted string at the start of s, or -1.
func quotedEnd(s string) int {
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return i + 1
		}
	}
	return -1
}
