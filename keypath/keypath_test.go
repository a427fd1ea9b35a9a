package keypath

import "testing"

func TestParseString(t *testing.T) {
	tests := []struct {
		in   string
		segs int
		want string
	}{
		{"a", 1, "a"},
		{"a.b", 2, "a.b"},
		{"a[0]", 2, "a[0]"},
		{"a.b[2][3].c", 5, "a.b[2][3].c"},
		{"[1].x", 2, "[1].x"},
		{`labels."app.io/name"`, 2, `labels."app.io/name"`},
		{`"with space".k`, 2, `"with space".k`},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			p, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.in, err)
			}
			if got := p.Len(); got != tt.segs {
				t.Errorf("Len() = %d, want %d", got, tt.segs)
			}
			if got := p.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{".a", "a.", "a[", "a[x]", "a[-1]", `"open`, "a..b", `"a"b`} {
		if _, err := Parse(in); err == nil {
			t.Errorf("Parse(%q) expected error", in)
		}
	}
}

func TestParseEmpty(t *testing.T) {
	p, err := Parse("")
	if err != nil {
		t.Fatal(err)
	}
	if p != nil {
		t.Errorf("expected nil path, got %q", p)
	}
	if p.String() != "" {
		t.Errorf("nil path String() = %q", p.String())
	}
}

func TestAppendDoesNotModify(t *testing.T) {
	base := Field("root")
	a := base.Child("a")
	b := base.At(3)
	if base.String() != "root" {
		t.Errorf("base modified: %q", base)
	}
	if a.String() != "root.a" {
		t.Errorf("a = %q", a)
	}
	if b.String() != "root[3]" {
		t.Errorf("b = %q", b)
	}
	var empty *Path
	if got := empty.Child("x").String(); got != "x" {
		t.Errorf("nil.Child = %q", got)
	}
}

func TestParentLast(t *testing.T) {
	p, err := Parse("a.b[1]")
	if err != nil {
		t.Fatal(err)
	}
	if got := p.Parent().String(); got != "a.b" {
		t.Errorf("Parent() = %q", got)
	}
	if got := p.Last().SegmentString(); got != "[1]" {
		t.Errorf("Last() = %q", got)
	}
	if p.String() != "a.b[1]" {
		t.Errorf("Parent modified p: %q", p)
	}
	if Field("a").Parent() != nil {
		t.Errorf("single segment parent should be nil")
	}
}
