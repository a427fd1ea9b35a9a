package debug

import (
	"bytes"
	"strings"
	"testing"

	"github.com/signadot/dataobject"
)

func TestBoolEnv(t *testing.T) {
	tests := []struct {
		val  string
		want bool
	}{
		{"", false},
		{"1", true},
		{"true", true},
		{"false", false},
		{"junk", false},
	}
	for _, tt := range tests {
		t.Setenv("DOBJ_TEST_FLAG", tt.val)
		if got := boolEnv("DOBJ_TEST_FLAG"); got != tt.want {
			t.Errorf("%q: got %v", tt.val, got)
		}
	}
}

func TestLogf(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	prev := SetOutput(buf)
	defer SetOutput(prev)

	n := dataobject.New().With("a", int64(1))
	Logf("node %s list %s n %d\n", n, []any{1}, 3)
	got := buf.String()
	for _, want := range []string{`"a": 1`, "node {", "n 3"} {
		if !strings.Contains(got, want) {
			t.Errorf("%q not in %q", want, got)
		}
	}
}

func TestNodeString(t *testing.T) {
	n := dataobject.New().With("a", []any{int64(1), "b"})
	if got := (Node{n}).String(); got != `{"a":[1,"b"]}` {
		t.Errorf("got %s", got)
	}
}
