package encode

import (
	"strings"

	"github.com/fatih/color"
)

// Class classifies encoded values for colouring.
type Class int

const (
	NullClass Class = iota
	BoolClass
	NumberClass
	StringClass
	TimeClass
	NodeClass
	SequenceClass
)

func Classes() []Class {
	return []Class{NullClass, BoolClass, NumberClass, StringClass, TimeClass, NodeClass, SequenceClass}
}

type ColorAttr int

const (
	FieldColor ColorAttr = iota
	ValueColor
	SepColor
)

type Colorable struct {
	Class Class
	Attr  ColorAttr
}

type Colors struct {
	Default func(string, ...any) string
	Map     map[Colorable]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[Colorable]func(string, ...any) string{},
	}
	for _, c := range Classes() {
		colors.Map[Colorable{Class: c, Attr: SepColor}] = color.RGB(255, 0, 196).SprintfFunc()
	}
	able := Colorable{Attr: ValueColor}

	able.Class = NumberClass
	colors.Map[able] = color.RGB(128, 216, 236).SprintfFunc()

	able.Class = NullClass
	colors.Map[able] = color.RGB(168, 0, 196).SprintfFunc()

	able.Class = BoolClass
	colors.Map[able] = color.CyanString

	able.Class = TimeClass
	colors.Map[able] = color.RGB(198, 198, 46).SprintfFunc()

	able.Class = NodeClass
	able.Attr = FieldColor
	colors.Map[able] = color.RGB(128, 168, 196).SprintfFunc()
	able.Attr = SepColor
	colors.Map[able] = color.RGB(196, 128, 128).SprintfFunc()

	able.Class = SequenceClass
	colors.Map[able] = color.RGB(196, 168, 128).SprintfFunc()

	able.Class = StringClass
	able.Attr = ValueColor
	colors.Map[able] = color.RGB(8, 196, 16).SprintfFunc()

	for k, f := range colors.Map {
		colors.Map[k] = func(v string, _ ...any) string {
			return f(strings.ReplaceAll(v, "%", "%%"))
		}
	}
	return colors
}

func colorDefault(v string, _ ...any) string { return v }

func (c *Colors) Color(cl Class, a ColorAttr, s string) string {
	return c.Get(cl, a)(s)
}

func (c *Colors) Get(cl Class, a ColorAttr) func(string, ...any) string {
	f := c.Map[Colorable{Class: cl, Attr: a}]
	if f == nil {
		return c.Default
	}
	return f
}
