package encode

import (
	"strings"

	"github.com/fatih/color"
	"github.com/signadot/rstdoc/ir"
)

type ColorAttr int

const (
	ElementColor ColorAttr = iota
	AttrColor
	ValueColor
	TextColor
	PosColor
	SeverityColor
)

// Colorable selects a color. Sev is only used with SeverityColor.
type Colorable struct {
	Attr ColorAttr
	Sev  ir.Severity
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
	colors.Map[Colorable{Attr: ElementColor}] = color.RGB(74, 92, 138).SprintfFunc()
	colors.Map[Colorable{Attr: AttrColor}] = color.RGB(196, 96, 16).SprintfFunc()
	colors.Map[Colorable{Attr: ValueColor}] = color.RGB(8, 196, 16).SprintfFunc()
	colors.Map[Colorable{Attr: PosColor}] = color.RGB(96, 96, 96).SprintfFunc()
	colors.Map[Colorable{Attr: SeverityColor, Sev: ir.Info}] = color.CyanString
	colors.Map[Colorable{Attr: SeverityColor, Sev: ir.Warning}] = color.YellowString
	colors.Map[Colorable{Attr: SeverityColor, Sev: ir.Error}] = color.RedString
	colors.Map[Colorable{Attr: SeverityColor, Sev: ir.Severe}] = color.New(color.FgRed, color.Bold).SprintfFunc()
	for k, f := range colors.Map {
		colors.Map[k] = func(v string, _ ...any) string {
			return f(strings.ReplaceAll(v, "%", "%%"))
		}
	}
	return colors
}

func colorDefault(v string, _ ...any) string { return v }

func (c *Colors) Color(a ColorAttr, s string) string {
	return c.Get(Colorable{Attr: a})(s)
}

func (c *Colors) Severity(sev ir.Severity, s string) string {
	return c.Get(Colorable{Attr: SeverityColor, Sev: sev})(s)
}

func (c *Colors) Get(able Colorable) func(string, ...any) string {
	f := c.Map[able]
	if f == nil {
		return c.Default
	}
	return f
}
