package parse

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/signadot/rstdoc/ir"
	"github.com/signadot/rstdoc/role"
	"github.com/signadot/rstdoc/token"
)

type argKind int

const (
	argNone argKind = iota
	argOptional
	argRequired
)

type contentKind int

const (
	contentNone contentKind = iota
	contentOptional
	contentRequired
)

type directiveSpec struct {
	args    argKind
	options []string
	content contentKind
	// subst marks directives usable in substitution definitions
	subst bool
	build func(p *parser, d *directiveCall) bool
}

// directiveCall is a parsed directive block.
type directiveCall struct {
	name    string
	spec    *directiveSpec
	args    token.Text
	opts    map[string]string
	order   []string
	content []token.Line
	span    ir.Span
	parent  ir.NodeID
	// subdef is the name of the enclosing substitution definition
	subdef string
}

func (d *directiveCall) info() *ir.DirectiveInfo {
	return &ir.DirectiveInfo{
		Name:        d.name,
		Args:        d.args.S,
		Options:     d.opts,
		OptionOrder: d.order,
	}
}

var commonOptions = []string{"class", "name"}

var directives map[string]*directiveSpec

func init() {
	admonition := &directiveSpec{options: commonOptions, content: contentRequired, build: (*parser).admonition}
	version := &directiveSpec{args: argRequired, options: commonOptions, content: contentOptional, build: (*parser).admonition}
	code := &directiveSpec{
		args:    argOptional,
		options: []string{"class", "name", "number-lines", "linenos", "lineno-start", "emphasize-lines", "caption", "dedent", "force"},
		content: contentRequired,
		build:   (*parser).code,
	}
	imageOpts := []string{"alt", "height", "width", "scale", "align", "target", "class", "name"}
	directives = map[string]*directiveSpec{
		"admonition": {args: argRequired, options: commonOptions, content: contentRequired, build: (*parser).admonition},
		"seealso":    admonition,
		"topic":      {args: argRequired, options: commonOptions, content: contentRequired, build: (*parser).topic},
		"sidebar":    {args: argRequired, options: []string{"subtitle", "class", "name"}, content: contentRequired, build: (*parser).topic},
		"container":  {args: argOptional, options: []string{"name"}, content: contentRequired, build: (*parser).containerDirective},
		"rubric":     {args: argRequired, options: commonOptions, content: contentNone, build: (*parser).rubric},
		"code":       code,
		"code-block": code,
		"sourcecode": code,
		"image":      {args: argRequired, options: imageOpts, content: contentNone, subst: true, build: (*parser).image},
		"figure": {args: argRequired, options: append(slices.Clone(imageOpts), "figwidth", "figclass"),
			content: contentOptional, build: (*parser).figure},
		"replace":      {args: argNone, content: contentRequired, subst: true, build: (*parser).replace},
		"default-role": {args: argOptional, content: contentNone, build: (*parser).defaultRole},
		"role":         {args: argRequired, options: []string{"class", "language", "format"}, content: contentNone, build: (*parser).roleDirective},
		"class":        {args: argRequired, content: contentOptional, build: (*parser).class},
		"raw":          {args: argRequired, options: []string{"file", "url", "encoding", "class"}, content: contentOptional, build: (*parser).raw},
		"include": {args: argRequired, options: []string{"literal", "code", "start-line", "end-line", "start-after",
			"end-before", "encoding", "tab-width", "parser", "number-lines", "class", "name"}, content: contentNone, build: (*parser).record},
		"toctree": {options: []string{"maxdepth", "caption", "hidden", "glob", "titlesonly", "numbered", "name",
			"reversed", "includehidden", "class"}, content: contentOptional, build: (*parser).record},
		"contents": {args: argOptional, options: []string{"depth", "local", "backlinks", "class"}, content: contentNone, build: (*parser).record},
		"sectnum":  {options: []string{"depth", "prefix", "suffix", "start"}, content: contentNone, build: (*parser).record},
	}
	for _, n := range []string{"note", "warning", "tip", "hint", "important", "caution", "danger", "error", "attention"} {
		directives[n] = admonition
	}
	for _, n := range []string{"versionadded", "versionchanged", "deprecated"} {
		directives[n] = version
	}
}

// DirectiveNames lists the directives with known semantics.
func DirectiveNames() []string {
	res := make([]string, 0, len(directives))
	for n := range directives {
		res = append(res, n)
	}
	slices.Sort(res)
	return res
}

// DirectiveOptions lists the options a known directive accepts.
func DirectiveOptions(name string) ([]string, bool) {
	spec, ok := directives[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	return slices.Clone(spec.options), true
}

// directive parses a directive block; body[0] starts with the directive
// name. It reports whether nodes were added to parent.
func (p *parser) directive(start token.Line, body []token.Line, parent ir.NodeID, subdef string) bool {
	m := directiveRe.FindStringSubmatch(body[0].Text)
	name := strings.ToLower(m[1])
	body[0] = body[0].Cut(len(m[0]))
	span := p.blockSpan(start, body)
	if subdef != "" {
		span = p.blockSpan(body[0], body)
	}
	spec, ok := directives[name]
	if !ok {
		p.unknownDirective(name, m[1], body, span, parent, subdef)
		return false
	}
	if subdef != "" && !spec.subst {
		p.t.Reportf(ir.Error, span, nil, "Substitution definition contains illegal element <%s>:", name)
		return false
	}
	d, ok := p.directiveBlock(name, spec, body, span)
	if !ok {
		return false
	}
	d.parent = parent
	d.subdef = subdef
	return spec.build(p, d)
}

func (p *parser) unknownDirective(name, raw string, body []token.Line, span ir.Span, parent ir.NodeID, subdef string) {
	if subdef != "" {
		p.t.Reportf(ir.Error, span, nil, "Unknown directive type %q.", raw)
		return
	}
	dn := p.t.NewNode(ir.Directive, span)
	args := token.TextOf(body[0].TrimRight()).TrimSpace()
	p.t.Node(dn).Directive = &ir.DirectiveInfo{Name: name, Args: args.S}
	p.t.Append(parent, dn)
	if txt := token.Join(trimLines(body)); strings.TrimSpace(txt.S) != "" {
		lb := p.t.NewNode(ir.LiteralBlock, p.blockSpan(body[0], body))
		p.t.Append(dn, lb)
		p.t.Append(lb, p.t.NewText(txt.S, txt.FullSpan(p.t.Doc)))
	}
	p.t.Reportf(ir.Error, span, []ir.NodeID{dn}, "Unknown directive type %q.", raw)
}

// directiveBlock splits a directive body into arguments, options and
// content and checks them against spec.
func (p *parser) directiveBlock(name string, spec *directiveSpec, body []token.Line, span ir.Span) (*directiveCall, bool) {
	d := &directiveCall{name: name, spec: spec, span: span}
	i := 0
	if spec.args == argNone {
		if spec.content != contentNone && !body[0].IsBlank() {
			d.content = body
			i = len(body)
		} else if !body[0].IsBlank() {
			p.t.Reportf(ir.Error, span, nil, "Error in %q directive:\nno arguments permitted; blank line required before content block.", name)
			return nil, false
		}
	} else {
		var args []token.Line
		for i < len(body) && !body[i].IsBlank() {
			if _, _, isOpt := fieldMarker(body[i].Text); isOpt && len(spec.options) > 0 && (i > 0 || body[0].IsBlank()) {
				break
			}
			args = append(args, body[i].TrimRight())
			i++
		}
		if len(args) > 0 {
			d.args = token.Join(args).TrimSpace()
		}
	}
	if i == 0 && len(body) > 0 && body[0].IsBlank() {
		i = 1
	}
	if i < len(body) && d.content == nil && len(spec.options) > 0 {
		if _, _, isOpt := fieldMarker(body[i].Text); isOpt {
			var ok bool
			if i, ok = p.options(d, body, i); !ok {
				return nil, false
			}
		}
	}
	if d.content == nil {
		for i < len(body) && body[i].IsBlank() {
			i++
		}
		d.content = body[i:]
	}
	if spec.args == argRequired && d.args.Len() == 0 {
		p.t.Reportf(ir.Error, span, nil, "Error in %q directive:\n1 argument(s) required, 0 supplied.", name)
		return nil, false
	}
	switch {
	case spec.content == contentRequired && len(d.content) == 0:
		p.t.Reportf(ir.Error, span, nil, "Content block expected for the %q directive; none found.", name)
		return nil, false
	case spec.content == contentNone && len(d.content) > 0:
		p.t.Reportf(ir.Error, span, nil, "Error in %q directive:\nno content permitted.", name)
		return nil, false
	}
	return d, true
}

// options parses the option block at body[i]. A malformed or unknown
// option drops the directive.
func (p *parser) options(d *directiveCall, body []token.Line, i int) (int, bool) {
	d.opts = map[string]string{}
	for i < len(body) && !body[i].IsBlank() {
		name, cut, ok := fieldMarker(body[i].Text)
		if !ok {
			p.t.Reportf(ir.Severe, d.span, nil, "Error in %q directive:\ninvalid option block.", d.name)
			return i, false
		}
		name = strings.ToLower(name)
		if !slices.Contains(d.spec.options, name) {
			p.t.Reportf(ir.Severe, d.span, nil, "Error in %q directive:\nunknown option: %q.", d.name, name)
			return i, false
		}
		if _, dup := d.opts[name]; dup {
			p.t.Reportf(ir.Severe, d.span, nil, "Error in %q directive:\nduplicate option %q.", d.name, name)
			return i, false
		}
		val := []string{strings.TrimSpace(body[i].Text[cut:])}
		i++
		for i < len(body) && !body[i].IsBlank() && body[i].Indent() > 0 {
			val = append(val, strings.TrimSpace(body[i].Text))
			i++
		}
		d.opts[name] = strings.TrimSpace(strings.Join(val, " "))
		d.order = append(d.order, name)
	}
	return i, true
}

// common applies the class and name options to id.
func (p *parser) common(d *directiveCall, id ir.NodeID) {
	n := p.t.Node(id)
	n.Directive = d.info()
	for _, c := range strings.Fields(d.opts["class"]) {
		n.Attrs.AddClass(ir.MakeID(c))
	}
	if name := strings.TrimSpace(d.opts["name"]); name != "" {
		n.Attrs.Names = append(n.Attrs.Names, ir.NormalizeName(name))
	}
}

func (p *parser) contentSpan(d *directiveCall) ir.Span {
	return p.blockSpan(d.content[0], d.content)
}

func (p *parser) admonition(d *directiveCall) bool {
	adm := p.t.NewNode(ir.Admonition, d.span)
	n := p.t.Node(adm)
	n.Attrs.Set("type", d.name)
	p.common(d, adm)
	p.t.Append(d.parent, adm)
	switch d.name {
	case "admonition":
		title := p.t.NewNode(ir.Title, d.args.FullSpan(p.t.Doc))
		p.t.Append(adm, title)
		p.inline(d.args, title)
		if _, ok := d.opts["class"]; !ok {
			n.Attrs.AddClass("admonition-" + ir.MakeID(d.args.S))
		}
	case "versionadded", "versionchanged", "deprecated":
		version, rest, _ := strings.Cut(d.args.S, " ")
		n.Attrs.Set("version", version)
		if r := strings.TrimSpace(rest); r != "" {
			para := p.t.NewNode(ir.Paragraph, d.args.FullSpan(p.t.Doc))
			p.t.Append(adm, para)
			txt := d.args.Slice(len(version), d.args.Len()).TrimSpace()
			p.inline(txt, para)
		}
	default:
		n.Attrs.AddClass(d.name)
	}
	p.blocks(d.content, adm, false)
	return true
}

func (p *parser) topic(d *directiveCall) bool {
	k := ir.Topic
	if d.name == "sidebar" {
		k = ir.Sidebar
	}
	id := p.t.NewNode(k, d.span)
	p.common(d, id)
	p.t.Append(d.parent, id)
	title := p.t.NewNode(ir.Title, d.args.FullSpan(p.t.Doc))
	p.t.Append(id, title)
	p.inline(d.args, title)
	if sub := d.opts["subtitle"]; sub != "" {
		p.t.Node(id).Attrs.Set("subtitle", sub)
	}
	p.blocks(d.content, id, false)
	return true
}

func (p *parser) containerDirective(d *directiveCall) bool {
	id := p.t.NewNode(ir.Container, d.span)
	p.common(d, id)
	for _, c := range strings.Fields(d.args.S) {
		p.t.Node(id).Attrs.AddClass(ir.MakeID(c))
	}
	p.t.Append(d.parent, id)
	p.blocks(d.content, id, false)
	return true
}

func (p *parser) rubric(d *directiveCall) bool {
	id := p.t.NewNode(ir.Rubric, d.span)
	p.common(d, id)
	p.t.Append(d.parent, id)
	p.inline(d.args, id)
	return true
}

func (p *parser) code(d *directiveCall) bool {
	id := p.t.NewNode(ir.LiteralBlock, d.span)
	p.common(d, id)
	lang := strings.TrimSpace(d.args.S)
	n := p.t.Node(id)
	n.Attrs.AddClass("code")
	if lang != "" {
		n.Attrs.AddClass(lang)
		n.Attrs.Set("language", lang)
	}
	p.t.Append(d.parent, id)
	txt := token.Join(trimLines(d.content))
	for _, c := range role.Highlight(p.t, txt, lang) {
		p.t.Append(id, c)
	}
	return true
}

func (p *parser) imageNode(d *directiveCall, span ir.Span) ir.NodeID {
	id := p.t.NewNode(ir.Image, span)
	n := p.t.Node(id)
	n.Directive = d.info()
	n.Attrs.Set("uri", token.StripWhitespace(d.args.S))
	for _, k := range []string{"alt", "height", "width", "scale", "align", "target"} {
		if v, ok := d.opts[k]; ok {
			n.Attrs.Set(k, v)
		}
	}
	for _, c := range strings.Fields(d.opts["class"]) {
		n.Attrs.AddClass(ir.MakeID(c))
	}
	return id
}

func (p *parser) image(d *directiveCall) bool {
	if d.subdef != "" {
		if _, ok := d.opts["name"]; ok {
			p.t.Reportf(ir.Error, d.span, nil, "Error in %q directive:\nunknown option: \"name\".", d.name)
			return false
		}
		p.t.Append(d.parent, p.imageNode(d, d.span))
		return true
	}
	id := p.imageNode(d, d.span)
	if name := strings.TrimSpace(d.opts["name"]); name != "" {
		p.t.Node(id).Attrs.Names = []string{ir.NormalizeName(name)}
	}
	p.t.Append(d.parent, id)
	return true
}

func (p *parser) figure(d *directiveCall) bool {
	fig := p.t.NewNode(ir.Figure, d.span)
	fn := p.t.Node(fig)
	fn.Directive = d.info()
	for _, c := range strings.Fields(d.opts["figclass"]) {
		fn.Attrs.AddClass(ir.MakeID(c))
	}
	if w := d.opts["figwidth"]; w != "" {
		fn.Attrs.Set("width", w)
	}
	if name := strings.TrimSpace(d.opts["name"]); name != "" {
		fn.Attrs.Names = []string{ir.NormalizeName(name)}
	}
	p.t.Append(d.parent, fig)
	p.t.Append(fig, p.imageNode(d, d.args.FullSpan(p.t.Doc)))
	if len(d.content) == 0 {
		return true
	}
	j := 0
	for j < len(d.content) && !d.content[j].IsBlank() {
		j++
	}
	capLines := d.content[:j]
	if capLines[0].Indent() == 0 && !(len(capLines) == 1 && strings.TrimSpace(capLines[0].Text) == "..") {
		cp := p.t.NewNode(ir.Caption, p.blockSpan(capLines[0], capLines))
		p.t.Append(fig, cp)
		p.inline(token.Join(trimLines(capLines)).TrimSpace(), cp)
	}
	if rest := d.content[j:]; len(strings.TrimSpace(token.Join(rest).S)) > 0 {
		k := 0
		for rest[k].IsBlank() {
			k++
		}
		legend := p.t.NewNode(ir.Container, p.blockSpan(rest[k], rest))
		p.t.Node(legend).Attrs.AddClass("legend")
		p.t.Append(fig, legend)
		p.blocks(rest, legend, false)
	}
	return true
}

func (p *parser) replace(d *directiveCall) bool {
	if d.subdef == "" {
		p.t.Reportf(ir.Error, d.span, nil,
			"Invalid context: the %q directive can only be used within a substitution definition.", d.name)
		return false
	}
	txt := token.Join(trimLines(d.content)).TrimSpace()
	if strings.Contains(txt.S, "\n\n") {
		p.t.Reportf(ir.Error, d.span, nil, "Error in %q directive: may contain a single paragraph only.", d.name)
		return false
	}
	p.inline(txt, d.parent)
	return true
}

// record keeps a directive whose effect is outside the document tree.
func (p *parser) record(d *directiveCall) bool {
	id := p.t.NewNode(ir.Directive, d.span)
	n := p.t.Node(id)
	n.Directive = d.info()
	if len(d.content) > 0 {
		var entries []string
		for _, l := range d.content {
			if s := strings.TrimSpace(l.Text); s != "" {
				entries = append(entries, s)
			}
		}
		n.Attrs.Set("entries", strings.Join(entries, "\n"))
	}
	if name := strings.TrimSpace(d.opts["name"]); name != "" {
		n.Attrs.Names = []string{ir.NormalizeName(name)}
	}
	p.t.Append(d.parent, id)
	return true
}

// reportLookup reports a role lookup that needed the canonical fallback.
// It returns the id of the error for unknown roles.
func (p *parser) reportLookup(how role.Lookup, name string, span ir.Span) string {
	switch how {
	case role.FallbackFound:
		p.t.Report(ir.Info, span, role.FallbackMessage(name))
	case role.NotFound:
		p.t.Report(ir.Info, span, role.FallbackMessage(name))
		return p.t.Report(ir.Error, span, role.UnknownMessage(name))
	}
	return ""
}

func (p *parser) defaultRole(d *directiveCall) bool {
	name := strings.TrimSpace(d.args.S)
	how, err := p.roles.SetDefault(name)
	p.reportLookup(how, name, d.span)
	if err != nil {
		return false
	}
	return p.record(d)
}

var roleArgRe = regexp.MustCompile(`^([\p{L}\p{N}](?:[-_.+:]?[\p{L}\p{N}])*)(?:\s*\(\s*([\p{L}\p{N}](?:[-_.+:]?[\p{L}\p{N}])*)\s*\))?$`)

func (p *parser) roleDirective(d *directiveCall) bool {
	arg := strings.TrimSpace(d.args.S)
	m := roleArgRe.FindStringSubmatch(arg)
	if m == nil {
		p.t.Reportf(ir.Error, d.span, nil, "\"role\" directive arguments not valid role names: %q.", arg)
		return false
	}
	name, base := m[1], m[2]
	var baseRole *role.Role
	if base != "" {
		var how role.Lookup
		baseRole, how = p.roles.Lookup(base)
		p.reportLookup(how, base, d.span)
		if baseRole == nil {
			return false
		}
	}
	allowed := role.Options(baseRole)
	for _, o := range d.order {
		if !slices.Contains(allowed, o) {
			p.t.Reportf(ir.Severe, d.span, nil, "Error in %q directive:\nunknown option: %q.", d.name, o)
			return false
		}
	}
	id := p.t.NewNode(ir.Directive, d.span)
	n := p.t.Node(id)
	n.Directive = d.info()
	n.Attrs.Set("role", strings.ToLower(name))
	if base != "" {
		n.Attrs.Set("base", strings.ToLower(base))
	}
	if _, _, err := p.roles.Define(name, base, d.opts, id); err != nil {
		// base was checked above
		panic(fmt.Sprintf("role %s: %v", arg, err))
	}
	p.t.Names.AddRole(name, id)
	p.t.Append(d.parent, id)
	return true
}

func (p *parser) class(d *directiveCall) bool {
	var classes []string
	for _, c := range strings.Fields(d.args.S) {
		id := ir.MakeID(c)
		if id == "" {
			p.t.Reportf(ir.Error, d.span, nil, "Invalid class attribute value for %q directive: %q.", d.name, d.args.S)
			return false
		}
		classes = append(classes, id)
	}
	if len(d.content) == 0 {
		id := p.t.NewNode(ir.Directive, d.span)
		p.t.Node(id).Directive = d.info()
		p.t.Append(d.parent, id)
		p.pending = classes
		p.pendingFrom = id
		return true
	}
	id := p.t.NewNode(ir.Container, d.span)
	n := p.t.Node(id)
	n.Directive = d.info()
	n.Attrs.AddClass(classes...)
	p.t.Append(d.parent, id)
	p.blocks(d.content, id, false)
	return true
}

func (p *parser) raw(d *directiveCall) bool {
	_, hasFile := d.opts["file"]
	_, hasURL := d.opts["url"]
	if len(d.content) == 0 && !hasFile && !hasURL {
		p.t.Reportf(ir.Error, d.span, nil, "Content block expected for the %q directive; none found.", d.name)
		return false
	}
	id := p.t.NewNode(ir.Raw, d.span)
	n := p.t.Node(id)
	n.Directive = d.info()
	n.Attrs.Set("format", strings.Join(strings.Fields(strings.ToLower(d.args.S)), " "))
	for _, c := range strings.Fields(d.opts["class"]) {
		n.Attrs.AddClass(ir.MakeID(c))
	}
	n.Text = token.Join(trimLines(d.content)).S
	p.t.Append(d.parent, id)
	return true
}
