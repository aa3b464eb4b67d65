package ir

import "fmt"

type Kind int

const (
	Document Kind = iota
	Section
	Title
	Subtitle
	Paragraph
	Text
	Emphasis
	Strong
	Literal
	TitleReference
	Subscript
	Superscript
	Abbreviation
	Acronym
	Inline
	Raw
	InterpretedText
	Reference
	Target
	SubstitutionReference
	SubstitutionDefinition
	FootnoteReference
	Footnote
	CitationReference
	Citation
	Transition
	Problematic
	SystemMessage
	LiteralBlock
	BlockQuote
	BulletList
	EnumeratedList
	ListItem
	FieldList
	Field
	FieldName
	FieldBody
	DefinitionList
	DefinitionListItem
	Term
	Definition
	Docinfo
	Directive
	Admonition
	Topic
	Sidebar
	Container
	Rubric
	Image
	Figure
	Caption
	Comment
)

var kindNames = map[Kind]string{
	Document:               "document",
	Section:                "section",
	Title:                  "title",
	Subtitle:               "subtitle",
	Paragraph:              "paragraph",
	Text:                   "#text",
	Emphasis:               "emphasis",
	Strong:                 "strong",
	Literal:                "literal",
	TitleReference:         "title_reference",
	Subscript:              "subscript",
	Superscript:            "superscript",
	Abbreviation:           "abbreviation",
	Acronym:                "acronym",
	Inline:                 "inline",
	Raw:                    "raw",
	InterpretedText:        "interpreted",
	Reference:              "reference",
	Target:                 "target",
	SubstitutionReference:  "substitution_reference",
	SubstitutionDefinition: "substitution_definition",
	FootnoteReference:      "footnote_reference",
	Footnote:               "footnote",
	CitationReference:      "citation_reference",
	Citation:               "citation",
	Transition:             "transition",
	Problematic:            "problematic",
	SystemMessage:          "system_message",
	LiteralBlock:           "literal_block",
	BlockQuote:             "block_quote",
	BulletList:             "bullet_list",
	EnumeratedList:         "enumerated_list",
	ListItem:               "list_item",
	FieldList:              "field_list",
	Field:                  "field",
	FieldName:              "field_name",
	FieldBody:              "field_body",
	DefinitionList:         "definition_list",
	DefinitionListItem:     "definition_list_item",
	Term:                   "term",
	Definition:             "definition",
	Docinfo:                "docinfo",
	Directive:              "directive",
	Admonition:             "admonition",
	Topic:                  "topic",
	Sidebar:                "sidebar",
	Container:              "container",
	Rubric:                 "rubric",
	Image:                  "image",
	Figure:                 "figure",
	Caption:                "caption",
	Comment:                "comment",
}

var kindsByName map[string]Kind

func init() {
	kindsByName = make(map[string]Kind, len(kindNames))
	for k, n := range kindNames {
		kindsByName[n] = k
	}
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// KindOf returns the kind with element name n.
func KindOf(n string) (Kind, bool) {
	k, ok := kindsByName[n]
	return k, ok
}

// IsInline reports whether nodes of kind k occur inside text-bearing
// blocks.
func (k Kind) IsInline() bool {
	switch k {
	case Text, Emphasis, Strong, Literal, TitleReference, Subscript,
		Superscript, Abbreviation, Acronym, Inline, Raw, InterpretedText,
		Reference, SubstitutionReference, FootnoteReference,
		CitationReference, Problematic:
		return true
	}
	return false
}

// IsReference reports whether k is one of the kinds resolved by name.
func (k Kind) IsReference() bool {
	switch k {
	case Reference, FootnoteReference, CitationReference, SubstitutionReference:
		return true
	}
	return false
}
