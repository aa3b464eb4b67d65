package token

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		nested bool
		want   []Inline
	}{
		{
			name: "interpreted",
			in:   "`interpreted`",
			want: []Inline{{Type: IInterpreted, Start: 0, End: 13, Body: [2]int{1, 12}}},
		},
		{
			name: "role prefix",
			in:   ":PEP:`0`",
			want: []Inline{{Type: IInterpreted, Start: 0, End: 8, Body: [2]int{6, 7}, Role: "PEP"}},
		},
		{
			name: "role suffix",
			in:   "`x`:sub:",
			want: []Inline{{Type: IInterpreted, Start: 0, End: 8, Body: [2]int{1, 2}, Role: "sub", RoleSuffix: true}},
		},
		{
			name: "both roles",
			in:   ":a:`x`:b:",
			want: []Inline{{
				Type:  IMismatch,
				Start: 0, End: 9,
				Body: [2]int{4, 5},
				Role: "a",
				Msg:  "Multiple roles in interpreted text (both prefix and suffix present; only one allowed).",
			}},
		},
		{
			name: "unterminated backtick",
			in:   "`open",
			want: []Inline{
				{Type: IUnterminated, Start: 0, End: 1, Msg: "Inline interpreted text or phrase reference start-string without end-string."},
				{Type: IText, Start: 1, End: 5, Body: [2]int{1, 5}},
			},
		},
		{
			name: "references",
			in:   "see `a`_ and b_",
			want: []Inline{
				{Type: IText, Start: 0, End: 4, Body: [2]int{0, 4}},
				{Type: IPhraseRef, Start: 4, End: 8, Body: [2]int{5, 6}, Suffix: "_"},
				{Type: IText, Start: 8, End: 13, Body: [2]int{8, 13}},
				{Type: ISimpleRef, Start: 13, End: 15, Body: [2]int{13, 14}, Suffix: "_"},
			},
		},
		{
			name: "anonymous",
			in:   "x__",
			want: []Inline{{Type: ISimpleRef, Start: 0, End: 3, Body: [2]int{0, 1}, Suffix: "__"}},
		},
		{
			name: "emphasis and strong",
			in:   "*a* **b**",
			want: []Inline{
				{Type: IEmphasis, Start: 0, End: 3, Body: [2]int{1, 2}},
				{Type: IText, Start: 3, End: 4, Body: [2]int{3, 4}},
				{Type: IStrong, Start: 4, End: 9, Body: [2]int{6, 7}},
			},
		},
		{
			name: "literal",
			in:   "``x``",
			want: []Inline{{Type: ILiteral, Start: 0, End: 5, Body: [2]int{2, 3}}},
		},
		{
			name: "unterminated literal",
			in:   "``x",
			want: []Inline{
				{Type: IUnterminated, Start: 0, End: 2, Msg: "Inline literal start-string without end-string."},
				{Type: IText, Start: 2, End: 3, Body: [2]int{2, 3}},
			},
		},
		{
			name: "substitution",
			in:   "|sub|",
			want: []Inline{{Type: ISubstitution, Start: 0, End: 5, Body: [2]int{1, 4}}},
		},
		{
			name: "auto footnote",
			in:   "[#]_",
			want: []Inline{{Type: IFootnoteRef, Start: 0, End: 4, Body: [2]int{1, 2}}},
		},
		{
			name: "citation",
			in:   "[CIT2002]_",
			want: []Inline{{Type: ICitationRef, Start: 0, End: 10, Body: [2]int{1, 8}}},
		},
		{
			name: "uri trailing period",
			in:   "http://x.org.",
			want: []Inline{
				{Type: IURI, Start: 0, End: 12, Body: [2]int{0, 12}},
				{Type: IText, Start: 12, End: 13, Body: [2]int{12, 13}},
			},
		},
		{
			name: "escaped star",
			in:   `\*x*`,
			want: []Inline{{Type: IText, Start: 0, End: 4, Body: [2]int{0, 4}}},
		},
		{
			name: "quoted star",
			in:   "'*'",
			want: []Inline{{Type: IText, Start: 0, End: 3, Body: [2]int{0, 3}}},
		},
		{
			name:   "nested emphasis",
			in:     "*a*",
			nested: true,
			want:   []Inline{{Type: IText, Start: 0, End: 3, Body: [2]int{0, 3}}},
		},
		{
			name: "empty",
			in:   "",
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.in, tt.nested)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Tokenize(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestInlineTypeString(t *testing.T) {
	for ty := IText; ty <= IMismatch; ty++ {
		if ty.String() == "" {
			t.Errorf("type %d has no name", int(ty))
		}
	}
}
