package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "color span",
			in:   "[c=red]apple[/c]",
			want: `<span style="color:var(--c-red)">apple</span>`,
		},
		{
			name: "bold italic underline",
			in:   "[b]a[/b][i]b[/i][u]c[/u]",
			want: "<strong>a</strong><em>b</em><u>c</u>",
		},
		{
			name: "raw html is escaped before tags apply",
			in:   `<script>x</script>[b]ok[/b]`,
			want: "&lt;script&gt;x&lt;/script&gt;<strong>ok</strong>",
		},
		{
			name: "br and newlines",
			in:   "a[br]b\nc",
			want: "a<br>b<br>c",
		},
		{
			name: "uppercase tags accepted",
			in:   "[B]x[/B]",
			want: "<strong>x</strong>",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToHTML(tt.in))
		})
	}
}

func TestStrip(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"[c=blue]sky[/c]", "sky"},
		{"[b]1[/b] + [i]2[/i]", "1 + 2"},
		{"line1\nline2", "line1 line2"},
		{"no tags", "no tags"},
		{"a[br]b", "ab"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Strip(tt.in))
	}
}
