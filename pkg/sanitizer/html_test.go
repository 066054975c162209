package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/assetkit/pkg/sanitizer"
)

func TestText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"script is dropped", `Sunset<script>alert('x')</script>`, "Sunset"},
		{"tags are dropped", `<p>Team <strong>photo</strong></p>`, "Team photo"},
		{"image with handler vanishes", `<img src="x" onerror="alert(1)">`, ""},
		{"link text survives", `<a href="javascript:alert(1)">brochure</a>`, "brochure"},
		{"entities decode", "Fish &amp; Chips", "Fish & Chips"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, sanitizer.Text(tt.input))
		})
	}
}

func TestTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"holiday-photo", "holiday-photo"},
		{"  summer   2024\n", "summer 2024"},
		{"<b>Annual</b> report", "Annual report"},
		{"Q1 &lt;draft&gt;", "Q1 <draft>"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, sanitizer.Title(tt.input))
		})
	}
}

func TestCaption(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"inline formatting kept", `<p>Shot on <em>film</em></p>`, `<p>Shot on <em>film</em></p>`},
		{"script removed", `<b>ok</b><script>alert(1)</script>`, `<b>ok</b>`},
		{"handler removed", `<p onclick="alert(1)">text</p>`, `<p>text</p>`},
		{"headings removed", `<h1>Big</h1>`, `Big`},
		{"blank", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, sanitizer.Caption(tt.input))
		})
	}
}

func TestCaption_LinksAreNofollow(t *testing.T) {
	t.Parallel()

	got := sanitizer.Caption(`<a href="https://example.com/credits">credits</a>`)
	assert.Contains(t, got, `href="https://example.com/credits"`)
	assert.Contains(t, got, `rel="nofollow"`)
}
