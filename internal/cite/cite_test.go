// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStyle(t *testing.T) {
	tests := []struct {
		in   string
		want Style
	}{
		{"apa", APA},
		{"APA", APA},
		{"mla", MLA},
		{"Chicago", Chicago},
		{" harvard ", Harvard},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStyle(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseStyleUnsupported(t *testing.T) {
	_, err := ParseStyle("ieee")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedStyle)
	assert.Contains(t, err.Error(), "ieee")
	for _, name := range []string{"apa", "mla", "chicago", "harvard"} {
		assert.Contains(t, err.Error(), name)
	}
	assert.Equal(t, "unsupported style: ieee. Use: apa, mla, chicago, harvard", err.Error())
}

func TestStyleString(t *testing.T) {
	assert.Equal(t, "apa", APA.String())
	assert.Equal(t, "harvard", Harvard.String())
	assert.Equal(t, "Style(9)", Style(9).String())
}

func TestFormatSingleAuthor(t *testing.T) {
	w := Work{
		Authors:   []string{"Jane Q. Public"},
		Year:      "2020",
		Title:     "Title",
		Publisher: "ACME",
	}

	tests := []struct {
		style Style
		want  string
	}{
		{APA, "Public, J. Q. (2020). Title. ACME."},
		{MLA, "Public, Jane Q. Title. ACME, 2020."},
		{Chicago, "Public, Jane Q. Title. ACME, 2020."},
		{Harvard, "Public, J.Q. (2020) Title. ACME."},
	}
	for _, tt := range tests {
		t.Run(tt.style.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.style, w))
		})
	}
}

func TestFormatTwoAuthors(t *testing.T) {
	w := Work{
		Authors:   []string{"Ada Lovelace", "Charles Babbage"},
		Year:      "1843",
		Title:     "Notes",
		Publisher: "Taylor",
	}

	assert.Equal(t, "Lovelace, A. & Babbage, C. (1843). Notes. Taylor.", Format(APA, w))
	assert.Equal(t, "Lovelace, Ada, and Charles Babbage. Notes. Taylor, 1843.", Format(MLA, w))
	assert.Equal(t, "Lovelace, A. and Babbage, C. (1843) Notes. Taylor.", Format(Harvard, w))
}

func TestFormatThreeAuthors(t *testing.T) {
	w := Work{
		Authors:   []string{"Alan Turing", "Grace Hopper", "Edsger W Dijkstra"},
		Year:      "1970",
		Title:     "Computing",
		Publisher: "Pub",
	}

	assert.Equal(t, "Turing, A., Hopper, G., & Dijkstra, E. W. (1970). Computing. Pub.", Format(APA, w))
	assert.Equal(t, "Turing, Alan, et al. Computing. Pub, 1970.", Format(MLA, w))
	assert.Equal(t, "Turing, Alan, et al. Computing. Pub, 1970.", Format(Chicago, w))
	assert.Equal(t, "Turing, A., Hopper, G. and Dijkstra, E.W. (1970) Computing. Pub.", Format(Harvard, w))
}

func TestFormatNoAuthors(t *testing.T) {
	w := Work{Year: "2001", Title: "Anon", Publisher: "P"}
	for _, s := range []Style{APA, MLA, Chicago, Harvard} {
		assert.Contains(t, Format(s, w), "Unknown Author", s.String())
	}
	assert.Equal(t, "Unknown Author. Anon. P, 2001.", Format(MLA, w))
}

func TestFormatDefaults(t *testing.T) {
	w := Work{Authors: []string{"Plato"}, Title: "Republic"}

	assert.Equal(t, "Plato (n.d.). Republic. Publisher unknown.", Format(APA, w))
	assert.Equal(t, "Plato. Republic. Publisher unknown, n.d..", Format(MLA, w))
	assert.Equal(t, "Plato (n.d.) Republic. Publisher unknown.", Format(Harvard, w))
}

func TestSplitName(t *testing.T) {
	surname, given, ok := splitName("Jane Q. Public")
	assert.True(t, ok)
	assert.Equal(t, "Public", surname)
	assert.Equal(t, []string{"Jane", "Q."}, given)

	surname, given, ok = splitName("Aristotle")
	assert.False(t, ok)
	assert.Equal(t, "Aristotle", surname)
	assert.Nil(t, given)
}
