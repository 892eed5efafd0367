package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		in         string
		wantName   string
		wantCaller string
		wantBody   string
		wantErr    bool
	}{
		{
			name:       "frontmatter and body",
			in:         "---\nname: acme\ncaller: Acme Broker\n---\nWe sell things.\n",
			wantName:   "acme",
			wantCaller: "Acme Broker",
			wantBody:   "We sell things.",
		},
		{
			name:     "crlf",
			in:       "---\r\nname: x\r\n---\r\nbody\r\n",
			wantName: "x",
			wantBody: "body",
		},
		{
			name:     "no frontmatter",
			in:       "  just a body  ",
			wantBody: "just a body",
		},
		{
			name:     "empty frontmatter",
			in:       "---\n\n---\nbody",
			wantBody: "body",
		},
		{
			name:    "unterminated",
			in:      "---\nname: x\nbody",
			wantErr: true,
		},
		{
			name:    "bad yaml",
			in:      "---\nname: [x\n---\nbody",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Parse([]byte(tt.in))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, p.Name)
			assert.Equal(t, tt.wantCaller, p.Caller)
			assert.Equal(t, tt.wantBody, p.Body)
		})
	}
}

func TestCallerName(t *testing.T) {
	assert.Equal(t, "Ensure", (&Profile{Metadata: Metadata{Name: "ensure", Caller: "Ensure"}}).CallerName())
	assert.Equal(t, "acme", (&Profile{Metadata: Metadata{Name: "acme"}}).CallerName())
}

func TestIndexBuiltin(t *testing.T) {
	idx, err := NewIndex("")
	require.NoError(t, err)

	p, err := idx.Get("")
	require.NoError(t, err)
	assert.Equal(t, DefaultName, p.Name)
	assert.Equal(t, "Ensure", p.CallerName())
	assert.Contains(t, p.Body, "independent insurance and pension broker")
	assert.Contains(t, p.RebuttalStrategy, "Collective Agreement")
	assert.Empty(t, p.Path)
}

func TestIndexUserProfiles(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, name), 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, name, "PROFILE.md"), []byte(content), 0644))
	}
	write("nordic", "---\ncaller: Nordic Benefits\n---\nWe benchmark health insurance.")
	write("ensure", "---\nname: ensure\ncaller: Ensure DK\n---\nOverride.")
	write("broken", "---\nname: [x\n---\n")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "empty"), 0755))

	idx, err := NewIndex(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"ensure", "nordic"}, idx.List())
	assert.Equal(t, 2, idx.Count())
	assert.Equal(t, dir, idx.Dir())

	nordic, err := idx.Get("nordic")
	require.NoError(t, err)
	assert.Equal(t, "Nordic Benefits", nordic.CallerName())
	assert.Equal(t, filepath.Join(dir, "nordic", "PROFILE.md"), nordic.Path)

	ensure, err := idx.Get("ensure")
	require.NoError(t, err)
	assert.Equal(t, "Override.", ensure.Body)

	_, err = idx.Get("missing")
	assert.ErrorIs(t, err, ErrUnknown)
}

func TestIndexMissingDir(t *testing.T) {
	idx, err := NewIndex(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Equal(t, []string{"ensure"}, idx.List())
}
