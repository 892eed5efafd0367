package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemo(t *testing.T) {
	var m Memo

	first := m.Render(sampleInsights)
	require.Len(t, first, 6)

	again := m.Render(sampleInsights)
	assert.Same(t, &first[0], &again[0], "identical text reuses cached cards")

	other := m.Render(sampleScript)
	assert.Len(t, other, 2)

	m.Reset()
	fresh := m.Render(sampleScript)
	assert.Equal(t, other, fresh)
	assert.NotSame(t, &other[0], &fresh[0])
}

func TestMemoEmptyText(t *testing.T) {
	var m Memo
	assert.Empty(t, m.Render(""))
	assert.Empty(t, m.Render(""))
}
