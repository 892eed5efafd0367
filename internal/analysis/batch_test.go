package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sant0-9/intelligenn/internal/llm"
)

func forCompany(name string) interface{} {
	return mock.MatchedBy(func(req *llm.CompletionRequest) bool {
		return strings.Contains(req.Messages[len(req.Messages)-1].Content, `"`+name+`"`)
	})
}

func TestBatchKeepsOrderAndIsolatesFailures(t *testing.T) {
	p := &mockProvider{}
	p.On("Complete", mock.Anything, forCompany("Alpha")).
		Return(&llm.CompletionResponse{Content: rawReport}, nil).Once()
	p.On("Complete", mock.Anything, forCompany("Beta")).
		Return(nil, errors.New("boom")).Once()
	p.On("Complete", mock.Anything, forCompany("Gamma")).
		Return(&llm.CompletionResponse{Content: rawReport}, nil).Once()

	a := newAnalyzer(t, p, Options{})
	out := a.Batch(context.Background(), []Query{
		{Company: "Alpha"},
		{Company: "Beta"},
		{Company: "Gamma"},
		{Company: "  "},
	}, 2)

	require.Len(t, out, 4)

	assert.Equal(t, "Alpha", out[0].Query.Company)
	require.NoError(t, out[0].Err)
	assert.Equal(t, "Alpha", out[0].Result.Company)

	var ae *Error
	assert.ErrorAs(t, out[1].Err, &ae)
	assert.Nil(t, out[1].Result)

	require.NoError(t, out[2].Err)
	assert.Equal(t, "Gamma", out[2].Result.Company)

	assert.ErrorIs(t, out[3].Err, ErrEmptyCompany)

	p.AssertExpectations(t)
}

func TestBatchEmpty(t *testing.T) {
	a := newAnalyzer(t, &mockProvider{}, Options{})
	assert.Empty(t, a.Batch(context.Background(), nil, 0))
}
