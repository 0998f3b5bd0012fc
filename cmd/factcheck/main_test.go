package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"factcheck-web/internal/domain/entity"
	"factcheck-web/internal/i18n"
	"factcheck-web/internal/infra/factcheckapi"
	fcUC "factcheck-web/internal/usecase/factcheck"
)

type fakeService struct {
	composeErr error
	review     fcUC.ReviewInput
}

func (f *fakeService) Verify(_ context.Context, q string, _ i18n.Language) (*entity.VerificationResult, error) {
	return &entity.VerificationResult{
		Case: "Misleading",
		Talk: "Partly true.\n1. [AP](https://apnews.com/x) disputes it\n2. see www.bbc.co.uk",
		Sources: []entity.Source{
			{URL: "https://apnews.com/x", Title: "AP"},
			{URL: "reuters.com/y"},
		},
		Statistics: &entity.SourceStatistics{
			SupportingPercentage: 50, OpposingPercentage: 50,
			SupportingCount: 1, OpposingCount: 1, TotalSources: 2,
		},
	}, nil
}

func (f *fakeService) ComposeNews(_ context.Context, _ string, r *entity.VerificationResult, _ i18n.Language) (*entity.VerificationResult, error) {
	if f.composeErr != nil {
		return nil, f.composeErr
	}
	return r.WithNewsArticle("Headline\n\nBody text."), nil
}

func (f *fakeService) ComposePost(_ context.Context, _ string, r *entity.VerificationResult, _ i18n.Language) (*entity.VerificationResult, error) {
	return r.WithXTweet("short post"), nil
}

func (f *fakeService) Review(_ context.Context, in fcUC.ReviewInput) (*entity.ReviewResult, error) {
	f.review = in
	return &entity.ReviewResult{Review: "Solid.\n1. sourced\n2. balanced"}, nil
}

// plainStyles renders without escape codes.
func plainStyles() styles {
	return newStyles(lipgloss.NewRenderer(io.Discard))
}

func TestParseFlags(t *testing.T) {
	opts, err := parseFlags([]string{"-lang", "en", "-compose", "news", "the", "claim"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, i18n.English, opts.lang)
	assert.Equal(t, "news", opts.compose)
	assert.Equal(t, "the claim", opts.input)
	assert.Equal(t, 3*time.Minute, opts.timeout)

	opts, err = parseFlags([]string{"-review", "-url", "https://example.com"}, io.Discard)
	require.NoError(t, err)
	assert.True(t, opts.review)
	assert.Equal(t, i18n.Arabic, opts.lang)

	for _, args := range [][]string{
		{},
		{"-lang", "fr", "x"},
		{"-compose", "poem", "x"},
		{"-output", "xml", "x"},
		{"-review"},
	} {
		_, err := parseFlags(args, io.Discard)
		assert.Error(t, err, "%v", args)
	}
}

func TestRun_Text(t *testing.T) {
	var out bytes.Buffer
	opts := options{lang: i18n.English, output: "text", compose: "news", input: "claim"}

	require.NoError(t, run(context.Background(), &fakeService{}, opts, plainStyles(), &out))

	got := out.String()
	assert.Regexp(t, `Status\s+Misleading`, got)
	assert.Contains(t, got, "Partly true.")
	assert.Contains(t, got, "  1. AP <https://apnews.com/x> disputes it")
	assert.Contains(t, got, "  2. see bbc.co.uk <https://www.bbc.co.uk>")
	assert.Contains(t, got, "  • reuters.com <https://reuters.com/y>")
	assert.Contains(t, got, "50.0%")
	assert.Contains(t, got, "Total Sources: 2 sources")
	assert.Contains(t, got, "Headline")
	assert.Contains(t, got, "Body text.")
	assert.Contains(t, got, strings.Repeat("█", barWidth/2)+strings.Repeat("░", barWidth/2))
}

func TestRun_ComposeFailureStillPrintsVerdict(t *testing.T) {
	var out bytes.Buffer
	apiErr := &factcheckapi.APIError{Op: factcheckapi.OpComposeNews, Message: "no article"}
	opts := options{lang: i18n.English, output: "text", compose: "news", input: "claim"}

	err := run(context.Background(), &fakeService{composeErr: apiErr}, opts, plainStyles(), &out)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apiErr))
	assert.Equal(t, "no article", fcUC.UserMessage(err, i18n.English))
	assert.Contains(t, out.String(), "Misleading")
}

func TestRun_JSON(t *testing.T) {
	var out bytes.Buffer
	opts := options{lang: i18n.Arabic, output: "json", compose: "tweet", input: "claim"}

	require.NoError(t, run(context.Background(), &fakeService{}, opts, plainStyles(), &out))

	var got entity.VerificationResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "short post", got.XTweet)
	assert.Len(t, got.Sources, 2)
}

func TestRun_Review(t *testing.T) {
	var out bytes.Buffer
	svc := &fakeService{}
	opts := options{lang: i18n.English, output: "text", review: true, url: "https://example.com/a"}

	require.NoError(t, run(context.Background(), svc, opts, plainStyles(), &out))
	assert.Equal(t, fcUC.ReviewInput{NewsURL: "https://example.com/a"}, svc.review)
	assert.Contains(t, out.String(), "Solid.")
	assert.Contains(t, out.String(), "  2. balanced")
}
