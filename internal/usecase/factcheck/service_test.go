package factcheck

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"factcheck-web/internal/domain/entity"
	"factcheck-web/internal/i18n"
	"factcheck-web/internal/infra/factcheckapi"
	"factcheck-web/internal/infra/fetcher"
)

type stubAPI struct {
	verifyCalls  atomic.Int32
	verify       func(ctx context.Context, query string) (*entity.VerificationResult, error)
	composeNews  func(ctx context.Context, req entity.ComposeRequest) (string, error)
	composeTweet func(ctx context.Context, req entity.ComposeRequest) (string, error)
	review       func(ctx context.Context, text string) (*entity.ReviewResult, error)
}

func (s *stubAPI) Verify(ctx context.Context, query string) (*entity.VerificationResult, error) {
	s.verifyCalls.Add(1)
	return s.verify(ctx, query)
}

func (s *stubAPI) ComposeNews(ctx context.Context, req entity.ComposeRequest) (string, error) {
	return s.composeNews(ctx, req)
}

func (s *stubAPI) ComposeTweet(ctx context.Context, req entity.ComposeRequest) (string, error) {
	return s.composeTweet(ctx, req)
}

func (s *stubAPI) Review(ctx context.Context, text string) (*entity.ReviewResult, error) {
	return s.review(ctx, text)
}

type stubFetcher struct {
	content string
	err     error
	gotURL  string
}

func (f *stubFetcher) FetchContent(_ context.Context, url string) (string, error) {
	f.gotURL = url
	return f.content, f.err
}

func verdict() *entity.VerificationResult {
	return &entity.VerificationResult{
		Case:    "False",
		Talk:    "1. No record exists\n2. Officials denied it",
		Sources: []entity.Source{{URL: "https://reuters.com/a", Title: "Reuters"}},
	}
}

func TestVerify_EmptyQuerySendsNothing(t *testing.T) {
	api := &stubAPI{}
	svc := &Service{API: api}

	for _, q := range []string{"", "   ", "\n\t"} {
		_, err := svc.Verify(context.Background(), q, i18n.English)
		assert.ErrorIs(t, err, ErrEmptyQuery)
	}
	assert.Zero(t, api.verifyCalls.Load())
}

func TestVerify_TooLong(t *testing.T) {
	api := &stubAPI{}
	svc := &Service{API: api}

	_, err := svc.Verify(context.Background(), strings.Repeat("ب", entity.MaxClaimRunes+1), i18n.Arabic)
	assert.ErrorIs(t, err, entity.ErrValidationFailed)
	assert.Zero(t, api.verifyCalls.Load())
}

func TestVerify_TrimsAndReturnsResult(t *testing.T) {
	var got string
	api := &stubAPI{verify: func(_ context.Context, q string) (*entity.VerificationResult, error) {
		got = q
		return verdict(), nil
	}}
	svc := &Service{API: api}

	res, err := svc.Verify(context.Background(), "  the claim  ", i18n.English)
	require.NoError(t, err)
	assert.Equal(t, "the claim", got)
	if diff := cmp.Diff(verdict(), res); diff != "" {
		t.Errorf("Verify() mismatch (-want +got):\n%s", diff)
	}
}

func TestVerify_AppliesLocalizedDefaults(t *testing.T) {
	api := &stubAPI{verify: func(context.Context, string) (*entity.VerificationResult, error) {
		return &entity.VerificationResult{}, nil
	}}
	svc := &Service{API: api}

	res, err := svc.Verify(context.Background(), "claim", i18n.Arabic)
	require.NoError(t, err)
	assert.Equal(t, "غير متوفر", res.Case)
	assert.Equal(t, "لا يوجد تفسير.", res.Talk)
	assert.NotNil(t, res.Sources)
	assert.Empty(t, res.Sources)

	res, err = svc.Verify(context.Background(), "claim", i18n.English)
	require.NoError(t, err)
	assert.Equal(t, i18n.English.Messages().DefaultCase, res.Case)
}

func TestVerify_WrapsUpstreamError(t *testing.T) {
	api := &stubAPI{verify: func(context.Context, string) (*entity.VerificationResult, error) {
		return nil, &factcheckapi.APIError{Op: factcheckapi.OpVerify, Message: "quota"}
	}}
	svc := &Service{API: api}

	_, err := svc.Verify(context.Background(), "claim", i18n.English)
	var apiErr *factcheckapi.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "quota", UserMessage(err, i18n.English))
}

func TestVerify_CoalescesIdenticalQueries(t *testing.T) {
	release := make(chan struct{})
	api := &stubAPI{verify: func(context.Context, string) (*entity.VerificationResult, error) {
		<-release
		return verdict(), nil
	}}
	svc := &Service{API: api}

	const n = 5
	var wg sync.WaitGroup
	results := make([]*entity.VerificationResult, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := svc.Verify(context.Background(), "same claim", i18n.English)
			assert.NoError(t, err)
			results[i] = res
		}(i)
	}

	// Give every caller time to join the in-flight call.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), api.verifyCalls.Load())

	// Each caller owns its copy.
	results[0].Sources[0].Title = "changed"
	assert.Equal(t, "Reuters", results[1].Sources[0].Title)
}

func TestVerify_CallerCancellationDoesNotCancelSharedCall(t *testing.T) {
	release := make(chan struct{})
	var upstreamCtxErr atomic.Value
	api := &stubAPI{verify: func(ctx context.Context, _ string) (*entity.VerificationResult, error) {
		<-release
		upstreamCtxErr.Store(fmt.Sprint(ctx.Err()))
		return verdict(), nil
	}}
	svc := &Service{API: api}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := svc.Verify(ctx, "claim", i18n.English)
		done <- err
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)

	close(release)
	assert.Eventually(t, func() bool { return upstreamCtxErr.Load() != nil }, time.Second, 5*time.Millisecond)
	assert.Equal(t, "<nil>", upstreamCtxErr.Load())
}

func TestCompose_RequiresResult(t *testing.T) {
	svc := &Service{API: &stubAPI{}}

	_, err := svc.ComposeNews(context.Background(), "claim", nil, i18n.English)
	assert.ErrorIs(t, err, ErrNoResult)
	_, err = svc.ComposePost(context.Background(), "claim", nil, i18n.English)
	assert.ErrorIs(t, err, ErrNoResult)
}

func TestComposeNews_MergesWithoutMutatingInput(t *testing.T) {
	var req entity.ComposeRequest
	api := &stubAPI{composeNews: func(_ context.Context, r entity.ComposeRequest) (string, error) {
		req = r
		return "ARTICLE", nil
	}}
	svc := &Service{API: api}

	prior := verdict()
	res, err := svc.ComposeNews(context.Background(), "the claim", prior, i18n.Arabic)
	require.NoError(t, err)

	assert.Equal(t, entity.ComposeRequest{
		ClaimText: "the claim",
		Case:      prior.Case,
		Talk:      prior.Talk,
		Sources:   prior.Sources,
		Lang:      "ar",
	}, req)
	assert.Equal(t, "ARTICLE", res.NewsArticle)
	assert.Empty(t, prior.NewsArticle, "prior result must not change")
}

func TestComposePost_FailureKeepsPrior(t *testing.T) {
	api := &stubAPI{composeTweet: func(context.Context, entity.ComposeRequest) (string, error) {
		return "", &factcheckapi.APIError{Op: factcheckapi.OpComposeTweet}
	}}
	svc := &Service{API: api}

	prior := verdict().WithNewsArticle("ARTICLE")
	res, err := svc.ComposePost(context.Background(), "claim", prior, i18n.English)
	require.Error(t, err)
	assert.Nil(t, res)
	assert.Equal(t, "ARTICLE", prior.NewsArticle)
	assert.Equal(t, "Failed to get result", UserMessage(err, i18n.English))
}

func TestComposePost_SendsEnglishCode(t *testing.T) {
	var lang string
	api := &stubAPI{composeTweet: func(_ context.Context, r entity.ComposeRequest) (string, error) {
		lang = r.Lang
		return "POST", nil
	}}
	svc := &Service{API: api}

	res, err := svc.ComposePost(context.Background(), "claim", verdict(), i18n.English)
	require.NoError(t, err)
	assert.Equal(t, "en", lang)
	assert.Equal(t, "POST", res.XTweet)
}

func TestReview(t *testing.T) {
	var sent string
	api := &stubAPI{review: func(_ context.Context, text string) (*entity.ReviewResult, error) {
		sent = text
		return &entity.ReviewResult{Review: "ok"}, nil
	}}

	t.Run("text", func(t *testing.T) {
		svc := &Service{API: api}
		res, err := svc.Review(context.Background(), ReviewInput{NewsText: "  body  ", NewsURL: "https://ignored.example"})
		require.NoError(t, err)
		assert.Equal(t, "ok", res.Review)
		assert.Equal(t, "body", sent)
	})

	t.Run("url is fetched", func(t *testing.T) {
		f := &stubFetcher{content: "\n fetched article \n"}
		svc := &Service{API: api, Fetcher: f}
		_, err := svc.Review(context.Background(), ReviewInput{NewsURL: "https://93.184.216.34/story"})
		require.NoError(t, err)
		assert.Equal(t, "https://93.184.216.34/story", f.gotURL)
		assert.Equal(t, "fetched article", sent)
	})

	t.Run("long fetched article is truncated", func(t *testing.T) {
		f := &stubFetcher{content: strings.Repeat("x", entity.MaxNewsTextRunes+100)}
		svc := &Service{API: api, Fetcher: f}
		_, err := svc.Review(context.Background(), ReviewInput{NewsURL: "https://93.184.216.34/story"})
		require.NoError(t, err)
		assert.Equal(t, entity.MaxNewsTextRunes, len([]rune(sent)))
	})

	t.Run("empty", func(t *testing.T) {
		svc := &Service{API: api}
		_, err := svc.Review(context.Background(), ReviewInput{})
		assert.ErrorIs(t, err, ErrEmptyQuery)
	})

	t.Run("url without fetcher", func(t *testing.T) {
		svc := &Service{API: api}
		_, err := svc.Review(context.Background(), ReviewInput{NewsURL: "https://93.184.216.34/"})
		assert.ErrorIs(t, err, ErrFetchUnavailable)
	})

	t.Run("private url refused before fetching", func(t *testing.T) {
		f := &stubFetcher{content: "secret"}
		svc := &Service{API: api, Fetcher: f}
		_, err := svc.Review(context.Background(), ReviewInput{NewsURL: "http://127.0.0.1/admin"})
		assert.ErrorIs(t, err, entity.ErrValidationFailed)
		assert.Empty(t, f.gotURL)
	})

	t.Run("fetch failure", func(t *testing.T) {
		f := &stubFetcher{err: fetcher.ErrReadabilityFailed}
		svc := &Service{API: api, Fetcher: f}
		_, err := svc.Review(context.Background(), ReviewInput{NewsURL: "https://93.184.216.34/"})
		assert.ErrorIs(t, err, fetcher.ErrReadabilityFailed)
		assert.Equal(t, "Could not fetch the article from the URL.", UserMessage(err, i18n.English))
	})
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"empty query", ErrEmptyQuery, "Please enter the news first."},
		{"http", fmt.Errorf("verify: %w", &factcheckapi.HTTPError{StatusCode: 500, Status: "Internal Server Error"}), "HTTP 500: Internal Server Error"},
		{"empty body", factcheckapi.ErrEmptyResponse, "Server returned empty response"},
		{"bad json", fmt.Errorf("%w: eof", factcheckapi.ErrInvalidResponse), "Invalid JSON response from server"},
		{"api with text", &factcheckapi.APIError{Message: "nope"}, "nope"},
		{"api without text", &factcheckapi.APIError{}, "Failed to get result"},
		{"breaker", factcheckapi.ErrUnavailable, i18n.English.Messages().ErrorUnavailable},
		{"transport", fmt.Errorf("%w: refused", factcheckapi.ErrTransport), "Failed to get result"},
		{"unknown", errors.New("weird"), "An unexpected error occurred."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserMessage(tt.err, i18n.English))
		})
	}
}
