package transcript

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"yt-transcript/errors"
	"yt-transcript/models"
)

type stubFetcher struct {
	segments []models.Segment
	language string
	fetchErr error

	languages []string
	listErr   error

	fetchCalls int
	listCalls  int
}

func (f *stubFetcher) FetchTranscript(ctx context.Context, videoID, preferredLang string) ([]models.Segment, string, error) {
	f.fetchCalls++
	if f.fetchErr != nil {
		return nil, "", f.fetchErr
	}
	return f.segments, f.language, nil
}

func (f *stubFetcher) ListLanguages(ctx context.Context, videoID string) ([]string, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.languages, nil
}

func newTestService(cfg Config, proxyFetcher, directFetcher *stubFetcher) *Service {
	service := NewService(cfg)
	service.NewFetcher = func(proxyAddr string) Fetcher {
		if proxyAddr != "" {
			return proxyFetcher
		}
		return directFetcher
	}
	return service
}

func TestFetchDirectSuccess(t *testing.T) {
	direct := &stubFetcher{
		segments: []models.Segment{{Start: 0, Text: "a"}, {Start: 75, Text: "b"}},
		language: "en",
	}
	service := newTestService(Config{PreferredLanguage: "en"}, nil, direct)

	result, err := service.Fetch(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}

	if result.VideoID != "dQw4w9WgXcQ" {
		t.Errorf("VideoID = %q, want dQw4w9WgXcQ", result.VideoID)
	}
	if result.ProxyUsed != "" {
		t.Errorf("ProxyUsed = %q, want empty", result.ProxyUsed)
	}
	if len(result.Segments) != 2 {
		t.Fatalf("got %d segments, want 2", len(result.Segments))
	}
	if result.Segments[1].FormattedTime != "01:15" {
		t.Errorf("FormattedTime = %q, want 01:15", result.Segments[1].FormattedTime)
	}
	if direct.fetchCalls != 1 {
		t.Errorf("direct fetch called %d times, want 1", direct.fetchCalls)
	}
}

func TestFetchProxySuccess(t *testing.T) {
	proxy := &stubFetcher{
		segments: []models.Segment{{Start: 0, Text: "a"}},
		language: "en",
	}
	direct := &stubFetcher{fetchErr: fmt.Errorf("should not be called")}
	service := newTestService(Config{ProxyAddr: "127.0.0.1:3128"}, proxy, direct)

	result, err := service.Fetch(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}

	if result.ProxyUsed != "127.0.0.1:3128" {
		t.Errorf("ProxyUsed = %q, want 127.0.0.1:3128", result.ProxyUsed)
	}
	if direct.fetchCalls != 0 {
		t.Errorf("direct fetch called %d times, want 0", direct.fetchCalls)
	}
}

func TestFetchProxyFailureFallsBackToDirect(t *testing.T) {
	proxy := &stubFetcher{fetchErr: fmt.Errorf("proxy refused")}
	direct := &stubFetcher{
		segments: []models.Segment{{Start: 0, Text: "a"}},
		language: "en",
	}
	service := newTestService(Config{ProxyAddr: "127.0.0.1:3128"}, proxy, direct)

	result, err := service.Fetch(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}

	if proxy.fetchCalls != 1 {
		t.Errorf("proxy fetch called %d times, want 1", proxy.fetchCalls)
	}
	if direct.fetchCalls != 1 {
		t.Errorf("direct fetch called %d times, want 1", direct.fetchCalls)
	}
	if result.ProxyUsed != "" {
		t.Errorf("ProxyUsed = %q, want empty after fallback", result.ProxyUsed)
	}
}

func TestFetchFailureListsAvailableLanguages(t *testing.T) {
	proxy := &stubFetcher{fetchErr: fmt.Errorf("proxy refused")}
	direct := &stubFetcher{
		fetchErr:  &NoTranscriptError{VideoID: "dQw4w9WgXcQ"},
		languages: []string{"es", "fr"},
	}
	service := newTestService(Config{ProxyAddr: "127.0.0.1:3128"}, proxy, direct)

	_, err := service.Fetch(context.Background(), "dQw4w9WgXcQ")
	if err == nil {
		t.Fatal("Fetch returned nil error")
	}

	if direct.fetchCalls != 1 {
		t.Errorf("direct fetch called %d times, want 1", direct.fetchCalls)
	}
	if direct.listCalls != 1 {
		t.Errorf("language enumeration called %d times, want 1", direct.listCalls)
	}

	message := errors.Message(err)
	if !strings.Contains(message, "es") || !strings.Contains(message, "fr") {
		t.Errorf("error message %q does not mention the available languages", message)
	}
	if errors.Code(err) < 500 {
		t.Errorf("error code = %d, want a server error", errors.Code(err))
	}
}

func TestFetchFailureWithoutLanguagesReportsOriginalError(t *testing.T) {
	direct := &stubFetcher{
		fetchErr: &VideoUnavailableError{VideoID: "dQw4w9WgXcQ"},
		listErr:  &VideoUnavailableError{VideoID: "dQw4w9WgXcQ"},
	}
	service := newTestService(Config{}, nil, direct)

	_, err := service.Fetch(context.Background(), "dQw4w9WgXcQ")
	if err == nil {
		t.Fatal("Fetch returned nil error")
	}

	if direct.listCalls != 1 {
		t.Errorf("language enumeration called %d times, want 1", direct.listCalls)
	}

	message := errors.Message(err)
	if !strings.Contains(message, "dQw4w9WgXcQ") || !strings.Contains(message, "unavailable") {
		t.Errorf("error message %q does not embed the direct failure", message)
	}
}

func TestFetchNoProxyConfiguredSkipsProxyAttempt(t *testing.T) {
	proxy := &stubFetcher{}
	direct := &stubFetcher{
		segments: []models.Segment{{Start: 0, Text: "a"}},
		language: "en",
	}
	service := newTestService(Config{}, proxy, direct)

	if _, err := service.Fetch(context.Background(), "dQw4w9WgXcQ"); err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if proxy.fetchCalls != 0 {
		t.Errorf("proxy fetch called %d times, want 0", proxy.fetchCalls)
	}
}
