package transcript

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"yt-transcript/errors"
	"yt-transcript/models"
)

// Fetcher is the retrieval surface the fallback chain runs against. The
// production implementation is Client; tests substitute their own.
type Fetcher interface {
	FetchTranscript(ctx context.Context, videoID, preferredLang string) ([]models.Segment, string, error)
	ListLanguages(ctx context.Context, videoID string) ([]string, error)
}

type Config struct {
	// ProxyAddr is tried before the direct connection when non-empty.
	ProxyAddr string

	PreferredLanguage string

	FetchTimeout time.Duration
}

// Service fetches transcripts with a proxy-then-direct fallback. NewFetcher
// builds the client for each attempt; an empty proxyAddr means a direct
// connection.
type Service struct {
	config     Config
	NewFetcher func(proxyAddr string) Fetcher
}

func NewService(cfg Config) *Service {
	return &Service{
		config: cfg,
		NewFetcher: func(proxyAddr string) Fetcher {
			options := []ClientOption{}
			if cfg.FetchTimeout > 0 {
				options = append(options, WithTimeout(cfg.FetchTimeout))
			}
			if proxyAddr != "" {
				options = append(options, WithProxy(proxyAddr))
			}
			return NewClient(options...)
		},
	}
}

// Fetch retrieves and formats the transcript for a canonical video ID.
//
// The attempt sequence is fixed: proxy (when configured), then direct. A
// proxy failure is logged and never surfaced. When the direct attempt also
// fails, the available caption languages are enumerated once to produce a
// more useful error; if even that fails, the direct failure is reported.
func (s *Service) Fetch(ctx context.Context, videoID string) (*models.Transcript, error) {
	const op = "TranscriptService.Fetch"

	if s.config.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.FetchTimeout)
		defer cancel()
	}

	if proxy := s.config.ProxyAddr; proxy != "" {
		segments, language, err := s.NewFetcher(proxy).FetchTranscript(ctx, videoID, s.config.PreferredLanguage)
		if err == nil {
			return s.newTranscript(videoID, language, proxy, segments), nil
		}
		logrus.WithFields(logrus.Fields{
			"video_id": videoID,
			"proxy":    proxy,
		}).WithError(err).Warn("Proxy fetch failed, falling back to direct connection")
	}

	direct := s.NewFetcher("")
	segments, language, err := direct.FetchTranscript(ctx, videoID, s.config.PreferredLanguage)
	if err == nil {
		return s.newTranscript(videoID, language, "", segments), nil
	}

	languages, listErr := direct.ListLanguages(ctx, videoID)
	if listErr == nil && len(languages) > 0 {
		return nil, errors.Internal(op, err,
			fmt.Sprintf("Could not get transcript. Available languages: %s", strings.Join(languages, ", ")))
	}

	return nil, errors.Internal(op, err,
		fmt.Sprintf("No transcript available for video %s: %v", videoID, err))
}

func (s *Service) newTranscript(videoID, language, proxyUsed string, segments []models.Segment) *models.Transcript {
	return &models.Transcript{
		VideoID:   videoID,
		Language:  language,
		ProxyUsed: proxyUsed,
		Segments:  Format(segments),
	}
}
