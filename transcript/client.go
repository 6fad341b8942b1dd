package transcript

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"yt-transcript/models"
)

const (
	defaultBaseURL = "https://www.youtube.com"

	// Without a browser User-Agent the watch page omits the caption data.
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/127.0.0.0 Safari/537.36"
)

type VideoUnavailableError struct {
	VideoID string
}

func (e *VideoUnavailableError) Error() string {
	return fmt.Sprintf("video %s is unavailable", e.VideoID)
}

type TranscriptsDisabledError struct {
	VideoID string
}

func (e *TranscriptsDisabledError) Error() string {
	return fmt.Sprintf("transcripts are disabled for video %s", e.VideoID)
}

type NoTranscriptError struct {
	VideoID string
}

func (e *NoTranscriptError) Error() string {
	return fmt.Sprintf("no transcript found for video %s", e.VideoID)
}

type TooManyRequestsError struct{}

func (e *TooManyRequestsError) Error() string {
	return "YouTube is rate limiting this IP and requires a captcha"
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"`
}

// Client retrieves caption transcripts from the YouTube watch page and its
// timedtext endpoints.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

type ClientOption func(*Client)

// WithProxy routes both HTTP and HTTPS traffic through the given host:port.
func WithProxy(addr string) ClientOption {
	return func(c *Client) {
		proxyURL, err := url.Parse("http://" + addr)
		if err != nil {
			logrus.WithError(err).WithField("proxy", addr).Warn("Invalid proxy address, using direct connection")
			return
		}
		c.httpClient.Transport = &http.Transport{
			Proxy: http.ProxyURL(proxyURL),
		}
	}
}

func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithBaseURL overrides the watch-page origin.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

func NewClient(options ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    defaultBaseURL,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// FetchTranscript downloads the caption track for a video, preferring tracks
// whose language code starts with preferredLang and falling back to the
// first available track. It returns the segments in caption order along with
// the language code actually served.
func (c *Client) FetchTranscript(ctx context.Context, videoID, preferredLang string) ([]models.Segment, string, error) {
	tracks, err := c.captionTracks(ctx, videoID)
	if err != nil {
		return nil, "", err
	}

	track := pickTrack(tracks, preferredLang)
	segments, err := c.fetchTimedText(ctx, track.BaseURL)
	if err != nil {
		return nil, "", err
	}

	return segments, track.LanguageCode, nil
}

// ListLanguages returns the language codes of all caption tracks for a
// video, in track order. It is a lighter query than FetchTranscript since no
// timedtext document is downloaded.
func (c *Client) ListLanguages(ctx context.Context, videoID string) ([]string, error) {
	tracks, err := c.captionTracks(ctx, videoID)
	if err != nil {
		return nil, err
	}

	languages := make([]string, 0, len(tracks))
	for _, track := range tracks {
		languages = append(languages, track.LanguageCode)
	}
	return languages, nil
}

func pickTrack(tracks []captionTrack, preferredLang string) captionTrack {
	if preferredLang != "" {
		for _, track := range tracks {
			// Matches "en", "en-US", "en-GB", etc.
			if strings.HasPrefix(track.LanguageCode, preferredLang) {
				return track
			}
		}
	}
	return tracks[0]
}

func (c *Client) captionTracks(ctx context.Context, videoID string) ([]captionTrack, error) {
	body, err := c.fetchWatchPage(ctx, videoID)
	if err != nil {
		return nil, err
	}
	return extractCaptionTracks(body, videoID)
}

func (c *Client) fetchWatchPage(ctx context.Context, videoID string) (string, error) {
	watchURL := fmt.Sprintf("%s/watch?v=%s", c.baseURL, url.QueryEscape(videoID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, watchURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "en-US")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &VideoUnavailableError{VideoID: videoID}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// extractCaptionTracks locates the "captions" object embedded in the watch
// page and decodes its caption track list.
func extractCaptionTracks(body, videoID string) ([]captionTrack, error) {
	const marker = `"captions":`

	start := strings.Index(body, marker)
	if start == -1 {
		if strings.Contains(body, `class="g-recaptcha"`) {
			return nil, &TooManyRequestsError{}
		}
		if !strings.Contains(body, `"playabilityStatus":`) {
			return nil, &VideoUnavailableError{VideoID: videoID}
		}
		return nil, &TranscriptsDisabledError{VideoID: videoID}
	}

	jsonStart := strings.Index(body[start:], "{")
	if jsonStart == -1 {
		return nil, &TranscriptsDisabledError{VideoID: videoID}
	}
	jsonStart += start

	// The object is not delimited by anything easier to find than its own
	// closing brace, so count depth.
	depth := 0
	jsonEnd := -1
	for i := jsonStart; i < len(body); i++ {
		switch body[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				jsonEnd = i + 1
			}
		}
		if jsonEnd != -1 {
			break
		}
	}
	if jsonEnd == -1 {
		return nil, fmt.Errorf("malformed captions data for video %s", videoID)
	}

	var captions struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	}
	if err := json.Unmarshal([]byte(body[jsonStart:jsonEnd]), &captions); err != nil {
		return nil, fmt.Errorf("parsing captions data for video %s: %w", videoID, err)
	}

	tracks := captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(tracks) == 0 {
		return nil, &NoTranscriptError{VideoID: videoID}
	}
	return tracks, nil
}

func (c *Client) fetchTimedText(ctx context.Context, baseURL string) ([]models.Segment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("timedtext request returned status %d", resp.StatusCode)
	}

	var timedText struct {
		XMLName xml.Name `xml:"transcript"`
		Texts   []struct {
			Start float64 `xml:"start,attr"`
			Dur   float64 `xml:"dur,attr"`
			Text  string  `xml:",chardata"`
		} `xml:"text"`
	}
	if err := xml.NewDecoder(resp.Body).Decode(&timedText); err != nil {
		return nil, fmt.Errorf("decoding timedtext: %w", err)
	}

	segments := make([]models.Segment, 0, len(timedText.Texts))
	for _, text := range timedText.Texts {
		segments = append(segments, models.Segment{
			Start:    text.Start,
			Duration: text.Dur,
			// The XML payload carries HTML entities on top of the XML
			// escaping.
			Text: html.UnescapeString(text.Text),
		})
	}
	return segments, nil
}
