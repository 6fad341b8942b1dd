package models

// Segment is a single timed caption entry as returned by the caption source.
type Segment struct {
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
	Text     string  `json:"text"`
}

// FormattedSegment is a Segment with a display-ready MM:SS label derived
// from the start offset.
type FormattedSegment struct {
	Segment
	FormattedTime string `json:"formatted_time"`
}

// Transcript is the result of a successful fetch.
type Transcript struct {
	VideoID   string             `json:"video_id"`
	Language  string             `json:"language"`
	ProxyUsed string             `json:"proxy_used,omitempty"`
	Segments  []FormattedSegment `json:"segments"`
}

// SegmentResponse is the wire shape of one transcript entry in the API.
type SegmentResponse struct {
	Time          float64 `json:"time"`
	Text          string  `json:"text"`
	FormattedTime string  `json:"formatted_time"`
}

// TranscriptResponse is the API response for a successful transcript fetch.
type TranscriptResponse struct {
	Success    bool              `json:"success"`
	VideoID    string            `json:"video_id"`
	Transcript []SegmentResponse `json:"transcript"`
	ProxyUsed  *string           `json:"proxy_used"`
}

// ErrorResponse is the API response for any failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// NewTranscriptResponse converts a Transcript into its API shape. ProxyUsed
// is null when the fetch went over a direct connection.
func NewTranscriptResponse(t *Transcript) TranscriptResponse {
	segments := make([]SegmentResponse, 0, len(t.Segments))
	for _, seg := range t.Segments {
		segments = append(segments, SegmentResponse{
			Time:          seg.Start,
			Text:          seg.Text,
			FormattedTime: seg.FormattedTime,
		})
	}

	resp := TranscriptResponse{
		Success:    true,
		VideoID:    t.VideoID,
		Transcript: segments,
	}
	if t.ProxyUsed != "" {
		resp.ProxyUsed = &t.ProxyUsed
	}
	return resp
}
