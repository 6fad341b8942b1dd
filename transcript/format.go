package transcript

import (
	"fmt"

	"yt-transcript/models"
)

// Format derives the display view of raw segments. Order and length are
// preserved and the raw fields are copied through unchanged.
//
// The time label is minutes:seconds truncated from the start offset,
// zero-padded to two digits; the minutes field grows past two digits rather
// than rolling over into hours.
func Format(segments []models.Segment) []models.FormattedSegment {
	formatted := make([]models.FormattedSegment, 0, len(segments))
	for _, segment := range segments {
		seconds := int(segment.Start)
		formatted = append(formatted, models.FormattedSegment{
			Segment:       segment,
			FormattedTime: fmt.Sprintf("%02d:%02d", seconds/60, seconds%60),
		})
	}
	return formatted
}
