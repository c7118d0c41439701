package caption

import "fmt"

// transcriptPreviewLimit bounds the prompt size; long transcripts add little
// signal past the opening minutes.
const transcriptPreviewLimit = 800

// TranscriptPreview truncates the transcript for prompt construction,
// appending an ellipsis when content was cut.
func TranscriptPreview(transcript string) string {
	if len(transcript) <= transcriptPreviewLimit {
		return transcript
	}
	return transcript[:transcriptPreviewLimit] + "..."
}

// BuildPrompt produces the metadata-generation prompt. The TITLE:/
// DESCRIPTION:/TAGS: template is a compatibility surface: ParseResponse
// expects exactly these line prefixes back.
func BuildPrompt(transcript, videoType string) string {
	return fmt.Sprintf(`Human: Generate engaging YouTube metadata for this %s video.

Video Transcript: %s

Please provide:
1. A catchy title (max 60 characters)
2. An engaging description (2-3 paragraphs)
3. 5-7 relevant tags

Format your response exactly as:
TITLE: [your title here]
DESCRIPTION: [your description here]
TAGS: [tag1, tag2, tag3, tag4, tag5]

Ensure the title is attention-grabbing and the description encourages viewers to watch the video.
`, videoType, TranscriptPreview(transcript))
}
