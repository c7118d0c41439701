package caption

import "strings"

const (
	titleMaxLen      = 60
	titleTruncateLen = 57
)

// Metadata is the structured result of one caption generation.
type Metadata struct {
	Title       string
	Description string
	Tags        []string
}

// ParseResponse extracts title, description and tags from the model output.
// It is total: any text, including empty, yields a well-formed Metadata by
// falling back to deterministic placeholder content. The first line matching
// each prefix wins; unrecognized lines are ignored.
func ParseResponse(text, videoType, videoName string) Metadata {
	var title, description string
	var tags []string

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case title == "" && strings.HasPrefix(line, "TITLE:"):
			title = strings.TrimSpace(strings.TrimPrefix(line, "TITLE:"))
		case description == "" && strings.HasPrefix(line, "DESCRIPTION:"):
			description = strings.TrimSpace(strings.TrimPrefix(line, "DESCRIPTION:"))
		case tags == nil && strings.HasPrefix(line, "TAGS:"):
			tags = parseTags(strings.TrimPrefix(line, "TAGS:"))
		}
	}

	if title == "" {
		return Fallback(videoType, videoName)
	}

	fallback := Fallback(videoType, videoName)
	if description == "" {
		description = fallback.Description
	}
	if len(tags) == 0 {
		tags = fallback.Tags
	}

	return Metadata{
		Title:       truncateTitle(title),
		Description: description,
		Tags:        tags,
	}
}

func parseTags(raw string) []string {
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		tag := strings.Trim(strings.TrimSpace(part), "[]")
		tag = strings.TrimSpace(tag)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// truncateTitle enforces the 60-character soft cap by hard-truncating to 57
// runes plus an ellipsis.
func truncateTitle(title string) string {
	runes := []rune(title)
	if len(runes) <= titleMaxLen {
		return title
	}
	return string(runes[:titleTruncateLen]) + "..."
}

// Fallback builds the deterministic placeholder metadata used whenever
// generation fails or returns nothing parseable. Captions are enhancement,
// not a blocking artifact, so the pipeline keeps moving with these.
func Fallback(videoType, videoName string) Metadata {
	return Metadata{
		Title:       "Great " + videoType + " - " + videoName,
		Description: "Watch this amazing " + videoType + " video about " + videoName + ". Don't forget to like and subscribe!",
		Tags:        []string{videoType, videoName, "video", "content", "must watch"},
	}
}
