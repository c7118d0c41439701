package ffmpeg

// Profile is a named transcoding parameter set selected by video
// classification.
type Profile struct {
	Name         string
	Width        int
	Height       int
	PadToFit     bool // letterbox/pillarbox with black to the exact target
	VideoBitrate string
	AudioBitrate string
}

// Shorts targets the vertical 9:16 layout.
var Shorts = Profile{
	Name:         "shorts",
	Width:        1080,
	Height:       1920,
	PadToFit:     true,
	VideoBitrate: "2M",
	AudioBitrate: "192k",
}

// Standard targets horizontal 16:9 HD.
var Standard = Profile{
	Name:         "standard",
	Width:        1920,
	Height:       1080,
	VideoBitrate: "5M",
	AudioBitrate: "192k",
}
