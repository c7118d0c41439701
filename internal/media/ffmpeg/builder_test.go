package ffmpeg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildTranscode_Shorts(t *testing.T) {
	args := BuildTranscode(Shorts, "/in/clip.mp4", "/out/processed_clip.mp4")
	joined := strings.Join(args, " ")

	require.Contains(t, joined, "-i /in/clip.mp4")
	require.Contains(t, joined, "scale=1080:1920,pad=1080:1920:-1:-1:black")
	require.Contains(t, joined, "-c:v libx264")
	require.Contains(t, joined, "-c:a aac")
	require.Contains(t, joined, "-b:v 2M")
	require.Contains(t, joined, "-b:a 192k")
	require.Contains(t, joined, "-y")
	require.Equal(t, "/out/processed_clip.mp4", args[len(args)-1])
}

func TestBuildTranscode_Standard(t *testing.T) {
	args := BuildTranscode(Standard, "/in/talk.mkv", "/out/processed_talk.mp4")
	joined := strings.Join(args, " ")

	require.Contains(t, joined, "-vf scale=1920:1080")
	require.NotContains(t, joined, "pad=")
	require.Contains(t, joined, "-b:v 5M")
	require.Contains(t, joined, "-b:a 192k")
}

func TestBuildAudioExtract(t *testing.T) {
	args := BuildAudioExtract("/in/clip.mp4", "/tmp/audio.wav")
	joined := strings.Join(args, " ")

	require.Contains(t, joined, "-i /in/clip.mp4")
	require.Contains(t, joined, "-vn")
	require.Contains(t, joined, "-acodec pcm_s16le")
	require.Contains(t, joined, "-ac 1")
	require.Contains(t, joined, "-ar 16000")
	require.Contains(t, joined, "-f wav")
	require.Equal(t, "/tmp/audio.wav", args[len(args)-1])
}
