package ffmpeg

import "fmt"

// BuildTranscode constructs the complete ffmpeg argument slice for one
// transcode. Output is always H.264/AAC in an mp4 container, overwriting any
// previous run of the same input (deterministic output names make reruns
// idempotent).
func BuildTranscode(p Profile, inputPath, outputPath string) []string {
	args := make([]string, 0, 24)

	args = append(args, "-hide_banner", "-nostdin", "-y", "-loglevel", "error")
	args = append(args, "-i", inputPath)

	filter := fmt.Sprintf("scale=%d:%d", p.Width, p.Height)
	if p.PadToFit {
		// -1:-1 centers the scaled frame inside the padded canvas.
		filter += fmt.Sprintf(",pad=%d:%d:-1:-1:black", p.Width, p.Height)
	}
	args = append(args, "-vf", filter)

	args = append(args,
		"-c:v", "libx264",
		"-c:a", "aac",
		"-b:v", p.VideoBitrate,
		"-b:a", p.AudioBitrate,
	)

	args = append(args, outputPath)
	return args
}

// BuildAudioExtract constructs the argument slice that extracts mono 16 kHz
// PCM audio, the input format the transcription engine expects.
func BuildAudioExtract(inputPath, outputPath string) []string {
	return []string{
		"-hide_banner", "-nostdin", "-y", "-loglevel", "error",
		"-i", inputPath,
		"-vn",
		"-acodec", "pcm_s16le",
		"-ac", "1",
		"-ar", "16000",
		"-f", "wav",
		outputPath,
	}
}
