package caption_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"video-pipeline/internal/caption"
	"video-pipeline/internal/record"
)

type fakeGenerator struct {
	response string
	err      error
	prompts  []string
}

func (g *fakeGenerator) Complete(ctx context.Context, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return "", g.err
	}
	return g.response, nil
}

func TestGenerate_ParsesModelOutput(t *testing.T) {
	gen := &fakeGenerator{response: "TITLE: Go Pipelines Explained\nDESCRIPTION: A deep dive.\nTAGS: go, video\n"}
	svc := caption.NewService(gen, zerolog.Nop())

	out := svc.Generate(context.Background(), record.JobRecord{
		VideoName:  "clip.mp4",
		VideoType:  record.TypeStandard,
		Transcript: "Hello world.",
	})

	require.Equal(t, record.StatusCaptionsGenerated, out.Status)
	require.Equal(t, "Go Pipelines Explained", out.Title)
	require.Equal(t, "A deep dive.", out.Description)
	require.Equal(t, []string{"go", "video"}, out.Tags)
	require.Len(t, gen.prompts, 1)
	require.Contains(t, gen.prompts[0], "Hello world.")
}

func TestGenerate_FailureDegradesToFallback(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("backend down")}
	svc := caption.NewService(gen, zerolog.Nop())

	out := svc.Generate(context.Background(), record.JobRecord{
		VideoName: "clip.mp4",
		VideoType: record.TypeShorts,
	})

	// Never an error: captions are enhancement, not a blocking artifact.
	require.Equal(t, record.StatusCaptionsGenerated, out.Status)
	require.Empty(t, out.Error)
	require.Equal(t, "Great shorts - clip.mp4", out.Title)
	require.Equal(t, []string{"shorts", "clip.mp4", "video", "content", "must watch"}, out.Tags)
}

func TestGenerate_DefaultsVideoTypeToStandard(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("backend down")}
	svc := caption.NewService(gen, zerolog.Nop())

	out := svc.Generate(context.Background(), record.JobRecord{VideoName: "clip.mp4"})

	require.Equal(t, "Great standard - clip.mp4", out.Title)
}
