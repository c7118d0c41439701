package record_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"video-pipeline/internal/record"
)

func TestJobRecord_RoundTripPreservesUnknownFields(t *testing.T) {
	in := []byte(`{
		"job_id": "abc",
		"video_name": "clip.mp4",
		"duration": 45.5,
		"workflow_run": "n8n-123",
		"custom": {"a": 1}
	}`)

	var rec record.JobRecord
	require.NoError(t, json.Unmarshal(in, &rec))

	require.Equal(t, "abc", rec.JobID)
	require.Equal(t, "clip.mp4", rec.VideoName)
	require.Equal(t, 45.5, rec.Duration)
	require.Len(t, rec.Extra, 2)

	out, err := json.Marshal(rec)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	require.Equal(t, "n8n-123", decoded["workflow_run"])
	require.Equal(t, map[string]any{"a": float64(1)}, decoded["custom"])
	require.Equal(t, "clip.mp4", decoded["video_name"])
}

func TestJobRecord_KnownFieldsWinOverExtra(t *testing.T) {
	rec := record.JobRecord{
		VideoName: "clip.mp4",
		Extra: map[string]json.RawMessage{
			"video_name": json.RawMessage(`"stale.mp4"`),
		},
	}

	out, err := json.Marshal(rec)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	require.Equal(t, "clip.mp4", decoded["video_name"])
}

func TestJobRecord_MarshalOmitsEmptyFields(t *testing.T) {
	out, err := json.Marshal(record.JobRecord{VideoName: "clip.mp4"})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	require.Equal(t, map[string]any{"video_name": "clip.mp4"}, decoded)
}

func TestFail(t *testing.T) {
	rec := record.JobRecord{JobID: "abc", Status: record.StatusProcessed}
	failed := rec.Fail("boom")

	require.Equal(t, record.StatusError, failed.Status)
	require.Equal(t, "boom", failed.Error)
	// Records pass by value; the original is untouched.
	require.Equal(t, record.StatusProcessed, rec.Status)
}

func TestTargetPath(t *testing.T) {
	require.Equal(t, "", record.JobRecord{}.TargetPath())
	require.Equal(t, "/v/in.mp4", record.JobRecord{VideoPath: "/v/in.mp4"}.TargetPath())
	require.Equal(t, "/v/proc.mp4", record.JobRecord{
		VideoPath:     "/v/in.mp4",
		ProcessedPath: "/v/proc.mp4",
	}.TargetPath())
	require.Equal(t, "/v/orig.mp4", record.JobRecord{OriginalPath: "/v/orig.mp4"}.TargetPath())
}
