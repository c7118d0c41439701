package record

import (
	"encoding/json"
)

type Status string

const (
	StatusProcessed          Status = "processed"
	StatusSubtitlesGenerated Status = "subtitles_generated"
	StatusCaptionsGenerated  Status = "captions_generated"
	StatusFilesAssembled     Status = "files_assembled"
	StatusError              Status = "error"
)

type VideoType string

const (
	TypeShorts   VideoType = "shorts"
	TypeStandard VideoType = "standard"
)

// FileEntry is one produced or copied file in the final bundle manifest.
type FileEntry struct {
	Type string `json:"type"`
	Path string `json:"path"`
	Name string `json:"name"`
}

// JobRecord is the single payload threaded through the pipeline. Each stage
// receives a copy, writes only the fields it owns, and forwards the result.
// Unknown JSON members survive a decode/encode round trip via Extra, so a
// stage never drops fields added by a newer producer.
type JobRecord struct {
	JobID     string  `json:"job_id,omitempty"`
	VideoPath string  `json:"video_path,omitempty"`
	VideoName string  `json:"video_name,omitempty"`
	Timestamp float64 `json:"timestamp,omitempty"`

	OriginalPath   string    `json:"original_path,omitempty"`
	ProcessedPath  string    `json:"processed_path,omitempty"`
	Duration       float64   `json:"duration,omitempty"`
	VideoType      VideoType `json:"video_type,omitempty"`
	OutputFilename string    `json:"output_filename,omitempty"`

	SRTPath        string `json:"srt_path,omitempty"`
	TranscriptPath string `json:"transcript_path,omitempty"`
	Transcript     string `json:"transcript,omitempty"`
	Language       string `json:"language,omitempty"`

	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`

	OutputFolder string      `json:"output_folder,omitempty"`
	Files        []FileEntry `json:"files,omitempty"`

	Status Status `json:"status,omitempty"`
	Error  string `json:"error,omitempty"`

	// Extra holds JSON members this build does not know about.
	Extra map[string]json.RawMessage `json:"-"`
}

// jobRecordAlias avoids recursing into the custom codec.
type jobRecordAlias JobRecord

var knownKeys = map[string]struct{}{
	"job_id": {}, "video_path": {}, "video_name": {}, "timestamp": {},
	"original_path": {}, "processed_path": {}, "duration": {}, "video_type": {},
	"output_filename": {}, "srt_path": {}, "transcript_path": {}, "transcript": {},
	"language": {}, "title": {}, "description": {}, "tags": {},
	"output_folder": {}, "files": {}, "status": {}, "error": {},
}

func (r *JobRecord) UnmarshalJSON(data []byte) error {
	var alias jobRecordAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for k := range raw {
		if _, ok := knownKeys[k]; ok {
			delete(raw, k)
		}
	}
	if len(raw) > 0 {
		alias.Extra = raw
	}

	*r = JobRecord(alias)
	return nil
}

func (r JobRecord) MarshalJSON() ([]byte, error) {
	known, err := json.Marshal(jobRecordAlias(r))
	if err != nil {
		return nil, err
	}
	if len(r.Extra) == 0 {
		return known, nil
	}

	var merged map[string]json.RawMessage
	if err := json.Unmarshal(known, &merged); err != nil {
		return nil, err
	}
	for k, v := range r.Extra {
		if _, ok := merged[k]; !ok {
			merged[k] = v
		}
	}
	return json.Marshal(merged)
}

// Fail marks the record as terminally failed for this stage.
func (r JobRecord) Fail(msg string) JobRecord {
	r.Status = StatusError
	r.Error = msg
	return r
}

// TargetPath picks the best available media source: the processed file when
// the transform stage ran, otherwise the original upload.
func (r JobRecord) TargetPath() string {
	if r.ProcessedPath != "" {
		return r.ProcessedPath
	}
	if r.VideoPath != "" {
		return r.VideoPath
	}
	return r.OriginalPath
}
