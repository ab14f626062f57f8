package telestream

// Factory is a named workspace scoping videos, profiles, and encodings.
type Factory struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	URL       string `json:"url,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// Video is an uploaded media asset belonging to a factory.
type Video struct {
	ID               string  `json:"id"`
	Status           string  `json:"status"`
	OriginalFilename string  `json:"original_filename,omitempty"`
	Extname          string  `json:"extname,omitempty"`
	FileSize         int64   `json:"file_size,omitempty"`
	MimeType         string  `json:"mime_type,omitempty"`
	Duration         int64   `json:"duration,omitempty"`
	Width            int     `json:"width,omitempty"`
	Height           int     `json:"height,omitempty"`
	FPS              float64 `json:"fps,omitempty"`
	VideoCodec       string  `json:"video_codec,omitempty"`
	AudioCodec       string  `json:"audio_codec,omitempty"`
	Path             string  `json:"path,omitempty"`
	SourceURL        string  `json:"source_url,omitempty"`
	ErrorMessage     string  `json:"error_message,omitempty"`
	ErrorClass       string  `json:"error_class,omitempty"`
	CreatedAt        string  `json:"created_at,omitempty"`
	UpdatedAt        string  `json:"updated_at,omitempty"`

	// Encodings is filled by GetVideo when encodings are requested; the API
	// never returns it inline.
	Encodings []VideoEncoding `json:"encodings,omitempty"`
}

// EncodingStatus filters encoding listings.
type EncodingStatus string

const (
	EncodingSuccess    EncodingStatus = "success"
	EncodingFail       EncodingStatus = "fail"
	EncodingProcessing EncodingStatus = "processing"
	EncodingCancelled  EncodingStatus = "cancelled"
)

// VideoEncoding is a single transcode job applied to a video under a profile.
type VideoEncoding struct {
	ID                string   `json:"id"`
	VideoID           string   `json:"video_id"`
	ProfileID         string   `json:"profile_id,omitempty"`
	ProfileName       string   `json:"profile_name,omitempty"`
	Status            string   `json:"status"`
	EncodingProgress  int      `json:"encoding_progress"`
	Path              string   `json:"path,omitempty"`
	Extname           string   `json:"extname,omitempty"`
	FileSize          int64    `json:"file_size,omitempty"`
	Files             []string `json:"files,omitempty"`
	Screenshots       []string `json:"screenshots,omitempty"`
	Width             int      `json:"width,omitempty"`
	Height            int      `json:"height,omitempty"`
	Duration          int64    `json:"duration,omitempty"`
	ErrorMessage      string   `json:"error_message,omitempty"`
	ErrorClass        string   `json:"error_class,omitempty"`
	StartedEncodingAt string   `json:"started_encoding_at,omitempty"`
	EncodingTime      int64    `json:"encoding_time,omitempty"`
	CreatedAt         string   `json:"created_at,omitempty"`
	UpdatedAt         string   `json:"updated_at,omitempty"`
}

// VideoProfile is a named set of encoding parameters.
type VideoProfile struct {
	ID               string `json:"id,omitempty"`
	Name             string `json:"name"`
	Title            string `json:"title,omitempty"`
	PresetName       string `json:"preset_name,omitempty"`
	Extname          string `json:"extname,omitempty"`
	Width            int    `json:"width,omitempty"`
	Height           int    `json:"height,omitempty"`
	VideoBitrate     int    `json:"video_bitrate,omitempty"`
	AudioBitrate     int    `json:"audio_bitrate,omitempty"`
	FPS              int    `json:"fps,omitempty"`
	KeyframeInterval int    `json:"keyframe_interval,omitempty"`
	CreatedAt        string `json:"created_at,omitempty"`
	UpdatedAt        string `json:"updated_at,omitempty"`
}

// VideoMetadata is the free-form metadata document extracted from a source video.
type VideoMetadata map[string]any

// UploadSession identifies the server-side destination of a chunked upload.
type UploadSession struct {
	ID       string `json:"id,omitempty"`
	Location string `json:"location"`
}

// ListOptions pages through list endpoints. Nil fields are omitted.
type ListOptions struct {
	Page    *int
	PerPage *int
}

func (o ListOptions) apply(q *QueryParams) *QueryParams {
	return q.AddInt("page", o.Page).AddInt("per_page", o.PerPage)
}
