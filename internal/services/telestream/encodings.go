package telestream

import "context"

// EncodingFilter narrows an encodings listing. Zero values are omitted.
type EncodingFilter struct {
	Status      EncodingStatus
	ProfileID   string
	ProfileName string
	VideoID     string
	Screenshots *bool
	Page        *int
	PerPage     *int
}

func (f EncodingFilter) query() *QueryParams {
	return NewQueryParams().
		AddString("status", string(f.Status)).
		AddString("profile_id", f.ProfileID).
		AddString("profile_name", f.ProfileName).
		AddString("video_id", f.VideoID).
		AddBool("screenshots", f.Screenshots).
		AddInt("page", f.Page).
		AddInt("per_page", f.PerPage)
}

// GetEncodings lists a factory's encodings.
func (c *Client) GetEncodings(ctx context.Context, factoryID string, filter EncodingFilter) ([]VideoEncoding, error) {
	if err := requireIDs("factoryId", factoryID); err != nil {
		return nil, err
	}
	return invoke[[]VideoEncoding](ctx, c, Get(factoryID, "encodings.json", filter.query()))
}

// GetEncoding fetches one encoding, optionally including screenshot URLs.
func (c *Client) GetEncoding(ctx context.Context, factoryID, encodingID string, screenshots *bool) (VideoEncoding, error) {
	if err := requireIDs("factoryId", factoryID, "encodingId", encodingID); err != nil {
		return VideoEncoding{}, err
	}
	query := NewQueryParams().AddBool("screenshots", screenshots)
	return invoke[VideoEncoding](ctx, c, Get(factoryID, resourcePath("encodings", encodingID), query))
}

// CreateEncoding starts encoding videoID with the profile given by ID or name.
func (c *Client) CreateEncoding(ctx context.Context, factoryID, videoID, profileID, profileName string) (VideoEncoding, error) {
	if err := requireIDs("factoryId", factoryID, "videoId", videoID); err != nil {
		return VideoEncoding{}, err
	}
	query := NewQueryParams().
		AddString("video_id", videoID).
		AddString("profile_id", profileID).
		AddString("profile_name", profileName)
	return invoke[VideoEncoding](ctx, c, Post(factoryID, "encodings.json", query, nil))
}

// CancelEncoding stops an encoding that is still processing.
func (c *Client) CancelEncoding(ctx context.Context, factoryID, encodingID string) (VideoEncoding, error) {
	if err := requireIDs("factoryId", factoryID, "encodingId", encodingID); err != nil {
		return VideoEncoding{}, err
	}
	return invoke[VideoEncoding](ctx, c, Post(factoryID, resourcePath("encodings", encodingID, "cancel"), nil, nil))
}

// RetryEncoding restarts a failed encoding.
func (c *Client) RetryEncoding(ctx context.Context, factoryID, encodingID string) (VideoEncoding, error) {
	if err := requireIDs("factoryId", factoryID, "encodingId", encodingID); err != nil {
		return VideoEncoding{}, err
	}
	return invoke[VideoEncoding](ctx, c, Post(factoryID, resourcePath("encodings", encodingID, "retry"), nil, nil))
}

// DeleteEncoding removes an encoding and its output files.
func (c *Client) DeleteEncoding(ctx context.Context, factoryID, encodingID string) error {
	if err := requireIDs("factoryId", factoryID, "encodingId", encodingID); err != nil {
		return err
	}
	return c.do(ctx, Delete(factoryID, resourcePath("encodings", encodingID)), nil)
}
