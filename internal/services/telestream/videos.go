package telestream

import "context"

// GetVideos lists the videos of a factory.
func (c *Client) GetVideos(ctx context.Context, factoryID string, opts ListOptions) ([]Video, error) {
	if err := requireIDs("factoryId", factoryID); err != nil {
		return nil, err
	}
	return invoke[[]Video](ctx, c, Get(factoryID, "videos.json", opts.apply(NewQueryParams())))
}

// GetVideo fetches a video. When fetchEncodings is set the video's encodings
// are fetched with a second request and attached; a failure of either request
// fails the call.
func (c *Client) GetVideo(ctx context.Context, factoryID, videoID string, fetchEncodings bool) (Video, error) {
	if err := requireIDs("factoryId", factoryID, "videoId", videoID); err != nil {
		return Video{}, err
	}
	video, err := invoke[Video](ctx, c, Get(factoryID, resourcePath("videos", videoID), nil))
	if err != nil {
		return Video{}, err
	}
	if !fetchEncodings {
		return video, nil
	}

	id := video.ID
	if id == "" {
		id = videoID
	}
	encodings, err := c.GetVideoEncodings(ctx, factoryID, id)
	if err != nil {
		return Video{}, err
	}
	video.Encodings = encodings
	return video, nil
}

// GetVideoEncodings lists the encodings of a single video.
func (c *Client) GetVideoEncodings(ctx context.Context, factoryID, videoID string) ([]VideoEncoding, error) {
	if err := requireIDs("factoryId", factoryID, "videoId", videoID); err != nil {
		return nil, err
	}
	return invoke[[]VideoEncoding](ctx, c, Get(factoryID, resourcePath("videos", videoID, "encodings"), nil))
}

// GetVideoMetadata returns the metadata extracted from a video's source file.
func (c *Client) GetVideoMetadata(ctx context.Context, factoryID, videoID string) (VideoMetadata, error) {
	if err := requireIDs("factoryId", factoryID, "videoId", videoID); err != nil {
		return nil, err
	}
	return invoke[VideoMetadata](ctx, c, Get(factoryID, resourcePath("videos", videoID, "metadata"), nil))
}

// DeleteVideo removes a video together with its encodings.
func (c *Client) DeleteVideo(ctx context.Context, factoryID, videoID string) error {
	if err := requireIDs("factoryId", factoryID, "videoId", videoID); err != nil {
		return err
	}
	return c.do(ctx, Delete(factoryID, resourcePath("videos", videoID)), nil)
}

// DeleteVideoSource removes only the stored source file of a video.
func (c *Client) DeleteVideoSource(ctx context.Context, factoryID, videoID string) error {
	if err := requireIDs("factoryId", factoryID, "videoId", videoID); err != nil {
		return err
	}
	return c.do(ctx, Delete(factoryID, resourcePath("videos", videoID, "source")), nil)
}
