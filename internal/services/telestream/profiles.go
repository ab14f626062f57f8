package telestream

import "context"

// ProfileListOptions controls GetProfiles. Nil fields are omitted.
type ProfileListOptions struct {
	Expand  *bool
	Page    *int
	PerPage *int
}

// GetProfiles lists a factory's encoding profiles.
func (c *Client) GetProfiles(ctx context.Context, factoryID string, opts ProfileListOptions) ([]VideoProfile, error) {
	if err := requireIDs("factoryId", factoryID); err != nil {
		return nil, err
	}
	query := NewQueryParams().
		AddBool("expand", opts.Expand).
		AddInt("page", opts.Page).
		AddInt("per_page", opts.PerPage)
	return invoke[[]VideoProfile](ctx, c, Get(factoryID, "profiles.json", query))
}

// GetProfile fetches a profile by ID or by name.
func (c *Client) GetProfile(ctx context.Context, factoryID, idOrName string, expand *bool) (VideoProfile, error) {
	if err := requireIDs("factoryId", factoryID, "idOrName", idOrName); err != nil {
		return VideoProfile{}, err
	}
	query := NewQueryParams().AddBool("expand", expand)
	return invoke[VideoProfile](ctx, c, Get(factoryID, resourcePath("profiles", idOrName), query))
}

// CreateProfile creates a profile from the given definition.
func (c *Client) CreateProfile(ctx context.Context, factoryID string, profile *VideoProfile) (VideoProfile, error) {
	if err := requireIDs("factoryId", factoryID); err != nil {
		return VideoProfile{}, err
	}
	if profile == nil {
		return VideoProfile{}, &ValidationError{Field: "profile"}
	}
	return invoke[VideoProfile](ctx, c, Post(factoryID, "profiles.json", nil, profile))
}

// UpdateProfile replaces the profile identified by profile.ID.
func (c *Client) UpdateProfile(ctx context.Context, factoryID string, profile *VideoProfile) (VideoProfile, error) {
	if err := requireIDs("factoryId", factoryID); err != nil {
		return VideoProfile{}, err
	}
	if profile == nil {
		return VideoProfile{}, &ValidationError{Field: "profile"}
	}
	if err := requireIDs("profile.id", profile.ID); err != nil {
		return VideoProfile{}, err
	}
	return invoke[VideoProfile](ctx, c, Put(factoryID, resourcePath("profiles", profile.ID), nil, profile))
}

// DeleteProfile removes a profile.
func (c *Client) DeleteProfile(ctx context.Context, factoryID, profileID string) error {
	if err := requireIDs("factoryId", factoryID, "profileId", profileID); err != nil {
		return err
	}
	return c.do(ctx, Delete(factoryID, resourcePath("profiles", profileID)), nil)
}
