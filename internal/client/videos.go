package client

import (
	"fmt"
	"strconv"
	"time"

	"blink-cli/pkg/models"
)

// BlinkTimeFormat is the timestamp layout the video endpoints accept.
const BlinkTimeFormat = "2006-01-02T15:04:05Z0700"

// GetHomescreen fetches the account-level aggregate: every device with
// its last known thumbnail and status.
func (c *BlinkClient) GetHomescreen() (*models.HomescreenResponse, error) {
	var respData models.HomescreenResponse

	resp, err := c.do("homescreen", func() (*restyResponse, error) {
		return c.HTTP.R().
			SetResult(&respData).
			Get("/homescreen")
	})
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("failed to get homescreen: %s", resp.String())
	}

	return &respData, nil
}

// GetChangedVideos fetches clips recorded since the given time. A zero
// time lists from the beginning of the account's retention window.
func (c *BlinkClient) GetChangedVideos(since time.Time, page int) ([]models.VideoClip, error) {
	var respData models.VideoListResponse

	resp, err := c.do("changed videos", func() (*restyResponse, error) {
		req := c.HTTP.R().
			SetQueryParam("page", strconv.Itoa(page)).
			SetResult(&respData)
		if !since.IsZero() {
			req.SetQueryParam("since", since.UTC().Format(BlinkTimeFormat))
		}
		return req.Get("/api/v2/videos/changed")
	})
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("failed to get changed videos: %s", resp.String())
	}

	return respData.Videos, nil
}

// GetVideoPage fetches one page of the full recorded-clip listing.
func (c *BlinkClient) GetVideoPage(page int) ([]models.VideoClip, error) {
	var respData models.VideoListResponse

	resp, err := c.do("video page", func() (*restyResponse, error) {
		return c.HTTP.R().
			SetResult(&respData).
			Get(fmt.Sprintf("/api/v2/videos/page/%d", page))
	})
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("failed to get video page %d: %s", page, resp.String())
	}

	return respData.Videos, nil
}
