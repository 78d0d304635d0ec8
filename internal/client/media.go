package client

import (
	"errors"
	"fmt"
)

// GetThumbnail downloads the JPEG still at the given thumbnail address.
// Thumbnail addresses from the API carry no extension; the service
// serves them with ".jpg" appended.
func (c *BlinkClient) GetThumbnail(address string) ([]byte, error) {
	if address == "" {
		return nil, errors.New("empty thumbnail address")
	}
	return c.getMedia("thumbnail", address+".jpg")
}

// GetClip downloads the video clip at the given address.
func (c *BlinkClient) GetClip(address string) ([]byte, error) {
	if address == "" {
		return nil, errors.New("empty clip address")
	}
	return c.getMedia("clip", address)
}

func (c *BlinkClient) getMedia(kind, path string) ([]byte, error) {
	resp, err := c.do(kind, func() (*restyResponse, error) {
		return c.HTTP.R().Get(path)
	})
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("failed to get %s %s: status %d", kind, path, resp.StatusCode())
	}
	if len(resp.Body()) == 0 {
		return nil, fmt.Errorf("%s %s: response body is empty", kind, path)
	}
	return resp.Body(), nil
}
