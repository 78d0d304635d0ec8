package client

import (
	"fmt"

	"blink-cli/pkg/models"
)

// GetCameras fetches the camera roster and per-camera status for one
// network.
func (c *BlinkClient) GetCameras(networkID int) ([]models.CameraSummary, error) {
	var respData models.CameraListResponse

	resp, err := c.do("cameras", func() (*restyResponse, error) {
		return c.HTTP.R().
			SetResult(&respData).
			Get(fmt.Sprintf("/network/%d/cameras", networkID))
	})
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("failed to get cameras for network %d: %s", networkID, resp.String())
	}

	return respData.DeviceStatus, nil
}

// SetCameraMotion enables or disables motion detection for one camera.
func (c *BlinkClient) SetCameraMotion(networkID, cameraID int, enabled bool) error {
	command := "disable"
	if enabled {
		command = "enable"
	}

	resp, err := c.do("camera motion", func() (*restyResponse, error) {
		return c.HTTP.R().
			Post(fmt.Sprintf("/network/%d/camera/%d/%s", networkID, cameraID, command))
	})
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("failed to %s motion on camera %d: %s", command, cameraID, resp.String())
	}
	return nil
}
