package client

import (
	"fmt"

	"blink-cli/pkg/models"
)

// GetNetworkStatus fetches the live status of one network, including
// the armed flag. This is deliberately a separate call from the
// homescreen aggregate, which lags on arm state.
func (c *BlinkClient) GetNetworkStatus(networkID int) (*models.NetworkStatus, error) {
	var respData models.NetworkStatusResponse

	resp, err := c.do("network status", func() (*restyResponse, error) {
		return c.HTTP.R().
			SetResult(&respData).
			Get(fmt.Sprintf("/network/%d", networkID))
	})
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("failed to get network %d status: %s", networkID, resp.String())
	}

	return &respData.Network, nil
}

// GetEvents fetches the recent event log for a network.
func (c *BlinkClient) GetEvents(networkID int) ([]models.Event, error) {
	var respData models.EventListResponse

	resp, err := c.do("events", func() (*restyResponse, error) {
		return c.HTTP.R().
			SetResult(&respData).
			Get(fmt.Sprintf("/events/network/%d", networkID))
	})
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("failed to get events for network %d: %s", networkID, resp.String())
	}

	return respData.Events, nil
}

// ArmNetwork arms every camera on the network.
func (c *BlinkClient) ArmNetwork(networkID int) error {
	return c.postNetworkCommand(networkID, "arm")
}

// DisarmNetwork disarms every camera on the network.
func (c *BlinkClient) DisarmNetwork(networkID int) error {
	return c.postNetworkCommand(networkID, "disarm")
}

func (c *BlinkClient) postNetworkCommand(networkID int, command string) error {
	resp, err := c.do(command, func() (*restyResponse, error) {
		return c.HTTP.R().
			Post(fmt.Sprintf("/network/%d/%s", networkID, command))
	})
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("failed to %s network %d: %s", command, networkID, resp.String())
	}
	return nil
}
