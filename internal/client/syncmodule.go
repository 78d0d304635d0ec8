package client

import (
	"fmt"

	"blink-cli/pkg/models"
)

// GetSyncModule fetches the sync-module identity and status for one
// network.
func (c *BlinkClient) GetSyncModule(networkID int) (*models.SyncModuleSummary, error) {
	var respData models.SyncModuleResponse

	resp, err := c.do("sync module", func() (*restyResponse, error) {
		return c.HTTP.R().
			SetResult(&respData).
			Get(fmt.Sprintf("/network/%d/syncmodules", networkID))
	})
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("failed to get sync module for network %d: %s", networkID, resp.String())
	}

	return &respData.SyncModule, nil
}
