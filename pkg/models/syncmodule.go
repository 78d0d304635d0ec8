package models

// SyncModuleResponse wraps GET /network/{id}/syncmodules.
type SyncModuleResponse struct {
	SyncModule SyncModuleSummary `json:"syncmodule"`
}

// SyncModuleSummary is the cloud's view of a single sync module (the
// hub device relaying camera data for one network).
type SyncModuleSummary struct {
	ID        int    `json:"id"`
	NetworkID int    `json:"network_id"`
	Name      string `json:"name"`
	Serial    string `json:"serial"`
	Status    string `json:"status"` // "online", "onboarding", ...
	FWVersion string `json:"fw_version"`
}
