package models

// Network is a cloud-side grouping of one sync module and its cameras.
// Only onboarded networks are usable.
type Network struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Onboarded bool   `json:"onboarded"`
}

// NetworkStatusResponse wraps GET /network/{id}.
// Arm state comes from this dedicated endpoint; the homescreen
// aggregate has historically lagged or omitted it.
type NetworkStatusResponse struct {
	Network NetworkStatus `json:"network"`
}

// NetworkStatus is the live status of a single network.
type NetworkStatus struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Armed  bool   `json:"armed"`
	Status string `json:"status"`
}

// EventListResponse wraps GET /events/network/{id}.
type EventListResponse struct {
	Events []Event `json:"event"`
}

// Event is a single entry from the network event log.
type Event struct {
	ID         int    `json:"id"`
	Type       string `json:"type"` // e.g. "motion", "armed", "disarmed"
	CameraID   int    `json:"camera_id"`
	CameraName string `json:"camera_name"`
	CreatedAt  string `json:"created_at"` // ISO 8601
}
