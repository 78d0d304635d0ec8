package models

// CameraListResponse wraps GET /network/{id}/cameras.
type CameraListResponse struct {
	DeviceStatus []CameraSummary `json:"devicestatus"`
}

// CameraSummary is one camera's entry in the per-network roster.
// Optional fields are pointers so an absent key can be told apart from
// a zero value: an absent field must never clear previously cached state.
type CameraSummary struct {
	ID        int    `json:"camera_id"`
	NetworkID int    `json:"network_id"`
	Name      string `json:"name"`
	Serial    string `json:"serial"`

	Enabled      *bool   `json:"enabled,omitempty"`       // motion detection on/off
	Battery      *int    `json:"battery,omitempty"`       // 0-3 scale
	Temperature  *int    `json:"temp,omitempty"`          // raw sensor, Fahrenheit
	WifiStrength *int    `json:"wifi_strength,omitempty"` // dBm, negative
	Thumbnail    *string `json:"thumbnail,omitempty"`     // URL path, no extension
	Video        *string `json:"video,omitempty"`         // most recent clip address
}
