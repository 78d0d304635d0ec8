package models

// VideoListResponse wraps GET /api/v2/videos/changed and the paged
// /api/v2/videos/page/{n} listing.
type VideoListResponse struct {
	Videos []VideoClip `json:"videos"`
}

// VideoClip is one recorded clip as listed by the video endpoints.
type VideoClip struct {
	ID         int    `json:"id"`
	CameraID   int    `json:"camera_id"`
	CameraName string `json:"camera_name"`
	Address    string `json:"address"`   // URL path of the clip media
	Thumbnail  string `json:"thumbnail"` // URL path of the clip's still
	CreatedAt  string `json:"created_at"`
	Deleted    bool   `json:"deleted"`
}

// HomescreenResponse wraps GET /homescreen, the account-level aggregate.
type HomescreenResponse struct {
	Account struct {
		ID int `json:"id"`
	} `json:"account"`
	Devices []HomescreenDevice `json:"devices"`
}

// HomescreenDevice is one entry in the homescreen device list. Cameras
// and sync modules share the list, discriminated by DeviceType.
type HomescreenDevice struct {
	DeviceID   int    `json:"device_id"`
	DeviceType string `json:"device_type"` // "camera" or "sync_module"
	Name       string `json:"name"`
	Thumbnail  string `json:"thumbnail"`
	Battery    *int   `json:"battery,omitempty"`
	Status     string `json:"status"`
}
