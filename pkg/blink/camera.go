package blink

import (
	"math"

	"blink-cli/pkg/models"
)

// Camera is the local model of one camera. It is owned by its
// SyncModule and mutated only during refresh cycles; the library never
// runs two cycles at once, so reads between cycles are race-free.
type Camera struct {
	ID        int
	Serial    string
	Name      string
	NetworkID int

	// Media references, cached across cycles. Empty means never seen.
	ThumbnailAddress string
	ClipAddress      string

	Battery       int // raw 0-3 scale
	BatteryString string
	TemperatureF  int     // raw sensor value
	TemperatureC  float64 // calibrated
	WifiStrength  int     // raw dBm
	WifiBars      int
	MotionEnabled bool

	// MotionDetected is true for the most recent cycle iff a clip
	// appeared that the previous cycle had not seen.
	MotionDetected bool

	history *clipHistory
	api     API
}

func newCamera(api API, networkID, historySize int) *Camera {
	return &Camera{
		NetworkID: networkID,
		history:   newClipHistory(historySize),
		api:       api,
	}
}

// beginCycle resets per-cycle state ahead of a refresh. Motion always
// starts false and is re-derived from the clips the cycle observes.
func (c *Camera) beginCycle() {
	c.MotionDetected = false
	c.history.beginCycle()
}

// update merges one roster payload into the camera. Only fields present
// in the payload are written; a transient gap in the payload never
// wipes known-good state. fallbackThumbnail is the account-level
// homescreen thumbnail for this camera, used when the roster entry
// carries none. newClip is the clip address observed this cycle ("" for
// none). With cacheOnly set the clip is recorded without deriving
// motion, used when seeding the history at discovery.
func (c *Camera) update(payload models.CameraSummary, fallbackThumbnail, newClip string, cacheOnly bool) {
	if payload.ID != 0 {
		c.ID = payload.ID
	}
	if payload.Serial != "" {
		c.Serial = payload.Serial
	}
	if payload.Name != "" {
		c.Name = payload.Name
	}

	if payload.Enabled != nil {
		c.MotionEnabled = *payload.Enabled
	}
	if payload.Battery != nil {
		c.Battery = *payload.Battery
		c.BatteryString = batteryString(c.Battery)
	}
	if payload.Temperature != nil {
		c.TemperatureF = *payload.Temperature
		c.TemperatureC = calibratedCelsius(c.TemperatureF)
	}
	if payload.WifiStrength != nil {
		c.WifiStrength = *payload.WifiStrength
		c.WifiBars = wifiBars(c.WifiStrength)
	}

	switch {
	case payload.Thumbnail != nil && *payload.Thumbnail != "":
		c.ThumbnailAddress = *payload.Thumbnail
	case fallbackThumbnail != "":
		c.ThumbnailAddress = fallbackThumbnail
	}

	if newClip == "" && payload.Video != nil {
		newClip = *payload.Video
	}
	switch {
	case newClip != "":
		c.ClipAddress = newClip
		if cacheOnly {
			c.history.record(newClip)
		} else {
			c.MotionDetected = c.history.record(newClip)
		}
	case c.ClipAddress != "":
		// Payload gap: carry the cached clip forward so a later
		// re-listing of it does not read as fresh motion.
		c.history.record(c.ClipAddress)
	}
}

// RecentClips returns the clip addresses observed in the most recent
// cycle, oldest first.
func (c *Camera) RecentClips() []string {
	return c.history.entries()
}

// FetchThumbnail downloads the cached thumbnail reference.
func (c *Camera) FetchThumbnail() ([]byte, error) {
	return c.api.GetThumbnail(c.ThumbnailAddress)
}

// FetchClip downloads the cached clip reference.
func (c *Camera) FetchClip() ([]byte, error) {
	return c.api.GetClip(c.ClipAddress)
}

// SetMotion enables or disables motion detection on the camera.
func (c *Camera) SetMotion(enabled bool) error {
	if err := c.api.SetCameraMotion(c.NetworkID, c.ID, enabled); err != nil {
		return err
	}
	c.MotionEnabled = enabled
	return nil
}

var batteryStrings = map[int]string{
	0: "Dead",
	1: "Low",
	2: "OK",
	3: "Full",
}

func batteryString(level int) string {
	if s, ok := batteryStrings[level]; ok {
		return s
	}
	return "Unknown"
}

// calibratedCelsius converts the raw Fahrenheit sensor reading,
// rounded to one decimal place.
func calibratedCelsius(f int) float64 {
	return math.Round((float64(f)-32)/1.8*10) / 10
}

// wifiBars buckets a raw dBm reading into the 0-5 bar scale shown to
// users. Zero means no reading.
func wifiBars(dbm int) int {
	switch {
	case dbm == 0:
		return 0
	case dbm >= -55:
		return 5
	case dbm >= -66:
		return 4
	case dbm >= -77:
		return 3
	case dbm >= -88:
		return 2
	default:
		return 1
	}
}
