package blink

import (
	"log/slog"
	"sort"
	"strings"

	"blink-cli/pkg/models"
)

// onlineStatuses maps the sync-module status string to an up/down view.
var onlineStatuses = map[string]bool{
	"online":      true,
	"onboarded":   true,
	"onboarding":  false,
	"unavailable": false,
	"offline":     false,
}

// SyncModule is the local model of one hub device and the cameras it
// owns. One sync module exists per onboarded network.
type SyncModule struct {
	ID        int
	NetworkID int
	Name      string
	Serial    string
	Status    string

	// Armed comes from the dedicated network-status endpoint; the
	// aggregate summary lags on this field.
	Armed bool

	cameras []*Camera
	index   map[string]*Camera // folded name -> camera

	historySize int
	api         API
	log         *slog.Logger
}

func newSyncModule(api API, network models.Network, historySize int, log *slog.Logger) *SyncModule {
	return &SyncModule{
		NetworkID:   network.ID,
		Name:        network.Name,
		index:       make(map[string]*Camera),
		historySize: historySize,
		api:         api,
		log:         log.With("network", network.ID),
	}
}

// Online reports whether the hub's status string counts as up.
func (s *SyncModule) Online() bool {
	return onlineStatuses[strings.ToLower(s.Status)]
}

// Camera looks up an owned camera by name, case-insensitively.
func (s *SyncModule) Camera(name string) *Camera {
	return s.index[foldName(name)]
}

// Cameras returns the owned cameras sorted by name.
func (s *SyncModule) Cameras() []*Camera {
	out := make([]*Camera, len(s.cameras))
	copy(out, s.cameras)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Arm arms every camera on the module's network.
func (s *SyncModule) Arm() error {
	if err := s.api.ArmNetwork(s.NetworkID); err != nil {
		return err
	}
	s.Armed = true
	return nil
}

// Disarm disarms the module's network.
func (s *SyncModule) Disarm() error {
	if err := s.api.DisarmNetwork(s.NetworkID); err != nil {
		return err
	}
	s.Armed = false
	return nil
}

// Events fetches the network's recent event log.
func (s *SyncModule) Events() ([]models.Event, error) {
	return s.api.GetEvents(s.NetworkID)
}

func (s *SyncModule) addCamera(c *Camera) {
	s.cameras = append(s.cameras, c)
	s.index[foldName(c.Name)] = c
}

// updateFromSummary merges the hub's own summary. Absent fields keep
// their previous values.
func (s *SyncModule) updateFromSummary(summary *models.SyncModuleSummary) {
	if summary.ID != 0 {
		s.ID = summary.ID
	}
	if summary.NetworkID != 0 {
		s.NetworkID = summary.NetworkID
	}
	if summary.Serial != "" {
		s.Serial = summary.Serial
	}
	if summary.Name != "" {
		s.Name = summary.Name
	}
	if summary.Status != "" {
		s.Status = summary.Status
	}
}

// refresh pulls the module's status, summary and camera roster, and
// propagates each camera payload. Field-level failures log and keep the
// prior cached values; only an authentication failure aborts.
func (s *SyncModule) refresh(home *models.HomescreenResponse, newClips map[int]string, seed bool) error {
	status, err := s.api.GetNetworkStatus(s.NetworkID)
	if err != nil {
		if authFailure(err) {
			return err
		}
		s.log.Warn("network status fetch failed, keeping previous arm state", "error", err)
	} else {
		s.Armed = status.Armed
	}

	summary, err := s.api.GetSyncModule(s.NetworkID)
	if err != nil {
		if authFailure(err) {
			return err
		}
		s.log.Warn("sync module summary fetch failed, keeping previous state", "error", err)
	} else {
		s.updateFromSummary(summary)
	}

	roster, err := s.api.GetCameras(s.NetworkID)
	if err != nil {
		if authFailure(err) {
			return err
		}
		s.log.Warn("camera roster fetch failed, keeping previous state", "error", err)
		roster = nil
	}

	for _, payload := range roster {
		cam := s.Camera(payload.Name)
		if cam == nil {
			if !seed {
				// Cameras join at discovery; a mid-flight addition
				// waits for the next setup.
				s.log.Debug("unknown camera in roster", "camera", payload.Name)
				continue
			}
			cam = newCamera(s.api, s.NetworkID, s.historySize)
			cam.Name = payload.Name
			s.addCamera(cam)
		}
		cam.update(payload, homescreenThumbnail(home, payload.ID), newClips[payload.ID], seed)
	}
	return nil
}

// homescreenThumbnail finds the account-level thumbnail for a camera
// ID, the fallback when the roster entry carries none.
func homescreenThumbnail(home *models.HomescreenResponse, cameraID int) string {
	if home == nil {
		return ""
	}
	for _, d := range home.Devices {
		if d.DeviceType == "camera" && d.DeviceID == cameraID {
			return d.Thumbnail
		}
	}
	return ""
}

func foldName(name string) string {
	return strings.ToLower(name)
}
