package blink

import (
	"errors"
	"testing"
	"time"

	"blink-cli/pkg/models"
)

// fakeAPI is an in-memory stand-in for the REST client. Every call is
// recorded so tests can assert that throttled cycles stay local.
type fakeAPI struct {
	calls []string

	networks   []models.Network
	homescreen *models.HomescreenResponse
	statuses   map[int]models.NetworkStatus
	syncs      map[int]models.SyncModuleSummary
	cameras    map[int][]models.CameraSummary
	clips      []models.VideoClip

	camerasErr error
}

func (f *fakeAPI) record(call string) { f.calls = append(f.calls, call) }

func (f *fakeAPI) Login() (string, error) {
	f.record("login")
	return "tok", nil
}

func (f *fakeAPI) Networks() []models.Network { return f.networks }

func (f *fakeAPI) GetHomescreen() (*models.HomescreenResponse, error) {
	f.record("homescreen")
	if f.homescreen == nil {
		return &models.HomescreenResponse{}, nil
	}
	return f.homescreen, nil
}

func (f *fakeAPI) GetNetworkStatus(networkID int) (*models.NetworkStatus, error) {
	f.record("status")
	s := f.statuses[networkID]
	return &s, nil
}

func (f *fakeAPI) GetSyncModule(networkID int) (*models.SyncModuleSummary, error) {
	f.record("syncmodule")
	s := f.syncs[networkID]
	return &s, nil
}

func (f *fakeAPI) GetCameras(networkID int) ([]models.CameraSummary, error) {
	f.record("cameras")
	if f.camerasErr != nil {
		return nil, f.camerasErr
	}
	return f.cameras[networkID], nil
}

func (f *fakeAPI) GetChangedVideos(since time.Time, page int) ([]models.VideoClip, error) {
	f.record("videos")
	return f.clips, nil
}

func (f *fakeAPI) GetEvents(networkID int) ([]models.Event, error) {
	f.record("events")
	return nil, nil
}

func (f *fakeAPI) GetThumbnail(address string) ([]byte, error) { return []byte("jpg"), nil }
func (f *fakeAPI) GetClip(address string) ([]byte, error)      { return []byte("mp4"), nil }

func (f *fakeAPI) ArmNetwork(networkID int) error    { f.record("arm"); return nil }
func (f *fakeAPI) DisarmNetwork(networkID int) error { f.record("disarm"); return nil }

func (f *fakeAPI) SetCameraMotion(networkID, cameraID int, enabled bool) error {
	f.record("motion")
	return nil
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		networks: []models.Network{
			{ID: 1234, Name: "Home", Onboarded: true},
			{ID: 9999, Name: "Cabin", Onboarded: false},
		},
		statuses: map[int]models.NetworkStatus{
			1234: {ID: 1234, Armed: true},
		},
		syncs: map[int]models.SyncModuleSummary{
			1234: {ID: 1, NetworkID: 1234, Name: "Home", Serial: "SM001", Status: "online"},
		},
		cameras: map[int][]models.CameraSummary{
			1234: {
				{ID: 7, NetworkID: 1234, Name: "Front Door", Serial: "CAM007",
					Battery: intPtr(3), Temperature: intPtr(68), WifiStrength: intPtr(-60),
					Thumbnail: strPtr("/thumb/7"), Enabled: boolPtr(true)},
				{ID: 8, NetworkID: 1234, Name: "Back Yard", Serial: "CAM008",
					Battery: intPtr(2), Temperature: intPtr(75), WifiStrength: intPtr(-80)},
			},
		},
	}
}

func newTestBlink(t *testing.T, api *fakeAPI) *Blink {
	t.Helper()
	b := New(api, Config{RefreshInterval: 30 * time.Second, ClipHistorySize: 5})
	if err := b.Setup(); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	return b
}

func TestSetupDiscoversOnboardedNetworks(t *testing.T) {
	api := newFakeAPI()
	b := newTestBlink(t, api)

	if got := len(b.SyncModules()); got != 1 {
		t.Fatalf("expected 1 sync module for 1 onboarded network, got %d", got)
	}
	sm := b.SyncModules()[0]
	if sm.NetworkID != 1234 || sm.Serial != "SM001" {
		t.Errorf("unexpected sync module %+v", sm)
	}
	if !sm.Armed {
		t.Error("expected arm state from the network status endpoint")
	}
	if got := len(b.Cameras()); got != 2 {
		t.Fatalf("expected 2 cameras, got %d", got)
	}

	for _, cam := range b.Cameras() {
		if cam.NetworkID != sm.NetworkID {
			t.Errorf("camera %q network %d != module network %d", cam.Name, cam.NetworkID, sm.NetworkID)
		}
	}
}

func TestSetupNoOnboardedNetwork(t *testing.T) {
	api := newFakeAPI()
	api.networks = []models.Network{{ID: 1, Name: "Home", Onboarded: false}}

	b := New(api, Config{})
	if err := b.Setup(); !errors.Is(err, ErrNoOnboardedNetwork) {
		t.Fatalf("expected ErrNoOnboardedNetwork, got %v", err)
	}
}

func TestCaseInsensitiveLookup(t *testing.T) {
	b := newTestBlink(t, newFakeAPI())

	want := b.Camera("Front Door")
	if want == nil {
		t.Fatal("camera not found under its registered name")
	}
	for _, name := range []string{"front door", "FRONT DOOR", "Front door"} {
		if got := b.Camera(name); got != want {
			t.Errorf("lookup %q returned %p, want %p", name, got, want)
		}
	}

	if b.SyncModule("home") == nil || b.SyncModule("HOME") == nil {
		t.Error("sync module lookup should be case-insensitive")
	}
}

func TestThrottledRefreshMakesNoRemoteCalls(t *testing.T) {
	api := newFakeAPI()
	b := newTestBlink(t, api)

	before := b.Camera("Front Door").Battery
	api.calls = nil

	if err := b.Refresh(false); err != nil {
		t.Fatalf("throttled refresh should be a no-op success, got %v", err)
	}
	if len(api.calls) != 0 {
		t.Fatalf("throttled refresh made remote calls: %v", api.calls)
	}
	if got := b.Camera("Front Door").Battery; got != before {
		t.Errorf("throttled refresh changed state: battery %d -> %d", before, got)
	}
}

func TestForcedRefreshBypassesThrottle(t *testing.T) {
	api := newFakeAPI()
	b := newTestBlink(t, api)
	api.calls = nil

	if err := b.Refresh(true); err != nil {
		t.Fatalf("forced refresh: %v", err)
	}
	if len(api.calls) == 0 {
		t.Fatal("forced refresh made no remote calls")
	}
}

func TestRefreshMotionDetection(t *testing.T) {
	api := newFakeAPI()
	b := newTestBlink(t, api)

	// Cycle 1: a fresh clip for Front Door.
	api.clips = []models.VideoClip{
		{CameraID: 7, CameraName: "Front Door", Address: "/clip/1", CreatedAt: "2026-08-29T10:00:00+00:00"},
	}
	if err := b.Refresh(true); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if !b.Camera("Front Door").MotionDetected {
		t.Error("expected motion on a fresh clip")
	}
	if b.Camera("Back Yard").MotionDetected {
		t.Error("expected no motion on a camera without clips")
	}

	// Cycle 2: the same clip listed again.
	if err := b.Refresh(true); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if b.Camera("Front Door").MotionDetected {
		t.Error("expected no motion when the clip was already known")
	}

	// Cycle 3: a new clip supersedes it.
	api.clips = []models.VideoClip{
		{CameraID: 7, CameraName: "Front Door", Address: "/clip/2", CreatedAt: "2026-08-29T10:05:00+00:00"},
	}
	if err := b.Refresh(true); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if !b.Camera("Front Door").MotionDetected {
		t.Error("expected motion on the superseding clip")
	}
}

func TestRefreshFieldFailureKeepsPriorState(t *testing.T) {
	api := newFakeAPI()
	b := newTestBlink(t, api)

	before := b.Camera("Front Door").Battery
	api.camerasErr = errors.New("boom")

	if err := b.Refresh(true); err != nil {
		t.Fatalf("field-level failure must not abort the cycle, got %v", err)
	}
	if got := b.Camera("Front Door").Battery; got != before {
		t.Errorf("battery changed across a failed roster fetch: %d -> %d", before, got)
	}
}

func TestHomescreenThumbnailFallbackDuringRefresh(t *testing.T) {
	api := newFakeAPI()
	// The roster stops carrying a thumbnail for camera 8; the
	// homescreen still has one.
	api.homescreen = &models.HomescreenResponse{
		Devices: []models.HomescreenDevice{
			{DeviceID: 8, DeviceType: "camera", Name: "Back Yard", Thumbnail: "/home/8"},
		},
	}
	b := newTestBlink(t, api)

	if got := b.Camera("Back Yard").ThumbnailAddress; got != "/home/8" {
		t.Errorf("expected homescreen fallback thumbnail, got %q", got)
	}
}
