// Package blink keeps a local model of a Blink home-security system
// (sync modules and their cameras) synchronized with the cloud service
// through throttled polling. All state transitions are driven by
// explicit refresh cycles; nothing is pushed.
package blink

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"blink-cli/internal/client"
	"blink-cli/pkg/models"
)

// API is the slice of the REST client the orchestrator drives. It is
// satisfied by *client.BlinkClient; tests substitute a fake.
type API interface {
	Login() (string, error)
	Networks() []models.Network
	GetHomescreen() (*models.HomescreenResponse, error)
	GetNetworkStatus(networkID int) (*models.NetworkStatus, error)
	GetSyncModule(networkID int) (*models.SyncModuleSummary, error)
	GetCameras(networkID int) ([]models.CameraSummary, error)
	GetChangedVideos(since time.Time, page int) ([]models.VideoClip, error)
	GetEvents(networkID int) ([]models.Event, error)
	GetThumbnail(address string) ([]byte, error)
	GetClip(address string) ([]byte, error)
	ArmNetwork(networkID int) error
	DisarmNetwork(networkID int) error
	SetCameraMotion(networkID, cameraID int, enabled bool) error
}

var _ API = (*client.BlinkClient)(nil)

// Defaults for the recognized tuning options.
const (
	DefaultRefreshInterval = 30 * time.Second
	DefaultClipHistorySize = 5
)

// Config tunes one Blink instance.
type Config struct {
	// RefreshInterval is the minimum wall-clock gap between full
	// refresh cycles. Zero means DefaultRefreshInterval.
	RefreshInterval time.Duration
	// ClipHistorySize caps the per-camera clip history. Zero means
	// DefaultClipHistorySize.
	ClipHistorySize int
	// Logger may be nil; slog.Default is used then.
	Logger *slog.Logger
}

// Blink composes the auth session, device tree, refresh throttle and
// per-camera media cache. Instances are independent; a single instance
// never runs two refresh cycles at once.
type Blink struct {
	api API
	cfg Config
	log *slog.Logger

	refreshMu sync.Mutex // guards the whole cycle; TryLock, never queue

	throttle    *throttle
	lastRefresh time.Time // high-water mark for the changed-videos query

	modules     []*SyncModule
	moduleIndex map[string]*SyncModule // folded name -> module
}

// New builds an orchestrator around an authenticated-capable API.
func New(api API, cfg Config) *Blink {
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = DefaultRefreshInterval
	}
	if cfg.ClipHistorySize <= 0 {
		cfg.ClipHistorySize = DefaultClipHistorySize
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Blink{
		api:         api,
		cfg:         cfg,
		log:         cfg.Logger.With("component", "blink"),
		throttle:    newThrottle(cfg.RefreshInterval),
		moduleIndex: make(map[string]*SyncModule),
	}
}

// Setup logs in and discovers the device tree: one sync module per
// onboarded network, each with its camera roster seeded. It must run
// before Refresh.
func (b *Blink) Setup() error {
	if _, err := b.api.Login(); err != nil {
		return err
	}

	var onboarded []models.Network
	for _, n := range b.api.Networks() {
		if n.Onboarded {
			onboarded = append(onboarded, n)
		}
	}
	if len(onboarded) == 0 {
		return ErrNoOnboardedNetwork
	}
	if len(onboarded) > 1 {
		b.log.Warn("account has multiple onboarded networks, refreshing all of them",
			"count", len(onboarded))
	}

	home := b.fetchHomescreen()

	b.modules = nil
	b.moduleIndex = make(map[string]*SyncModule)
	for _, n := range onboarded {
		sm := newSyncModule(b.api, n, b.cfg.ClipHistorySize, b.log)
		if err := sm.refresh(home, nil, true); err != nil {
			return fmt.Errorf("discover network %d: %w", n.ID, err)
		}
		b.modules = append(b.modules, sm)
		b.moduleIndex[foldName(sm.Name)] = sm
	}

	b.lastRefresh = b.throttle.now()
	b.throttle.mark()
	return nil
}

// Refresh runs one full refresh cycle. Without force, a cycle inside
// the minimum interval is skipped as a successful no-op with no remote
// calls. A cycle while another is in flight is rejected, never
// interleaved. Field-level failures log and keep prior cached values;
// only an authentication failure aborts the cycle.
func (b *Blink) Refresh(force bool) error {
	if !b.refreshMu.TryLock() {
		return ErrRefreshInFlight
	}
	defer b.refreshMu.Unlock()

	if !b.throttle.ready(force) {
		b.log.Debug("refresh throttled")
		return nil
	}
	cycleStart := b.throttle.now()

	home := b.fetchHomescreen()

	newClips, err := b.fetchNewClips()
	if err != nil {
		if authFailure(err) {
			return err
		}
		b.log.Warn("could not check for new clips", "error", err)
	}

	for _, cam := range b.Cameras() {
		cam.beginCycle()
	}
	for _, sm := range b.modules {
		if err := sm.refresh(home, newClips, false); err != nil {
			return err
		}
	}

	b.lastRefresh = cycleStart
	b.throttle.mark()
	return nil
}

// fetchHomescreen is best-effort: the aggregate only feeds thumbnail
// fallbacks, so a failure degrades rather than aborts.
func (b *Blink) fetchHomescreen() *models.HomescreenResponse {
	home, err := b.api.GetHomescreen()
	if err != nil {
		b.log.Warn("homescreen fetch failed, thumbnail fallback unavailable", "error", err)
		return nil
	}
	return home
}

// fetchNewClips maps camera ID to the newest clip address recorded
// since the last completed cycle.
func (b *Blink) fetchNewClips() (map[int]string, error) {
	clips, err := b.api.GetChangedVideos(b.lastRefresh, 0)
	if err != nil {
		return nil, err
	}
	newest := make(map[int]string, len(clips))
	for _, clip := range clips {
		if clip.Deleted || clip.Address == "" {
			continue
		}
		newest[clip.CameraID] = clip.Address
	}
	return newest, nil
}

// SyncModules returns the discovered modules in network order.
func (b *Blink) SyncModules() []*SyncModule {
	out := make([]*SyncModule, len(b.modules))
	copy(out, b.modules)
	return out
}

// SyncModule looks up a module by network name, case-insensitively.
func (b *Blink) SyncModule(name string) *SyncModule {
	return b.moduleIndex[foldName(name)]
}

// Camera looks up a camera across every module, case-insensitively.
func (b *Blink) Camera(name string) *Camera {
	for _, sm := range b.modules {
		if c := sm.Camera(name); c != nil {
			return c
		}
	}
	return nil
}

// Cameras returns every discovered camera.
func (b *Blink) Cameras() []*Camera {
	var out []*Camera
	for _, sm := range b.modules {
		out = append(out, sm.Cameras()...)
	}
	return out
}

// LastRefresh reports when the last executed cycle started.
func (b *Blink) LastRefresh() time.Time {
	return b.lastRefresh
}
