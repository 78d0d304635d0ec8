package blink

import (
	"log/slog"
	"testing"

	"blink-cli/pkg/models"
)

func TestSyncModuleUpdateFromSummary(t *testing.T) {
	sm := newSyncModule(nil, models.Network{ID: 1234, Name: "Home"}, 5, slog.Default())

	sm.updateFromSummary(&models.SyncModuleSummary{
		ID: 1, NetworkID: 1234, Serial: "SM001", Status: "online",
	})
	if sm.Serial != "SM001" || sm.Status != "online" {
		t.Fatalf("unexpected module after full summary: %+v", sm)
	}
	if !sm.Online() {
		t.Error("expected online status")
	}

	// A sparse summary keeps the known identity.
	sm.updateFromSummary(&models.SyncModuleSummary{Status: "offline"})
	if sm.Serial != "SM001" {
		t.Errorf("sparse summary cleared serial: %q", sm.Serial)
	}
	if sm.Online() {
		t.Error("expected offline status after update")
	}
}

func TestSyncModuleCameraIndex(t *testing.T) {
	sm := newSyncModule(nil, models.Network{ID: 1234, Name: "Home"}, 5, slog.Default())

	cam := newCamera(nil, 1234, 5)
	cam.Name = "Front Door"
	sm.addCamera(cam)

	for _, name := range []string{"Front Door", "front door", "FRONT DOOR"} {
		if got := sm.Camera(name); got != cam {
			t.Errorf("lookup %q = %v, want the registered camera", name, got)
		}
	}
	if sm.Camera("garage") != nil {
		t.Error("expected nil for an unknown camera")
	}
}
