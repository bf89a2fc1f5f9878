package engine

import (
	"context"
	"errors"
	"testing"

	"umbrella-rogue/internal/domain"
	"umbrella-rogue/internal/infrastructure/storage"
	"umbrella-rogue/pkg/dungeon"

	"github.com/google/go-cmp/cmp"
)

func TestSnapshot_RoundTrip(t *testing.T) {
	tables, err := dungeon.DefaultTables()
	if err != nil {
		t.Fatal(err)
	}
	cfg := testConfig()
	orig := NewSession(cfg, tables, NewRng(7), nil)
	ctx := context.Background()

	// Немного истории: ходы, предмет в инвентаре, смерть моба, сменённый AI
	for i := 0; i < 5; i++ {
		orig.Step(ctx, domain.Simple(domain.IntentWait))
	}
	giveItem(orig, "свиток замешательства", domain.EffectConfuse)
	confused := addMonster(orig, "орк", 0, 0, 10, 0, 3)
	confused.AI = confused.AI.Confuse(4)
	corpse := addMonster(orig, "тролль", 1, 0, 16, 1, 4)
	orig.combat.ApplyDamage(corpse, 100)

	data, err := storage.Encode(orig.Snapshot())
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	snap, err := storage.Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	restored, err := Restore(cfg, snap, NewRng(7), nil)
	if err != nil {
		t.Fatalf("Restore() error = %v", err)
	}

	if diff := cmp.Diff(orig.World.Map, restored.World.Map); diff != "" {
		t.Errorf("map mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(orig.World.Entities.All(), restored.World.Entities.All()); diff != "" {
		t.Errorf("entities mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(orig.World.Log.Entries(), restored.World.Log.Entries()); diff != "" {
		t.Errorf("message log mismatch (-want +got):\n%s", diff)
	}
	if restored.World.Entities.IndexOf(restored.World.PlayerID) != orig.World.Entities.IndexOf(orig.World.PlayerID) {
		t.Error("player identity must survive by index")
	}
	if restored.State() != orig.State() {
		t.Errorf("state = %s, want %s", restored.State(), orig.State())
	}

	// Новые сущности не должны получить ID предмета из инвентаря
	fresh := restored.World.Entities.Add(&domain.Entity{Name: "новый"})
	for _, it := range restored.Player().Inventory.Items {
		if it.ID == fresh.ID {
			t.Fatalf("id %s reused", fresh.ID)
		}
	}
}

func TestSnapshot_TransientStatesSaveAsPlaying(t *testing.T) {
	s, _ := newTestSession(t)
	s.Step(context.Background(), domain.Simple(domain.IntentOpenInventory))

	if got := s.Snapshot().State; got != StatePlaying {
		t.Errorf("snapshot state = %s, want playing", got)
	}
}

func TestRestore_Corrupt(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(snap *storage.Snapshot)
	}{
		{"unknown state", func(snap *storage.Snapshot) { snap.State = "flying" }},
		{"entity outside the map", func(snap *storage.Snapshot) { snap.Entities[0].Pos = domain.Position{X: 99, Y: 2} }},
		{"player index points to a non-player", func(snap *storage.Snapshot) {
			snap.Entities = append(snap.Entities, &domain.Entity{ID: 50, Name: "камень"})
			snap.PlayerIndex = 1
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestSession(t)
			snap := s.Snapshot()
			tt.mutate(snap)

			_, err := Restore(testConfig(), snap, NewRng(1), nil)
			if !errors.Is(err, domain.ErrSaveCorrupt) {
				t.Errorf("Restore() error = %v, want ErrSaveCorrupt", err)
			}
		})
	}
}
