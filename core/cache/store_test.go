package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestFileStoreRoundTrip proves a written entry comes back with a timestamp
func TestFileStoreRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	if err := store.Put("exchange_EUR", []byte(`{"rate_to_target":"0.92"}`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	payload, writtenAt, ok := store.Get("exchange_EUR")
	if !ok {
		t.Fatal("Get missed a just-written entry")
	}
	if string(payload) != `{"rate_to_target":"0.92"}` {
		t.Errorf("payload mismatch: %s", payload)
	}
	if time.Since(writtenAt) > time.Minute {
		t.Errorf("write timestamp implausibly old: %v", writtenAt)
	}
}

// TestFileStoreMissingKey proves an unknown key is a clean miss
func TestFileStoreMissingKey(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	if _, _, ok := store.Get("rapidapi_atlantis"); ok {
		t.Error("Get reported a hit for a key that was never written")
	}
}

// TestFreshRespectsTTL proves staleness is judged against the write timestamp
func TestFreshRespectsTTL(t *testing.T) {
	store := NewMemoryStore()
	store.PutAt("all_cities", []byte(`["Lisbon"]`), time.Now().Add(-8*24*time.Hour))

	if _, ok := Fresh(store, "all_cities", TTLWeekly); ok {
		t.Error("entry older than the weekly window reported fresh")
	}

	store.PutAt("all_cities", []byte(`["Lisbon"]`), time.Now().Add(-6*24*time.Hour))
	if _, ok := Fresh(store, "all_cities", TTLWeekly); !ok {
		t.Error("entry within the weekly window reported stale")
	}
}

// TestReadFreshMalformedPayloadIsMiss proves a corrupt cache file never propagates
func TestReadFreshMalformedPayloadIsMiss(t *testing.T) {
	store := NewMemoryStore()
	if err := store.Put("teleport_lisbon", []byte(`{not json`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	if _, ok := ReadFresh[map[string]string](store, "teleport_lisbon", TTLDaily); ok {
		t.Error("malformed payload decoded as a hit; want miss")
	}
}

// TestFileStoreStaleMtime proves the file mtime drives freshness
func TestFileStoreStaleMtime(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	if err := store.Put("teleport_berlin", []byte(`{}`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	// Age the file two days
	old := time.Now().Add(-48 * time.Hour)
	if err := os.Chtimes(filepath.Join(dir, "teleport_berlin.json"), old, old); err != nil {
		t.Fatalf("Chtimes failed: %v", err)
	}

	if _, ok := Fresh(store, "teleport_berlin", TTLDaily); ok {
		t.Error("two-day-old entry reported fresh against a 24h window")
	}
	if _, _, ok := store.Get("teleport_berlin"); !ok {
		t.Error("stale entry should still be readable via Get")
	}
}

// TestWriteOverwritesWholesale proves refresh replaces the previous payload
func TestWriteOverwritesWholesale(t *testing.T) {
	store := NewMemoryStore()

	if err := Write(store, "exchange_GBP", map[string]string{"rate_to_target": "0.78"}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := Write(store, "exchange_GBP", map[string]string{"rate_to_target": "0.80"}); err != nil {
		t.Fatalf("second Write failed: %v", err)
	}

	value, ok := ReadFresh[map[string]string](store, "exchange_GBP", TTLDaily)
	if !ok {
		t.Fatal("ReadFresh missed a just-written entry")
	}
	if value["rate_to_target"] != "0.80" {
		t.Errorf("expected overwritten value 0.80, got %s", value["rate_to_target"])
	}
	if store.Len() != 1 {
		t.Errorf("expected a single entry after overwrite, got %d", store.Len())
	}
}
