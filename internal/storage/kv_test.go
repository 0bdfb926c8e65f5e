package storage

import (
	"testing"
)

func TestKVStoreRoundTrip(t *testing.T) {
	// Keep the data directory inside the test sandbox
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_DATA_HOME", home)

	kv, err := OpenKV("tui-tower-test")
	if err != nil {
		t.Skipf("no writable data directory: %v", err)
	}

	data, err := kv.LoadItem("tower-highscore")
	if err != nil {
		t.Fatalf("LoadItem() on empty store failed: %v", err)
	}
	if data != nil {
		t.Errorf("LoadItem() on empty store = %q, want nil", data)
	}

	if err := kv.SaveItem("tower-highscore", []byte("4200")); err != nil {
		t.Fatalf("SaveItem() failed: %v", err)
	}
	data, err = kv.LoadItem("tower-highscore")
	if err != nil {
		t.Fatalf("LoadItem() failed: %v", err)
	}
	if string(data) != "4200" {
		t.Errorf("LoadItem() = %q, want 4200", data)
	}
}
