package declcache

import (
	"path/filepath"
	"testing"
)

func openTemp(t *testing.T) (*Cache, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cache.db")
	c, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c, path
}

func TestKey(t *testing.T) {
	a := Key("let x = 1;")
	if len(a) != 64 {
		t.Errorf("key length = %d, want 64 hex chars", len(a))
	}
	if a != Key("let x = 1;") {
		t.Error("same source must produce the same key")
	}
	if a == Key("let x = 2;") {
		t.Error("different sources must produce different keys")
	}
}

func TestRoundTrip(t *testing.T) {
	c, _ := openTemp(t)
	key := Key("function f() {}")

	if err := c.Put(key, "a.sg", "session-1", "declare function f(): void;\n"); err != nil {
		t.Fatalf("Put: %v", err)
	}

	text, found, err := c.Get(key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !found {
		t.Fatal("entry not found after Put")
	}
	if text != "declare function f(): void;\n" {
		t.Errorf("text = %q", text)
	}
}

func TestMiss(t *testing.T) {
	c, _ := openTemp(t)
	_, found, err := c.Get(Key("never stored"))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if found {
		t.Error("unexpected hit")
	}
}

func TestPutReplaces(t *testing.T) {
	c, _ := openTemp(t)
	key := Key("let x = 1;")

	if err := c.Put(key, "a.sg", "s1", "old"); err != nil {
		t.Fatal(err)
	}
	if err := c.Put(key, "a.sg", "s2", "new"); err != nil {
		t.Fatal(err)
	}

	text, found, err := c.Get(key)
	if err != nil || !found {
		t.Fatalf("Get: found=%v err=%v", found, err)
	}
	if text != "new" {
		t.Errorf("text = %q, want %q", text, "new")
	}
}

func TestPersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	first, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	key := Key("const k = 1;")
	if err := first.Put(key, "k.sg", "s1", "declare const k: 1;\n"); err != nil {
		t.Fatal(err)
	}
	if err := first.Close(); err != nil {
		t.Fatal(err)
	}

	second, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()

	text, found, err := second.Get(key)
	if err != nil || !found {
		t.Fatalf("Get after reopen: found=%v err=%v", found, err)
	}
	if text != "declare const k: 1;\n" {
		t.Errorf("text = %q", text)
	}
}
