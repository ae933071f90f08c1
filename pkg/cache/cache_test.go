package cache

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	key := NewDefaultKeyer().LayoutKey(Hash([]byte(`{"root":{}}`)), LayoutKeyOpts{Width: 320, Height: 200})
	if err := c.Set(ctx, key, []byte(`{"nodes":[]}`), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, key)
	if err != nil || hit || data != nil {
		t.Errorf("Get after Set = %q, %v, %v; want a miss", data, hit, err)
	}
	if err := c.Delete(ctx, key); err != nil {
		t.Errorf("Delete: %v", err)
	}
}

func TestHash(t *testing.T) {
	doc := []byte(`{"viewport":{"width":320,"height":200}}`)
	if Hash(doc) != Hash(append([]byte(nil), doc...)) {
		t.Error("Hash is not deterministic")
	}
	if Hash(doc) == Hash([]byte(`{"viewport":{"width":321,"height":200}}`)) {
		t.Error("documents differing in one byte share a hash")
	}
	if got := len(Hash(doc)); got != 64 {
		t.Errorf("len(Hash) = %d, want 64 hex digits", got)
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	lk1 := k.LayoutKey("hash123", LayoutKeyOpts{Width: 800, Height: 600})
	lk2 := k.LayoutKey("hash123", LayoutKeyOpts{Width: 800, Height: 601})
	if lk1 == lk2 {
		t.Error("Different LayoutKeyOpts should produce different keys")
	}
	if lk1 != k.LayoutKey("hash123", LayoutKeyOpts{Width: 800, Height: 600}) {
		t.Error("LayoutKey should be deterministic")
	}
	if !strings.HasPrefix(lk1, "layout:") || len(lk1) != len("layout:")+64 {
		t.Errorf("LayoutKey unexpected: %s", lk1)
	}

	ak1 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "svg"})
	ak2 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "png"})
	if ak1 == ak2 {
		t.Error("Different ArtifactKeyOpts should produce different keys")
	}
	if KeyType(ak1) != "artifact" {
		t.Errorf("KeyType(%s) = %s", ak1, KeyType(ak1))
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "api:v1:")

	opts := LayoutKeyOpts{Width: 10, Height: 10}
	if got, want := scoped.LayoutKey("h", opts), "api:v1:"+inner.LayoutKey("h", opts); got != want {
		t.Errorf("ScopedKeyer LayoutKey = %s, want %s", got, want)
	}
	key := scoped.ArtifactKey("h", ArtifactKeyOpts{Format: "dot"})
	if !strings.HasPrefix(key, "api:v1:artifact:") {
		t.Errorf("ScopedKeyer ArtifactKey should be prefixed: %s", key)
	}
	if KeyType(key) != "artifact" {
		t.Errorf("KeyType should ignore the scope: %s", KeyType(key))
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	scoped := NewScopedKeyer(nil, "prefix:")
	opts := LayoutKeyOpts{Width: 1, Height: 1}
	if got, want := scoped.LayoutKey("h", opts), "prefix:"+NewDefaultKeyer().LayoutKey("h", opts); got != want {
		t.Errorf("Unexpected key with nil inner: %s", got)
	}
}

func TestKeyType(t *testing.T) {
	tests := map[string]string{
		"layout:abc":          "layout",
		"api:v1:artifact:abc": "artifact",
		"abc":                 "unknown",
		":abc":                "unknown",
	}
	for key, want := range tests {
		if got := KeyType(key); got != want {
			t.Errorf("KeyType(%q) = %q, want %q", key, got, want)
		}
	}
}
