package terrain

import "testing"

func TestIndexInsertContains(t *testing.T) {
	ix := NewChunkIndex()
	coord := ChunkCoord{X: 1, Z: -2}

	if ix.Contains(coord) {
		t.Fatalf("empty index claims to contain %v", coord)
	}
	if err := ix.Insert(coord, ChunkHandle{Render: 7, Body: 9}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if !ix.Contains(coord) {
		t.Fatalf("index missing %v after Insert", coord)
	}
	if ix.Len() != 1 {
		t.Errorf("Len = %d, want 1", ix.Len())
	}
}

func TestIndexDuplicateInsertFails(t *testing.T) {
	ix := NewChunkIndex()
	coord := ChunkCoord{X: 0, Z: 0}

	if err := ix.Insert(coord, ChunkHandle{Render: 1}); err != nil {
		t.Fatalf("first Insert failed: %v", err)
	}
	if err := ix.Insert(coord, ChunkHandle{Render: 2}); err == nil {
		t.Fatalf("duplicate Insert should fail")
	}

	// the original handle must survive the rejected insert
	handle, ok := ix.Remove(coord)
	if !ok || handle.Render != 1 {
		t.Errorf("handle after duplicate insert = %v (ok=%v), want Render=1", handle, ok)
	}
}

func TestIndexRemove(t *testing.T) {
	ix := NewChunkIndex()
	coord := ChunkCoord{X: 5, Z: 5}

	if _, ok := ix.Remove(coord); ok {
		t.Fatalf("Remove on empty index reported ok")
	}

	want := ChunkHandle{Render: 3, Body: 4}
	if err := ix.Insert(coord, want); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	got, ok := ix.Remove(coord)
	if !ok || got != want {
		t.Errorf("Remove = %v (ok=%v), want %v", got, ok, want)
	}
	if ix.Contains(coord) || ix.Len() != 0 {
		t.Errorf("index still holds %v after Remove", coord)
	}
}

func TestIndexSnapshot(t *testing.T) {
	ix := NewChunkIndex()
	coords := []ChunkCoord{{0, 0}, {1, 0}, {-1, 3}}
	for i, c := range coords {
		if err := ix.Insert(c, ChunkHandle{Render: RenderHandle(i + 1)}); err != nil {
			t.Fatalf("Insert %v failed: %v", c, err)
		}
	}

	seen := make(map[ChunkCoord]bool)
	for _, entry := range ix.Snapshot() {
		seen[entry.Coord] = true
	}
	if len(seen) != len(coords) {
		t.Fatalf("snapshot has %d coords, want %d", len(seen), len(coords))
	}
	for _, c := range coords {
		if !seen[c] {
			t.Errorf("snapshot missing %v", c)
		}
	}
}
