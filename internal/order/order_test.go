package order_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/tabgrid/tabgrid/internal/host"
	"github.com/tabgrid/tabgrid/internal/model"
	"github.com/tabgrid/tabgrid/internal/order"
)

// memKV is an in-memory host.KV for tests.
type memKV struct {
	data    map[string][]byte
	failSet bool
}

func newMemKV() *memKV {
	return &memKV{data: make(map[string][]byte)}
}

func (m *memKV) Get(key string) ([]byte, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memKV) Set(key string, value []byte) error {
	if m.failSet {
		return errors.New("write failed")
	}
	m.data[key] = value
	return nil
}

func folders(ids ...string) []model.Folder {
	result := make([]model.Folder, len(ids))
	for i, id := range ids {
		result[i] = model.Folder{Info: model.FolderInfo{ID: id, Title: id}}
	}
	return result
}

func folderIDs(data model.BookmarksData) []string {
	return data.FolderIDs()
}

func TestApply_PersistedOrderWins(t *testing.T) {
	data := model.BookmarksData{Folders: folders("X", "Y")}
	rank := map[string]int{"Y": 0, "X": 1}

	got := folderIDs(order.Apply(data, rank))

	if !reflect.DeepEqual(got, []string{"Y", "X"}) {
		t.Errorf("expected [Y X], got %v", got)
	}
	// Input untouched.
	if data.Folders[0].Info.ID != "X" {
		t.Error("Apply must not mutate its input")
	}
}

func TestApply_UnrankedSortLast_StableRelativeOrder(t *testing.T) {
	data := model.BookmarksData{Folders: folders("A", "B", "C", "D")}
	rank := map[string]int{"C": 0}

	got := folderIDs(order.Apply(data, rank))

	if !reflect.DeepEqual(got, []string{"C", "A", "B", "D"}) {
		t.Errorf("expected [C A B D], got %v", got)
	}
}

func TestApply_StaleIDsIgnored(t *testing.T) {
	data := model.BookmarksData{Folders: folders("A", "B")}
	rank := map[string]int{"gone": 0, "B": 1, "A": 2}

	got := folderIDs(order.Apply(data, rank))

	if !reflect.DeepEqual(got, []string{"B", "A"}) {
		t.Errorf("expected [B A], got %v", got)
	}
}

func TestApply_Idempotent(t *testing.T) {
	data := model.BookmarksData{Folders: folders("A", "B", "C")}
	rank := map[string]int{"B": 0}

	once := order.Apply(data, rank)
	twice := order.Apply(once, rank)

	if !reflect.DeepEqual(folderIDs(once), folderIDs(twice)) {
		t.Errorf("Apply not idempotent: %v vs %v", folderIDs(once), folderIDs(twice))
	}
}

func TestApply_EmptyRankKeepsFetchOrder(t *testing.T) {
	data := model.BookmarksData{Folders: folders("A", "B", "C")}

	got := folderIDs(order.Apply(data, map[string]int{}))

	if !reflect.DeepEqual(got, []string{"A", "B", "C"}) {
		t.Errorf("expected fetch order, got %v", got)
	}
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	kv := newMemKV()
	store := order.NewStore(kv)

	if err := store.Save([]string{"F3", "F1", "F2"}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	rank := store.Load()
	want := map[string]int{"F3": 0, "F1": 1, "F2": 2}
	if !reflect.DeepEqual(rank, want) {
		t.Errorf("expected %v, got %v", want, rank)
	}
}

func TestStore_LoadMissingRecord(t *testing.T) {
	store := order.NewStore(newMemKV())

	rank := store.Load()
	if len(rank) != 0 {
		t.Errorf("expected empty map for missing record, got %v", rank)
	}
}

func TestStore_LoadCorruptRecord(t *testing.T) {
	kv := newMemKV()
	kv.data["folder_order_v1"] = []byte("{not json")
	store := order.NewStore(kv)

	rank := store.Load()
	if len(rank) != 0 {
		t.Errorf("expected empty map for corrupt record, got %v", rank)
	}
}

func TestStore_UnavailableContext(t *testing.T) {
	store := order.NewStore(nil)

	if rank := store.Load(); len(rank) != 0 {
		t.Errorf("expected empty map without storage service, got %v", rank)
	}
	if err := store.Save([]string{"a"}); !errors.Is(err, host.ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestStore_SaveFailure(t *testing.T) {
	kv := newMemKV()
	kv.failSet = true
	store := order.NewStore(kv)

	if err := store.Save([]string{"a", "b"}); err == nil {
		t.Fatal("expected error when the key/value write fails")
	}
	if len(kv.data) != 0 {
		t.Error("failed save must not leave a record behind")
	}
}

func TestRankOrder(t *testing.T) {
	rank := order.RankOrder([]string{"a", "b", "c"})
	want := map[string]int{"a": 0, "b": 1, "c": 2}
	if !reflect.DeepEqual(rank, want) {
		t.Errorf("expected %v, got %v", want, rank)
	}
}
