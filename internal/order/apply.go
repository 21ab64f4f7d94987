package order

import (
	"math"
	"sort"

	"github.com/tabgrid/tabgrid/internal/model"
)

// Apply re-sorts the folders by their persisted rank. The sort is stable:
// folders without a rank keep their relative fetch order and land after every
// ranked folder. Links are untouched. Apply is pure and idempotent.
func Apply(data model.BookmarksData, rank map[string]int) model.BookmarksData {
	folders := make([]model.Folder, len(data.Folders))
	copy(folders, data.Folders)

	sort.SliceStable(folders, func(i, j int) bool {
		return rankOf(rank, folders[i].Info.ID) < rankOf(rank, folders[j].Info.ID)
	})

	return model.BookmarksData{Folders: folders, Links: data.Links}
}

// RankOrder converts an ordered id list into the rank map Apply consumes.
func RankOrder(ids []string) map[string]int {
	rank := make(map[string]int, len(ids))
	for i, id := range ids {
		rank[id] = i
	}
	return rank
}

func rankOf(rank map[string]int, id string) int {
	if r, ok := rank[id]; ok {
		return r
	}
	return math.MaxInt
}
