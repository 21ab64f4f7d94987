// Package search is the fuzzy-matching collaborator of the grid: it filters
// folders by their links and ranks flat link lists for the quick-search path.
package search

import (
	"github.com/sahilm/fuzzy"

	"github.com/tabgrid/tabgrid/internal/model"
)

// LinkMatch is a fuzzy match against a single bookmark.
type LinkMatch struct {
	Bookmark       model.Bookmark
	MatchedIndexes []int
	Score          int
}

// linkSource implements fuzzy.Source over bookmarks, matching on title and
// URL together.
type linkSource []model.Bookmark

func (ls linkSource) String(i int) string {
	return ls[i].Title + " " + ls[i].URL
}

func (ls linkSource) Len() int {
	return len(ls)
}

// FilterFolders returns the folders that contain at least one link matching
// the query, each reduced to its matching links in score order. An empty
// query returns the input unchanged.
func FilterFolders(folders []model.Folder, query string) []model.Folder {
	if query == "" {
		return folders
	}

	var result []model.Folder
	for _, f := range folders {
		matches := fuzzy.FindFrom(query, linkSource(f.Links))
		if len(matches) == 0 {
			continue
		}
		links := make([]model.Bookmark, len(matches))
		for i, m := range matches {
			links[i] = f.Links[m.Index]
		}
		result = append(result, model.Folder{Info: f.Info, Links: links})
	}
	return result
}

// FuzzySearchLinks searches a flat link list, best match first. An empty
// query returns nothing.
func FuzzySearchLinks(links []model.Bookmark, query string) []LinkMatch {
	if query == "" {
		return nil
	}

	matches := fuzzy.FindFrom(query, linkSource(links))
	results := make([]LinkMatch, len(matches))
	for i, m := range matches {
		results[i] = LinkMatch{
			Bookmark:       links[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}
	return results
}
