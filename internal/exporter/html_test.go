package exporter

import (
	"strings"
	"testing"

	"gotest.tools/v3/golden"

	"github.com/tabgrid/tabgrid/internal/model"
)

func TestExportHTML_Golden(t *testing.T) {
	root := &model.Node{ID: "0", Children: []*model.Node{
		{ID: "f1", Title: "Development", DateAdded: 1700000000000, Children: []*model.Node{
			{ID: "f2", Title: "React", DateAdded: 1700000100000, Children: []*model.Node{
				{ID: "b1", Title: "TanStack Router", URL: "https://tanstack.com/router", DateAdded: 1700000200000},
			}},
			{ID: "b2", Title: "GitHub", URL: "https://github.com", DateAdded: 1700000300000},
		}},
		{ID: "b3", Title: "Google", URL: "https://www.google.com", DateAdded: 1700000400000},
	}}

	golden.Assert(t, ExportHTML(root), "export-tree.golden")
}

func TestExportHTML_EmptyTree(t *testing.T) {
	html := ExportHTML(&model.Node{ID: "0"})

	if !strings.Contains(html, "<!DOCTYPE NETSCAPE-Bookmark-file-1>") {
		t.Error("expected DOCTYPE declaration")
	}
	if !strings.Contains(html, "<TITLE>Bookmarks</TITLE>") {
		t.Error("expected TITLE element")
	}
	if !strings.Contains(html, "<H1>Bookmarks</H1>") {
		t.Error("expected H1 element")
	}
}

func TestExportHTML_SingleBookmark(t *testing.T) {
	root := &model.Node{ID: "0", Children: []*model.Node{
		{ID: "b1", Title: "GitHub", URL: "https://github.com", DateAdded: 1700000000000},
	}}

	html := ExportHTML(root)

	if !strings.Contains(html, `<A HREF="https://github.com"`) {
		t.Error("expected bookmark URL")
	}
	if !strings.Contains(html, "GitHub</A>") {
		t.Error("expected bookmark title")
	}
	if !strings.Contains(html, `ADD_DATE="1700000000"`) {
		t.Error("expected ADD_DATE in unix seconds")
	}
}

func TestExportHTML_BookmarkInFolder(t *testing.T) {
	root := &model.Node{ID: "0", Children: []*model.Node{
		{ID: "f1", Title: "Development", Children: []*model.Node{
			{ID: "b1", Title: "GitHub", URL: "https://github.com", DateAdded: 1700000000000},
		}},
	}}

	html := ExportHTML(root)

	folderIdx := strings.Index(html, "Development</H3>")
	bookmarkIdx := strings.Index(html, "GitHub</A>")

	if folderIdx == -1 {
		t.Fatal("folder not found in output")
	}
	if bookmarkIdx == -1 {
		t.Fatal("bookmark not found in output")
	}
	if folderIdx > bookmarkIdx {
		t.Error("expected folder to come before its bookmark")
	}
}

func TestExportHTML_NestedFolders(t *testing.T) {
	root := &model.Node{ID: "0", Children: []*model.Node{
		{ID: "f1", Title: "Development", Children: []*model.Node{
			{ID: "f2", Title: "React", Children: []*model.Node{
				{ID: "b1", Title: "TanStack Router", URL: "https://tanstack.com/router"},
			}},
		}},
	}}

	html := ExportHTML(root)

	devIdx := strings.Index(html, "Development</H3>")
	reactIdx := strings.Index(html, "React</H3>")
	tanstackIdx := strings.Index(html, "TanStack Router</A>")

	if devIdx == -1 || reactIdx == -1 || tanstackIdx == -1 {
		t.Fatal("missing elements in output")
	}
	if devIdx >= reactIdx || reactIdx >= tanstackIdx {
		t.Error("expected nesting order: Development > React > TanStack Router")
	}
}

func TestExportHTML_EscapesSpecialCharacters(t *testing.T) {
	root := &model.Node{ID: "0", Children: []*model.Node{
		{
			ID:    "b1",
			Title: "Test <script>alert('xss')</script>",
			URL:   "https://example.com?foo=bar&baz=qux",
		},
	}}

	html := ExportHTML(root)

	if strings.Contains(html, "<script>") {
		t.Error("script tag should be escaped")
	}
	if !strings.Contains(html, "&lt;script&gt;") {
		t.Error("expected escaped script tag")
	}
	if strings.Contains(html, "foo=bar&baz") {
		t.Error("ampersand should be escaped in URL")
	}
	if !strings.Contains(html, "foo=bar&amp;baz") {
		t.Error("expected escaped ampersand in URL")
	}
}

func TestExportHTML_PreservesSiblingOrder(t *testing.T) {
	root := &model.Node{ID: "0", Children: []*model.Node{
		{ID: "f1", Title: "Folder A"},
		{ID: "f2", Title: "Folder B"},
		{ID: "b1", Title: "Root Bookmark", URL: "https://example.com"},
	}}

	html := ExportHTML(root)

	aIdx := strings.Index(html, "Folder A</H3>")
	bIdx := strings.Index(html, "Folder B</H3>")
	linkIdx := strings.Index(html, "Root Bookmark</A>")

	if aIdx == -1 || bIdx == -1 || linkIdx == -1 {
		t.Fatal("missing elements in output")
	}
	if aIdx >= bIdx || bIdx >= linkIdx {
		t.Error("expected document order to match child order")
	}
}

func TestExportHTML_NilRoot(t *testing.T) {
	html := ExportHTML(nil)

	if !strings.Contains(html, "<DL><p>\n</DL><p>") {
		t.Errorf("expected an empty list, got:\n%s", html)
	}
}
