// Package importer parses Netscape bookmark HTML exports into a node tree.
package importer

import (
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/tabgrid/tabgrid/internal/model"
)

// ParseHTML parses Netscape bookmark HTML and returns the nodes found at the
// top level, in document order. Folder hierarchy is preserved as children.
func ParseHTML(r io.Reader) ([]*model.Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	root := &model.Node{}

	// Folders are declared by an H3 and filled by the DL that follows it, so
	// the H3's node waits here until its DL arrives.
	stack := []*model.Node{root}
	var pending *model.Node

	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "h3":
				name := textContent(n)
				if name != "" {
					folder := &model.Node{
						ID:        model.GenerateID(),
						Title:     name,
						DateAdded: parseAddDate(n),
					}
					parent := stack[len(stack)-1]
					parent.Children = append(parent.Children, folder)
					pending = folder
				}
				return

			case "a":
				href := attr(n, "href")
				if href == "" {
					return
				}
				title := textContent(n)
				if title == "" {
					title = href
				}
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, &model.Node{
					ID:        model.GenerateID(),
					Title:     title,
					URL:       href,
					DateAdded: parseAddDate(n),
				})
				return

			case "dl":
				pushed := false
				if pending != nil {
					stack = append(stack, pending)
					pending = nil
					pushed = true
				}
				for c := n.FirstChild; c != nil; c = c.NextSibling {
					parse(c)
				}
				if pushed {
					stack = stack[:len(stack)-1]
				}
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}

	parse(doc)
	return root.Children, nil
}

// parseAddDate reads the ADD_DATE attribute (unix seconds) and returns unix
// milliseconds, defaulting to now.
func parseAddDate(n *html.Node) int64 {
	if addDate := attr(n, "add_date"); addDate != "" {
		if ts, err := strconv.ParseInt(addDate, 10, 64); err == nil {
			return ts * 1000
		}
	}
	return time.Now().UnixMilli()
}

// textContent returns the trimmed text content of a node.
func textContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// attr returns the value of an attribute, case-insensitive.
func attr(n *html.Node, key string) string {
	key = strings.ToLower(key)
	for _, a := range n.Attr {
		if strings.ToLower(a.Key) == key {
			return a.Val
		}
	}
	return ""
}
