package main

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tabgrid/tabgrid/internal/checker"
	"github.com/tabgrid/tabgrid/internal/edit"
	"github.com/tabgrid/tabgrid/internal/exporter"
	"github.com/tabgrid/tabgrid/internal/flatten"
	"github.com/tabgrid/tabgrid/internal/host"
	"github.com/tabgrid/tabgrid/internal/importer"
	"github.com/tabgrid/tabgrid/internal/model"
	"github.com/tabgrid/tabgrid/internal/order"
	"github.com/tabgrid/tabgrid/internal/picker"
	"github.com/tabgrid/tabgrid/internal/search"
	"github.com/tabgrid/tabgrid/internal/session"
	"github.com/tabgrid/tabgrid/internal/storage"
	"github.com/tabgrid/tabgrid/internal/tui"
)

func main() {
	if len(os.Args) >= 2 {
		switch os.Args[1] {
		case "help", "--help", "-h":
			printHelp()
			return
		case "import":
			if len(os.Args) < 3 {
				fmt.Fprintf(os.Stderr, "Usage: tabgrid import <file.html>\n")
				os.Exit(1)
			}
			runImport(os.Args[2])
			return
		case "export":
			var outputPath string
			if len(os.Args) >= 3 {
				outputPath = os.Args[2]
			}
			runExport(outputPath)
			return
		case "check":
			runCheck()
			return
		default:
			// Treat as search query (join all remaining args)
			query := strings.Join(os.Args[1:], " ")
			runQuickSearch(query)
			return
		}
	}

	// No args - run the full grid TUI
	runTUI()
}

func printHelp() {
	help := `tabgrid - bookmark grid for your terminal

Usage:
  tabgrid               Open the interactive grid
  tabgrid <query>       Quick search → select → open
  tabgrid import <file> Import bookmarks from Netscape HTML
  tabgrid export [path] Export bookmarks to HTML
  tabgrid check         Report dead links
  tabgrid help          Show this help

Grid Keybindings:
  Navigation:
    j/k         Move between links
    h/l         Move between folders
    gg/G        Jump to first/last link

  Actions:
    Enter/o     Open link in browser
    y           Copy URL to clipboard
    /           Search all folders

  Editing (press e first):
    a           Add folder
    r/R         Rename link/folder
    d/D         Delete link/folder
    m/M         Grab and move link/folder

  Other:
    ?           Show help overlay
    q           Quit

Data Storage:
  ~/.config/tabgrid/bookmarks.db
  ~/.config/tabgrid/config.json
`
	fmt.Print(help)
}

// openService opens the bookmark database and loads the config file.
func openService() (*storage.Service, *storage.Config) {
	path, err := storage.DefaultPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving data path: %v\n", err)
		os.Exit(1)
	}

	svc, err := storage.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening bookmarks: %v\n", err)
		os.Exit(1)
	}

	configPath, err := storage.DefaultConfigFilePath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving config path: %v\n", err)
		os.Exit(1)
	}
	cfg, err := storage.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	return svc, cfg
}

// gridRootID resolves the container configured as the grid root, defaulting
// to the bookmarks bar.
func gridRootID(svc *storage.Service, cfg *storage.Config) string {
	root, err := svc.GetTree()
	if err != nil {
		return storage.BarID
	}
	if node := root.FindChildByTitle(cfg.RootFolder); node != nil {
		return node.ID
	}
	return storage.BarID
}

// runTUI runs the full interactive grid.
func runTUI() {
	svc, cfg := openService()
	defer svc.Close()

	grid := &tui.Grid{}
	status := &tui.StatusLine{}
	gate := &tui.ConfirmGate{}
	state := session.NewState()

	coord := edit.New(edit.Params{
		Host:    svc,
		Orders:  order.NewStore(svc),
		State:   state,
		Notify:  status,
		Confirm: gate,
		Render:  grid.Update,
		RootID:  gridRootID(svc, cfg),
		Exclude: flatten.WithExtraNames(cfg.HiddenFolders),
	})
	if err := coord.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading bookmarks: %v\n", err)
		os.Exit(1)
	}

	app := tui.NewApp(tui.Params{
		Coordinator: coord,
		State:       state,
		Grid:        grid,
		Gate:        gate,
		Status:      status,
		OpenURL:     openURL,
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}
}

// runQuickSearch performs a fuzzy search and opens the selected bookmark.
func runQuickSearch(query string) {
	svc, cfg := openService()
	defer svc.Close()

	root, err := svc.GetTree()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading bookmarks: %v\n", err)
		os.Exit(1)
	}
	data := flatten.FlattenFiltered(root, flatten.WithExtraNames(cfg.HiddenFolders))

	matches := search.FuzzySearchLinks(data.Links, query)
	if len(matches) == 0 {
		fmt.Printf("No bookmarks found for '%s'\n", query)
		os.Exit(0)
	}

	var selected *model.Bookmark

	if len(matches) == 1 {
		selected = &matches[0].Bookmark
		fmt.Printf("Opening: %s\n", selected.Title)
	} else {
		p := picker.New(matches, query)
		program := tea.NewProgram(p)
		finalModel, err := program.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running picker: %v\n", err)
			os.Exit(1)
		}

		finalPicker := finalModel.(picker.Picker)
		if finalPicker.Cancelled() {
			os.Exit(0)
		}
		selected = finalPicker.Selected()
	}

	if selected == nil {
		os.Exit(0)
	}

	if err := openURL(selected.URL); err != nil {
		fmt.Fprintf(os.Stderr, "Error opening browser: %v\n", err)
		os.Exit(1)
	}
}

// openURL opens a URL in the default browser.
func openURL(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	}
	if cmd == nil {
		return fmt.Errorf("no browser launcher for %s", runtime.GOOS)
	}
	return cmd.Start()
}

// runImport handles the import subcommand.
func runImport(filePath string) {
	svc, cfg := openService()
	defer svc.Close()

	file, err := os.Open(filePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	nodes, err := importer.ParseHTML(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing HTML: %v\n", err)
		os.Exit(1)
	}

	folders, links, err := importNodes(svc, gridRootID(svc, cfg), nodes)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Imported %d bookmarks, %d folders\n", links, folders)
}

// importNodes creates the parsed nodes under parentID, depth first.
func importNodes(svc *storage.Service, parentID string, nodes []*model.Node) (folders, links int, err error) {
	for _, n := range nodes {
		created, err := svc.Create(host.CreateParams{
			ParentID:  parentID,
			Title:     n.Title,
			URL:       n.URL,
			DateAdded: n.DateAdded,
		})
		if err != nil {
			return folders, links, err
		}
		if n.IsLink() {
			links++
			continue
		}
		folders++
		subFolders, subLinks, err := importNodes(svc, created.ID, n.Children)
		folders += subFolders
		links += subLinks
		if err != nil {
			return folders, links, err
		}
	}
	return folders, links, nil
}

// runExport handles the export subcommand.
func runExport(outputPath string) {
	if outputPath == "" {
		var err error
		outputPath, err = exporter.DefaultExportPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting default export path: %v\n", err)
			os.Exit(1)
		}
	}

	svc, _ := openService()
	defer svc.Close()

	root, err := svc.GetTree()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading bookmarks: %v\n", err)
		os.Exit(1)
	}

	html := exporter.ExportHTML(root)
	if err := os.WriteFile(outputPath, []byte(html), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Exported %d bookmarks to %s\n", root.CountLinks(), outputPath)
}

// runCheck probes all bookmark URLs and prints a dead-link report.
func runCheck() {
	svc, cfg := openService()
	defer svc.Close()

	root, err := svc.GetTree()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading bookmarks: %v\n", err)
		os.Exit(1)
	}
	data := flatten.FlattenFiltered(root, flatten.WithExtraNames(cfg.HiddenFolders))

	if len(data.Links) == 0 {
		fmt.Println("No bookmarks to check.")
		return
	}

	fmt.Printf("Checking %d bookmarks...\n", len(data.Links))
	c := checker.New(10*time.Second, cfg.CheckExcludeDomains)
	results := c.Run(data.Links, 10, func(completed, total int) {
		fmt.Printf("\r%d/%d", completed, total)
	})
	fmt.Println()

	var dead, unreachable []checker.Result
	for _, r := range results {
		switch r.Status {
		case checker.Dead:
			dead = append(dead, r)
		case checker.Unreachable:
			unreachable = append(unreachable, r)
		}
	}

	if len(dead) == 0 && len(unreachable) == 0 {
		fmt.Println("All links healthy.")
		return
	}

	if len(dead) > 0 {
		fmt.Printf("\nDead (%d):\n", len(dead))
		for _, r := range dead {
			fmt.Printf("  [%d] %s\n      %s\n", r.StatusCode, r.Bookmark.Title, r.Bookmark.URL)
		}
	}
	if len(unreachable) > 0 {
		fmt.Printf("\nUnreachable (%d):\n", len(unreachable))
		for _, r := range unreachable {
			fmt.Printf("  [%s] %s\n      %s\n", r.Error, r.Bookmark.Title, r.Bookmark.URL)
		}
	}
}
