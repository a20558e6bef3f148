package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/goccy/go-json"

	"github.com/Dicklesworthstone/treepick/pkg/loader"
	"github.com/Dicklesworthstone/treepick/pkg/tree"
	"github.com/Dicklesworthstone/treepick/pkg/ui"
	"github.com/Dicklesworthstone/treepick/pkg/watcher"
)

const version = "0.3.0"

func main() {
	help := flag.Bool("help", false, "Show help")
	versionFlag := flag.Bool("version", false, "Show version")
	file := flag.String("file", "", "Tree data file (.json, .yaml)")
	shape := flag.String("shape", "flat", "Input shape: flat (parent-id refs) or nested (embedded children)")
	single := flag.Bool("single", false, "Single-select mode (one leaf at a time)")
	collapsed := flag.Bool("collapsed", false, "Start with all nodes collapsed")
	selectID := flag.String("select", "", "Initially selected id (single-select mode)")
	idField := flag.String("id-field", "", "Field name for node id (default: id)")
	parentField := flag.String("parent-field", "", "Field name for parent reference (default: parentId)")
	labelField := flag.String("label-field", "", "Field name for display label (default: label)")
	stateDir := flag.String("state-dir", "", "Directory for expand-state persistence (default: .treepick)")
	noState := flag.Bool("no-state", false, "Disable expand-state persistence")
	noWatch := flag.Bool("no-watch", false, "Disable live reload on file changes")
	robotChecked := flag.Bool("robot-checked", false, "Print checked leaves as JSON and exit (non-interactive)")
	flag.Parse()

	if *help {
		fmt.Println("Usage: treepick --file data.json [options]")
		fmt.Println("\nAn interactive tri-state tree selector for the terminal.")
		fmt.Println("Selected leaf records are printed as JSON on exit.")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *versionFlag {
		fmt.Printf("treepick %s\n", version)
		os.Exit(0)
	}

	if *file == "" {
		fmt.Fprintln(os.Stderr, "Error: --file is required (see --help)")
		os.Exit(1)
	}

	records, err := loader.LoadRecords(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := tree.Config{
		Shape:             tree.ShapeFlat,
		ExpandedByDefault: !*collapsed,
		Fields: tree.FieldConfig{
			ID:       *idField,
			ParentID: *parentField,
			Label:    *labelField,
		},
	}
	if *shape == "nested" {
		cfg.Shape = tree.ShapeNested
	}

	opts := tree.Options{Mode: tree.MultiSelect}
	if *single {
		opts.Mode = tree.SingleSelect
		opts.InitialSelection = *selectID
	}

	engine := tree.New(records, cfg, opts)

	if *robotChecked {
		printChecked(engine)
		return
	}

	pickerCfg := ui.PickerConfig{
		Theme:     ui.DefaultTheme(nil),
		StateDir:  *stateDir,
		NoPersist: *noState,
	}
	if !*noWatch {
		w, err := watcher.New(*file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: live reload disabled: %v\n", err)
		} else {
			pickerCfg.Watcher = w
			path := *file
			pickerCfg.Reload = func() ([]map[string]any, error) {
				return loader.LoadRecords(path)
			}
		}
	}

	picker := ui.NewPicker(engine, pickerCfg)
	p := tea.NewProgram(picker, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	printChecked(engine)
}

// printChecked writes the checked leaf records to stdout as JSON, in
// document order.
func printChecked(e *tree.Engine) {
	leaves := e.CheckedLeaves()
	out := make([]map[string]any, len(leaves))
	for i, n := range leaves {
		out[i] = n.Raw
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(data))
}
