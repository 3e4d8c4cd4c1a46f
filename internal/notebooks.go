package internal

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/starford/randomnote/internal/models"
)

// printNotebooks renders notebooks as a table ordered by title, nested
// notebooks directly below their parent.
func printNotebooks(w io.Writer, nbs []models.Notebook) error {
	if w == nil {
		w = color.Output
	}
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("ID"), bold.Sprint("Title"))
	for _, row := range notebookRows(nbs) {
		tbl.AddRow(row.ID, row.Title)
	}

	_, err := fmt.Fprintln(w, tbl)
	return err
}

type notebookRow struct {
	ID    string
	Title string
}

func notebookRows(nbs []models.Notebook) []notebookRow {
	known := make(map[string]bool, len(nbs))
	for _, nb := range nbs {
		known[nb.ID] = true
	}
	children := make(map[string][]models.Notebook)
	for _, nb := range nbs {
		parent := nb.ParentID
		if !known[parent] {
			parent = ""
		}
		children[parent] = append(children[parent], nb)
	}
	for _, list := range children {
		slices.SortFunc(list, func(a, b models.Notebook) int {
			return cmp.Or(cmp.Compare(a.Title, b.Title), cmp.Compare(a.ID, b.ID))
		})
	}

	rows := make([]notebookRow, 0, len(nbs))
	var walk func(parent string, depth int)
	walk = func(parent string, depth int) {
		for _, nb := range children[parent] {
			rows = append(rows, notebookRow{ID: nb.ID, Title: strings.Repeat("  ", depth) + nb.Title})
			walk(nb.ID, depth+1)
		}
	}
	walk("", 0)
	return rows
}
