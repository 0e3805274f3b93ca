package prereq

import (
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Render affiche les statuts sous forme de tableau.
func Render(w io.Writer, statuses []Status) {
	ok := color.New(color.FgGreen).SprintFunc()
	ko := color.New(color.FgRed).SprintFunc()

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Programme", "Statut", "Chemin / détail"})
	for _, st := range statuses {
		if st.Available {
			t.AppendRow(table.Row{st.Name, ok("ok"), st.Path})
		} else {
			t.AppendRow(table.Row{st.Name, ko("absent"), st.Detail})
		}
	}
	t.Render()
}
