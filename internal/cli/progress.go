package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/matzehuels/conceptmap/pkg/hierarchy"
	"github.com/matzehuels/conceptmap/pkg/progress"
)

const barWidth = 20

func (c *CLI) progressCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "progress [hierarchy]",
		Short: "Show known/total per topic and subtopic",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := c.openWorkspace(cmd, args)
			if err != nil {
				return err
			}
			defer ws.Close()

			report, overall := ws.sess.Progress(), ws.sess.Overall()
			if asJSON {
				data, err := json.MarshalIndent(struct {
					MapID    string          `json:"mapId"`
					Overall  progress.Pair   `json:"overall"`
					Progress progress.Report `json:"progress"`
				}{ws.sess.MapID(), overall, report}, "", "  ")
				if err != nil {
					return err
				}
				return writeOutput("", append(data, '\n'))
			}

			fmt.Println(StyleTitle.Render(ws.title()) + "  " + progressPill(overall))
			fmt.Println(progressTable(ws.doc.Topics, report))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	return cmd
}

// progressTable renders one row per topic followed by its subtopics.
func progressTable(h hierarchy.Hierarchy, report progress.Report) string {
	var (
		rows   [][]string
		topics = map[int]bool{}
	)
	for _, t := range h {
		p := report.ByTopic[t.ID]
		topics[len(rows)] = true
		rows = append(rows, []string{t.Title, progressBar(p, barWidth), progressPill(p)})
		for _, s := range t.Subtopics {
			sp := report.BySubtopic[s.ID]
			rows = append(rows, []string{"  " + s.Title, progressBar(sp, barWidth), progressPill(sp)})
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Topic", "Progress", "Known").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == -1:
				return headerStyle.Padding(0, 1)
			case topics[row] && col == 0:
				return base.Bold(true).Foreground(colorWhite)
			case col == 0:
				return base.Foreground(colorGray)
			default:
				return base
			}
		}).
		Render()
}
