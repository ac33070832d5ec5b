package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/maflot/diceplot/pkg/dataset"
)

// inspectCommand creates the inspect command for browsing datasets.
func (c *CLI) inspectCommand() *cobra.Command {
	var summary bool

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Browse a dataset interactively",
		Long: `Browse a CSV or JSON dataset in an interactive table view.

With --summary, print the column names and their distinct levels instead
of starting the interactive view.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tbl, err := importDataset(args[0])
			if err != nil {
				return err
			}
			if summary {
				return printSummary(tbl)
			}
			model := newDatasetModel(args[0], tbl)
			_, err = tea.NewProgram(model).Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&summary, "summary", false, "print column levels instead of the interactive view")

	return cmd
}

// importDataset reads a dataset by file extension, matching the pipeline's
// import behavior.
func importDataset(path string) (*dataset.Table, error) {
	if strings.HasSuffix(path, ".json") {
		return dataset.ImportJSON(path)
	}
	return dataset.ImportCSV(path)
}

// printSummary lists each column with its distinct level count and values.
func printSummary(tbl *dataset.Table) error {
	printInfo("%d rows, %d columns", tbl.Len(), len(tbl.Columns()))
	for _, col := range tbl.Columns() {
		levels, err := tbl.SortedLevels(col)
		if err != nil {
			return err
		}
		display := strings.Join(levels, ", ")
		if len(levels) > 12 {
			display = strings.Join(levels[:12], ", ") + ", …"
		}
		printKeyValue(col, fmt.Sprintf("%d levels: %s", len(levels), display))
	}
	return nil
}

// datasetModel is the bubbletea model for the dataset browser.
type datasetModel struct {
	Path   string
	Table  *dataset.Table
	Cursor int
	Offset int
	Height int
}

func newDatasetModel(path string, tbl *dataset.Table) datasetModel {
	return datasetModel{
		Path:   path,
		Table:  tbl,
		Height: 15,
	}
}

func (m datasetModel) Init() tea.Cmd {
	return nil
}

func (m datasetModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < m.Table.Len()-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "pgup":
			m.Cursor -= m.Height
			if m.Cursor < 0 {
				m.Cursor = 0
			}
			if m.Cursor < m.Offset {
				m.Offset = m.Cursor
			}
		case "pgdown":
			m.Cursor += m.Height
			if m.Cursor > m.Table.Len()-1 {
				m.Cursor = m.Table.Len() - 1
			}
			if m.Cursor >= m.Offset+m.Height {
				m.Offset = m.Cursor - m.Height + 1
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m datasetModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Path))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ navigate  pgup/pgdn page  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > m.Table.Len() {
		end = m.Table.Len()
	}

	rows := make([][]string, 0, end-m.Offset)
	for i := m.Offset; i < end; i++ {
		row := append([]string{fmt.Sprintf("%d", i+1)}, m.Table.Row(i)...)
		rows = append(rows, row)
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	headers := append([]string{"#"}, m.Table.Columns()...)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, m.Table.Len())))

	return b.String()
}
