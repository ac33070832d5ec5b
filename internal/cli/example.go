package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maflot/diceplot/pkg/dataset"
)

// exampleCommand creates the example command for generating sample datasets.
func (c *CLI) exampleCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "example",
		Short: "Generate example datasets",
	}

	cmd.AddCommand(c.exampleDiceCommand())
	cmd.AddCommand(c.exampleDominoCommand())

	return cmd
}

// exampleDiceCommand creates the "example dice" subcommand.
func (c *CLI) exampleDiceCommand() *cobra.Command {
	var (
		output  string
		numVars int
	)

	cmd := &cobra.Command{
		Use:   "dice",
		Short: "Write an example dice plot dataset as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			tbl, err := dataset.ExampleDice(numVars)
			if err != nil {
				return err
			}
			if err := dataset.ExportCSV(tbl, output); err != nil {
				return err
			}
			printSuccess("Wrote example dataset (%d rows)", tbl.Len())
			printFile(output)
			printNextStep("Render it", fmt.Sprintf(
				"%s plot %s --cat-a CellType --cat-b Pathway --cat-c PathologyVariable --group Group",
				appName, output))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "dice_example.csv", "output CSV path")
	cmd.Flags().IntVar(&numVars, "vars", 3, "number of pathology variables (1-6)")

	return cmd
}

// exampleDominoCommand creates the "example domino" subcommand.
func (c *CLI) exampleDominoCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "domino",
		Short: "Write an example domino plot dataset as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			tbl, err := dataset.ExampleDomino()
			if err != nil {
				return err
			}
			if err := dataset.ExportCSV(tbl, output); err != nil {
				return err
			}
			printSuccess("Wrote example dataset (%d rows)", tbl.Len())
			printFile(output)
			printNextStep("Render it", fmt.Sprintf(
				"%s domino %s --contrast-a Type1 --contrast-b Type2",
				appName, output))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "domino_example.csv", "output CSV path")

	return cmd
}
