package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"personalportal/internal/checklist/model"
	"personalportal/internal/checklist/pdf"
)

var (
	renderIn  string
	renderOut string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a checklist JSON file to PDF",
	Long: `Reads a checklist in the API's JSON shape and writes the PDF the API
would serve for it.

Example:
  portal render --in camping.json --out camping.pdf
  curl -s localhost:8080/api/checklists/<id> | portal render --out list.pdf`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVar(&renderIn, "in", "-", "checklist JSON file, - for stdin")
	renderCmd.Flags().StringVar(&renderOut, "out", "", "PDF file to write, - for stdout")
	renderCmd.MarkFlagRequired("out")
}

func runRender(cmd *cobra.Command, args []string) error {
	in := cmd.InOrStdin()
	if renderIn != "-" {
		f, err := os.Open(renderIn)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	c, err := readChecklist(in)
	if err != nil {
		return fmt.Errorf("read %s: %w", renderIn, err)
	}
	doc := pdf.Render(c)

	if renderOut == "-" {
		_, err = cmd.OutOrStdout().Write(doc)
		return err
	}
	if err := os.WriteFile(renderOut, doc, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s (%d items, %d bytes)\n", renderOut, len(c.Items), len(doc))
	return nil
}

func readChecklist(r io.Reader) (model.Checklist, error) {
	var c model.Checklist
	dec := json.NewDecoder(r)
	if err := dec.Decode(&c); err != nil {
		return c, err
	}
	return c, nil
}
