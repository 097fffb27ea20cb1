package svg

import (
	"fmt"
	"os"

	"github.com/myrjola/snapsolve/internal/diagram"
	"github.com/spf13/cobra"
)

var Group = &cobra.Group{
	ID:    "svg",
	Title: "Diagram operations",
}

var Clean = &cobra.Command{
	Use:     "clean [file]",
	GroupID: "svg",
	Short:   "Sanitize an SVG diagram",
	Long:    `Runs an SVG document through the diagram sanitizer and prints the result.`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		document, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read document: %w", err)
		}

		cleaned, err := diagram.NewSanitizer().Render(string(document))
		if err != nil {
			return fmt.Errorf("sanitize document: %w", err)
		}

		fmt.Println(cleaned)

		return nil
	},
}
