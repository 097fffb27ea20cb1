package ask

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/myrjola/snapsolve/internal/capture"
	"github.com/myrjola/snapsolve/internal/flow"
	"github.com/myrjola/snapsolve/internal/submit"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var Group = &cobra.Group{
	ID:    "ask",
	Title: "Question answering",
}

func init() {
	Ask.Flags().String("server", "http://localhost:4000", "base URL of the answering server")
	Ask.Flags().String("diagram-out", "", "write the diagram SVG to this path when the answer includes one")
}

var Ask = &cobra.Command{
	Use:     "ask [image]",
	GroupID: "ask",
	Short:   "Solve a photographed question",
	Long:    `Submits an image of a question to the answering server and prints the worked answer.`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := cmd.Flags().GetString("server")
		if err != nil {
			return fmt.Errorf("read server flag: %w", err)
		}
		diagramOut, err := cmd.Flags().GetString("diagram-out")
		if err != nil {
			return fmt.Errorf("read diagram-out flag: %w", err)
		}

		payload, err := capture.SelectFile(args[0])
		if err != nil {
			return fmt.Errorf("select image: %w", err)
		}

		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		controller := flow.NewController()
		client := submit.NewClient(server, controller, logger)

		spinnerDone := spin("💡 Solving")
		result, err := client.Submit(cmd.Context(), payload)
		spinnerDone()
		if err != nil {
			return fmt.Errorf("submit image: %w", err)
		}

		fmt.Println(result.Answer)

		if result.HasDiagram() && diagramOut != "" {
			if err = os.WriteFile(diagramOut, []byte(result.Diagram), 0o644); err != nil { //nolint:gosec,mnd // plain file
				return fmt.Errorf("write diagram: %w", err)
			}
			_, _ = fmt.Fprintf(os.Stderr, "Diagram written to %s\n", diagramOut)
		}

		return nil
	},
}

// spin shows an indeterminate spinner on stderr until the returned function is called.
func spin(description string) func() {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSpinnerType(14), //nolint:mnd // spinner style
	)
	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		ticker := time.NewTicker(100 * time.Millisecond) //nolint:mnd // 100ms
		defer ticker.Stop()
		for {
			select {
			case <-done:
				_ = bar.Finish()
				_ = bar.Clear()
				return
			case <-ticker.C:
				_ = bar.Add(1)
			}
		}
	}()
	return func() {
		close(done)
		<-finished
	}
}
