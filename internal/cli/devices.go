package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-tuner/internal/capture"
)

func newDevicesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "devices",
		Short: "List audio input devices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			names, err := capture.Devices()
			if err != nil {
				return err
			}
			for _, n := range names {
				fmt.Fprintln(out(cmd), n)
			}
			return nil
		},
	}
}
