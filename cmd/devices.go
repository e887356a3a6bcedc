package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/smazurov/torchnode/internal/torch"
	"github.com/spf13/cobra"
)

// CreateDevicesCmd creates the "devices" command.
func CreateDevicesCmd() *cobra.Command {
	var root string

	cmd := &cobra.Command{
		Use:   "devices",
		Short: "List flash LEDs",
		Long:  `Lists LED class devices that look like a camera flash, in the order the server picks them.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			names, err := torch.Discover(root)
			if err != nil {
				return fmt.Errorf("failed to scan %s: %w", root, err)
			}

			out := cmd.OutOrStdout()
			if len(names) == 0 {
				fmt.Fprintln(out, "No flash available")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tDEFAULT")
			for i, name := range names {
				def := ""
				if i == 0 {
					def = "*"
				}
				fmt.Fprintf(w, "%s\t%s\n", name, def)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&root, "torch-root", torch.DefaultSysfsRoot, "LED class directory")
	return cmd
}
