package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dewi-tim/mpvtui/internal/mpv"
)

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "mpvtui %s\n", Version)

			lib, unload, err := openBackend(a.cfg)
			if err != nil {
				fmt.Fprintf(out, "libmpv: unavailable (%v)\n", err)
				return nil
			}
			defer unload()

			linked, loaded := lib.HeaderVersion(), lib.ClientAPIVersion()
			fmt.Fprintf(out, "backend: %s\n", a.cfg.Backend)
			fmt.Fprintf(out, "client API: linked %s, loaded %s\n",
				mpv.FormatVersion(linked), mpv.FormatVersion(loaded))
			if linked != loaded {
				fmt.Fprintln(out, "warning: versions differ; contexts cannot be created")
			}
			return nil
		},
	}
}
