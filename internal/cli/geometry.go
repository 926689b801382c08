package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"cornerpeek/internal/config"
	"cornerpeek/internal/peek"
	"cornerpeek/internal/platform"
)

var geometryCmd = &cobra.Command{
	Use:   "geometry",
	Short: "Print the primary display size and derived widget positions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(globalOpts.configPath)
		if err != nil {
			return err
		}
		w, h, err := platform.Features.GetScreenSize()
		if err != nil {
			return fmt.Errorf("%w: %v", peek.ErrNoDisplay, err)
		}
		writeGeometry(cmd.OutOrStdout(), peek.NewGeometry(w, h, cfg.Params()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(geometryCmd)
}

func writeGeometry(w io.Writer, g peek.Geometry) {
	fmt.Fprintf(w, "screen   %dx%d\n", g.ScreenWidth, g.ScreenHeight)
	fmt.Fprintf(w, "hidden   (%d, %d)\n", g.HiddenX, g.HiddenY)
	fmt.Fprintf(w, "peek     (%d, %d)\n", g.PeekX, g.PeekY)
	fmt.Fprintf(w, "corner   x >= %d, y >= %d\n", g.ScreenWidth-g.CornerZone, g.ScreenHeight-g.CornerZone)
}
