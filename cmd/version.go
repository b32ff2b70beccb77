package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Version information - these can be set during build with ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Args:  exactArgs(0, "version takes no arguments"),
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(a.stdout, a.ui.FormatTitle("bcattr")+" - bcachefs attribute tool")
			fmt.Fprintln(a.stdout)
			fmt.Fprintln(a.stdout, a.ui.RenderKeyValue("Version", Version))
			fmt.Fprintln(a.stdout, a.ui.RenderKeyValue("Commit", GitCommit))
			fmt.Fprintln(a.stdout, a.ui.RenderKeyValue("Build Date", BuildDate))
			fmt.Fprintln(a.stdout, a.ui.RenderKeyValue("Platform", runtime.GOOS+"/"+runtime.GOARCH))
		},
	}
}
