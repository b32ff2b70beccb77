package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/bcattr/internal/adapters/xattr"
	"github.com/kamal-hamza/bcattr/pkg/config"
)

func newDoctorCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor [path]",
		Short: "Check whether bcattr can work on a path",
		Long: `Diagnose issues before changing attributes.

Checks for:
  - Linux (the bcachefs ioctls only exist there)
  - Configuration file
  - Extended attribute support on the path
  - Whether the path is on a bcachefs filesystem

The path defaults to the current directory.`,
		Args: maxArgs(1, "doctor takes at most one path"),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) == 1 {
				path = args[0]
			}
			return a.runDoctor(path)
		},
	}
}

func (a *app) runDoctor(path string) error {
	fmt.Fprintln(a.stdout, a.ui.FormatTitle("bcattr doctor"))
	fmt.Fprintln(a.stdout)

	failed := 0

	// 1. Platform
	failed += a.checkStep("Platform", func() error {
		if runtime.GOOS != "linux" {
			return fmt.Errorf("%s is not supported (linux only)", runtime.GOOS)
		}
		return nil
	})

	// 2. Config (missing is fine, defaults apply)
	a.checkStep("Configuration File", func() error {
		p := a.configPath
		if p == "" {
			var err error
			if p, err = config.DefaultPath(); err != nil {
				return err
			}
		}
		if _, err := os.Stat(p); os.IsNotExist(err) {
			return fmt.Errorf("not found at %s (using defaults)", p)
		}
		return nil
	})

	// 3. Target
	failed += a.checkStep("Target "+path, func() error {
		_, err := os.Stat(path)
		return err
	})

	failed += a.checkStep("Extended Attributes", func() error {
		return xattr.Supported(path)
	})

	failed += a.checkStep("bcachefs Filesystem", func() error {
		ok, err := a.probe.IsBcachefs(path)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%s is not on a bcachefs mount", path)
		}
		return nil
	})

	fmt.Fprintln(a.stdout)
	if failed > 0 {
		return fmt.Errorf("%d check(s) failed", failed)
	}
	fmt.Fprintln(a.stdout, a.ui.FormatSuccess("Ready"))
	return nil
}

// checkStep runs a check function and prints the result; returns 1 on failure
func (a *app) checkStep(name string, check func() error) int {
	err := check()
	if err == nil {
		fmt.Fprintf(a.stdout, "%s %s\n", a.ui.Styles.Success.Render("✔"), name)
		return 0
	}
	fmt.Fprintf(a.stdout, "%s %s\n", a.ui.Styles.Error.Render("✘"), name)
	fmt.Fprintf(a.stdout, "    %s\n", a.ui.FormatMuted(err.Error()))
	return 1
}
