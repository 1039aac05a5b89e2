package cmd

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/gophertribe/devtool/build"
)

func BuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the i2csens cli",
		RunE: func(cmd *cobra.Command, args []string) error {
			os := cmd.Flag("os").Value.String()
			arch := cmd.Flag("arch").Value.String()
			version := cmd.Flag("version").Value.String()

			return build.GoBuild("dist/i2csens", "./cmd/i2csens", build.GoBuildOpts{
				Version:       version,
				InjectVersion: true,
				Arch:          arch, // if arch is not set, it will use runtime.GOARCH
				OS:            os,   // if os is not set, it will use runtime.GOOS
			})
		},
	}
	cmd.Flags().String("version", "latest", "version of the cli")
	cmd.Flags().String("os", runtime.GOOS, "os to build for")
	cmd.Flags().String("arch", runtime.GOARCH, "arch to build for")

	return cmd
}
