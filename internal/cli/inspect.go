package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mecabext "github.com/fluentnihon/mecab-extension-go"
)

// dictCommand creates the dict command, which reports the dictionary
// directory the resolver would bundle.
func (c *CLI) dictCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dict",
		Short: "Show which dictionary directory would be bundled",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver := &mecabext.DictionaryResolver{}
			dicdir, files, err := resolver.Resolve()
			if err != nil {
				return err
			}
			if dicdir == "" {
				loggerFromContext(cmd.Context()).Warn("no dictionary resolved; bundling would be skipped")
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), dicdir)
			for _, name := range files {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", name)
			}
			return nil
		},
	}
}

// describeCommand creates the describe command, which prints the assembled
// package metadata.
func (c *CLI) describeCommand() *cobra.Command {
	var projectDir string

	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Print the assembled package metadata",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := projectDir
			if dir == "" {
				wd, err := os.Getwd()
				if err != nil {
					return err
				}
				dir = wd
			}

			meta, err := mecabext.AssembleMetadata(cmd.Context(), dir)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s (%s)\n", meta.Name, meta.Version, meta.License)
			if meta.Maintainer != "" {
				fmt.Fprintf(out, "maintainer: %s <%s>\n", meta.Maintainer, meta.Email)
			}
			if meta.Homepage != "" {
				fmt.Fprintf(out, "homepage: %s\n", meta.Homepage)
			}
			fmt.Fprintf(out, "\n%s\n", meta.LongDescription)
			return nil
		},
	}

	cmd.Flags().StringVarP(&projectDir, "project", "C", "", "project root directory (default: current directory)")
	return cmd
}

// doctorCommand creates the doctor command, which verifies the toolchain.
func (c *CLI) doctorCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Verify that the required build tools are installed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			factory := mecabext.NewBuilderFactory()

			var failed bool
			for _, builder := range factory.ListBuilders() {
				checker, ok := builder.(mecabext.ToolChecker)
				if !ok {
					continue
				}
				if err := checker.CheckTools(); err != nil {
					logger.Error("missing tools", "builder", builder.Name(), "err", err)
					failed = true
					continue
				}
				logger.Info("toolchain ok", "builder", builder.Name())
			}

			if err := mecabext.CheckToolAvailable("git"); err != nil {
				logger.Warn("git unavailable; version falls back to build info", "err", err)
			}

			if failed {
				return fmt.Errorf("toolchain incomplete")
			}
			return nil
		},
	}
}
