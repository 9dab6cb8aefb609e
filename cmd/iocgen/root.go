package main

import (
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultIOCImport = "github.com/sghaida/ioc/ioc"

// options are the merged generate settings. Flags win over IOCGEN_* environment
// variables, which win over the config file.
type options struct {
	Spec      string
	Out       string
	IOCImport string
	Verbose   bool
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:          "iocgen",
		Short:        "Generate ioc declarations and bindings from a declaration file",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file (default: .iocgen.yaml in the working directory)")
	root.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")

	root.AddCommand(newGenerateCmd(v))
	return root
}

func newGenerateCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Render a declaration file into a .gen.go file",
		Long: `Reads a YAML (or JSON) declaration file, checks every declared
dependency list against the constructor it belongs to, and writes a Go file
with class tokens, ioc.Declare calls and a RegisterBindings function.

Typical use is a go:generate directive in the owning package:

  //go:generate go run github.com/sghaida/ioc/cmd/iocgen generate --spec ioc.yaml --out ioc.gen.go`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(v, cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := options{
				Spec:      v.GetString("spec"),
				Out:       v.GetString("out"),
				IOCImport: v.GetString("ioc-import"),
				Verbose:   v.GetBool("verbose"),
			}
			return generate(opts, newLogger(cmd.ErrOrStderr(), opts.Verbose))
		},
	}

	cmd.Flags().String("spec", "", "path to the declaration file (*.ioc.yaml)")
	cmd.Flags().String("out", "", "output .gen.go file path")
	cmd.Flags().String("ioc-import", defaultIOCImport, "import path of the ioc package")
	return cmd
}

// initConfig binds flags and IOCGEN_* variables into v and reads the config
// file. A missing default config file is not an error; a missing explicit one is.
func initConfig(v *viper.Viper, cmd *cobra.Command) error {
	v.SetEnvPrefix("IOCGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}

	cfgFile := v.GetString("config")
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(".iocgen")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}
	return nil
}

func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).
		Level(level).
		With().Timestamp().
		Logger()
}

// defaultAlias is the identifier an unaliased import of importPath binds.
func defaultAlias(importPath string) string {
	// Import paths always use forward slashes, even on Windows.
	return path.Base(strings.TrimSpace(importPath))
}
