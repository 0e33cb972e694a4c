package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/hubconf/pkg/config"
	"github.com/doodlesbykumbi/hubconf/pkg/hub"
)

var log = logrus.New()

func defaultVariant() string {
	if v := os.Getenv("HUBCONF_VARIANT"); v != "" {
		return v
	}
	return hub.VariantTraefik.String()
}

func defaultLogLevel() string {
	if l := os.Getenv("HUBCONF_LOG_LEVEL"); l != "" {
		return l
	}
	return "info"
}

var rootCmd = &cobra.Command{
	Use:   "hubconf",
	Short: "Assemble notebook hub deployment configuration",
	Long: `Assemble the configuration of a notebook hub that runs behind Traefik,
spawns one Docker container per user and authenticates with NativeAuthenticator.

Values that differ between deployments are read from the environment, or from
a dotenv file given with --env-file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, _ := cmd.Flags().GetString("log-level")
		return setupLogging(level)
	},
}

func init() {
	rootCmd.PersistentFlags().String("variant", defaultVariant(), "deployment variant (traefik or compose)")
	rootCmd.PersistentFlags().String("env-file", "", "read variables from a dotenv file instead of the process environment")
	rootCmd.PersistentFlags().String("log-level", defaultLogLevel(), "log level (debug, info, warn, error)")
}

func setupLogging(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	log.SetLevel(lvl)
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return nil
}

// source describes where assembly reads its environment from
type source struct {
	variant hub.Variant
	envFile string
}

// sourceFromFlags reads the root's persistent flags, which subcommands share
func sourceFromFlags(cmd *cobra.Command) (source, error) {
	flags := cmd.Root().PersistentFlags()
	name, _ := flags.GetString("variant")
	envFile, _ := flags.GetString("env-file")

	variant, err := hub.VariantString(name)
	if err != nil {
		return source{}, fmt.Errorf("unknown variant %q (valid: traefik, compose)", name)
	}
	return source{variant: variant, envFile: envFile}, nil
}

// assemble runs one assembly pass. An env file, when given, is re-read on
// every call.
func (s source) assemble() (*hub.Config, error) {
	env := config.OSEnv()
	if s.envFile != "" {
		fileEnv, err := config.FileEnv(s.envFile)
		if err != nil {
			return nil, err
		}
		env = fileEnv
	}

	cfg, err := hub.Assemble(s.variant, env)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"variant":    s.variant.String(),
		"attributes": len(cfg.Attributes()),
	}).Debug("Assembled configuration")
	return cfg, nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}
