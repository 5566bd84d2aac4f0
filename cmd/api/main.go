package main

import (
	"fmt"
	"os"

	"github.com/geocoder89/devjobs/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// settings is shared by every command; flags are bound onto it in init.
var settings = config.NewViper()

var rootCmd = &cobra.Command{
	Use:   "devjobs-api",
	Short: "Job board REST API",
	Long: `Job board REST API over users, companies, ads and applications.

Without a subcommand the HTTP server is started, same as "devjobs-api serve".`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.PersistentFlags().Int("port", 0, "HTTP listen port (env PORT)")
	rootCmd.PersistentFlags().String("env", "", "runtime environment, dev enables debug routes (env APP_ENV)")

	bindFlag(settings, "PORT", rootCmd, "port")
	bindFlag(settings, "APP_ENV", rootCmd, "env")
}

func bindFlag(v *viper.Viper, key string, cmd *cobra.Command, name string) {
	if err := v.BindPFlag(key, cmd.PersistentFlags().Lookup(name)); err != nil {
		panic(fmt.Sprintf("bind flag %s: %v", name, err))
	}
}

// loadConfig resolves configuration after flags have been parsed.
func loadConfig() config.Config {
	return config.FromViper(settings)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
