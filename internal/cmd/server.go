package cmd

import (
	"github.com/spf13/cobra"
	"github.com/tpanh/rentd/internal/config"
	"github.com/tpanh/rentd/internal/server"
)

func serverCommand() *cobra.Command {
	command := &cobra.Command{
		Use:          "server",
		Short:        "Start a rentd server",
		SilenceUsage: true,
	}

	var flags = configFlags{}
	var configFile string

	flags.prepareCommand(command)
	command.Flags().StringVarP(&configFile, "config", "c", "", "Path to the configuration file.")

	command.RunE = func(command *cobra.Command, args []string) error {
		c, err := config.LoadConfig(configFile)
		if err != nil {
			return err
		}

		flags.apply(command, c)

		return server.Start(c)
	}

	return command
}

type configFlags struct {
	c config.Config
}

func (f *configFlags) prepareCommand(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.c.HttpListenAddr, "http-listen-addr", "", "")
	cmd.Flags().StringVar(&f.c.HttpsListenAddr, "https-listen-addr", "", "")
	cmd.Flags().StringVar(&f.c.MetricsListenAddr, "metrics-listen-addr", "", "")
	cmd.Flags().StringVar(&f.c.ServerUrl, "server-url", "", "")

	cmd.Flags().BoolVar(&f.c.Tls.Disable, "tls-disable", false, "")
	cmd.Flags().StringVar(&f.c.Tls.CertFile, "tls-cert-file", "", "")
	cmd.Flags().StringVar(&f.c.Tls.KeyFile, "tls-key-file", "", "")
	cmd.Flags().BoolVar(&f.c.Tls.AcmeEnabled, "tls-acme", false, "")
	cmd.Flags().StringVar(&f.c.Tls.AcmeEmail, "tls-acme-email", "", "")
	cmd.Flags().StringVar(&f.c.Tls.AcmeCA, "tls-acme-ca", "", "")
	cmd.Flags().StringVar(&f.c.Tls.AcmePath, "tls-acme-path", "", "")

	cmd.Flags().StringVar(&f.c.Database.Type, "database-type", "", "")
	cmd.Flags().StringVar(&f.c.Database.Url, "database-url", "", "")

	cmd.Flags().StringVar(&f.c.Jwt.Secret, "jwt-secret", "", "")
	cmd.Flags().StringVar(&f.c.Jwt.Expiration, "jwt-expiration", "", "")

	cmd.Flags().StringVar(&f.c.Logging.Level, "logging-level", "", "")
	cmd.Flags().StringVar(&f.c.Logging.Format, "logging-format", "", "")
	cmd.Flags().StringVar(&f.c.Logging.File, "logging-file", "", "")
}

// apply copies every flag the user actually set over the loaded
// configuration; flags win over file and environment.
func (f *configFlags) apply(cmd *cobra.Command, c *config.Config) {
	set := func(name string, fn func()) {
		if cmd.Flags().Changed(name) {
			fn()
		}
	}

	set("http-listen-addr", func() { c.HttpListenAddr = f.c.HttpListenAddr })
	set("https-listen-addr", func() { c.HttpsListenAddr = f.c.HttpsListenAddr })
	set("metrics-listen-addr", func() { c.MetricsListenAddr = f.c.MetricsListenAddr })
	set("server-url", func() { c.ServerUrl = f.c.ServerUrl })

	set("tls-disable", func() { c.Tls.Disable = f.c.Tls.Disable })
	set("tls-cert-file", func() { c.Tls.CertFile = f.c.Tls.CertFile })
	set("tls-key-file", func() { c.Tls.KeyFile = f.c.Tls.KeyFile })
	set("tls-acme", func() { c.Tls.AcmeEnabled = f.c.Tls.AcmeEnabled })
	set("tls-acme-email", func() { c.Tls.AcmeEmail = f.c.Tls.AcmeEmail })
	set("tls-acme-ca", func() { c.Tls.AcmeCA = f.c.Tls.AcmeCA })
	set("tls-acme-path", func() { c.Tls.AcmePath = f.c.Tls.AcmePath })

	set("database-type", func() { c.Database.Type = f.c.Database.Type })
	set("database-url", func() { c.Database.Url = f.c.Database.Url })

	set("jwt-secret", func() { c.Jwt.Secret = f.c.Jwt.Secret })
	set("jwt-expiration", func() { c.Jwt.Expiration = f.c.Jwt.Expiration })

	set("logging-level", func() { c.Logging.Level = f.c.Logging.Level })
	set("logging-format", func() { c.Logging.Format = f.c.Logging.Format })
	set("logging-file", func() { c.Logging.File = f.c.Logging.File })
}
