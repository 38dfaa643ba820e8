// netifctl inspects and edits the IPv4 configuration of network interfaces
// stored in a configuration service snapshot.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"netif-console/internal/domain/constants"
	"netif-console/internal/infrastructure/config"
	"netif-console/internal/infrastructure/container"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var version = "dev" // set by the linker

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// cobra already printed the error
		os.Exit(1)
	}
}

// cli carries state shared by all subcommands of one root command instance
type cli struct {
	v         *viper.Viper
	cfgFile   string
	logger    *logrus.Logger
	container *container.Container
}

// newRootCmd builds a fresh command tree with its own viper instance so that
// tests can run commands in isolation.
func newRootCmd() *cobra.Command {
	c := &cli{v: viper.New()}

	c.v.SetDefault("store.backend", constants.DefaultStoreBackend)
	c.v.SetDefault("store.path", constants.DefaultStorePath)
	c.v.SetDefault("store.component", constants.NetworkConfigurationServicePID)
	c.v.SetDefault("store.backups", constants.DefaultBackupKeep)
	c.v.SetDefault("database.host", "localhost")
	c.v.SetDefault("database.port", "3306")
	c.v.SetDefault("database.user", "root")
	c.v.SetDefault("database.name", "netif")
	c.v.SetDefault("language", constants.DefaultLanguage)
	c.v.SetDefault("log.level", "warn")
	c.v.SetDefault("output", "text")
	c.v.SetDefault("retries", 2)
	c.v.SetDefault("retry-delay", 500*time.Millisecond)

	cmd := &cobra.Command{
		Use:   "netifctl",
		Short: "Inspect and edit stored network interface IPv4 settings",
		Long: `netifctl reads the network configuration component snapshot, shows each
registered interface with the fields its hardware type and status allow,
and writes validated changes back as property updates.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.initConfig()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if c.container != nil {
				return c.container.Close()
			}
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&c.cfgFile, "config", "", "config file (default is $HOME/.netifctl.yaml or ./.netifctl.yaml)")
	flags.String("store-backend", constants.DefaultStoreBackend, `configuration store backend ("file", "mysql")`)
	flags.String("store-path", constants.DefaultStorePath, "snapshot directory of the file backend")
	flags.String("component", constants.NetworkConfigurationServicePID, "configuration component PID")
	flags.Int("backup-keep", constants.DefaultBackupKeep, "snapshot backups kept by the file backend (0 disables)")
	flags.String("db-host", "localhost", "mysql host")
	flags.String("db-port", "3306", "mysql port")
	flags.String("db-user", "root", "mysql user")
	flags.String("db-password", "", "mysql password")
	flags.String("db-name", "netif", "mysql database")
	flags.Int("retries", 2, "retries of a failed store operation")
	flags.String("lang", constants.DefaultLanguage, `label language ("en", "de")`)
	flags.String("log-level", "warn", "log level")
	flags.StringP("output", "o", "text", `output format ("text", "json", "yaml")`)

	bindings := map[string]string{
		"store.backend":     "store-backend",
		"store.path":        "store-path",
		"store.component":   "component",
		"store.backups":     "backup-keep",
		"database.host":     "db-host",
		"database.port":     "db-port",
		"database.user":     "db-user",
		"database.password": "db-password",
		"database.name":     "db-name",
		"retries":           "retries",
		"language":          "lang",
		"log.level":         "log-level",
		"output":            "output",
	}
	for key, flag := range bindings {
		cobra.CheckErr(c.v.BindPFlag(key, flags.Lookup(flag)))
	}

	cmd.AddCommand(
		c.newListCmd(),
		c.newGetCmd(),
		c.newSetCmd(),
		c.newCapabilitiesCmd(),
		c.newFormCmd(),
		c.newAuditCmd(),
		c.newRestoreCmd(),
		c.newComponentsCmd(),
	)

	return cmd
}

// initConfig reads the optional config file and NETIFCTL_* environment
// variables, then sets up logging.
func (c *cli) initConfig() error {
	if c.cfgFile != "" {
		c.v.SetConfigFile(c.cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			c.v.AddConfigPath(home)
		}
		c.v.AddConfigPath(".")
		c.v.SetConfigType("yaml")
		c.v.SetConfigName(".netifctl")
	}

	c.v.SetEnvPrefix("NETIFCTL")
	c.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	c.v.AutomaticEnv()

	if err := c.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || c.cfgFile != "" {
			return fmt.Errorf("read config: %w", err)
		}
	}

	c.logger = logrus.New()
	c.logger.SetFormatter(&logrus.JSONFormatter{})
	c.logger.SetOutput(os.Stderr)
	level, err := logrus.ParseLevel(c.v.GetString("log.level"))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.v.GetString("log.level"), err)
	}
	c.logger.SetLevel(level)

	return nil
}

// loadConfig maps the viper settings onto the shared configuration struct
func (c *cli) loadConfig() (*config.Config, error) {
	cfg := &config.Config{
		Store: config.StoreConfig{
			Backend:     strings.ToLower(c.v.GetString("store.backend")),
			Path:        c.v.GetString("store.path"),
			ComponentID: c.v.GetString("store.component"),
			BackupKeep:  c.v.GetInt("store.backups"),
		},
		Database: config.DatabaseConfig{
			Host:         c.v.GetString("database.host"),
			Port:         c.v.GetString("database.port"),
			User:         c.v.GetString("database.user"),
			Password:     c.v.GetString("database.password"),
			Database:     c.v.GetString("database.name"),
			MaxOpenConns: 2,
			MaxIdleConns: 1,
			MaxLifetime:  time.Minute,
		},
		Agent: config.AgentConfig{
			PollInterval: time.Second,
			MaxRetries:   c.v.GetInt("retries"),
			RetryDelay:   c.v.GetDuration("retry-delay"),
			Backoff: config.BackoffConfig{
				MaxInterval: 5 * time.Second,
				Multiplier:  2.0,
			},
		},
		Health:   config.HealthConfig{Port: constants.DefaultHealthPort},
		Language: c.v.GetString("language"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// app returns the dependency container, creating it on first use
func (c *cli) app() (*container.Container, error) {
	if c.container != nil {
		return c.container, nil
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	appContainer, err := container.NewContainer(cfg, c.logger)
	if err != nil {
		return nil, err
	}
	c.container = appContainer
	return appContainer, nil
}

// render writes value in the selected output format. text renders the
// human readable view.
func (c *cli) render(w io.Writer, value interface{}, text func(io.Writer) error) error {
	switch format := strings.ToLower(c.v.GetString("output")); format {
	case "", "text":
		return text(w)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(value)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(value); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}
