package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"netif-console/internal/application/usecases"
	"netif-console/internal/domain/entities"
	"netif-console/internal/domain/errors"
	"netif-console/internal/domain/services"
	"netif-console/internal/presentation"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// interfaceView is the output of get
type interfaceView struct {
	Config        entities.NetInterfaceConfig `json:"config" yaml:"config"`
	Registered    bool                        `json:"registered" yaml:"registered"`
	Valid         bool                        `json:"valid" yaml:"valid"`
	Errors        []services.FieldError       `json:"errors,omitempty" yaml:"errors,omitempty"`
	Fields        []fieldStateView            `json:"fields" yaml:"fields"`
	StatusOptions []entities.Status           `json:"statusOptions" yaml:"statusOptions"`
}

type fieldStateView struct {
	Name                string `json:"name" yaml:"name"`
	services.FieldState `yaml:",inline"`
}

// capabilitiesView is the output of capabilities
type capabilitiesView struct {
	HwType        entities.HwType     `json:"hwType" yaml:"hwType"`
	Status        entities.Status     `json:"status" yaml:"status"`
	ConfigMode    entities.ConfigMode `json:"configMode" yaml:"configMode"`
	Fields        []fieldStateView    `json:"fields" yaml:"fields"`
	StatusOptions []entities.Status   `json:"statusOptions" yaml:"statusOptions"`
}

// updateView is the output of set
type updateView struct {
	Config           entities.NetInterfaceConfig `json:"config" yaml:"config"`
	RegistryAppended bool                        `json:"registryAppended" yaml:"registryAppended"`
	UpdatedKeys      []string                    `json:"updatedKeys" yaml:"updatedKeys"`
}

// auditView is the output of audit
type auditView struct {
	Results      []usecases.AuditResult `json:"results" yaml:"results"`
	TotalCount   int                    `json:"total" yaml:"total"`
	InvalidCount int                    `json:"invalid" yaml:"invalid"`
}

func fieldStates(caps services.FieldCapabilities) []fieldStateView {
	views := make([]fieldStateView, 0, len(services.AllFields()))
	for _, f := range services.AllFields() {
		views = append(views, fieldStateView{Name: f.String(), FieldState: caps.State(f)})
	}
	return views
}

func (c *cli) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered interfaces in registry order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.app()
			if err != nil {
				return err
			}

			output, err := app.GetListInterfacesUseCase().Execute(cmd.Context())
			if err != nil {
				return err
			}

			return c.render(cmd.OutOrStdout(), output.Interfaces, func(w io.Writer) error {
				tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "NAME\tTYPE\tSTATUS\tMODE\tADDRESS")
				for _, iface := range output.Interfaces {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", iface.Name, iface.HwType, iface.Status, iface.ConfigMode, iface.IPAddress)
				}
				return tw.Flush()
			})
		},
	}
}

func (c *cli) newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <ifname>",
		Short: "Show the IPv4 configuration of one interface",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.app()
			if err != nil {
				return err
			}

			output, err := app.GetInterfaceConfigUseCase().Execute(cmd.Context(), usecases.GetInterfaceConfigInput{Name: args[0]})
			if err != nil {
				return err
			}

			view := interfaceView{
				Config:        output.Config,
				Registered:    output.Registered,
				Valid:         output.Validation.Valid(),
				Errors:        output.Validation.Errors(),
				Fields:        fieldStates(output.Capabilities),
				StatusOptions: output.StatusOptions,
			}

			return c.render(cmd.OutOrStdout(), view, func(w io.Writer) error {
				return writeConfig(w, view.Config, view.Registered, view.Errors)
			})
		},
	}
}

func writeConfig(w io.Writer, config entities.NetInterfaceConfig, registered bool, fieldErrors []services.FieldError) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Name:\t%s\n", config.Name)
	fmt.Fprintf(tw, "Registered:\t%t\n", registered)
	fmt.Fprintf(tw, "Hardware:\t%s\n", config.HwType)
	fmt.Fprintf(tw, "Status:\t%s\n", config.Status)
	if config.Status == entities.StatusWAN {
		fmt.Fprintf(tw, "WAN priority:\t%d\n", config.WANPriority)
	}
	fmt.Fprintf(tw, "Configure:\t%s\n", config.ConfigMode)
	fmt.Fprintf(tw, "IP address:\t%s\n", config.IPAddress)
	fmt.Fprintf(tw, "Subnet mask:\t%s\n", config.SubnetMask)
	fmt.Fprintf(tw, "Gateway:\t%s\n", config.Gateway)
	fmt.Fprintf(tw, "DNS servers:\t%s\n", services.FormatDNSServers(config.DNSServers))
	if services.ReadOnlyDNSVisible(config) && config.ReadOnlyDNSServers != "" {
		fmt.Fprintf(tw, "DNS (DHCP):\t%s\n", config.ReadOnlyDNSServers)
	}
	for _, fieldErr := range fieldErrors {
		fmt.Fprintf(tw, "Invalid:\t%s\n", fieldErr.Error())
	}
	return tw.Flush()
}

func (c *cli) newSetCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "set <ifname>",
		Short: "Validate and store changes to one interface",
		Long: `set starts from the stored configuration of the interface, applies the
values of an optional YAML file and then the given flags, validates the result
and writes it back. Nothing is written when validation fails.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.app()
			if err != nil {
				return err
			}
			name := strings.TrimSpace(args[0])

			current, err := app.GetInterfaceConfigUseCase().Execute(cmd.Context(), usecases.GetInterfaceConfigInput{Name: name})
			if err != nil {
				return err
			}

			config := current.Config
			if file != "" {
				data, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("read %s: %w", file, err)
				}
				if err := yaml.Unmarshal(data, &config); err != nil {
					return errors.NewValidationError("설정 파일 파싱 실패: "+file, err)
				}
			}
			if err := applyFlags(cmd, &config); err != nil {
				writeFieldErrors(cmd.ErrOrStderr(), app.GetLocalizer(c.v.GetString("language")), err)
				return err
			}
			config.Name = name

			output, err := app.GetUpdateInterfaceConfigUseCase().Execute(cmd.Context(), usecases.UpdateInterfaceConfigInput{Config: config})
			if err != nil {
				writeFieldErrors(cmd.ErrOrStderr(), app.GetLocalizer(c.v.GetString("language")), err)
				return err
			}

			keys := make([]string, 0, len(output.Updates))
			for key := range output.Updates {
				keys = append(keys, key)
			}
			sort.Strings(keys)

			view := updateView{
				Config:           output.Config,
				RegistryAppended: output.RegistryAppended,
				UpdatedKeys:      keys,
			}
			return c.render(cmd.OutOrStdout(), view, func(w io.Writer) error {
				return writeConfig(w, view.Config, true, nil)
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&file, "file", "f", "", "YAML file with configuration fields")
	flags.String("status", "", "IPv4 status (DISABLED, UNMANAGED, L2_ONLY, LAN, WAN)")
	flags.String("mode", "", "address assignment (DHCP, STATIC)")
	flags.String("ip", "", "IPv4 address")
	flags.String("subnet", "", "subnet mask")
	flags.String("gateway", "", "gateway address")
	flags.String("dns", "", "DNS servers separated by commas or spaces")
	flags.String("priority", "", "WAN priority (-1 or greater)")

	return cmd
}

// applyFlags overwrites the config fields whose flags were given
func applyFlags(cmd *cobra.Command, config *entities.NetInterfaceConfig) error {
	flags := cmd.Flags()

	if flags.Changed("status") {
		value, _ := flags.GetString("status")
		status, err := entities.ParseStatus(value)
		if err != nil {
			return errors.NewValidationError("잘못된 상태 값", err)
		}
		config.Status = status
	}
	if flags.Changed("mode") {
		value, _ := flags.GetString("mode")
		mode, err := entities.ParseConfigMode(value)
		if err != nil {
			return errors.NewValidationError("잘못된 주소 할당 방식", err)
		}
		config.ConfigMode = mode
	}
	if flags.Changed("ip") {
		config.IPAddress, _ = flags.GetString("ip")
	}
	if flags.Changed("subnet") {
		config.SubnetMask, _ = flags.GetString("subnet")
	}
	if flags.Changed("gateway") {
		config.Gateway, _ = flags.GetString("gateway")
	}
	if flags.Changed("dns") {
		value, _ := flags.GetString("dns")
		config.DNSServers = services.ParseDNSServers(value)
	}
	if flags.Changed("priority") {
		value, _ := flags.GetString("priority")
		priority, fieldErr := services.ParsePriority(value)
		if fieldErr != nil {
			return errors.NewInvalidConfigurationError("잘못된 WAN 우선순위: "+value, services.NewValidationResult(*fieldErr))
		}
		config.WANPriority = priority
	}
	return nil
}

// writeFieldErrors prints the localized messages of a rejected update
func writeFieldErrors(w io.Writer, l *presentation.Localizer, err error) {
	detail, ok := errors.DetailOf(err)
	if !ok {
		return
	}
	result, ok := detail.(services.ValidationResult)
	if !ok {
		return
	}
	for _, fieldErr := range result.Errors() {
		fmt.Fprintf(w, "%s: %s\n", l.T("field."+fieldErr.Field.String()), l.T("error."+fieldErr.Code))
	}
}

func (c *cli) newCapabilitiesCmd() *cobra.Command {
	var hw, status, mode string

	cmd := &cobra.Command{
		Use:   "capabilities",
		Short: "Show which fields are editable for a hardware type, status and mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			hwType := entities.ParseHwType(hw)
			if hwType == entities.HwTypeOther && !strings.EqualFold(strings.TrimSpace(hw), entities.HwTypeOther.String()) {
				return errors.NewValidationError("알 수 없는 하드웨어 타입: "+hw, nil)
			}
			ipStatus, err := entities.ParseStatus(status)
			if err != nil {
				return errors.NewValidationError("잘못된 상태 값", err)
			}
			configMode, err := entities.ParseConfigMode(mode)
			if err != nil {
				return errors.NewValidationError("잘못된 주소 할당 방식", err)
			}

			caps := services.Capabilities(hwType, ipStatus, configMode)
			view := capabilitiesView{
				HwType:        hwType,
				Status:        ipStatus,
				ConfigMode:    configMode,
				Fields:        fieldStates(caps),
				StatusOptions: services.StatusOptions(hwType, ipStatus),
			}

			return c.render(cmd.OutOrStdout(), view, func(w io.Writer) error {
				tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "FIELD\tENABLED\tVISIBLE\tCLEARED")
				for _, f := range view.Fields {
					fmt.Fprintf(tw, "%s\t%t\t%t\t%t\n", f.Name, f.Enabled, f.Visible, f.Cleared)
				}
				if err := tw.Flush(); err != nil {
					return err
				}
				options := make([]string, 0, len(view.StatusOptions))
				for _, s := range view.StatusOptions {
					options = append(options, s.String())
				}
				_, err := fmt.Fprintf(w, "Status options: %s\n", strings.Join(options, ", "))
				return err
			})
		},
	}

	cmd.Flags().StringVar(&hw, "hw", entities.HwTypeEthernet.String(), "hardware type (ETHERNET, WIFI, MODEM, LOOPBACK, OTHER)")
	cmd.Flags().StringVar(&status, "status", entities.StatusDisabled.String(), "IPv4 status")
	cmd.Flags().StringVar(&mode, "mode", entities.ConfigModeStatic.String(), "address assignment (DHCP, STATIC)")

	return cmd
}

func (c *cli) newFormCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "form <ifname>",
		Short: "Show the localized configuration form of one interface",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.app()
			if err != nil {
				return err
			}

			output, err := app.GetInterfaceConfigUseCase().Execute(cmd.Context(), usecases.GetInterfaceConfigInput{Name: args[0]})
			if err != nil {
				return err
			}

			form := presentation.BuildForm(output.Config, app.GetLocalizer(c.v.GetString("language")))

			return c.render(cmd.OutOrStdout(), form, func(w io.Writer) error {
				fmt.Fprintf(w, "%s (%s)\n", form.Interface, form.HwType)
				if form.Notice != "" {
					fmt.Fprintln(w, form.Notice)
				}
				tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
				for _, field := range form.Fields {
					if !field.Visible {
						continue
					}
					marker := ""
					if !field.Enabled {
						marker = "-"
					}
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", marker, field.Label, field.Value, field.Error)
				}
				if err := tw.Flush(); err != nil {
					return err
				}
				if form.ReadOnlyDNS != "" {
					fmt.Fprintln(w, form.ReadOnlyDNS)
				}
				return nil
			})
		},
	}
}

func (c *cli) newAuditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "audit",
		Short: "Validate every stored interface against its own status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.app()
			if err != nil {
				return err
			}

			output, err := app.GetAuditInterfacesUseCase().Execute(cmd.Context())
			if err != nil {
				return err
			}

			view := auditView{
				Results:      output.Results,
				TotalCount:   output.TotalCount,
				InvalidCount: output.InvalidCount,
			}
			if err := c.render(cmd.OutOrStdout(), view, func(w io.Writer) error {
				tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "NAME\tSTATUS\tVALID\tINVALID FIELDS")
				for _, result := range view.Results {
					fmt.Fprintf(tw, "%s\t%s\t%t\t%s\n", result.Name, result.Status, result.Valid, strings.Join(result.InvalidFields, ","))
				}
				return tw.Flush()
			}); err != nil {
				return err
			}

			if output.InvalidCount > 0 {
				return fmt.Errorf("%d of %d stored interface configurations are invalid", output.InvalidCount, output.TotalCount)
			}
			return nil
		},
	}
}

func (c *cli) newRestoreCmd() *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Roll the snapshot back to the latest backup (file backend)",
		Long: `restore replaces the component snapshot with its most recent backup and
removes that backup, so repeated runs step further back. With --list it only
shows the available backups, oldest first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.app()
			if err != nil {
				return err
			}
			store := app.GetFileStore()
			if store == nil {
				return errors.NewValidationError("snapshot backups require the file backend", nil)
			}
			componentID := app.GetConfig().Store.ComponentID

			if list {
				backups, err := store.ListBackups(componentID)
				if err != nil {
					return err
				}
				return c.render(cmd.OutOrStdout(), backups, func(w io.Writer) error {
					for _, name := range backups {
						if _, err := fmt.Fprintln(w, name); err != nil {
							return err
						}
					}
					return nil
				})
			}

			name, err := store.RestoreLatestBackup(cmd.Context(), componentID)
			if err != nil {
				return err
			}
			return c.render(cmd.OutOrStdout(), map[string]string{"restored": name}, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "restored %s\n", name)
				return err
			})
		},
	}

	cmd.Flags().BoolVar(&list, "list", false, "list backups instead of restoring")
	return cmd
}

func (c *cli) newComponentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "components",
		Short: "List component PIDs that have a snapshot (file backend)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.app()
			if err != nil {
				return err
			}
			store := app.GetFileStore()
			if store == nil {
				return errors.NewValidationError("listing components requires the file backend", nil)
			}

			components, err := store.ListComponents()
			if err != nil {
				return err
			}
			return c.render(cmd.OutOrStdout(), components, func(w io.Writer) error {
				for _, pid := range components {
					if _, err := fmt.Fprintln(w, pid); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}
