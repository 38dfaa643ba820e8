package presentation

import (
	"strconv"

	"netif-console/internal/domain/entities"
	"netif-console/internal/domain/services"
)

// Option is one entry of a selection list
type Option struct {
	Value    string `json:"value" yaml:"value"`
	Label    string `json:"label" yaml:"label"`
	Selected bool   `json:"selected,omitempty" yaml:"selected,omitempty"`
}

// FormField is the rendered state of one field
type FormField struct {
	Name    string `json:"name" yaml:"name"`
	Label   string `json:"label" yaml:"label"`
	Value   string `json:"value" yaml:"value"`
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Visible bool   `json:"visible" yaml:"visible"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Form is the localized IPv4 form for one interface
type Form struct {
	Interface     string      `json:"interface" yaml:"interface"`
	HwType        string      `json:"hwType" yaml:"hwType"`
	Language      string      `json:"language" yaml:"language"`
	Notice        string      `json:"notice,omitempty" yaml:"notice,omitempty"`
	Fields        []FormField `json:"fields" yaml:"fields"`
	StatusOptions []Option    `json:"statusOptions" yaml:"statusOptions"`
	ModeOptions   []Option    `json:"modeOptions" yaml:"modeOptions"`
	ReadOnlyDNS   string      `json:"readOnlyDns,omitempty" yaml:"readOnlyDns,omitempty"`
	Valid         bool        `json:"valid" yaml:"valid"`
}

// Field returns the named field
func (f Form) Field(name string) (FormField, bool) {
	for _, field := range f.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return FormField{}, false
}

// BuildForm computes capabilities and validation for config and renders
// every field with localized labels and messages.
func BuildForm(config entities.NetInterfaceConfig, l *Localizer) Form {
	caps := services.CapabilitiesFor(config)
	result := services.Validate(config, caps)

	form := Form{
		Interface: config.Name,
		HwType:    l.T("hwtype." + config.HwType.String()),
		Language:  l.Language().String(),
		Fields:    make([]FormField, 0, len(services.AllFields())),
		Valid:     result.Valid(),
	}

	if config.IsLoopback() {
		form.Notice = l.T("form.loopback_notice")
	}

	for _, f := range services.AllFields() {
		state := caps.State(f)
		field := FormField{
			Name:    f.String(),
			Label:   l.T("field." + f.String()),
			Value:   fieldValue(config, f, l),
			Enabled: state.Enabled,
			Visible: state.Visible,
		}
		if fieldErr, ok := result.Error(f); ok {
			field.Error = l.T("error." + fieldErr.Code)
		}
		form.Fields = append(form.Fields, field)
	}

	for _, status := range services.StatusOptions(config.HwType, config.Status) {
		form.StatusOptions = append(form.StatusOptions, Option{
			Value:    status.String(),
			Label:    l.T("status." + status.String()),
			Selected: status == config.Status,
		})
	}

	for _, mode := range entities.AllConfigModes() {
		form.ModeOptions = append(form.ModeOptions, Option{
			Value:    mode.String(),
			Label:    l.T("mode." + mode.String()),
			Selected: mode == config.ConfigMode,
		})
	}

	if services.ReadOnlyDNSVisible(config) && config.ReadOnlyDNSServers != "" {
		form.ReadOnlyDNS = l.TData("form.readonly_dns", map[string]interface{}{
			"Servers": config.ReadOnlyDNSServers,
		})
	}

	return form
}

func fieldValue(config entities.NetInterfaceConfig, f services.Field, l *Localizer) string {
	switch f {
	case services.FieldStatus:
		return l.T("status." + config.Status.String())
	case services.FieldPriority:
		return strconv.Itoa(config.WANPriority)
	case services.FieldConfigure:
		return l.T("mode." + config.ConfigMode.String())
	case services.FieldIP:
		return config.IPAddress
	case services.FieldSubnet:
		return config.SubnetMask
	case services.FieldGateway:
		return config.Gateway
	case services.FieldDNS:
		return services.FormatDNSServers(config.DNSServers)
	}
	return ""
}
