package cli

import (
	"github.com/Actividades-Arqui-2510/clinicsoap/pkg/clinic"
	"github.com/Actividades-Arqui-2510/clinicsoap/pkg/config"
	"github.com/Actividades-Arqui-2510/clinicsoap/pkg/logging"
	"github.com/Actividades-Arqui-2510/clinicsoap/pkg/soap"
	"github.com/spf13/cobra"
)

// annotationNoConfig marks commands that run without loading configuration.
const annotationNoConfig = "clinicctl/no-config"

var (
	// settings is the resolved configuration of the running command.
	settings = config.NewDefault()
	logger   = logging.Nop()
)

// loadSettings resolves configuration from files, environment and flags.
func loadSettings(cmd *cobra.Command, _ []string) error {
	if cmd.Annotations[annotationNoConfig] == "true" {
		return nil
	}

	cfg, err := config.LoadAll(config.LoadOptions{ConfigFile: configFile})
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	settings = cfg
	logger = logging.New(cfg.LoggingConfig())
	logger.Debug("configuration loaded", "baseUrl", cfg.BaseURL(), "configFile", cfg.ConfigFile)
	return nil
}

// applyFlags copies explicitly set persistent flags over cfg.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("api-url") {
		cfg.APIURL = apiURL
		cfg.Sources["apiUrl"] = config.SourceFlag
	}
	if flags.Changed("timeout") {
		cfg.Timeout = timeout
		cfg.Sources["timeout"] = config.SourceFlag
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
		cfg.Sources["logLevel"] = config.SourceFlag
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = logFormat
		cfg.Sources["logFormat"] = config.SourceFlag
	}
}

// newClient builds a clinic client from the resolved settings.
func newClient() (*clinic.Client, error) {
	catalog, err := settings.Catalog()
	if err != nil {
		return nil, err
	}
	return clinic.NewClient(newInvoker(), clinic.WithCatalog(catalog), clinic.WithLogger(logger)), nil
}

func newInvoker() *soap.Invoker {
	topts := []soap.TransportOption{soap.WithTimeout(settings.TimeoutDuration())}
	opts := []soap.Option{soap.WithLogger(logger)}
	if settings.Tracing {
		topts = append(topts, soap.WithTracing())
		opts = append(opts, soap.WithTracerProvider(tracerProvider(logger)))
	}
	opts = append(opts, soap.WithTransport(soap.NewHTTPTransport(topts...)))
	return soap.NewInvoker(settings.BaseURL(), opts...)
}
