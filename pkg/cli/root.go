package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Persistent flags available to all subcommands
	apiURL     string
	configFile string
	timeout    int
	jsonOutput bool
	query      string
	logLevel   string
	logFormat  string

	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "clinicctl",
	Short: "clinicctl talks to the clinic SOAP backend",
	Long: `clinicctl manages doctors, patients and appointments through the clinic
backend's SOAP endpoints.

The backend address comes from --api-url, CLINIC_API_URL or a config file.
Without one, http://localhost:8081/soap is used, or http://localhost:8080/soap
when CLINIC_DOCKER_ENV=true. Config files are looked up in
$XDG_CONFIG_HOME/clinicctl/config.yaml and ./.clinicrc.yaml.`,
	SilenceUsage:      true,
	SilenceErrors:     true, // We handle errors in Main()
	PersistentPreRunE: loadSettings,
}

// Execute runs the root command and exits with its status.
// This is called by main.main().
func Execute() {
	os.Exit(Main())
}

// Main runs the root command and returns the process exit code.
func Main() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		var exit *ExitError
		if errors.As(err, &exit) {
			return exit.Code
		}
		return 1
	}
	return 0
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&apiURL, "api-url", "", "Backend base URL (default from config, e.g. http://localhost:8081/soap)")
	flags.StringVar(&configFile, "config", "", "Config file to use instead of ./.clinicrc.yaml")
	flags.IntVar(&timeout, "timeout", 0, "HTTP timeout in seconds (default 30)")
	flags.BoolVar(&jsonOutput, "json", false, "Output command results in JSON format")
	flags.StringVar(&query, "query", "", "JSONPath applied to the JSON output, e.g. '$[*].email' (implies --json)")
	flags.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&logFormat, "log-format", "", "Log format: text, json")
}
