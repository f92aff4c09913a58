package cli

import (
	"fmt"
	"sort"

	"github.com/Actividades-Arqui-2510/clinicsoap/pkg/cli/internal/output"
	"github.com/Actividades-Arqui-2510/clinicsoap/pkg/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the resolved configuration",
}

// configOutput is the JSON form of `config show`.
type configOutput struct {
	BaseURL string            `json:"baseUrl"`
	Config  *config.Config    `json:"config"`
	Sources map[string]string `json:"sources"`
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration and where each value came from",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := configOutput{BaseURL: settings.BaseURL(), Config: settings, Sources: settings.Sources}
		data, err := yaml.Marshal(settings)
		if err != nil {
			return err
		}
		return printResult(out, func() {
			fmt.Fprintf(output.Stdout, "# base URL: %s\n", out.BaseURL)
			fmt.Fprint(output.Stdout, string(data))

			keys := make([]string, 0, len(out.Sources))
			for k := range out.Sources {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			fmt.Fprintln(output.Stdout)
			w := output.Table()
			output.Header(w, "setting", "source")
			for _, k := range keys {
				fmt.Fprintf(w, "%s\t%s\n", k, out.Sources[k])
			}
			_ = w.Flush()
		})
	},
}

var configOperationsCmd = &cobra.Command{
	Use:   "operations",
	Short: "List the operation catalog with configured overrides applied",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := settings.Catalog()
		if err != nil {
			return err
		}
		type entry struct {
			Key        string `json:"key"`
			Group      string `json:"group"`
			SOAPAction string `json:"soapAction"`
			ResultTag  string `json:"resultTag,omitempty"`
		}
		entries := make([]entry, 0, len(catalog))
		for _, key := range catalog.Keys() {
			op := catalog[key]
			entries = append(entries, entry{key.String(), string(op.Group), op.SOAPAction, op.ResultTag})
		}
		return printResult(entries, func() {
			w := output.Table()
			output.Header(w, "operation", "group", "soap action", "result")
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Key, e.Group, e.SOAPAction, output.Dash(e.ResultTag))
			}
			_ = w.Flush()
		})
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configOperationsCmd)
}
