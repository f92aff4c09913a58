package cli

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/Actividades-Arqui-2510/clinicsoap/pkg/cli/internal/output"
	"github.com/Actividades-Arqui-2510/clinicsoap/pkg/soap"
	"github.com/spf13/cobra"
)

// versionOutput is the JSON form of `version`.
type versionOutput struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Built     string `json:"built"`
	Go        string `json:"go"`
	Platform  string `json:"platform"`
	Namespace string `json:"soapNamespace"`
}

// buildVersion fills the values left at their ldflags defaults from the
// module's embedded build info.
func buildVersion(info *debug.BuildInfo) versionOutput {
	out := versionOutput{
		Version:   Version,
		Commit:    Commit,
		Built:     BuildDate,
		Go:        runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		Namespace: soap.ServiceNamespace,
	}
	if info == nil {
		return out
	}
	if out.Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		out.Version = info.Main.Version
	}
	dirty := false
	for _, s := range info.Settings {
		switch {
		case s.Key == "vcs.revision" && out.Commit == "none":
			out.Commit = s.Value
		case s.Key == "vcs.time" && out.Built == "unknown":
			out.Built = s.Value
		case s.Key == "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if dirty && out.Commit != "none" {
		out.Commit += "-dirty"
	}
	if out.Version != "dev" && !strings.HasPrefix(out.Version, "v") {
		out.Version = "v" + out.Version
	}
	return out
}

var versionCmd = &cobra.Command{
	Use:         "version",
	Short:       "Show clinicctl build information",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationNoConfig: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		info, _ := debug.ReadBuildInfo()
		out := buildVersion(info)
		return printResult(out, func() {
			w := output.Table()
			fmt.Fprintf(w, "version\t%s\n", out.Version)
			fmt.Fprintf(w, "commit\t%s\n", out.Commit)
			fmt.Fprintf(w, "built\t%s\n", out.Built)
			fmt.Fprintf(w, "go\t%s (%s)\n", out.Go, out.Platform)
			fmt.Fprintf(w, "namespace\t%s\n", out.Namespace)
			_ = w.Flush()
		})
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
