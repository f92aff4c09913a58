// clinicctl - command-line client for the clinic SOAP backend
package main

import "github.com/Actividades-Arqui-2510/clinicsoap/pkg/cli"

// Build-time variables set via ldflags
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

func main() {
	cli.Version = Version
	cli.Commit = Commit
	cli.BuildDate = BuildDate
	cli.Execute()
}
