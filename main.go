// Command alertrelay runs the Google Alerts to SmartSuite relay service.
package main

import (
	"fmt"
	"os"

	"github.com/leadforge/alertrelay/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
