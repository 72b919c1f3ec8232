// portal is the command-line client for the student achievement portal.
// Commands map onto the portal's routes; each one runs the route guard
// before its page controller.
package main

import (
	"fmt"
	"os"
)

func main() {
	root, err := newRootCommand()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
