package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {

	cmd := newRootCommand(os.Stdin, os.Stdout, os.Stderr)

	if err := cmd.Execute(); err != nil {
		var status exitStatus
		if errors.As(err, &status) {
			os.Exit(status.code)
		}

		fmt.Fprintln(os.Stderr, "crusty:", err)
		os.Exit(1)
	}

}
