package main

import (
	"fmt"
	"os"
	_ "time/tzdata" // --tz must resolve on hosts without zoneinfo
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
