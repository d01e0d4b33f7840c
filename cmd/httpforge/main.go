package main

import (
	"fmt"
	"os"

	_ "go.uber.org/automaxprocs" // tunes GOMAXPROCS to the container cgroup, packetd convention
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "httpforge:", err)
		os.Exit(1)
	}
}
