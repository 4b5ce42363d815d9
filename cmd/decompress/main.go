package main

import "github.com/ferrous-labs/decompress/cmd"

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// main starts the decompress cli
func main() {
	cmd.Run(version, commit, date)
}
