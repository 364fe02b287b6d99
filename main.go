// Package main provides whirl, a command runner that shows an activity spinner.
package main

import "whirl/cmd"

func main() {
	cmd.Execute()
}
