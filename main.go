package main

import "blink-cli/cmd"

func main() {
	cmd.Execute()
}
