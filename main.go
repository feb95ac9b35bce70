package main

import "github.com/axsim/sim-cli/cmd"

func main() {
	cmd.Execute()
}
