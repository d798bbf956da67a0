package main

import "github.com/tranvictor/claimview/cmd"

func main() {
	cmd.Execute()
}
