package main

import "github.com/RyanBlaney/acousticsim/cmd"

func main() {
	cmd.Execute()
}
