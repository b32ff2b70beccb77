package main

import "github.com/kamal-hamza/bcattr/cmd"

func main() {
	cmd.Execute()
}
