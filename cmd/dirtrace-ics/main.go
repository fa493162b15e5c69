package main

import "github.com/pfrederiksen/dirtrace-ics/internal/cli"

func main() {
	cli.Execute()
}
