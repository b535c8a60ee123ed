package main

import "github.com/mcoot/eventease/internal/cli"

func main() {
	cli.Execute()
}
