package main

import "cornerpeek/internal/cli"

func main() {
	cli.Execute()
}
