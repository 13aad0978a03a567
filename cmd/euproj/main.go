package main

import "github.com/david/eu-project-explorer/internal/cli"

func main() {
	cli.Execute()
}
