package main

import "github.com/agusespa/classweave/internal/cli"

var version = "dev"

func main() {
	cli.Execute(version)
}
