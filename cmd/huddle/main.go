package main

import (
	"github.com/BioHazard786/huddle/internal/cli"
	"github.com/BioHazard786/huddle/internal/logging"
)

func main() {
	logging.Init()
	cli.Execute()
}
