// Package main is the entry point for the epwatch application.
package main

import (
	"github.com/epwatch-cli/epwatch/cmd"
	"github.com/epwatch-cli/epwatch/config"
	"github.com/epwatch-cli/epwatch/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
