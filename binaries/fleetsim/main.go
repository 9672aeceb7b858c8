package main

import (
	"os"

	log "github.com/sirupsen/logrus"

	simerrors "github.com/twitter/fleetsim/common/errors"
	"github.com/twitter/fleetsim/common/log/hooks"
	"github.com/twitter/fleetsim/scheduler/client/cli"
)

// Simulates a scheduling run: fleetsim [flags] rr|sjf|priority
func main() {
	log.AddHook(hooks.NewContextHook())

	err := cli.NewSimCLI().Exec()
	if err != nil {
		log.Error("error running fleetsim: ", err)
	}
	os.Exit(int(simerrors.ExitCodeOf(err)))
}
