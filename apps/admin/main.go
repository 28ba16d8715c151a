package main

import (
	"log"
	"os"

	"github.com/trezcool/cohortplanner/core"
	"github.com/trezcool/cohortplanner/core/cohort"
	logsvc "github.com/trezcool/cohortplanner/services/logger"
)

func main() {
	conf, err := core.NewConfig()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger := logsvc.NewRollbarLogger(log.New(os.Stderr, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile), conf)
	logger.Enable(false)

	// start CLI
	cli := commandLine{
		in:     os.Stdin,
		out:    os.Stdout,
		policy: cohort.PolicyFromConfig(conf.Cohort),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Error("admin: " + describe(err))
		}
		os.Exit(1)
	}
}
