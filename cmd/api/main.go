package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/LerianStudio/docker-api/internal/bootstrap"
	flag "github.com/spf13/pflag"
)

func main() {
	startedAt := time.Now()

	os.Exit(run(startedAt, os.Args[1:]))
}

func run(startedAt time.Time, args []string) int {
	cfg, err := bootstrap.LoadConfig(args)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", bootstrap.ApplicationName, err)
		return 1
	}

	svc, err := bootstrap.InitServers(cfg, bootstrap.NewProcess(startedAt, cfg.Environment))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", bootstrap.ApplicationName, err)
		return 1
	}

	if err := svc.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", bootstrap.ApplicationName, err)
		return 1
	}

	return 0
}
