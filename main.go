package main

import (
	"os"

	"github.com/bitrise-io/go-steputils/v2/stepconf"
	"github.com/bitrise-io/go-utils/v2/env"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/msgdiag/servicebus-sockopt-repro/envinfo"
	"github.com/msgdiag/servicebus-sockopt-repro/report"
	"github.com/msgdiag/servicebus-sockopt-repro/step"
)

func main() {
	os.Exit(run())
}

func run() int {
	logger := log.NewLogger()
	envRepository := env.NewRepository()

	configParser := step.NewReproConfigParser(stepconf.NewInputParser(envRepository), logger)
	config, err := configParser.ProcessConfig()
	if err != nil {
		logger.Errorf("Process config: %s", err)
		return 1
	}

	runner := createRunner(logger, envRepository)
	result := runner.Run(config)

	if err := runner.Export(result, config.ReportPath); err != nil {
		logger.Warnf("Export outputs: %s", err)
	}

	if result.Failed {
		return 1
	}

	logger.Println()
	logger.Donef("All scenarios passed")
	return 0
}

func createRunner(logger log.Logger, envRepository env.Repository) step.ReproRunner {
	builder := step.NewScenarioBuilder(logger)
	envReporter := envinfo.NewReporter(logger, envRepository)
	exporter := report.NewExporter(logger)

	return step.NewReproRunner(logger, builder, envReporter, exporter)
}
