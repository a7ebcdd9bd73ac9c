package step

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bitrise-io/go-steputils/v2/stepconf"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/google/uuid"
	"github.com/kballard/go-shellquote"
	"github.com/msgdiag/servicebus-sockopt-repro/busclient"
	"github.com/msgdiag/servicebus-sockopt-repro/connstring"
	"github.com/msgdiag/servicebus-sockopt-repro/envinfo"
	"github.com/msgdiag/servicebus-sockopt-repro/report"
	"github.com/msgdiag/servicebus-sockopt-repro/scenario"
	"github.com/msgdiag/servicebus-sockopt-repro/sockopt"
)

const (
	defaultMessageCount      = 3
	defaultReceiveTimeoutSec = 5
)

// Input ...
type Input struct {
	ConnectionString stepconf.Secret `env:"CONNECTION_STRING,required"`
	QueueName        string          `env:"QUEUE_NAME,required"`

	// Patch selection: unset/0 = none, 1 = resilient setsockopt, 2 = drop TCP_MAXSEG
	ApplyPatch string `env:"APPLY_PATCH"`

	// Trial parameters; counts are parsed by hand so an explicit 0 is
	// rejected instead of silently falling back to the default.
	MessageCount      string `env:"MESSAGE_COUNT"`
	ReceiveTimeoutSec string `env:"RECEIVE_TIMEOUT_SEC"`
	ExtraSocketOpts   string `env:"EXTRA_SOCKET_OPTIONS"`

	// Optional control broker and report output
	ControlAMQPURL string `env:"CONTROL_AMQP_URL"`
	ReportPath     string `env:"REPORT_PATH"`

	// Debug
	Verbose bool `env:"VERBOSE"`
}

// Config ...
type Config struct {
	ConnectionString string
	Namespace        connstring.Properties
	QueueName        string
	SessionID        string

	PatchMode    sockopt.PatchMode
	ExtraOptions []sockopt.Option

	MessageCount   int
	ReceiveTimeout time.Duration

	ControlAMQPURL string
	ReportPath     string
}

// ReproConfigParser resolves and validates the whole configuration before
// any client is constructed; every error it returns is fatal and happens
// before the first network call.
type ReproConfigParser struct {
	inputParser stepconf.InputParser
	logger      log.Logger
}

// NewReproConfigParser ...
func NewReproConfigParser(inputParser stepconf.InputParser, logger log.Logger) ReproConfigParser {
	return ReproConfigParser{
		inputParser: inputParser,
		logger:      logger,
	}
}

// ProcessConfig ...
func (p ReproConfigParser) ProcessConfig() (Config, error) {
	var input Input
	if err := p.inputParser.Parse(&input); err != nil {
		return Config{}, err
	}

	stepconf.Print(input)
	p.logger.Println()
	p.logger.EnableDebugLog(input.Verbose)

	patchMode, err := sockopt.ParsePatchMode(input.ApplyPatch)
	if err != nil {
		return Config{}, err
	}

	var extraOptions []sockopt.Option
	if input.ExtraSocketOpts != "" {
		tokens, err := shellquote.Split(input.ExtraSocketOpts)
		if err != nil {
			return Config{}, fmt.Errorf("failed to parse EXTRA_SOCKET_OPTIONS (%s): %s", input.ExtraSocketOpts, err)
		}
		for _, token := range tokens {
			opt, err := sockopt.ResolveOption(token)
			if err != nil {
				return Config{}, err
			}
			extraOptions = append(extraOptions, opt)
		}
	}

	namespace, err := connstring.Parse(string(input.ConnectionString))
	if err != nil {
		return Config{}, fmt.Errorf("invalid CONNECTION_STRING: %s", err)
	}

	messageCount, err := parsePositiveInt(input.MessageCount, defaultMessageCount, "MESSAGE_COUNT")
	if err != nil {
		return Config{}, err
	}

	receiveTimeoutSec, err := parsePositiveInt(input.ReceiveTimeoutSec, defaultReceiveTimeoutSec, "RECEIVE_TIMEOUT_SEC")
	if err != nil {
		return Config{}, err
	}

	// A fresh session ID per run keeps invocations isolated on a shared queue.
	sessionID := "test-" + uuid.NewString()[:8]

	return Config{
		ConnectionString: string(input.ConnectionString),
		Namespace:        namespace,
		QueueName:        input.QueueName,
		SessionID:        sessionID,

		PatchMode:    patchMode,
		ExtraOptions: extraOptions,

		MessageCount:   messageCount,
		ReceiveTimeout: time.Duration(receiveTimeoutSec) * time.Second,

		ControlAMQPURL: input.ControlAMQPURL,
		ReportPath:     input.ReportPath,
	}, nil
}

func parsePositiveInt(value string, fallback int, name string) (int, error) {
	if strings.TrimSpace(value) == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s (%s): %s", name, value, err)
	}
	if parsed <= 0 {
		return 0, fmt.Errorf("invalid %s (%d), should be positive", name, parsed)
	}
	return parsed, nil
}

// ScenarioBuilder assembles the trials for a resolved configuration.
type ScenarioBuilder interface {
	Build(config Config) []scenario.Runner
}

type scenarioBuilder struct {
	logger log.Logger
}

// NewScenarioBuilder ...
func NewScenarioBuilder(logger log.Logger) ScenarioBuilder {
	return &scenarioBuilder{logger: logger}
}

func (b *scenarioBuilder) Build(config Config) []scenario.Runner {
	// The patch is applied here, once, before any client exists.
	table, setter := sockopt.Configure(config.PatchMode, config.ExtraOptions, b.logger)
	dialer := sockopt.NewDialer(table, setter)

	preflight := preflightDial(dialer, config.Namespace.AMQPAddress(), b.logger)
	clients := busclient.NewFactory(config.ConnectionString)

	// Only the async trial rides the option-applying dialer: the sync trial
	// consumes the SDK untouched, so an option failure inside a container
	// fails async while sync still passes.
	runners := []scenario.Runner{
		scenario.NewSyncTrial(clients, b.logger),
		scenario.NewAsyncTrial(clients, preflight, b.logger),
	}

	if config.ControlAMQPURL != "" {
		runners = append(runners, scenario.NewControlTrial(config.ControlAMQPURL, dialer, b.logger))
	}

	return runners
}

// preflightDial probes the namespace's AMQP endpoint through the
// option-applying dialer. The Go SDK exposes no dialer hook, so this is the
// point where the container defect reproduces before the SDK takes over.
func preflightDial(dialer *sockopt.Dialer, address string, logger log.Logger) scenario.Preflight {
	return func(ctx context.Context) error {
		logger.Debugf("preflight dial: %s", address)
		conn, err := dialer.DialContext(ctx, "tcp", address)
		if err != nil {
			return err
		}
		return conn.Close()
	}
}

// Result ...
type Result struct {
	Scenarios []scenario.Result
	Failed    bool
}

// ReproRunner executes the trials strictly in sequence and collects every
// result: an early failure is reported but never blocks later trials.
type ReproRunner struct {
	logger      log.Logger
	builder     ScenarioBuilder
	envReporter envinfo.Reporter
	exporter    report.Exporter
}

// NewReproRunner ...
func NewReproRunner(logger log.Logger, builder ScenarioBuilder, envReporter envinfo.Reporter, exporter report.Exporter) ReproRunner {
	return ReproRunner{
		logger:      logger,
		builder:     builder,
		envReporter: envReporter,
		exporter:    exporter,
	}
}

// Run ...
func (r ReproRunner) Run(config Config) Result {
	table, _ := sockopt.Configure(config.PatchMode, config.ExtraOptions, r.logger)
	r.envReporter.Report(config.SessionID, config.PatchMode, table)

	params := scenario.Params{
		QueueName:      config.QueueName,
		SessionID:      config.SessionID,
		MessageCount:   config.MessageCount,
		ReceiveTimeout: config.ReceiveTimeout,
	}

	var result Result
	for _, runner := range r.builder.Build(config) {
		r.logger.Println()
		r.logger.Infof("--- %s ---", runner.Name())

		trial := runner.Run(context.Background(), params)
		if trial.Passed {
			r.logger.Donef("RESULT: PASS")
		} else {
			r.logger.Errorf("RESULT: FAIL - %s", trial.Error)
		}

		result.Scenarios = append(result.Scenarios, trial)
		result.Failed = result.Failed || !trial.Passed
	}

	return result
}

// Export ...
func (r ReproRunner) Export(result Result, reportPath string) error {
	r.exporter.ExportRunResult(result.Scenarios)
	if reportPath == "" {
		return nil
	}
	return r.exporter.ExportReportFile(reportPath, result.Scenarios)
}
