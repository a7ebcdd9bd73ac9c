// Package envinfo prints the environment block at the top of every run.
// Whether the process is containerized is the single most important fact for
// this reproduction, so it is detected and reported explicitly.
package envinfo

import (
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/bitrise-io/go-utils/v2/env"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/hashicorp/go-version"
	"github.com/msgdiag/servicebus-sockopt-repro/sockopt"
)

const sdkModulePath = "github.com/Azure/azure-sdk-for-go/sdk/messaging/azservicebus"

// Earliest SDK release this harness is validated against; older releases can
// fail the trials for unrelated session-handling reasons and would muddy the
// diagnosis.
const minValidatedSDKVersion = "1.6.0"

var containerMarkers = []string{"/.dockerenv", "/run/.containerenv"}

// Reporter prints the run environment before the first trial.
type Reporter interface {
	Report(sessionID string, patchMode sockopt.PatchMode, table sockopt.Table)
}

type reporter struct {
	logger        log.Logger
	envRepository env.Repository
}

// NewReporter ...
func NewReporter(logger log.Logger, envRepository env.Repository) Reporter {
	return &reporter{
		logger:        logger,
		envRepository: envRepository,
	}
}

func (r *reporter) Report(sessionID string, patchMode sockopt.PatchMode, table sockopt.Table) {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	sdkVersion := moduleVersion(sdkModulePath)

	r.logger.Infof("Environment")
	r.logger.Printf("* go_version: %s", runtime.Version())
	r.logger.Printf("* sdk_version: %s (%s)", sdkVersion, sdkModulePath)
	r.logger.Printf("* platform: %s/%s", runtime.GOOS, runtime.GOARCH)
	r.logger.Printf("* hostname: %s", hostname)
	r.logger.Printf("* in_container: %t", r.inContainer())
	r.logger.Printf("* session_id: %s", sessionID)
	r.logger.Printf("* patch: %s", patchMode)
	r.logger.Printf("* socket_options: %s", formatTable(table))
	r.logger.Println()

	if outdated, err := olderThanValidated(sdkVersion); err == nil && outdated {
		r.logger.Warnf("SDK version %s is older than the earliest validated release (%s); trial failures may have unrelated causes.", sdkVersion, minValidatedSDKVersion)
	}
}

// inContainer checks the usual runtime markers: the Docker/Podman sentinel
// files and the downward API env var Kubernetes always injects.
func (r *reporter) inContainer() bool {
	for _, marker := range containerMarkers {
		if _, err := os.Stat(marker); err == nil {
			return true
		}
	}
	return r.envRepository.Get("KUBERNETES_SERVICE_HOST") != ""
}

func moduleVersion(path string) string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	for _, dep := range info.Deps {
		if dep.Path == path {
			return dep.Version
		}
	}
	return "unknown"
}

func olderThanValidated(detected string) (bool, error) {
	detectedVersion, err := version.NewVersion(strings.TrimPrefix(detected, "v"))
	if err != nil {
		return false, err
	}
	minimum, err := version.NewVersion(minValidatedSDKVersion)
	if err != nil {
		return false, err
	}
	return detectedVersion.LessThan(minimum), nil
}

func formatTable(table sockopt.Table) string {
	if len(table) == 0 {
		return "(none)"
	}
	parts := make([]string, 0, len(table))
	for _, opt := range table {
		parts = append(parts, opt.String())
	}
	return strings.Join(parts, " ")
}
