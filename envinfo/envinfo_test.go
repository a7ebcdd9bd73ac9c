package envinfo

import (
	"testing"

	"github.com/msgdiag/servicebus-sockopt-repro/sockopt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_GivenSDKVersions_WhenComparedToValidated_ThenOrderingCorrect(t *testing.T) {
	tests := []struct {
		detected string
		want     bool
	}{
		{"v1.5.0", true},
		{"1.5.9", true},
		{"v1.6.0", false},
		{"v1.7.3", false},
		{"v2.0.0", false},
	}

	for _, test := range tests {
		outdated, err := olderThanValidated(test.detected)

		require.NoError(t, err, "detected: %s", test.detected)
		assert.Equal(t, test.want, outdated, "detected: %s", test.detected)
	}
}

func Test_GivenUnknownSDKVersion_WhenCompared_ThenError(t *testing.T) {
	_, err := olderThanValidated("unknown")

	require.Error(t, err)
}

func Test_GivenOptionTable_WhenFormatted_ThenOnePairPerOption(t *testing.T) {
	table := sockopt.Table{
		{Name: "TCP_NODELAY", Value: 1},
		{Name: "TCP_MAXSEG", Value: 16384},
	}

	assert.Equal(t, "TCP_NODELAY=1 TCP_MAXSEG=16384", formatTable(table))
}

func Test_GivenEmptyOptionTable_WhenFormatted_ThenPlaceholder(t *testing.T) {
	assert.Equal(t, "(none)", formatTable(sockopt.Table{}))
}

func Test_GivenMissingDependency_WhenModuleVersionLookedUp_ThenUnknown(t *testing.T) {
	assert.Equal(t, "unknown", moduleVersion("example.com/no/such/module"))
}
