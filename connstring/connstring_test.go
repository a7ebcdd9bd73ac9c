package connstring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConnectionString = "Endpoint=sb://example.servicebus.windows.net/;SharedAccessKeyName=RootManageSharedAccessKey;SharedAccessKey=c2VjcmV0"

func Test_GivenValidConnectionString_WhenParse_ThenResolvesProperties(t *testing.T) {
	props, err := Parse(validConnectionString)

	require.NoError(t, err)
	assert.Equal(t, "sb://example.servicebus.windows.net/", props.Endpoint)
	assert.Equal(t, "example.servicebus.windows.net", props.Namespace)
	assert.Equal(t, "RootManageSharedAccessKey", props.KeyName)
	assert.Equal(t, "example.servicebus.windows.net:5671", props.AMQPAddress())
}

func Test_GivenEntityPath_WhenParse_ThenKept(t *testing.T) {
	props, err := Parse(validConnectionString + ";EntityPath=test-queue")

	require.NoError(t, err)
	assert.Equal(t, "test-queue", props.EntityPath)
}

func Test_GivenEmulatorConnectionString_WhenParse_ThenKeyOptional(t *testing.T) {
	props, err := Parse("Endpoint=sb://localhost;UseDevelopmentEmulator=true")

	require.NoError(t, err)
	assert.Equal(t, "localhost", props.Namespace)
}

func Test_GivenBrokenConnectionStrings_WhenParse_ThenFails(t *testing.T) {
	tests := []struct {
		name             string
		connectionString string
	}{
		{"empty", ""},
		{"whitespace", "   "},
		{"no endpoint", "SharedAccessKeyName=name;SharedAccessKey=key"},
		{"wrong scheme", "Endpoint=https://example.servicebus.windows.net/;SharedAccessKeyName=name;SharedAccessKey=key"},
		{"no host", "Endpoint=sb://;SharedAccessKeyName=name;SharedAccessKey=key"},
		{"missing key name", "Endpoint=sb://example.servicebus.windows.net/;SharedAccessKey=key"},
		{"missing key", "Endpoint=sb://example.servicebus.windows.net/;SharedAccessKeyName=name"},
		{"malformed segment", "Endpoint=sb://example.servicebus.windows.net/;garbage"},
	}

	for _, test := range tests {
		t.Log(test.name)

		_, err := Parse(test.connectionString)
		assert.Error(t, err, test.name)
	}
}
