// Package connstring validates Service Bus connection strings up front, so
// a malformed configuration fails before any network call is attempted. The
// SDK parses the same string again at client construction; this package only
// checks the invariants the harness depends on and extracts the AMQP
// endpoint for the transport preflight.
package connstring

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

const amqpsPort = "5671"

// Properties is the resolved form of a Service Bus connection string.
type Properties struct {
	Endpoint     string
	Namespace    string
	KeyName      string
	EntityPath   string
	hasKey       bool
	usesEmulator bool
}

// Parse splits and validates an Endpoint=sb://… connection string.
func Parse(connectionString string) (Properties, error) {
	if strings.TrimSpace(connectionString) == "" {
		return Properties{}, fmt.Errorf("connection string is empty")
	}

	var props Properties
	for _, segment := range strings.Split(connectionString, ";") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}

		key, value, found := strings.Cut(segment, "=")
		if !found {
			return Properties{}, fmt.Errorf("malformed connection string segment (%s)", key)
		}

		switch strings.ToLower(key) {
		case "endpoint":
			props.Endpoint = value
		case "sharedaccesskeyname":
			props.KeyName = value
		case "sharedaccesskey":
			props.hasKey = value != ""
		case "entitypath":
			props.EntityPath = value
		case "usedevelopmentemulator":
			props.usesEmulator = strings.EqualFold(value, "true")
		}
	}

	if props.Endpoint == "" {
		return Properties{}, fmt.Errorf("connection string has no Endpoint segment")
	}

	endpoint, err := url.Parse(props.Endpoint)
	if err != nil {
		return Properties{}, fmt.Errorf("invalid Endpoint (%s): %s", props.Endpoint, err)
	}
	if endpoint.Scheme != "sb" {
		return Properties{}, fmt.Errorf("invalid Endpoint scheme (%s), expected sb://", endpoint.Scheme)
	}
	if endpoint.Hostname() == "" {
		return Properties{}, fmt.Errorf("Endpoint (%s) has no host", props.Endpoint)
	}
	props.Namespace = endpoint.Hostname()

	if !props.usesEmulator {
		if props.KeyName == "" || !props.hasKey {
			return Properties{}, fmt.Errorf("connection string is missing SharedAccessKeyName or SharedAccessKey")
		}
	}

	return props, nil
}

// AMQPAddress is the host:port the SDK's pure-AMQP transport connects to.
func (p Properties) AMQPAddress() string {
	return net.JoinHostPort(p.Namespace, amqpsPort)
}
