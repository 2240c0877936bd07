// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Vectool Contributors

package qdrant

import (
	"net"
	"net/url"
	"strconv"
	"strings"

	vecerr "github.com/vectool-dev/vectool/pkg/errors"
)

// defaultGRPCPort is Qdrant's gRPC port. The REST port (6333) is not used
// by this client.
const defaultGRPCPort = 6334

// parseTarget derives gRPC connection parameters from a configured URL.
// Accepted forms: https://host[:port], http://host[:port], host[:port].
// An https scheme enables TLS; a missing port falls back to 6334.
func parseTarget(raw string) (host string, port int, useTLS bool, err error) {
	if raw == "" {
		return "", 0, false, vecerr.New(vecerr.CodeConfigValidateInvalidValue,
			"qdrant url is required; set qdrant.url or QDRANT_URL")
	}

	hostport := raw
	if strings.Contains(raw, "://") {
		u, parseErr := url.Parse(raw)
		if parseErr != nil {
			return "", 0, false, vecerr.Wrapf(parseErr, vecerr.CodeConfigValidateInvalidValue,
				"parsing qdrant url %q", raw)
		}
		switch u.Scheme {
		case "http":
		case "https":
			useTLS = true
		default:
			return "", 0, false, vecerr.Errorf(vecerr.CodeConfigValidateInvalidValue,
				"qdrant url %q: unsupported scheme %q", raw, u.Scheme)
		}
		hostport = u.Host
	}

	host, portStr, splitErr := net.SplitHostPort(hostport)
	if splitErr != nil {
		// No port in the address.
		host = hostport
		port = defaultGRPCPort
	} else {
		port, err = strconv.Atoi(portStr)
		if err != nil {
			return "", 0, false, vecerr.Errorf(vecerr.CodeConfigValidateInvalidValue,
				"qdrant url %q: invalid port %q", raw, portStr)
		}
	}

	if host == "" {
		return "", 0, false, vecerr.Errorf(vecerr.CodeConfigValidateInvalidValue,
			"qdrant url %q: missing host", raw)
	}
	return host, port, useTLS, nil
}
