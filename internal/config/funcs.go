package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/hashicorp/go-multierror"
)

func GetBool(key string, defaultValue bool) bool {
	v := os.Getenv(key)
	if len(v) > 0 {
		return strings.ToLower(v) == "true"
	}
	return defaultValue
}

func GetString(key, defaultValue string) string {
	v := os.Getenv(key)
	if v != "" {
		return v
	}
	return defaultValue
}

var envVarPattern = regexp.MustCompile(`\$\{(\w+)(?::([^}]*))?}`)

// expandEnvVars replaces ${VAR} and ${VAR:default} references in a raw
// configuration file. A reference without a default to an unset variable is
// an error.
func expandEnvVars(b []byte) ([]byte, error) {
	var result *multierror.Error

	expanded := envVarPattern.ReplaceAllFunc(b, func(match []byte) []byte {
		groups := envVarPattern.FindSubmatch(match)
		name := string(groups[1])
		def := string(groups[2])

		if v, ok := os.LookupEnv(name); ok {
			return []byte(v)
		}
		if len(groups[2]) != 0 || strings.Contains(string(match), ":") {
			return []byte(def)
		}

		result = multierror.Append(result, fmt.Errorf("required environment variable %s is not set", name))
		return match
	})

	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return expanded, nil
}
