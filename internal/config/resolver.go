// Package config resolves the shim's backend configuration from
// environment input. Resolution is fail-closed: any malformed or unsafe
// input yields an error and no descriptor.
package config

import (
	"net/url"
	"strings"

	"github.com/toolfront/mcp-shim/internal/shellwords"
)

// Environment variable names forming the shim's input contract.
const (
	EnvProxyURL = "PROXY_URL"
	EnvCommand  = "COMMAND"
	EnvArgs     = "ARGS"
)

const (
	// MaxArgs bounds the tokenized argument list.
	MaxArgs = 64
	// MaxTokenLen bounds each command or argument token, in bytes.
	MaxTokenLen = 512
)

// SafeToken reports whether s is acceptable as a command or argument
// token: non-empty, at most MaxTokenLen bytes, and free of NUL, LF and
// CR. The subprocess is launched via direct argv execution, so shell
// metacharacters are not the threat model; embedded control characters
// and unbounded input are.
func SafeToken(s string) bool {
	if len(s) == 0 || len(s) > MaxTokenLen {
		return false
	}
	return !strings.ContainsAny(s, "\x00\n\r")
}

// Resolve maps an environment snapshot to exactly one Backend. Presence
// of a non-empty PROXY_URL is a hard, one-way branch: the subprocess
// path is never evaluated, and there is no fallback between variants.
// Resolve reads nothing outside env and is idempotent over it.
func Resolve(env map[string]string) (Backend, error) {
	if proxyURL := env[EnvProxyURL]; proxyURL != "" {
		if err := validateRemoteURL(proxyURL); err != nil {
			return nil, err
		}
		return RemoteHTTP{URL: proxyURL}, nil
	}

	command := env[EnvCommand]
	if command == "" {
		return nil, resolveErrorf(KindMissingBackendConfig,
			"Must set either %s or %s environment variable", EnvProxyURL, EnvCommand)
	}

	var args []string
	if raw := env[EnvArgs]; raw != "" {
		var err error
		args, err = shellwords.Split(raw)
		if err != nil {
			return nil, resolveErrorf(KindArgParseError, "Malformed %s: %v", EnvArgs, err)
		}
	}

	if len(args) > MaxArgs {
		return nil, resolveErrorf(KindTooManyArgs, "Too many args")
	}
	if !SafeToken(command) {
		return nil, resolveErrorf(KindUnsafeCommand, "Unsafe command")
	}
	for _, arg := range args {
		if !SafeToken(arg) {
			return nil, resolveErrorf(KindUnsafeArg, "Unsafe arg: %q", arg)
		}
	}

	return LocalProcess{Command: command, Args: args, Env: env}, nil
}

func validateRemoteURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return resolveErrorf(KindInvalidRemoteURL,
			"Invalid %s: must be http(s) and a well-formed URL", EnvProxyURL)
	}
	return nil
}

// EnvironMap converts os.Environ() form ("KEY=value" entries) into a
// map. Later duplicates win, matching the platform's own lookup rules.
func EnvironMap(environ []string) map[string]string {
	env := make(map[string]string, len(environ))
	for _, kv := range environ {
		if i := strings.IndexByte(kv, '='); i >= 0 {
			env[kv[:i]] = kv[i+1:]
		}
	}
	return env
}
