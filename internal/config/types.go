package config

import "fmt"

// Backend is the resolved description of how the proxy reaches its tool
// server. Exactly two implementations exist: RemoteHTTP and LocalProcess.
type Backend interface {
	backend()
}

// RemoteHTTP addresses a tool server over streamable HTTP.
type RemoteHTTP struct {
	URL string
}

// LocalProcess launches a tool server as a subprocess speaking stdio.
// Args order is significant and preserved exactly as supplied. Env is
// the full ambient environment, passed through unfiltered.
type LocalProcess struct {
	Command string
	Args    []string
	Env     map[string]string
}

func (RemoteHTTP) backend()   {}
func (LocalProcess) backend() {}

// ErrorKind discriminates resolution failures.
type ErrorKind string

const (
	KindInvalidRemoteURL     ErrorKind = "invalid_remote_url"
	KindMissingBackendConfig ErrorKind = "missing_backend_config"
	KindArgParseError        ErrorKind = "arg_parse_error"
	KindTooManyArgs          ErrorKind = "too_many_args"
	KindUnsafeCommand        ErrorKind = "unsafe_command"
	KindUnsafeArg            ErrorKind = "unsafe_arg"
)

// ResolveError is a terminal resolution failure. The message is what the
// entry point prints on its single diagnostic line.
type ResolveError struct {
	Kind    ErrorKind
	Message string
}

func (e *ResolveError) Error() string {
	return e.Message
}

func resolveErrorf(kind ErrorKind, format string, args ...any) *ResolveError {
	return &ResolveError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
