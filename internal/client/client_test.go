package client

import (
	"testing"

	"github.com/toolfront/mcp-shim/internal/config"
)

func TestNewRemoteHTTP(t *testing.T) {
	c, err := New(config.RemoteHTTP{URL: "https://api.example.com/mcp"})
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	defer c.Close()

	if !c.needManualStart {
		t.Error("remote HTTP client should require a manual Start")
	}
	if !c.needPing {
		t.Error("remote HTTP client should run a keepalive ping")
	}
}
