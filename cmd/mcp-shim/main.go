// Command mcp-shim resolves its backend configuration from the process
// environment and fronts the resulting tool server over streamable
// HTTP. Resolution is fail-closed: malformed or unsafe input prints a
// single "[shim]" diagnostic to stderr and exits 1 before any network
// or process I/O begins.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/toolfront/mcp-shim/internal"
	"github.com/toolfront/mcp-shim/internal/config"
	"github.com/toolfront/mcp-shim/internal/server"
)

var BuildVersion = "dev"

func main() {
	version := flag.Bool("version", false, "print version and exit")
	help := flag.Bool("help", false, "print help and exit")
	flag.Parse()
	if *help {
		flag.Usage()
		return
	}
	if *version {
		fmt.Println(BuildVersion)
		return
	}

	backend, err := config.Resolve(config.EnvironMap(os.Environ()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "[shim] %s\n", err)
		os.Exit(1)
	}

	if err := server.Start(BuildVersion, backend); err != nil {
		internal.LogError("Failed to run server: %v", err)
		os.Exit(1)
	}
}
