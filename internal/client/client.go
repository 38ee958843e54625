// Package client builds the MCP client that fronts the resolved
// backend, and mirrors the backend's capabilities onto the proxy's own
// MCP server.
package client

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/toolfront/mcp-shim/internal"
	"github.com/toolfront/mcp-shim/internal/config"
)

// Client wraps the MCP client for the backing tool server.
type Client struct {
	needPing        bool
	needManualStart bool
	client          *client.Client
}

// New creates a client for the given backend descriptor. A LocalProcess
// backend is launched via direct argv execution over stdio, never
// through a shell. A RemoteHTTP backend uses the streamable HTTP
// transport.
func New(backend config.Backend) (*Client, error) {
	switch b := backend.(type) {
	case config.LocalProcess:
		envs := make([]string, 0, len(b.Env))
		for k, v := range b.Env {
			envs = append(envs, fmt.Sprintf("%s=%s", k, v))
		}
		mcpClient, err := client.NewStdioMCPClient(b.Command, envs, b.Args...)
		if err != nil {
			return nil, fmt.Errorf("creating stdio client: %w", err)
		}
		return &Client{client: mcpClient}, nil

	case config.RemoteHTTP:
		mcpClient, err := client.NewStreamableHttpClient(b.URL)
		if err != nil {
			return nil, fmt.Errorf("creating streamable HTTP client: %w", err)
		}
		return &Client{
			needPing:        true,
			needManualStart: true,
			client:          mcpClient,
		}, nil

	default:
		return nil, fmt.Errorf("unknown backend type %T", backend)
	}
}

// AddToMCPServer initializes the backend connection and registers its
// tools, prompts, resources and resource templates on mcpServer.
func (c *Client) AddToMCPServer(ctx context.Context, clientInfo mcp.Implementation, mcpServer *server.MCPServer) error {
	if c.needManualStart {
		if err := c.client.Start(ctx); err != nil {
			return err
		}
	}

	initRequest := mcp.InitializeRequest{}
	initRequest.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initRequest.Params.ClientInfo = clientInfo
	initRequest.Params.Capabilities = mcp.ClientCapabilities{
		Experimental: make(map[string]any),
	}
	if _, err := c.client.Initialize(ctx, initRequest); err != nil {
		return err
	}
	internal.Logf("Initialized MCP client for backend")

	if err := c.addToolsToServer(ctx, mcpServer); err != nil {
		return err
	}
	_ = c.addPromptsToServer(ctx, mcpServer)
	_ = c.addResourcesToServer(ctx, mcpServer)
	_ = c.addResourceTemplatesToServer(ctx, mcpServer)

	if c.needPing {
		go c.startPingTask(ctx)
	}
	return nil
}

func (c *Client) startPingTask(ctx context.Context) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			internal.LogDebug("Context done, stopping backend ping")
			return
		case <-ticker.C:
			_ = c.client.Ping(ctx)
		}
	}
}

func (c *Client) addToolsToServer(ctx context.Context, mcpServer *server.MCPServer) error {
	toolsRequest := mcp.ListToolsRequest{}
	for {
		tools, err := c.client.ListTools(ctx, toolsRequest)
		if err != nil {
			return err
		}
		if len(tools.Tools) == 0 {
			break
		}
		internal.Logf("Listed %d tools from backend", len(tools.Tools))
		for _, tool := range tools.Tools {
			internal.LogDebug("Adding tool %s", tool.Name)
			mcpServer.AddTool(tool, c.client.CallTool)
		}
		if tools.NextCursor == "" {
			break
		}
		toolsRequest.Params.Cursor = tools.NextCursor
	}
	return nil
}

func (c *Client) addPromptsToServer(ctx context.Context, mcpServer *server.MCPServer) error {
	promptsRequest := mcp.ListPromptsRequest{}
	for {
		prompts, err := c.client.ListPrompts(ctx, promptsRequest)
		if err != nil {
			return err
		}
		if len(prompts.Prompts) == 0 {
			break
		}
		for _, prompt := range prompts.Prompts {
			internal.LogDebug("Adding prompt %s", prompt.Name)
			mcpServer.AddPrompt(prompt, c.client.GetPrompt)
		}
		if prompts.NextCursor == "" {
			break
		}
		promptsRequest.Params.Cursor = prompts.NextCursor
	}
	return nil
}

func (c *Client) addResourcesToServer(ctx context.Context, mcpServer *server.MCPServer) error {
	resourcesRequest := mcp.ListResourcesRequest{}
	for {
		resources, err := c.client.ListResources(ctx, resourcesRequest)
		if err != nil {
			return err
		}
		if len(resources.Resources) == 0 {
			break
		}
		for _, resource := range resources.Resources {
			internal.LogDebug("Adding resource %s", resource.Name)
			mcpServer.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
				readResource, e := c.client.ReadResource(ctx, request)
				if e != nil {
					return nil, e
				}
				return readResource.Contents, nil
			})
		}
		if resources.NextCursor == "" {
			break
		}
		resourcesRequest.Params.Cursor = resources.NextCursor
	}
	return nil
}

func (c *Client) addResourceTemplatesToServer(ctx context.Context, mcpServer *server.MCPServer) error {
	templatesRequest := mcp.ListResourceTemplatesRequest{}
	for {
		templates, err := c.client.ListResourceTemplates(ctx, templatesRequest)
		if err != nil {
			return err
		}
		if len(templates.ResourceTemplates) == 0 {
			break
		}
		for _, template := range templates.ResourceTemplates {
			internal.LogDebug("Adding resource template %s", template.Name)
			mcpServer.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
				readResource, e := c.client.ReadResource(ctx, request)
				if e != nil {
					return nil, e
				}
				return readResource.Contents, nil
			})
		}
		if templates.NextCursor == "" {
			break
		}
		templatesRequest.Params.Cursor = templates.NextCursor
	}
	return nil
}

// Close shuts down the backend transport. For a LocalProcess backend
// this terminates the spawned subprocess.
func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}
