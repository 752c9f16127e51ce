package cmd

import (
	"github.com/spf13/cobra"

	"github.com/compasshq/compass/internal/mcp"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Compass MCP server",
	Long: `Launch an MCP server that allows AI agents to inspect identity linking and
roll-up data via standard tools.

The organization is passed per tool call, so no --org argument is needed
here. Identity resolution through this server is always a dry run; links
are only ever written through the CLI.`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		// Suppress the normal setup output when running in MCP mode
		// to avoid polluting stdio which is used for the protocol.
		return storeSetup()
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, st)
	},
}
