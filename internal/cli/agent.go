package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kcalvin/solarsizer/internal/agent"
	"github.com/kcalvin/solarsizer/internal/config"
)

// NewAgentToolsCmd prints the tool definitions as JSON.
func NewAgentToolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "Print the agent tool definitions as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeJSON(cmd.OutOrStdout(), agent.Definitions())
		},
	}
}

// NewAgentPromptCmd prints the agent instructions.
func NewAgentPromptCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Print the agent instructions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			text, err := agent.LoadInstructions(file)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), text)
			return err
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "instructions file (default built-in prompt)")

	return cmd
}

// NewAgentInvokeCmd invokes a tool with JSON arguments, as the agent would.
func NewAgentInvokeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "invoke <tool> [json-args]",
		Short:   "Invoke an agent tool with JSON arguments",
		Example: `  solarsizer agent invoke get_solar_estimate '{"zip_code": 33033, "monthly_bill": 160}'`,
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := json.RawMessage("{}")
			if len(args) == 2 {
				if !json.Valid([]byte(args[1])) {
					return fmt.Errorf("%w: arguments are not valid JSON", agent.ErrInvalidArguments)
				}
				raw = json.RawMessage(args[1])
			}

			tools := agent.NewTools(newWebhookClient(config.GetGlobalConfig()))
			reply, err := tools.Invoke(cmd.Context(), args[0], raw)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), reply)
			return err
		},
	}
}
