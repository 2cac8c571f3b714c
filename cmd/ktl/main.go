package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	ktl "github.com/unowned-ai/ktl/pkg"
	"github.com/unowned-ai/ktl/pkg/render"
	"github.com/unowned-ai/ktl/pkg/utils"
)

var (
	journalPath string
	verbose     bool
	formatFlag  string
)

var rootCmd = &cobra.Command{
	Use:   "ktl",
	Short: "Query a YAML training journal with SQL.",
	Long: `ktl loads a training journal (exercise catalogue plus a per-date log of
workouts, nutrition and body measurements) into an in-memory SQLite database
and lets you query it.

The journal is taken from the command argument, --journal, $KTL_JOURNAL or
the system default location, in that order.`,
	Version:       fmt.Sprintf("v%s", ktl.Version),
	SilenceErrors: true,
	SilenceUsage:  true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var completionShells = []string{"bash", "zsh", "fish", "powershell"}

var completionCmd = &cobra.Command{
	Use:   fmt.Sprintf("completion %s", strings.Join(completionShells, "|")),
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for ktl.

The command prints a completion script to stdout. You can source it in your shell
or install it to the appropriate location for your shell to enable completions permanently.

Examples:

  Bash (current shell):
    $ source <(ktl completion bash)

  Zsh:
    $ ktl completion zsh > "${fpath[1]}/_ktl"

  Fish:
    $ ktl completion fish > ~/.config/fish/completions/ktl.fish

  PowerShell:
    PS> ktl completion powershell | Out-String | Invoke-Expression`,
	DisableFlagsInUseLine: true,
	ValidArgs:             completionShells,
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(cmd.OutOrStdout())
		case "zsh":
			return rootCmd.GenZshCompletion(cmd.OutOrStdout())
		case "fish":
			return rootCmd.GenFishCompletion(cmd.OutOrStdout(), true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(cmd.OutOrStdout())
		default:
			return fmt.Errorf("unsupported shell: %s", args[0])
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of ktl",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), ktl.Version)
	},
}

func initCmd() {
	rootCmd.PersistentFlags().StringVarP(&journalPath, "journal", "j", "",
		fmt.Sprintf("Path to the journal YAML file (default: $%s or %s)", utils.JournalEnv, utils.GetDefaultJournalPath()))
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Report load progress on stderr")
	rootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", string(render.Plain), "Output format (plain, table, json)")

	rootCmd.AddCommand(completionCmd, versionCmd, queryCmd, checkCmd, setsCmd, tablesCmd, mcpCmd)
}

func main() {
	initCmd()

	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
