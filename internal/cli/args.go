package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RequireScript validates that a script argument is present unless --file
// supplies the batch text from the host.
func RequireScript(cmd *cobra.Command, args []string) error {
	if hostFile, _ := cmd.Flags().GetString("file"); hostFile != "" {
		return nil
	}
	if len(args) < 1 {
		return fmt.Errorf(`missing required argument: <script>

Usage: %s

Example:
  %s C:\DOS\HELLO.BAT Alice
  %s --file ./build.bat`, cmd.UseLine(), cmd.CommandPath(), cmd.CommandPath())
	}
	return nil
}

// RequireCommandLine validates that at least one word of a command line is
// present.
func RequireCommandLine(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf(`missing required argument: <command>

Usage: %s

Example:
  %s DIR /W
  %s "TYPE C:\DOS\README.TXT | FIND /I \"dir\""`, cmd.UseLine(), cmd.CommandPath(), cmd.CommandPath())
	}
	return nil
}
