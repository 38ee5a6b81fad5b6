package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hassanaliaskari/ReactLoginSignupForm/internal/accounts"
)

func newHashPasswordCmd() *cobra.Command {
	var (
		username    string
		displayName string
	)
	cmd := &cobra.Command{
		Use:   "hash-password",
		Short: "Print a bcrypt hash for the accounts file",
		Long: `Read a password from the first line of stdin and print its bcrypt hash.
With --username the output is a ready-to-paste accounts file entry.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && line == "" {
				return errors.New("hash-password: no password on stdin")
			}
			password := strings.TrimRight(line, "\r\n")

			hash, err := accounts.HashPassword(password)
			if err != nil {
				return err
			}
			if username == "" {
				fmt.Fprintln(cmd.OutOrStdout(), hash)
				return nil
			}

			out, err := yaml.Marshal(map[string][]accounts.User{
				"users": {{Username: username, DisplayName: displayName, PasswordHash: hash}},
			})
			if err != nil {
				return fmt.Errorf("hash-password: encode entry: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "Emit a YAML accounts entry for this username")
	cmd.Flags().StringVar(&displayName, "display-name", "", "Display name for the YAML entry")
	return cmd
}
