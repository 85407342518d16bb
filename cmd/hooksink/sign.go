package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/hooksink/hooksink/internal/signature"
)

func newSignCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sign [file]",
		Short: "Compute the X-Signature digest for a payload",
		Long: "Computes the hex HMAC-SHA256 digest of a payload file (or stdin) " +
			"using WEBHOOK_SECRET, prompting for the secret when unset and on a terminal.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSign(cmd, args)
		},
	}
	return cmd
}

func runSign(cmd *cobra.Command, args []string) error {
	var (
		body []byte
		err  error
	)
	if len(args) == 1 {
		body, err = os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("sign: read %s: %w", args[0], err)
		}
	} else {
		body, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("sign: read stdin: %w", err)
		}
	}

	secret, err := resolveSecret()
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), signature.Compute(secret, body))
	return nil
}

// resolveSecret reads WEBHOOK_SECRET, falling back to a no-echo terminal
// prompt.
func resolveSecret() (string, error) {
	if secret := strings.TrimSpace(os.Getenv("WEBHOOK_SECRET")); secret != "" {
		return secret, nil
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", fmt.Errorf("sign: WEBHOOK_SECRET is not set and stdin is not a terminal")
	}
	fmt.Fprint(os.Stderr, "Webhook secret: ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("sign: read secret: %w", err)
	}
	secret := strings.TrimSpace(string(raw))
	if secret == "" {
		return "", fmt.Errorf("sign: secret is empty")
	}
	return secret, nil
}
