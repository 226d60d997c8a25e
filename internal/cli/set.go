package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/m3o/safe/internal/support"
	"github.com/m3o/safe/pkg/safe"
)

type SetCmd struct {
	Slot  string `arg:"" help:"Slot name (access-token, user-id, api-key)."`
	Value string `help:"Secret value (visible in shell history, prefer the prompt or --stdin)."`
	Stdin bool   `help:"Read the secret value from standard input."`
}

func (c *SetCmd) Run(g *Globals) error {
	slot, err := safe.ParseSlot(c.Slot)
	if err != nil {
		return err
	}
	value, err := c.readValue(slot, os.Stdin, g.NonInteractive)
	if err != nil {
		return err
	}
	s, err := support.OpenSafe(g.options())
	if err != nil {
		return err
	}
	return handleSet(s, slot, value, os.Stdout)
}

func (c *SetCmd) readValue(slot safe.Slot, stdin io.Reader, nonInteractive bool) (string, error) {
	switch {
	case c.Value != "":
		logger.Debug("Using secret value from command line")
		return c.Value, nil
	case c.Stdin:
		v, err := support.ReadValue(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read value from stdin: %w", err)
		}
		return v, nil
	case nonInteractive:
		return "", fmt.Errorf("no value given for %s (use --value or --stdin)", slot)
	}
	v, err := support.ReadPassword(fmt.Sprintf("Enter value for %s: ", slot))
	if err != nil {
		return "", fmt.Errorf("failed to read value: %w", err)
	}
	return v, nil
}

func handleSet(s *safe.Safe, slot safe.Slot, value string, out io.Writer) error {
	if value == "" {
		return fmt.Errorf("value for %s is empty, use 'safe clear %s' to remove it", slot, slot)
	}
	logger.Infof("Storing secret in slot %s", slot)
	if err := s.Store(slot, value); err != nil {
		return fmt.Errorf("failed to store %s: %w", slot, err)
	}
	fmt.Fprintf(out, "Stored %s.\n", slot)
	return nil
}
