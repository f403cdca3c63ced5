package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dewi-tim/mpvtui/internal/mpv"
)

const typeUsage = "Value type: string | flag | int64 | double"

// parseFormat maps a --type value onto a format.
func parseFormat(s string) (mpv.Format, error) {
	switch strings.ToLower(s) {
	case "", "string", "str":
		return mpv.FormatString, nil
	case "flag", "bool":
		return mpv.FormatFlag, nil
	case "int64", "int":
		return mpv.FormatInt64, nil
	case "double", "float":
		return mpv.FormatDouble, nil
	default:
		return 0, fmt.Errorf("unknown type %q (valid: string, flag, int64, double)", s)
	}
}

// parseFlag accepts mpv's yes/no spelling as well as Go's.
func parseFlag(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes":
		return true, nil
	case "no":
		return false, nil
	}
	return strconv.ParseBool(s)
}

func formatFlag(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

// getValue reads name as format and renders it as text.
func getValue(m *mpv.Mpv, name string, format mpv.Format) (string, error) {
	switch format {
	case mpv.FormatFlag:
		v, err := m.GetFlag(name)
		return formatFlag(v), err
	case mpv.FormatInt64:
		v, err := m.GetInt64(name)
		return strconv.FormatInt(v, 10), err
	case mpv.FormatDouble:
		v, err := m.GetDouble(name)
		return strconv.FormatFloat(v, 'f', -1, 64), err
	default:
		return m.GetString(name)
	}
}

// setValue parses raw as format and writes it to name.
func setValue(m *mpv.Mpv, name string, format mpv.Format, raw string) error {
	switch format {
	case mpv.FormatFlag:
		v, err := parseFlag(raw)
		if err != nil {
			return fmt.Errorf("parsing %q as flag: %w", raw, err)
		}
		return m.SetFlag(name, v)
	case mpv.FormatInt64:
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("parsing %q as int64: %w", raw, err)
		}
		return m.SetInt64(name, v)
	case mpv.FormatDouble:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("parsing %q as double: %w", raw, err)
		}
		return m.SetDouble(name, v)
	default:
		return m.SetString(name, raw)
	}
}

func (a *app) getCmd() *cobra.Command {
	var typ string
	c := &cobra.Command{
		Use:   "get <property>",
		Short: "Print a property of a fresh libmpv context",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseFormat(typ)
			if err != nil {
				return err
			}
			s, err := a.open(false)
			if err != nil {
				return err
			}
			defer s.Close()

			v, err := getValue(s.mpv, args[0], format)
			if err != nil {
				return fmt.Errorf("getting %s: %w", args[0], err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	}
	c.Flags().StringVarP(&typ, "type", "t", "string", typeUsage)
	return c
}

func (a *app) setCmd() *cobra.Command {
	var typ string
	c := &cobra.Command{
		Use:   "set <property> <value>",
		Short: "Set a property and print its new value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseFormat(typ)
			if err != nil {
				return err
			}
			s, err := a.open(false)
			if err != nil {
				return err
			}
			defer s.Close()

			name := args[0]
			if err := setValue(s.mpv, name, format, args[1]); err != nil {
				return fmt.Errorf("setting %s: %w", name, err)
			}
			v, err := getValue(s.mpv, name, format)
			if err != nil {
				return fmt.Errorf("getting %s: %w", name, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", name, v)
			return nil
		},
	}
	c.Flags().StringVarP(&typ, "type", "t", "string", typeUsage)
	return c
}

func (a *app) commandCmd() *cobra.Command {
	var quote bool
	c := &cobra.Command{
		Use:   "cmd <name> [args...]",
		Short: "Run an input command",
		Long: `Run a command using input.conf syntax. Arguments are passed through
unchanged unless --quote is given.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(false)
			if err != nil {
				return err
			}
			defer s.Close()

			cmdArgs := args[1:]
			if quote {
				cmdArgs = make([]string, len(args)-1)
				for i, arg := range args[1:] {
					cmdArgs[i] = mpv.Quote(arg)
				}
			}
			if err := s.mpv.Command(args[0], cmdArgs...); err != nil {
				return fmt.Errorf("running %s: %w", args[0], err)
			}
			return nil
		},
	}
	c.Flags().BoolVarP(&quote, "quote", "q", false, "Quote every argument")
	return c
}
