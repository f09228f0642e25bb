package cmd

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// parseFlags parses the flags of a command that has DisableFlagParsing set.
// pflag reads "-3" as a shorthand flag, so a negative first positional is
// taken out before parsing and put back in front of the remaining arguments.
func parseFlags(cmd *cobra.Command, args []string) ([]string, error) {
	flags := cmd.Flags()
	negative, rest := leadingNegative(flags, args)

	if err := flags.Parse(rest); err != nil {
		return nil, err
	}

	positional := flags.Args()

	if negative != "" {
		positional = append([]string{negative}, positional...)
	}

	return positional, nil
}

func leadingNegative(flags *pflag.FlagSet, args []string) (string, []string) {
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if arg == "--" || !strings.HasPrefix(arg, "-") {
			return "", args
		}

		if _, err := strconv.Atoi(arg); err == nil {
			rest := make([]string, 0, len(args)-1)
			rest = append(rest, args[:i]...)
			rest = append(rest, args[i+1:]...)

			return arg, rest
		}

		if takesValue(flags, arg) {
			i++
		}
	}

	return "", args
}

func takesValue(flags *pflag.FlagSet, arg string) bool {
	if strings.Contains(arg, "=") {
		return false
	}

	var flag *pflag.Flag

	if name, ok := strings.CutPrefix(arg, "--"); ok {
		flag = flags.Lookup(name)
	} else if name := strings.TrimPrefix(arg, "-"); len(name) == 1 {
		flag = flags.ShorthandLookup(name)
	}

	return flag != nil && flag.NoOptDefVal == ""
}
