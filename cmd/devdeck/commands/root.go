package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func Execute() error {
	return NewRootCmd().Execute()
}

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "devdeck",
		Short:        "Developer productivity toolkit and API server",
		SilenceUsage: true,
	}
	root.AddCommand(
		serveCmd(),
		jsonCmd(),
		base64Cmd(),
		hashCmd(),
		uuidCmd(),
		timestampCmd(),
		sqlCmd(),
	)
	return root
}

// inputOptions selects where a tool reads its text from.
type inputOptions struct {
	file string
}

func (o *inputOptions) flags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("input", pflag.ContinueOnError)
	fs.StringVarP(&o.file, "file", "f", "", "read input from file (- for stdin)")
	return fs
}

// read returns the joined arguments, or the file/stdin contents when no
// arguments are given.
func (o *inputOptions) read(cmd *cobra.Command, args []string) (string, error) {
	if o.file == "" && len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	var r io.Reader = cmd.InOrStdin()
	if o.file != "" && o.file != "-" {
		f, err := os.Open(o.file)
		if err != nil {
			return "", fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		r = f
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}
