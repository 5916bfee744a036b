package commands

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"devdeck/internal/tools"
)

func jsonCmd() *cobra.Command {
	var (
		in     inputOptions
		indent int
		minify bool
		check  bool
	)
	cmd := &cobra.Command{
		Use:   "json [text]",
		Short: "Format, minify or validate JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := in.read(cmd, args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if check {
				res := tools.ValidateJSON(text)
				if !res.Valid {
					return fmt.Errorf("invalid JSON at line %d, column %d: %s", res.Line, res.Column, res.Error)
				}
				fmt.Fprintln(out, "valid")
				return nil
			}
			var result string
			if minify {
				result, err = tools.MinifyJSON(text)
			} else {
				result, err = tools.FormatJSON(text, indent)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(out, result)
			return nil
		},
	}
	cmd.Flags().AddFlagSet(in.flags())
	cmd.Flags().IntVar(&indent, "indent", tools.DefaultJSONIndent, "spaces per indent level")
	cmd.Flags().BoolVar(&minify, "minify", false, "remove insignificant whitespace")
	cmd.Flags().BoolVar(&check, "validate", false, "only report whether the input is valid")
	return cmd
}

func base64Cmd() *cobra.Command {
	var (
		in      inputOptions
		decode  bool
		urlSafe bool
	)
	cmd := &cobra.Command{
		Use:   "base64 [text]",
		Short: "Encode or decode Base64",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := in.read(cmd, args)
			if err != nil {
				return err
			}
			if !decode {
				fmt.Fprintln(cmd.OutOrStdout(), tools.EncodeBase64(text, urlSafe))
				return nil
			}
			out, err := tools.DecodeBase64(text, urlSafe)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().AddFlagSet(in.flags())
	cmd.Flags().BoolVarP(&decode, "decode", "d", false, "decode instead of encode")
	cmd.Flags().BoolVar(&urlSafe, "url", false, "use the URL-safe alphabet")
	return cmd
}

func hashCmd() *cobra.Command {
	var (
		in        inputOptions
		algorithm string
	)
	cmd := &cobra.Command{
		Use:   "hash [text]",
		Short: "Print digests of the input",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := in.read(cmd, args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if algorithm != "" {
				alg, err := tools.ParseAlgorithm(algorithm)
				if err != nil {
					return err
				}
				sum, err := tools.Hash(alg, text)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, sum)
				return nil
			}
			sums, err := tools.HashAll(cmd.Context(), text)
			if err != nil {
				return err
			}
			for _, alg := range tools.Algorithms() {
				fmt.Fprintf(out, "%-12s %s\n", alg, sums[alg])
			}
			return nil
		},
	}
	cmd.Flags().AddFlagSet(in.flags())
	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", "", "single algorithm ("+algorithmNames()+")")
	return cmd
}

func algorithmNames() string {
	names := make([]string, 0, len(tools.Algorithms()))
	for _, alg := range tools.Algorithms() {
		names = append(names, string(alg))
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

func uuidCmd() *cobra.Command {
	var (
		count  int
		format tools.UUIDFormat
	)
	cmd := &cobra.Command{
		Use:   "uuid",
		Short: "Generate random version 4 UUIDs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := tools.NewUUIDGenerator().Generate("cli", count, format)
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 1, fmt.Sprintf("number of UUIDs (1-%d)", tools.MaxUUIDBatch))
	cmd.Flags().BoolVar(&format.Uppercase, "upper", false, "print in upper case")
	cmd.Flags().BoolVar(&format.NoHyphens, "no-hyphens", false, "omit hyphens")
	return cmd
}

func timestampCmd() *cobra.Command {
	var zone string
	cmd := &cobra.Command{
		Use:   "timestamp [value]",
		Short: "Convert between Unix timestamps and dates (current time without a value)",
		RunE: func(cmd *cobra.Command, args []string) error {
			loc := time.Local
			if zone != "" {
				var err error
				if loc, err = time.LoadLocation(zone); err != nil {
					return fmt.Errorf("load timezone: %w", err)
				}
			}
			now := time.Now()
			conv := tools.ConvertTime(now, now, loc)
			if len(args) > 0 {
				var err error
				conv, err = tools.ParseTimestamp(strings.Join(args, " "), now, loc)
				if err != nil {
					return err
				}
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "unix:      %d\n", conv.Unix)
			fmt.Fprintf(out, "unix ms:   %d\n", conv.UnixMilli)
			fmt.Fprintf(out, "iso8601:   %s\n", conv.ISO8601)
			fmt.Fprintf(out, "utc:       %s\n", conv.UTC)
			fmt.Fprintf(out, "local:     %s (%s)\n", conv.Local, conv.Zone)
			fmt.Fprintf(out, "relative:  %s\n", conv.Relative)
			return nil
		},
	}
	cmd.Flags().StringVar(&zone, "tz", os.Getenv("TZ"), "IANA timezone for local output")
	return cmd
}

func sqlCmd() *cobra.Command {
	var in inputOptions
	cmd := &cobra.Command{
		Use:   "sql [query]",
		Short: "Reflow a SQL query one clause per line",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := in.read(cmd, args)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tools.FormatSQL(text))
			return nil
		},
	}
	cmd.Flags().AddFlagSet(in.flags())
	return cmd
}
