// README: Offline decoder for captured Rapido fare-estimate responses; prints rides or a field dump.
package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"cabsync/internal/modules/rapido"
	"cabsync/internal/wire"
)

type options struct {
	raw     bool
	hexIn   bool
	dump    bool
	verbose bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "rapido-decode [file]",
		Short: "Decode a captured Rapido fare-estimate response",
		Long: "Reads a response body from the file argument or stdin. By default the body is the\n" +
			"JSON byte-array envelope the upstream returns; --raw and --hex take the inner buffer.",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logrus.New()
			log.SetOutput(cmd.ErrOrStderr())
			if opts.verbose {
				log.SetLevel(logrus.DebugLevel)
			}
			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			return run(in, cmd.OutOrStdout(), opts, log)
		},
	}
	f := cmd.Flags()
	f.BoolVar(&opts.raw, "raw", false, "input is the raw buffer, not the JSON envelope")
	f.BoolVar(&opts.hexIn, "hex", false, "input is the raw buffer as hex text")
	f.BoolVar(&opts.dump, "dump", false, "print every field instead of the extracted rides")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "log scan details to stderr")
	cmd.MarkFlagsMutuallyExclusive("raw", "hex")
	return cmd
}

func run(in io.Reader, out io.Writer, opts options, log logrus.FieldLogger) error {
	body, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	raw, err := inputBuffer(body, opts)
	if err != nil {
		return err
	}

	res := rapido.DecodeRaw(raw)
	log.WithFields(logrus.Fields{
		"bytes":    res.Scan.Length,
		"consumed": res.Scan.Consumed,
		"stop":     res.Scan.Stop,
		"rides":    len(res.Rides),
	}).Debug("scan finished")
	if !res.Scan.Complete() {
		log.WithField("stop", res.Scan.Stop).WithField("offset", res.Scan.Consumed).Warn("buffer not fully decoded")
	}

	if opts.dump {
		dump(out, wire.Scan(raw), 0)
		return nil
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Rides []rapido.RideQuote `json:"rides"`
		Scan  wire.Report        `json:"scan"`
	}{res.Rides, res.Scan})
}

func inputBuffer(body []byte, opts options) ([]byte, error) {
	switch {
	case opts.hexIn:
		raw, err := hex.DecodeString(strings.Join(strings.Fields(string(body)), ""))
		if err != nil {
			return nil, fmt.Errorf("hex input: %w", err)
		}
		return raw, nil
	case opts.raw:
		return body, nil
	default:
		return wire.UnwrapByteArray(body)
	}
}
