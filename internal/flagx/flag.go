// Package flagx holds small helpers for the command-line layer of the
// configuration: argument filtering, the -c/-config lookup and a byte-size
// flag value.
package flagx

import (
	"flag"
	"strings"

	"github.com/dustin/go-humanize"
)

// FilterArgs returns the subset of args made of allowedFlags and their
// values, in their original order. Both "-f value" and "-f=value" forms are
// recognised. A token starting with "-" is never taken as a value.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if name, _, ok := strings.Cut(arg, "="); ok && strings.HasPrefix(arg, "-") {
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := allowed[arg]; ok {
			filtered = append(filtered, arg)
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				filtered = append(filtered, args[i+1])
				i++
			}
		}
	}
	return filtered
}

// ConfigPath returns the JSON config file named by -c or -config in args,
// or "" when neither is given. The last occurrence wins.
func ConfigPath(args []string) string {
	var path string

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "path to config file")
	fs.StringVar(&path, "c", "", "path to config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config"}))

	return path
}

// Bytes is a flag.Value holding a size in bytes. It accepts humanized
// input such as "5MB", "4MiB" or a plain number.
type Bytes int64

func (b *Bytes) String() string {
	if b == nil {
		return "0 B"
	}
	return humanize.IBytes(uint64(*b))
}

func (b *Bytes) Set(s string) error {
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return err
	}
	*b = Bytes(n)
	return nil
}

// BytesVar defines a Bytes flag on fs that writes into p.
func BytesVar(fs *flag.FlagSet, p *int64, name string, usage string) {
	fs.Var((*Bytes)(p), name, usage)
}
