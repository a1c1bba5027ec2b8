// Package cli holds what the pdftools command line programs share.
package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"pdftools/common"
	"pdftools/pdf"
)

// StringFlag registers a string flag under a long and a short name.
func StringFlag(fs *flag.FlagSet, long, short, value, usage string) *string {
	p := fs.String(long, value, usage)
	fs.StringVar(p, short, value, usage+" (shorthand)")
	return p
}

// BoolFlag registers a bool flag under a long and a short name.
func BoolFlag(fs *flag.FlagSet, long, short string, usage string) *bool {
	p := fs.Bool(long, false, usage)
	fs.BoolVar(p, short, false, usage+" (shorthand)")
	return p
}

// Options are the settings every tool accepts.
type Options struct {
	Strict   bool
	LogLevel string
}

// RegisterOptions adds the shared flags to fs.
func RegisterOptions(fs *flag.FlagSet) *Options {
	o := &Options{}
	fs.BoolVar(&o.Strict, "strict", false, "Parse input files in strict mode")
	fs.StringVar(&o.LogLevel, "log-level", "warn", "Log level (trace, debug, info, warn, error)")
	return o
}

// Processor builds the processor the tools run their operation with.
func (o *Options) Processor() *pdf.Processor {
	return pdf.NewProcessor(pdf.NewConfiguration(o.Strict), common.NewConsoleLogger(o.LogLevel))
}

// Exit prints the status of a finished operation and returns the process
// exit code: 0 with result printed to stdout, 1 with the error message.
func Exit(stdout io.Writer, result string, err error) int {
	if err != nil {
		fmt.Fprintln(stdout, err.Error())
		return 1
	}
	if result != "" {
		fmt.Fprintln(stdout, result)
	}
	return 0
}

// Main parses args into fs and exits with the code returned by run.
func Main(fs *flag.FlagSet, run func() int) {
	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}
	os.Exit(run())
}
