// Command pdfremove drops selected pages from a PDF.
//
//	pdfremove -pages "3, 5-7" -inpath doc.pdf
//
// The output is written to <dir>/<name>_removed.pdf.
package main

import (
	"flag"
	"os"

	"pdftools/cmd/internal/cli"
)

func main() {
	fs := flag.NewFlagSet("pdfremove", flag.ContinueOnError)
	pages := cli.StringFlag(fs, "pages", "p", "", "Comma separated list of pages and page ranges to remove")
	inpath := cli.StringFlag(fs, "inpath", "i", "", "Input file")
	opts := cli.RegisterOptions(fs)

	cli.Main(fs, func() int {
		processor := opts.Processor()
		out, err := processor.RemovePagesFile(*inpath, *pages)
		return cli.Exit(os.Stdout, out, err)
	})
}
