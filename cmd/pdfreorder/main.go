// Command pdfreorder writes selected pages of a PDF in the given order.
// Pages not listed are left out, so it also extracts pages.
//
//	pdfreorder -pages "2, 1, 3-10" -inpath doc.pdf
//
// The output is written to <dir>/<name>_reorder.pdf.
package main

import (
	"flag"
	"os"

	"pdftools/cmd/internal/cli"
)

func main() {
	fs := flag.NewFlagSet("pdfreorder", flag.ContinueOnError)
	pages := cli.StringFlag(fs, "pages", "p", "1", "Comma separated ordered list of pages and page ranges")
	inpath := cli.StringFlag(fs, "inpath", "i", "", "Input file")
	opts := cli.RegisterOptions(fs)

	cli.Main(fs, func() int {
		processor := opts.Processor()
		out, err := processor.ReorderFile(*inpath, *pages)
		return cli.Exit(os.Stdout, out, err)
	})
}
