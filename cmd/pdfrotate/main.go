// Command pdfrotate rotates selected pages of a PDF. Pages not listed are
// copied unrotated.
//
//	pdfrotate -pages "1-3, 7, 10" -rotation CW|CCW|FV -inpath doc.pdf
//
// The output is written to <dir>/<name>_rot.pdf.
package main

import (
	"flag"
	"os"

	"pdftools/cmd/internal/cli"
	"pdftools/pdf"
)

func main() {
	fs := flag.NewFlagSet("pdfrotate", flag.ContinueOnError)
	pages := cli.StringFlag(fs, "pages", "p", "1", "Comma separated list of pages and page ranges to rotate")
	rotation := cli.StringFlag(fs, "rotation", "r", "CW", "Type of rotation ("+pdf.RotationChoices()+")")
	inpath := cli.StringFlag(fs, "inpath", "i", "", "Input file")
	opts := cli.RegisterOptions(fs)

	cli.Main(fs, func() int {
		processor := opts.Processor()
		out, err := processor.RotateFile(*inpath, *pages, pdf.ParseRotation(*rotation))
		return cli.Exit(os.Stdout, out, err)
	})
}
