// Command pdfinfo prints the page count and document information of a PDF.
//
//	pdfinfo -inpath doc.pdf
package main

import (
	"flag"
	"os"

	"pdftools/cmd/internal/cli"
)

func main() {
	fs := flag.NewFlagSet("pdfinfo", flag.ContinueOnError)
	inpath := cli.StringFlag(fs, "inpath", "i", "", "Input file")
	opts := cli.RegisterOptions(fs)

	cli.Main(fs, func() int {
		processor := opts.Processor()
		info, err := processor.InfoFile(*inpath)
		if err != nil {
			return cli.Exit(os.Stdout, "", err)
		}
		return cli.Exit(os.Stdout, info.String(), nil)
	})
}
