// Command pdfcombine merges two PDF files.
//
//	pdfcombine -inpath1 doc1.pdf -inpath2 doc2.pdf [-rotate1 CW|CCW|FV] [-rotate2 CW|CCW|FV] [-clobber]
//
// Without -clobber the output is written to <dir1>/<name1>_<name2>.pdf.
// With -clobber it replaces the first input.
package main

import (
	"flag"
	"os"

	"pdftools/cmd/internal/cli"
	"pdftools/pdf"
)

func main() {
	fs := flag.NewFlagSet("pdfcombine", flag.ContinueOnError)
	first := cli.StringFlag(fs, "inpath1", "i", "", "First input file")
	second := cli.StringFlag(fs, "inpath2", "j", "", "Second input file")
	rotate1 := cli.StringFlag(fs, "rotate1", "r", "", "Rotation applied to all pages of file 1 ("+pdf.RotationChoices()+")")
	rotate2 := cli.StringFlag(fs, "rotate2", "s", "", "Rotation applied to all pages of file 2 ("+pdf.RotationChoices()+")")
	clobber := cli.BoolFlag(fs, "clobber", "c", "Overwrite file 1 with the result")
	opts := cli.RegisterOptions(fs)

	cli.Main(fs, func() int {
		processor := opts.Processor()
		out, err := processor.CombineFiles(pdf.CombineRequest{
			First:        *first,
			Second:       *second,
			RotateFirst:  pdf.ParseRotation(*rotate1),
			RotateSecond: pdf.ParseRotation(*rotate2),
			Overwrite:    *clobber,
		})
		return cli.Exit(os.Stdout, out, err)
	})
}
