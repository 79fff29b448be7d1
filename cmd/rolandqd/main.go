// Command rolandqd converts between raw MFM bit streams, decoded QD
// payloads, and Roland S-10 SysEx dumps.
package main

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"github.com/rolandqd/rolandqd"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags := pflag.NewFlagSet("rolandqd", pflag.ContinueOnError)

	mode := flags.StringArrayP("mode", "m", nil, "pipeline stage or macro name; repeat to run several stages in order")
	input := flags.StringP("input", "i", "", "read binary input from this file")
	output := flags.StringP("output", "o", "", "write binary output to this file (default: <input_basename>.<ext>)")
	hexIn := flags.StringP("hex", "s", "", "supply input as a hex string instead of a file; output is printed to stdout")
	block := flags.IntP("block", "b", 1, "number of sync words to skip past in mfm-sync")
	verbose := flags.IntP("verbose", "v", 0, "0 silent, 1 summary, 2 debug, 3 dump intermediate blocks")

	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: rolandqd --mode STAGE [--mode STAGE...] [options]\n\nOptions:\n")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		return rolandqd.InvalidArguments.ExitCode()
	}

	if len(*mode) == 0 {
		fmt.Fprintln(os.Stderr, "error: --mode is required")
		flags.Usage()
		return rolandqd.InvalidArguments.ExitCode()
	}

	log := rolandqd.NewLogger(*verbose)

	macros, err := rolandqd.LoadMacroTable()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return rolandqd.InvalidArguments.ExitCode()
	}
	stages := macros.Resolve(*mode)

	pipeline := &rolandqd.Pipeline{Stages: stages, Block: *block, Log: log}

	switch {
	case *hexIn != "":
		return runHex(pipeline, *hexIn)
	case *input != "":
		return runFile(pipeline, *input, *output, stages)
	case stages[0] == rolandqd.StageQdGenerate:
		return runGenerate(pipeline, *output)
	default:
		fmt.Fprintln(os.Stderr, "error: one of --input or --hex is required unless the first stage is qd-generate")
		return rolandqd.InvalidArguments.ExitCode()
	}
}

func runHex(p *rolandqd.Pipeline, hexStr string) int {
	data, err := hex.DecodeString(hexStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: invalid hex string: %v\n", err)
		return rolandqd.InvalidArguments.ExitCode()
	}

	res, err := p.Run(context.Background(), data)
	if err != nil {
		return reportPipelineError(err)
	}

	fmt.Println(rolandqd.HexDump(res.Data))
	return 0
}

func runFile(p *rolandqd.Pipeline, inputPath, outputPath string, stages []string) int {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: reading %s: %v\n", inputPath, err)
		return rolandqd.IoFailure.ExitCode()
	}

	res, err := p.Run(context.Background(), data)
	if err != nil {
		return reportPipelineError(err)
	}

	if outputPath == "" {
		dir := filepath.Dir(inputPath)
		base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
		ext := rolandqd.StageExtension(stages[len(stages)-1])
		outputPath = filepath.Join(dir, fmt.Sprintf("%s.%s", base, ext))
	}

	if err := os.WriteFile(outputPath, res.Data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "error: writing %s: %v\n", outputPath, err)
		return rolandqd.IoFailure.ExitCode()
	}

	return 0
}

func runGenerate(p *rolandqd.Pipeline, outputPath string) int {
	res, err := p.Run(context.Background(), nil)
	if err != nil {
		return reportPipelineError(err)
	}

	if outputPath == "" {
		outputPath = "blank.qd"
	}

	if err := os.WriteFile(outputPath, res.Data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "error: writing %s: %v\n", outputPath, err)
		return rolandqd.IoFailure.ExitCode()
	}

	return 0
}

func reportPipelineError(err error) int {
	var pe *rolandqd.PipelineError
	if errors.As(err, &pe) {
		fmt.Fprintf(os.Stderr, "error: %v\n", pe)
		return pe.Kind.ExitCode()
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	return rolandqd.IoFailure.ExitCode()
}
