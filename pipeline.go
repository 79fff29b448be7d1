package rolandqd

/*------------------------------------------------------------------
 *
 * Purpose:	Ordered composition of named stages over a byte vector.
 *
 * Description:	A pipeline is a list of stage names; Run executes them
 *		in order, threading the byte vector (or, for syx-read /
 *		qd-sample-blocks, a Sample) from one stage to the next.
 *		Composed macros (encode, decode, syx-to-qd) are resolved
 *		by MacroTable (pipeline_config.go) before Run sees
 *		them.
 *
 *------------------------------------------------------------------*/

import (
	"context"
)

// Stage names recognised by the pipeline.
const (
	StageLutInvert      = "lut-invert"
	StageMfmEncode      = "mfm-encode"
	StageMfmDecode      = "mfm-decode"
	StageMfmSync        = "mfm-sync"
	StageCrcCheck       = "crc-check"
	StageQdGenerate     = "qd-generate"
	StageSyxRead        = "syx-read"
	StageQdSampleBlocks = "qd-sample-blocks"
)

// Result is the output of a Pipeline run. Data holds the byte vector as
// left by the last stage that transforms it (crc-check, syx-read and
// qd-sample-blocks leave it unchanged); CrcResidue is set by crc-check,
// SyncFound by mfm-sync, Sample by syx-read and Blocks by qd-sample-blocks.
type Result struct {
	Data       []byte
	CrcResidue uint16
	Sample     *Sample
	Blocks     []BankBlockTriple
	SyncFound  bool
}

// Pipeline runs an ordered list of stages against an input buffer.
type Pipeline struct {
	Stages []string
	Block  int // sync words to skip past in mfm-sync, default 1
	Log    *Logger
}

// NewPipeline returns a Pipeline with the given stages and a silent logger.
func NewPipeline(stages []string) *Pipeline {
	return &Pipeline{Stages: stages, Block: 1, Log: NewLogger(0)}
}

// Run executes every stage in order over input, returning the final Result.
// ctx is checked once per stage boundary; no stage does blocking I/O, so
// cancellation only ever takes effect between stages.
func (p *Pipeline) Run(ctx context.Context, input []byte) (*Result, error) {
	res := &Result{Data: input}

	for _, stage := range p.Stages {
		select {
		case <-ctx.Done():
			return nil, wrapError(InvalidArguments, ctx.Err(), "pipeline cancelled before stage %q", stage)
		default:
		}

		if p.Log != nil && p.Log.Verbose() >= 1 {
			p.Log.Info("running stage", "stage", stage, "bytes", len(res.Data))
		}

		if err := p.runStage(stage, res); err != nil {
			return nil, err
		}

		if p.Log != nil && p.Log.Verbose() >= 3 {
			p.Log.Debug("stage output", "stage", stage, "hex", HexDump(res.Data))
		}
	}

	return res, nil
}

// StageExtension returns the default output file extension for the last
// stage in a resolved mode list, fixing the source's "getext" fallthrough
// bug (spec.md §9): every stage maps to exactly one extension, with no
// always-true fallback.
func StageExtension(lastStage string) string {
	switch lastStage {
	case StageMfmEncode:
		return "mfm"
	case StageMfmDecode:
		return "bin"
	case StageLutInvert:
		return "inv"
	case StageQdGenerate, StageQdSampleBlocks:
		return "qd"
	default:
		return "bin"
	}
}

func (p *Pipeline) runStage(stage string, res *Result) error {
	switch stage {
	case StageLutInvert:
		res.Data = ReverseBytes(res.Data)

	case StageMfmEncode:
		res.Data = MfmEncode(res.Data)

	case StageMfmDecode:
		res.Data = MfmDecode(res.Data)

	case StageMfmSync:
		block := p.Block
		out, found := MfmSync(res.Data, block)
		res.Data = out
		res.SyncFound = found.Found
		if !found.Found {
			return wrapError(SyncNotFound, nil, "sync word not found")
		}
		if p.Log != nil && p.Log.Verbose() >= 1 {
			p.Log.Info("sync found", "bit-offset", found.Offset)
		}

	case StageCrcCheck:
		res.CrcResidue = Crc16Check(res.Data)
		if p.Log != nil && p.Log.Verbose() >= 1 {
			if res.CrcResidue == 0 {
				p.Log.Info("CRC check successful")
			} else {
				p.Log.Warn("CRC check failed", "residue", res.CrcResidue)
			}
		}

	case StageQdGenerate:
		res.Data = QdGenerate()

	case StageSyxRead:
		s, err := NewSysexReader().Read(res.Data)
		if err != nil {
			return err
		}
		res.Sample = s

	case StageQdSampleBlocks:
		if res.Sample == nil {
			return newError(InvalidArguments, "qd-sample-blocks requires a prior syx-read stage")
		}
		res.Blocks = BuildSampleBlocks(res.Sample)

	default:
		return newError(InvalidArguments, "unrecognised pipeline stage %q", stage)
	}

	return nil
}
