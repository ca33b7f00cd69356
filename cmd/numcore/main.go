// Command numcore is a demo CLI over the numeric core: integer add/sub,
// RV32M multiply/divide, IEEE-754 add/sub/mul, the decimal<->two's-complement
// adapter, and a tiny RV32I program runner.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/oisee/riscv-numeric-core/pkg/adapters"
	"github.com/oisee/riscv-numeric-core/pkg/alu"
	"github.com/oisee/riscv-numeric-core/pkg/bits"
	"github.com/oisee/riscv-numeric-core/pkg/cpu"
	"github.com/oisee/riscv-numeric-core/pkg/fpu"
	"github.com/oisee/riscv-numeric-core/pkg/mdu"
	"github.com/oisee/riscv-numeric-core/pkg/trace"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "numcore",
		Short: "Bit-level integer ALU, RV32M, and IEEE-754 core — reference CLI",
	}

	rootCmd.AddCommand(
		newAddCmd(), newSubCmd(),
		newMulCmd(), newMulhCmd(), newDivCmd(), newRemCmd(),
		newFloatCmd("fadd"), newFloatCmd("fsub"), newFloatCmd("fmul"),
		newDecimalCmd(), newRunCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func hx(v bits.Vector) string {
	return bits.ToHexString(v, len(v)/4)
}

func parseOperands(a, b string, width int) (bits.Vector, bits.Vector, error) {
	av, err := bits.FromHexString(a, width)
	if err != nil {
		return nil, nil, fmt.Errorf("operand A: %w", err)
	}
	bv, err := bits.FromHexString(b, width)
	if err != nil {
		return nil, nil, fmt.Errorf("operand B: %w", err)
	}
	return av, bv, nil
}

func newAddCmd() *cobra.Command {
	var width int
	cmd := &cobra.Command{
		Use:   "add <hexA> <hexB>",
		Short: "Integer add, reporting N/Z/C/V flags",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, b, err := parseOperands(args[0], args[1], width)
			if err != nil {
				return err
			}
			r, f := alu.Add(a, b)
			fmt.Printf("A: %s\nB: %s\nR: %s\nFLAGS: N=%d Z=%d C=%d V=%d\nBIN: %s\n",
				hx(a), hx(b), hx(r), f.N, f.Z, f.C, f.V, bits.PrettyBin(r))
			return nil
		},
	}
	cmd.Flags().IntVar(&width, "width", 32, "Operand width in bits")
	return cmd
}

func newSubCmd() *cobra.Command {
	var width int
	cmd := &cobra.Command{
		Use:   "sub <hexA> <hexB>",
		Short: "Integer subtract, reporting N/Z/C/V flags (C=1 means no borrow)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, b, err := parseOperands(args[0], args[1], width)
			if err != nil {
				return err
			}
			r, f := alu.Sub(a, b)
			fmt.Printf("A: %s\nB: %s\nR: %s\nFLAGS: N=%d Z=%d C=%d V=%d\nBIN: %s\n",
				hx(a), hx(b), hx(r), f.N, f.Z, f.C, f.V, bits.PrettyBin(r))
			return nil
		},
	}
	cmd.Flags().IntVar(&width, "width", 32, "Operand width in bits")
	return cmd
}

func printTrace(rec *trace.Recorder, limit int, jsonPath string) error {
	steps := rec.Steps()
	fmt.Printf("TRACE (first %d of %d steps):\n", min(limit, len(steps)), len(steps))
	for _, s := range steps[:min(limit, len(steps))] {
		fmt.Printf("  [%d] %v\n", s.Index, s.Fields)
	}
	if jsonPath == "" {
		return nil
	}
	f, err := os.Create(jsonPath)
	if err != nil {
		return err
	}
	defer f.Close()
	return trace.WriteJSON(f, steps)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func newMulCmd() *cobra.Command {
	var width int
	var showTrace bool
	var traceJSON string
	cmd := &cobra.Command{
		Use:   "mul <hexA> <hexB>",
		Short: "RV32M low-32 signed multiply",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, b, err := parseOperands(args[0], args[1], width)
			if err != nil {
				return err
			}
			var rec *trace.Recorder
			if showTrace || traceJSON != "" {
				rec = trace.NewRecorder()
			}
			r, f := mdu.MulLow32(a, b, rec)
			fmt.Printf("A: %s\nB: %s\nR(low): %s\nMUL overflow: %d\n", hx(a), hx(b), hx(r), f.Overflow)
			if rec != nil {
				return printTrace(rec, 5, traceJSON)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&width, "width", 32, "Operand width in bits")
	cmd.Flags().BoolVar(&showTrace, "trace", false, "Print the shift-add trace")
	cmd.Flags().StringVar(&traceJSON, "trace-json", "", "Write the full trace to this JSON file")
	return cmd
}

func newMulhCmd() *cobra.Command {
	var width int
	var mode string
	cmd := &cobra.Command{
		Use:   "mulh <hexA> <hexB>",
		Short: "RV32M high-32 multiply (--mode signed|unsigned|su)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, b, err := parseOperands(args[0], args[1], width)
			if err != nil {
				return err
			}
			var r bits.Vector
			switch mode {
			case "signed":
				r = mdu.MulhSigned(a, b)
			case "unsigned":
				r = mdu.MulhuUnsigned(a, b)
			case "su":
				r = mdu.Mulhsu(a, b)
			default:
				return fmt.Errorf("unknown --mode %q: use signed, unsigned, or su", mode)
			}
			fmt.Printf("A: %s\nB: %s\nR(high): %s\n", hx(a), hx(b), hx(r))
			return nil
		},
	}
	cmd.Flags().IntVar(&width, "width", 32, "Operand width in bits")
	cmd.Flags().StringVar(&mode, "mode", "signed", "signed, unsigned, or su (rs1 signed * rs2 unsigned)")
	return cmd
}

func newDivCmd() *cobra.Command {
	var width int
	var unsigned bool
	var showTrace bool
	var traceJSON string
	cmd := &cobra.Command{
		Use:   "div <hexA> <hexB>",
		Short: "RV32M divide (quotient and remainder)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, b, err := parseOperands(args[0], args[1], width)
			if err != nil {
				return err
			}
			var rec *trace.Recorder
			if showTrace || traceJSON != "" {
				rec = trace.NewRecorder()
			}
			var q, r bits.Vector
			var dz, ov uint8
			if unsigned {
				var f mdu.DivFlags
				q, r, f = mdu.DivuUnsigned(a, b, rec)
				dz, ov = f.DivByZero, f.Overflow
			} else {
				var f mdu.DivFlags
				q, r, f = mdu.DivSigned(a, b, rec)
				dz, ov = f.DivByZero, f.Overflow
			}
			fmt.Printf("A: %s\nB: %s\nQ: %s\nR: %s\nDIV flags: divByZero=%d overflow=%d\n",
				hx(a), hx(b), hx(q), hx(r), dz, ov)
			if rec != nil {
				return printTrace(rec, 8, traceJSON)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&width, "width", 32, "Operand width in bits")
	cmd.Flags().BoolVar(&unsigned, "unsigned", false, "Use unsigned division")
	cmd.Flags().BoolVar(&showTrace, "trace", false, "Print the restoring-division trace")
	cmd.Flags().StringVar(&traceJSON, "trace-json", "", "Write the full trace to this JSON file")
	return cmd
}

func newRemCmd() *cobra.Command {
	var width int
	var unsigned bool
	cmd := &cobra.Command{
		Use:   "rem <hexA> <hexB>",
		Short: "RV32M remainder",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, b, err := parseOperands(args[0], args[1], width)
			if err != nil {
				return err
			}
			var r bits.Vector
			var dz, ov uint8
			if unsigned {
				var f mdu.DivFlags
				r, f = mdu.RemuUnsigned(a, b, nil)
				dz, ov = f.DivByZero, f.Overflow
			} else {
				var f mdu.DivFlags
				r, f = mdu.RemSigned(a, b, nil)
				dz, ov = f.DivByZero, f.Overflow
			}
			fmt.Printf("A: %s\nB: %s\nR: %s\nDIV flags: divByZero=%d overflow=%d\n", hx(a), hx(b), hx(r), dz, ov)
			return nil
		},
	}
	cmd.Flags().IntVar(&width, "width", 32, "Operand width in bits")
	cmd.Flags().BoolVar(&unsigned, "unsigned", false, "Use unsigned remainder")
	return cmd
}

func parseRoundMode(s string) (fpu.RoundMode, error) {
	switch strings.ToLower(s) {
	case "rne", "":
		return fpu.RNE, nil
	case "rtz":
		return fpu.RTZ, nil
	case "rup":
		return fpu.RUP, nil
	case "rdn":
		return fpu.RDN, nil
	default:
		return 0, fmt.Errorf("unknown --round %q: use rne, rtz, rup, or rdn", s)
	}
}

func newFloatCmd(op string) *cobra.Command {
	var width int
	var round string
	cmd := &cobra.Command{
		Use:   op + " <hexA> <hexB>",
		Short: fmt.Sprintf("IEEE 754 %s (binary32 or binary64)", strings.ToUpper(op)),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rm, err := parseRoundMode(round)
			if err != nil {
				return err
			}
			a, b, err := parseOperands(args[0], args[1], width)
			if err != nil {
				return err
			}
			var r bits.Vector
			var f fpu.Flags
			switch {
			case width == 32 && op == "fadd":
				r, f = fpu.FAddF32(a, b, rm)
			case width == 32 && op == "fsub":
				r, f = fpu.FSubF32(a, b, rm)
			case width == 32 && op == "fmul":
				r, f = fpu.FMulF32(a, b, rm)
			case width == 64 && op == "fadd":
				r, f = fpu.FAddF64(a, b, rm)
			case width == 64 && op == "fsub":
				r, f = fpu.FSubF64(a, b, rm)
			case width == 64 && op == "fmul":
				r, f = fpu.FMulF64(a, b, rm)
			default:
				return fmt.Errorf("unsupported --width %d: use 32 or 64", width)
			}
			fmt.Printf("A: %s\nB: %s\nR: %s\nFLAGS: invalid=%d overflow=%d underflow=%d inexact=%d\n",
				hx(a), hx(b), hx(r), f.Invalid, f.Overflow, f.Underflow, f.Inexact)
			return nil
		},
	}
	cmd.Flags().IntVar(&width, "width", 32, "Format width: 32 (binary32) or 64 (binary64)")
	cmd.Flags().StringVar(&round, "round", "rne", "Rounding mode: rne, rtz, rup, rdn")
	return cmd
}

func newDecimalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decimal <value>",
		Short: "Encode a signed decimal string into a 32-bit two's-complement vector",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, err := adapters.EncodeDecimal(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("HEX: %s\nBIN: %s\n", enc.Hex, enc.Bin)
			return nil
		},
	}
	return cmd
}

func newRunCmd() *cobra.Command {
	var maxSteps int
	cmd := &cobra.Command{
		Use:   "run <prog.hex>",
		Short: "Run an RV32I .hex program image to completion and dump registers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening program image: %w", err)
			}
			defer f.Close()

			words, err := cpu.LoadHex(f)
			if err != nil {
				return err
			}

			machine := cpu.NewCPU(&cpu.InstrMemory{Words: words}, cpu.NewDataMemory())
			machine.Run(maxSteps)

			fmt.Println("Finished. Final register state:")
			for i := 0; i < 32; i++ {
				fmt.Printf("x%02d = 0x%08X\n", i, machine.Regs.Read(uint8(i)))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&maxSteps, "max-steps", 100_000, "Maximum instructions to execute")
	return cmd
}
