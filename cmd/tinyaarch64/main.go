package main

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/DumpA1n/TinyAArch64/asm"
	"github.com/DumpA1n/TinyAArch64/config"
	"github.com/DumpA1n/TinyAArch64/vm"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tinyaarch64",
		Short: "A 64-bit RISC instruction set simulator — assembler and execution engine",
	}

	var outPath string
	assembleCmd := &cobra.Command{
		Use:   "assemble [source.s]",
		Short: "Assemble a source file into a flat binary of 32-bit instruction words",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading source: %w", err)
			}
			words, err := asm.Assemble(string(src))
			if err != nil {
				return fmt.Errorf("assembling: %w", err)
			}

			if outPath == "" {
				for _, w := range words {
					fmt.Printf("%08X\n", w)
				}
				return nil
			}
			return writeBinary(outPath, words)
		},
	}
	assembleCmd.Flags().StringVarP(&outPath, "output", "o", "", "Write encoded words to this binary file instead of stdout")

	var maxSteps uint64
	var trace bool
	runCmd := &cobra.Command{
		Use:   "run [source.s]",
		Short: "Assemble and execute a source file, printing final register state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if maxSteps == 0 {
				maxSteps = cfg.Execution.MaxSteps
			}
			if !trace {
				trace = cfg.Execution.EnableTrace
			}

			src, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading source: %w", err)
			}
			words, err := asm.Assemble(string(src))
			if err != nil {
				return fmt.Errorf("assembling: %w", err)
			}

			cpu := vm.NewCPU()
			if err := cpu.LoadProgram(words); err != nil {
				return fmt.Errorf("loading program: %w", err)
			}

			var steps uint64
			for steps = 0; steps < maxSteps; steps++ {
				if trace {
					fmt.Printf("step %d: PC=0x%08X IR=0x%08X\n", steps, cpu.GetPC(), cpu.GetIR())
				}
				if err := cpu.Step(); err != nil {
					if vm.IsHalted(err) {
						break
					}
					return fmt.Errorf("step %d: %w", steps, err)
				}
			}

			printState(cpu)
			return nil
		},
	}
	runCmd.Flags().Uint64Var(&maxSteps, "max-steps", 0, "Maximum steps to execute (0 = use config default)")
	runCmd.Flags().BoolVar(&trace, "trace", false, "Print PC/IR before each step")

	rootCmd.AddCommand(assembleCmd, runCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func writeBinary(path string, words []uint32) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()

	buf := make([]byte, 4*len(words))
	for i, w := range words {
		binary.LittleEndian.PutUint32(buf[4*i:], w)
	}
	_, err = f.Write(buf)
	return err
}

func printState(cpu *vm.CPU) {
	fmt.Printf("PC=0x%08X  SP=0x%016X  NZCV=0x%X\n", cpu.GetPC(), cpu.GetSP(), cpu.GetStatusReg()>>28)
	for i := 0; i < 32; i += 4 {
		fmt.Printf("X%-2d=%016X  X%-2d=%016X  X%-2d=%016X  X%-2d=%016X\n",
			i, cpu.GetReg(i), i+1, cpu.GetReg(i+1), i+2, cpu.GetReg(i+2), i+3, cpu.GetReg(i+3))
	}
}
