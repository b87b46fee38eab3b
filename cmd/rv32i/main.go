// Command rv32i loads a program image and drives the RV32I core until
// it halts, faults, or exhausts an optional step budget.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"rv32i/internal/memio"
	"rv32i/internal/runconfig"
	"rv32i/pkg/core"
	"rv32i/pkg/loader"
	"rv32i/pkg/trace"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		raw        bool
		verbose    bool
		step       bool
		maxSteps   int
	)

	cmd := &cobra.Command{
		Use:   "rv32i <image>",
		Short: "Run an RV32I program image to completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := runconfig.Default()
			if configPath != "" {
				loaded, err := runconfig.Load(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			if verbose {
				cfg.Trace = true
			}
			if step {
				cfg.Step = true
			}

			log := newLogger(cfg.LogLevel)

			base, err := cfg.Base()
			if err != nil {
				return err
			}
			m := core.NewMachine(cfg.MemorySize, base)

			imagePath := args[0]
			if raw {
				err = loader.LoadRawFile(m, imagePath)
			} else {
				err = loader.LoadELFFile(m, imagePath)
			}
			if err != nil {
				return err
			}

			return run(cmd, m, log, cfg, maxSteps)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to a TOML run configuration file")
	cmd.Flags().BoolVar(&raw, "raw", false, "treat the image as a flat machine-code file instead of an ELF")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "trace every step")
	cmd.Flags().BoolVarP(&step, "step", "d", false, "pause for Enter between steps")
	cmd.Flags().IntVar(&maxSteps, "max-steps", 0, "stop after this many steps even without a halt (0 = unbounded)")

	return cmd
}

func newLogger(level string) *logrus.Logger {
	log := logrus.New()
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: false})
	return log
}

func run(cmd *cobra.Command, m *core.Machine, log *logrus.Logger, cfg runconfig.Config, maxSteps int) error {
	stdin := bufio.NewReader(os.Stdin)

	for i := 0; maxSteps == 0 || i < maxSteps; i++ {
		pc := m.Regs[core.PC]

		if cfg.Trace {
			word, _ := peekWord(m, pc)
			fmt.Fprintln(cmd.OutOrStdout(), trace.DumpInstruction(pc, word))
		}
		if cfg.Step {
			fmt.Fprintf(cmd.OutOrStdout(), "rv32i: paused at 0x%08x, press Enter to continue...\n", pc)
			stdin.ReadString('\n')
		}

		outcome, err := core.Step(m)
		if err != nil {
			var fault *core.Fault
			if errors.As(err, &fault) {
				log.WithFields(logrus.Fields{
					"kind":    fault.Kind.String(),
					"address": fmt.Sprintf("0x%08x", fault.Address),
					"word":    fmt.Sprintf("0x%08x", fault.Word),
					"step":    i,
				}).Error("rv32i: execution faulted")
				fmt.Fprint(cmd.OutOrStdout(), trace.DumpRegisters(m))
			}
			return err
		}
		if outcome == core.Halt {
			log.WithField("step", i).Info("rv32i: program halted normally")
			return nil
		}
	}
	return fmt.Errorf("rv32i: exceeded max-steps=%d without halting", maxSteps)
}

// peekWord loads the instruction word at pc for tracing purposes
// without disturbing Step's own fetch; a fetch fault here is reported
// as word 0 and surfaces properly a moment later from Step itself.
func peekWord(m *core.Machine, pc uint32) (uint32, error) {
	return memio.LoadWord(m.Memory, m.Base(), pc)
}
