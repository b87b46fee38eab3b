// Command rv32i-disasm prints the disassembly of every instruction word
// in a program image without executing it.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rv32i/internal/memio"
	"rv32i/pkg/core"
	"rv32i/pkg/disasm"
	"rv32i/pkg/loader"
)

func main() {
	var raw bool

	cmd := &cobra.Command{
		Use:   "rv32i-disasm <image>",
		Short: "Disassemble an RV32I program image without executing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := core.NewDefaultMachine()

			var err error
			if raw {
				err = loader.LoadRawFile(m, args[0])
			} else {
				err = loader.LoadELFFile(m, args[0])
			}
			if err != nil {
				return err
			}

			for addr := m.Base(); ; addr += 4 {
				word, err := memio.LoadWord(m.Memory, m.Base(), addr)
				if err != nil {
					break
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%08x: %08x  %s\n", addr, word, disasm.Format(word))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "treat the image as a flat machine-code file instead of an ELF")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
