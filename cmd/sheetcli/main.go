// Command sheetcli is a minimal line-oriented driver over the spreadsheet
// core, useful for manual exercise and scripting. It is not part of the
// core and carries no evaluation logic of its own.
package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/spf13/cobra"

	spreadsheet "github.com/arjunv/go-spreadsheet"
	"github.com/arjunv/go-spreadsheet/position"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "sheetcli",
		Short: "Interactive driver for the spreadsheet core",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	return root
}

// runRepl reads SET/GET/CLEAR/PRINT commands from in, one per line, and
// writes their results to out. It returns an error only on a read error or
// when PRINT fails to write to out; EOF ends the loop cleanly.
func runRepl(in io.Reader, out io.Writer) error {
	sheet := spreadsheet.CreateSheet()
	scanner := bufio.NewScanner(in)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.SplitN(line, " ", 3)
		cmd := strings.ToUpper(parts[0])
		fields := strings.Fields(line)

		switch cmd {
		case "SET":
			if len(parts) < 3 {
				fmt.Fprintln(out, "usage: SET <address> <text>")
				continue
			}
			pos, ok := position.FromA1(parts[1])
			if !ok {
				fmt.Fprintf(out, "invalid address: %s\n", parts[1])
				continue
			}
			if err := sheet.SetCell(pos, parts[2]); err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
			}
		case "GET":
			if len(fields) != 2 {
				fmt.Fprintln(out, "usage: GET <address>")
				continue
			}
			pos, ok := position.FromA1(fields[1])
			if !ok {
				fmt.Fprintf(out, "invalid address: %s\n", fields[1])
				continue
			}
			cell := sheet.GetCell(pos)
			if cell == nil {
				fmt.Fprintln(out, "")
				continue
			}
			fmt.Fprintln(out, cell.GetValue().String())
		case "CLEAR":
			if len(fields) != 2 {
				fmt.Fprintln(out, "usage: CLEAR <address>")
				continue
			}
			pos, ok := position.FromA1(fields[1])
			if !ok {
				fmt.Fprintf(out, "invalid address: %s\n", fields[1])
				continue
			}
			if err := sheet.ClearCell(pos); err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
			}
		case "PRINT":
			if err := sheet.PrintValues(out); err != nil {
				return err
			}
		default:
			fmt.Fprintf(out, "unknown command: %s\n", fields[0])
		}
	}

	if err := scanner.Err(); err != nil {
		return err
	}
	return nil
}
