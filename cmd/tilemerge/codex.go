package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tile-merge/internal/platform/tui"
)

var flagInteractive bool

var codexCmd = &cobra.Command{
	Use:   "codex",
	Short: "Show the tile rules and merge rules",
	Long: `Prints the tile rule table (defaults of every tile kind) and the merge
rules in the order they are checked. With --interactive, opens the
browsable codex screen instead.`,
	Args: cobra.NoArgs,
	RunE: runCodex,
}

func init() {
	codexCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse the codex in the TUI")
}

func runCodex(_ *cobra.Command, _ []string) error {
	if flagInteractive {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		_, err := tui.RunCodex(width, height)
		return err
	}

	fmt.Println(codexTable("Tiles", tui.RuleHeaders, tui.RuleRows()))
	fmt.Println()
	fmt.Println(codexTable("Merge rules (first match wins)", tui.MergeHeaders, tui.MergeRows()))
	return nil
}

var (
	codexTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("226"))
	codexHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).Padding(0, 1)
	codexCellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// codexTable renders one codex page as a bordered table.
func codexTable(title string, headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return codexHeaderStyle
			}
			return codexCellStyle
		})

	return codexTitleStyle.Render(title) + "\n" + t.Render()
}
