package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner shown by the bare root command.
func PrintBanner() {
	p := termenv.ColorProfile()
	s1 := termenv.String("      _        _                   _ ").Foreground(p.Color("#38bdf8"))
	s2 := termenv.String("  ___| |_ __ _| |_ _   _ _ __ ___ | |").Foreground(p.Color("#22d3ee"))
	s3 := termenv.String(" / __| __/ _` | __| | | | '_ ` _ \\| |").Foreground(p.Color("#2dd4bf"))
	s4 := termenv.String(" \\__ \\ || (_| | |_| |_| | | | | | | |").Foreground(p.Color("#34d399"))
	s5 := termenv.String(" |___/\\__\\__,_|\\__|\\__,_|_| |_| |_|_|").Foreground(p.Color("#4ade80"))

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	fmt.Println()
}
