// Package main provides a data bank validation tool.
//
// Usage:
//
//	go run ./cmd/check_banks [flags]
//
// Flags:
//
//	--dir <path>    Repository root containing data/ (default: ".")
//
// Purpose:
//   - Validate the three shipped YAML banks (arithmetic exercises,
//     cipher phrases, block challenges) before a release
//   - Print a per-bank summary, exit non-zero on the first broken bank
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/JR-amirez/juegos-ar/pkg/games/arithmetic"
	"github.com/JR-amirez/juegos-ar/pkg/games/blocks"
	"github.com/JR-amirez/juegos-ar/pkg/games/cipher"
)

var dirFlag = flag.String("dir", ".", "repository root containing data/")

func main() {
	flag.Parse()
	fsys := os.DirFS(*dirFlag)
	failed := false

	if bank, err := arithmetic.LoadBank(fsys, "data/arithmetic_exercises.yaml"); err != nil {
		fmt.Fprintln(os.Stderr, "ejercicios:", err)
		failed = true
	} else {
		total := 0
		for _, level := range []string{arithmetic.LevelBasic, arithmetic.LevelIntermediate, arithmetic.LevelAdvanced} {
			n := len(bank.Exercises(level))
			total += n
			fmt.Printf("ejercicios %-10s %d\n", level, n)
		}
		fmt.Printf("ejercicios total      %d\n", total)
	}

	if bank, err := cipher.LoadBank(fsys, "data/cipher_phrases.yaml"); err != nil {
		fmt.Fprintln(os.Stderr, "frases:", err)
		failed = true
	} else {
		fmt.Printf("frases                %d\n", len(bank.Phrases))
		for _, p := range bank.Phrases {
			fmt.Printf("  %-14s -> %s\n", p.Text, p.Encrypted())
		}
	}

	if bank, err := blocks.LoadBank(fsys, "data/block_challenges.yaml"); err != nil {
		fmt.Fprintln(os.Stderr, "desafíos:", err)
		failed = true
	} else {
		fmt.Printf("desafíos              %d\n", len(bank.Challenges))
	}

	if failed {
		os.Exit(1)
	}
}
