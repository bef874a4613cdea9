//go:build ignore

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/specvital/typocheck/pkg/scanner"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: go run scripts/scan.go <path>\n")
		os.Exit(1)
	}

	path := os.Args[1]

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	result, err := scanner.Scan(ctx, []string{path})
	if err != nil {
		fmt.Fprintf(os.Stderr, "scan error: %v\n", err)
		os.Exit(1)
	}

	output := map[string]interface{}{
		"filesScanned": result.Stats.FilesScanned,
		"filesChecked": result.Stats.FilesChecked,
		"filesFailed":  result.Stats.FilesFailed,
		"typoCount":    result.TypoCount(),
		"duration":     result.Stats.Duration.String(),
		"languages":    countLanguages(result),
	}
	json.NewEncoder(os.Stdout).Encode(output)
}

func countLanguages(result *scanner.ScanResult) map[string]int {
	counts := make(map[string]int)
	for _, file := range result.Files {
		counts[file.Language.String()] += len(file.Typos)
	}
	return counts
}
