package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/brunobiangulo/goquiz"
)

func main() {
	input := flag.String("input", "", "Path to the document to convert")
	output := flag.String("output", "", "Path to output JSON file (default: stdout)")
	diagnostics := flag.Bool("diagnostics", false, "Emit {questions, unparsed, stats} instead of a bare question list")
	category := flag.String("category", "", "Override the placeholder category")
	verbose := flag.Bool("verbose", false, "Enable debug logging on stderr")
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if *input == "" {
		fmt.Fprintf(os.Stderr, "Error: input file required\n")
		fmt.Fprintf(os.Stderr, "Usage: convert -input <file> [-output <json-file>] [-diagnostics] [-verbose]\n")
		os.Exit(1)
	}

	engine, err := goquiz.New(goquiz.DefaultConfig())
	if err != nil {
		slog.Error("creating engine", "error", err)
		os.Exit(1)
	}

	var opts []goquiz.ConvertOption
	if *category != "" {
		opts = append(opts, goquiz.WithCategory(*category))
	}

	result, err := engine.Convert(context.Background(), *input, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error converting %s: %v\n", *input, err)
		os.Exit(1)
	}

	var payload interface{} = result.Questions
	if *diagnostics {
		payload = result
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling JSON: %v\n", err)
		os.Exit(1)
	}

	if *output == "" {
		fmt.Println(string(data))
	} else if err := os.WriteFile(*output, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
		os.Exit(1)
	}

	if *verbose {
		fmt.Fprintf(os.Stderr, "Questions: %d  Blocks: %d  Diagnostics: %d\n",
			len(result.Questions), result.Stats.TotalBlocks, result.Stats.Unparsed)
	}
}
