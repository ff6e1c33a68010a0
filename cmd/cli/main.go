package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path"
	"slices"

	"github.com/limaJavier/assignment/internal/config"
	"github.com/limaJavier/assignment/internal/logger"
	"github.com/limaJavier/assignment/pkg/model"
	"github.com/limaJavier/assignment/pkg/tabu"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

const defaultConfigName = "search.yaml"

func main() {
	// Define arguments
	filePathPtr := flag.String("file", "", "Path to the input file")
	configPathPtr := flag.String("config", "", "Path to the search configuration (YAML or JSON); if empty, search.yaml next to the executable is used when present, otherwise the defaults")
	outFilePathPtr := flag.String("out", "", "Path to the file where the output will be written; if empty, it'll be written into the Standard Output")
	seedPtr := flag.Bool("seed", false, "Replace the movable part of the input's assignment by a maximum matching between courses and the teachers that prefer them")
	flag.Parse()
	filePath := *filePathPtr
	configPath := *configPathPtr
	outFile := *outFilePathPtr

	// Validate arguments
	if filePath == "" {
		log.Fatal("an input file must be specified")
	}
	if configPath == "" {
		configPath = defaultConfigPath()
	}

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("cannot load configuration: %v", err)
	}
	zapLogger, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("cannot build logger: %v", err)
	}
	defer zapLogger.Sync()

	// Extract input
	input, err := model.InputFromJson(filePath)
	if err != nil {
		log.Fatalf("cannot parse input file: %v", err)
	}
	if *seedPtr {
		seedAssignment(&input)
	}

	// Initialize engine
	searchConfig, err := cfg.Build(zapLogger)
	if err != nil {
		log.Fatalf("invalid search configuration: %v", err)
	}
	fields, err := cfg.Fields()
	if err != nil {
		log.Fatalf("invalid search configuration: %v", err)
	}
	if fields != nil {
		searchConfig.Progress = &tabu.Progress{
			Callback: func(snapshot tabu.Snapshot) {
				zapLogger.Info("progress", zap.Any("values", snapshot.Values), zap.Bool("final", snapshot.Final))
			},
			Fields:   fields,
			Interval: cfg.Search.Progress.Interval,
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Search
	result, err := tabu.NewSearcher(searchConfig).Run(ctx, input)
	if result == nil {
		log.Fatalf("an error occurred before the search started: %v", err)
	} else if err != nil {
		zapLogger.Error("search aborted, writing the best solution found", zap.Error(err))
	}

	// Marshal output into json
	resultJson, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("an error occurred while building output json: %v", err)
	}

	// Verify outfile is empty, if so then write the results to the Standard Output
	if outFile == "" {
		fmt.Println(string(resultJson))
	} else {
		err := os.WriteFile(outFile, resultJson, 0666)
		if err != nil {
			log.Fatalf("an error occurred while writing to the output file: %v", err)
		}
	}

	switch result.Reason {
	case tabu.ReasonAborted:
		zapLogger.Sync()
		os.Exit(20)
	case tabu.ReasonInterrupted:
		zapLogger.Sync()
		os.Exit(15)
	}
	zapLogger.Sync()
	os.Exit(10)
}

func seedAssignment(input *model.ModelInput) {
	space, err := model.NewSpace(*input)
	if err != nil {
		log.Fatalf("invalid input: %v", err)
	}
	assignment, err := model.MatchingAssignment(space)
	if err != nil {
		log.Fatalf("cannot build the seed assignment: %v", err)
	}
	input.Assignment = assignment
}

func defaultConfigPath() string {
	execPath, err := os.Executable()
	if err != nil {
		log.Fatalf("cannot determine executable path: %v", err)
	}
	execPath = path.Dir(execPath)

	files, err := os.ReadDir(execPath)
	if err != nil {
		log.Fatalf("cannot read executable's directory: %v", err)
	}
	fileNames := lo.Map(files, func(file os.DirEntry, _ int) string { return file.Name() })

	if !slices.Contains(fileNames, defaultConfigName) {
		return ""
	}
	return path.Join(execPath, defaultConfigName)
}
