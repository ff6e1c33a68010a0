package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/limaJavier/assignment/pkg/model"
	"github.com/limaJavier/assignment/pkg/tabu"

	"github.com/samber/lo"
)

const (
	executablePath = "../../bin/assign"
	configPath     = "../../configs/search.yaml"
	testDirectory  = "../../test/inputs/"
	resultsFile    = "benchmark_results.csv"
	KB             = 1024
)

type ResultType int

const (
	finished ResultType = iota
	interrupted
	aborted
)

var (
	memoryModes = []tabu.MemoryMode{tabu.SolutionMemory, tabu.MovementMemory}
	resultTypes = map[ResultType]string{
		finished:    "finished",
		interrupted: "interrupted",
		aborted:     "aborted",
	}
	exitCodes = map[int]ResultType{
		10: finished,
		15: interrupted,
		20: aborted,
	}
)

type TestMetadata struct {
	Name     string `csv:"Test"`
	Teachers int    `csv:"Teachers"`
	Courses  int    `csv:"Courses"`
	Locks    int    `csv:"Locks"`
}

type BenchmarkResult struct {
	Memory string `csv:"Memory"`
	TestMetadata
	Iterations    int     `csv:"Iterations"`
	BestScore     float64 `csv:"Best score"`
	Feasible      bool    `csv:"Feasible"`
	Duration      int64   `csv:"Duration(ms)"`
	MaxMemory     float32 `csv:"Memory(MB)"`
	CpuPercentage int64   `csv:"CPU(%)"`
	Result        string  `csv:"Result"`
}

func main() {
	tests := getTests()
	results := make([]BenchmarkResult, 0, len(tests)*len(memoryModes))

	for _, test := range tests {
		for _, memory := range memoryModes {
			fmt.Printf("Benchmarking test \"%v\" with memory \"%v\"\n", test.Name, memory)

			output, duration, maxMemory, cpuPercentage, result := measure(memory, test.Name)

			results = append(results, BenchmarkResult{
				Memory:        string(memory),
				TestMetadata:  test,
				Iterations:    output.Statistics.Iterations,
				BestScore:     output.Best.Score,
				Feasible:      output.Statistics.BestFeasible,
				Duration:      duration,
				MaxMemory:     maxMemory,
				CpuPercentage: cpuPercentage,
				Result:        resultTypes[result],
			})
		}
	}

	toCsv(results)
}

func getTests() []TestMetadata {
	testFiles, err := os.ReadDir(testDirectory)
	if err != nil {
		log.Fatalf("cannot read directory: %v", err)
	}

	tests := make([]TestMetadata, 0, len(testFiles))
	for _, file := range testFiles {
		if path.Ext(file.Name()) != ".json" {
			continue
		}

		filename := testDirectory + file.Name()
		input, err := model.InputFromJson(filename)
		if err != nil {
			log.Fatalf("cannot parse input file: %v", err)
		}

		tests = append(tests, TestMetadata{
			Name:     filename,
			Teachers: len(input.Teachers),
			Courses:  len(input.Courses),
			Locks:    len(input.Locks),
		})
	}

	return tests
}

// The CLI output, only the fields the benchmark reports
type searchOutput struct {
	Best struct {
		Score float64 `json:"score"`
	} `json:"best"`
	Statistics struct {
		Iterations   int  `json:"iterations"`
		BestFeasible bool `json:"bestFeasible"`
	} `json:"statistics"`
}

func measure(memory tabu.MemoryMode, testFile string) (output searchOutput, duration int64, maxMemory float32, cpuPercentage int64, result ResultType) {
	cmd := exec.Command("/usr/bin/time", "-v", executablePath, "-config", configPath, "-file", testFile)
	cmd.Env = append(os.Environ(), "TABU_SEARCH_MEMORY_MODE="+string(memory), "TABU_LOG_LEVEL=error")

	var stdOut bytes.Buffer
	cmd.Stdout = &stdOut
	var stdErr bytes.Buffer
	cmd.Stderr = &stdErr

	cmd.Run()
	result, ok := exitCodes[cmd.ProcessState.ExitCode()]
	if !ok {
		log.Fatalf("an error occurred during the execution \"assign\" at test \"%v\" using memory \"%v\": %v\n", testFile, memory, stdErr.String())
	}
	if err := json.Unmarshal(stdOut.Bytes(), &output); err != nil {
		log.Fatalf("cannot parse the output of test \"%v\": %v", testFile, err)
	}

	splits := strings.Split(stdErr.String(), "\n")
	getLine := func(substr string) string {
		line, ok := lo.Find(splits, func(line string) bool {
			return strings.Contains(strings.ToLower(line), substr)
		})
		if !ok {
			log.Fatalf("Substring \"%v\" could not be found", substr)
		}
		return line
	}

	duration = parseDurationLine(getLine("wall clock"))
	maxMemory = parseMemoryLine(getLine("maximum resident set size"))
	cpuPercentage = parseCpuPercentageLine(getLine("percent of cpu"))

	return output, duration, maxMemory, cpuPercentage, result
}

func toCsv(results []BenchmarkResult) {
	file, err := os.Create(resultsFile)
	if err != nil {
		log.Panicf("cannot create CSV file: %v", err)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&results, file); err != nil {
		log.Panicf("cannot write CSV records: %v", err)
	}
}

func parseDurationLine(line string) int64 {
	durationStr := strings.Split(line, "(h:mm:ss or m:ss):")[1][1:]
	return parseDuration(durationStr)
}

func parseDuration(durationStr string) int64 {
	parts := strings.Split(durationStr, ":")
	secondsStr := parts[len(parts)-1]
	secondsParts := strings.Split(secondsStr, ".")

	var duration int64
	if len(parts) == 3 { // h:mm:ss
		hours := lo.Must(strconv.Atoi(parts[0]))
		minutes := lo.Must(strconv.Atoi(parts[1]))
		seconds := lo.Must(strconv.Atoi(secondsParts[0]))
		hundredthOfSeconds := lo.Must(strconv.Atoi(secondsParts[1]))
		duration = int64(hours*3600+minutes*60+seconds)*1000 + int64(hundredthOfSeconds*10)
	} else if len(parts) == 2 { // m:ss
		minutes := lo.Must(strconv.Atoi(parts[0]))
		seconds := lo.Must(strconv.Atoi(secondsParts[0]))
		hundredthOfSeconds := lo.Must(strconv.Atoi(secondsParts[1]))
		duration = int64(minutes*60+seconds)*1000 + int64(hundredthOfSeconds*10)
	} else {
		log.Fatalf("unexpected duration format: %v", durationStr)
	}
	return duration
}

func parseMemoryLine(line string) float32 {
	memoryStr := strings.Split(line, ":")[1][1:]
	return float32(lo.Must(strconv.ParseFloat(memoryStr, 32))) / KB
}

func parseCpuPercentageLine(line string) int64 {
	percentageStr := strings.Split(line, ":")[1][1:]
	percentageStr = percentageStr[:len(percentageStr)-1]
	return int64(lo.Must(strconv.Atoi(percentageStr)))
}
