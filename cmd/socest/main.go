package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/edp1096/socest/pkg/config"
	"github.com/edp1096/socest/pkg/estimator"
	"github.com/edp1096/socest/pkg/util"
)

func readSamples(path string) (currents, voltages []float64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening samples file: %v", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 2
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("reading samples file: %v", err)
		}

		i, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid current %q: %v", record[0], err)
		}
		v, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid voltage %q: %v", record[1], err)
		}
		currents = append(currents, i)
		voltages = append(voltages, v)
	}
	return currents, voltages, nil
}

func printTrace(results []estimator.StepResult) {
	fmt.Println("\nSoC Estimation Trace:")
	fmt.Println("======================")
	fmt.Println("Step      SoC       Vrc          Alpha     R0        R1")
	fmt.Println("---------------------------------------------------------")

	for i, r := range results {
		marker := ""
		if r.Saturated {
			marker = "  SATURATED"
		}
		fmt.Printf("%-9d %-9.6f %-12s %-9.6f %-9.6f %-9.6f%s\n",
			i, r.SoC, util.FormatValueFactor(r.Vrc, "V"), r.Alpha, r.R0, r.R1, marker)
	}
}

func main() {
	paramsPath := flag.String("params", "", "path to estimator parameter JSON file")
	ocvPath := flag.String("ocv", "", "path to OCV(SoC) breakpoint CSV file")
	docvPath := flag.String("docv", "", "path to dOCV/dSoC(SoC) breakpoint CSV file")
	samplesPath := flag.String("samples", "", "path to current,voltage sample CSV file")
	flag.Parse()

	if *paramsPath == "" || *ocvPath == "" || *docvPath == "" || *samplesPath == "" {
		log.Fatal("Usage: socest -params <file> -ocv <file> -docv <file> -samples <file>")
	}

	fmt.Printf("\n[1] Loading configuration from %s\n", *paramsPath)
	params, err := config.LoadParams(*paramsPath)
	if err != nil {
		log.Fatalf("Error loading params: %v", err)
	}

	fmt.Printf("\n[2] Loading OCV table from %s\n", *ocvPath)
	ocv, err := config.LoadTable(*ocvPath)
	if err != nil {
		log.Fatalf("Error loading OCV table: %v", err)
	}

	fmt.Printf("\n[3] Loading dOCV/dSoC table from %s\n", *docvPath)
	docv, err := config.LoadTable(*docvPath)
	if err != nil {
		log.Fatalf("Error loading dOCV/dSoC table: %v", err)
	}

	fmt.Printf("\n[4] Reading samples from %s\n", *samplesPath)
	currents, voltages, err := readSamples(*samplesPath)
	if err != nil {
		log.Fatalf("Error reading samples: %v", err)
	}
	fmt.Printf("Loaded %d samples\n", len(currents))

	fmt.Println("\n[5] Initializing estimator cell")
	cell, err := estimator.New(config.BuildCellConfig(params, ocv, docv))
	if err != nil {
		log.Fatalf("Error initializing estimator: %v", err)
	}
	defer cell.Close()

	fmt.Println("\n[6] Running estimation")
	results := make([]estimator.StepResult, 0, len(currents))
	for i := range currents {
		res, err := cell.Step(currents[i], voltages[i])
		if err != nil {
			log.Fatalf("Error at step %d: %v", i, err)
		}
		results = append(results, res)
	}

	fmt.Println("\n[7] Estimation complete")
	printTrace(results)
}
