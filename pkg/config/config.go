// Package config loads the estimator's scalar parameters from a JSON
// document and its OCV/dOCV-dSoC breakpoint curves from CSV files, the
// same "read file, validate, build typed struct" shape the reference
// circuit simulator uses for its own netlist loader.
package config

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/edp1096/socest/pkg/estimator"
	"github.com/edp1096/socest/pkg/table"
)

// Params is the on-disk JSON shape for the estimator's scalar
// configuration. Any field left at zero falls back to the reference
// system's default constants when passed through to estimator.Config.
type Params struct {
	ForgettingFactor    float64    `json:"forgetting_factor"`
	CovarianceInflation float64    `json:"covariance_inflation"`
	CovarianceFloor     float64    `json:"covariance_floor"`
	Theta0              [3]float64 `json:"theta0"`
	ThetaLower          [3]float64 `json:"theta_lower"`
	ThetaUpper          [3]float64 `json:"theta_upper"`
	InitialSoC          float64    `json:"initial_soc"`
	InitialVrc          float64    `json:"initial_vrc"`
	ProcessNoiseDiag    [2]float64 `json:"process_noise_diag"`
	MeasurementNoise    float64    `json:"measurement_noise"`
	CapacityFactor      float64    `json:"capacity_factor"`
}

// LoadParams reads and validates an estimator parameter file.
func LoadParams(path string) (Params, error) {
	f, err := os.Open(path)
	if err != nil {
		return Params{}, fmt.Errorf("config: opening params file: %v", err)
	}
	defer f.Close()

	var p Params
	if err := json.NewDecoder(f).Decode(&p); err != nil {
		return Params{}, fmt.Errorf("config: parsing params file: %v", err)
	}

	if p.ForgettingFactor != 0 && (p.ForgettingFactor <= 0 || p.ForgettingFactor > 1) {
		return Params{}, fmt.Errorf("config: forgetting_factor must be in (0, 1], got %g", p.ForgettingFactor)
	}

	return p, nil
}

// LoadTable reads a two-column CSV breakpoint/value table: one
// "breakpoint,value" pair per row, no header.
func LoadTable(path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: opening table file %s: %v", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 2

	var bp, data []float64
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("config: reading table file %s: %v", path, err)
		}

		x, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, fmt.Errorf("config: table file %s: invalid breakpoint %q: %v", path, record[0], err)
		}
		y, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("config: table file %s: invalid value %q: %v", path, record[1], err)
		}
		bp = append(bp, x)
		data = append(data, y)
	}

	tbl, err := table.New(bp, data)
	if err != nil {
		return nil, fmt.Errorf("config: table file %s: %v", path, err)
	}
	return tbl, nil
}

// BuildCellConfig combines loaded scalar params and breakpoint tables
// into an estimator.Config ready for estimator.New.
func BuildCellConfig(p Params, ocv, docv *table.Table) estimator.Config {
	return estimator.Config{
		OCV:                 ocv,
		DOCV:                docv,
		Theta0:              p.Theta0,
		ThetaLower:          p.ThetaLower,
		ThetaUpper:          p.ThetaUpper,
		ForgettingFactor:    p.ForgettingFactor,
		CovarianceInflation: p.CovarianceInflation,
		CovarianceFloor:     p.CovarianceFloor,
		InitialSoC:          p.InitialSoC,
		InitialVrc:          p.InitialVrc,
		ProcessNoiseDiag:    p.ProcessNoiseDiag,
		MeasurementNoise:    p.MeasurementNoise,
		CapacityFactor:      p.CapacityFactor,
	}
}
