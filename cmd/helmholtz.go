/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io/ioutil"
	"math/cmplx"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/gocem/gocem/InputParameters"
	"github.com/gocem/gocem/model_problems/Helmholtz2D"
)

// HelmholtzCmd represents the helmholtz command
var HelmholtzCmd = &cobra.Command{
	Use:   "helmholtz",
	Short: "2D Helmholtz solver with PML absorbing boundaries",
	Long: `
Solves the 2D Helmholtz equation with a localized source on a rectangle
wrapped in Perfectly Matched Layers, reading the run configuration from a
YAML input file,

gocem helmholtz -I run.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		icFile, _ := cmd.Flags().GetString("inputConditionsFile")
		prof, _ := cmd.Flags().GetBool("profile")
		if prof {
			defer profile.Start().Stop()
		}
		ip, err := processHelmholtzInput(icFile)
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			return
		}
		ip.Print()
		runHelmholtz(ip)
	},
}

func processHelmholtzInput(icFile string) (ip *InputParameters.HelmholtzParameters, err error) {
	// Defaults mirror the reference run: 1m x 1m box, 5 Hz, water-like speed.
	ip = &InputParameters.HelmholtzParameters{
		Title:         "Helmholtz PML",
		Nx:            101,
		Ny:            101,
		Extent:        [4]float64{-0.5, 0.5, -0.5, 0.5},
		NBL:           40,
		Alpha:         1.5,
		Frequency:     5.0,
		VelocityModel: "uniform",
		Velocity:      1.5,
		Source:        InputParameters.SourceSpec{Amplitude: 0.02, Sigma: 0.05},
	}
	if len(icFile) == 0 {
		return
	}
	var data []byte
	if data, err = ioutil.ReadFile(icFile); err != nil {
		return nil, fmt.Errorf("unable to read input file %s: %w", icFile, err)
	}
	if err = ip.Parse(data); err != nil {
		return nil, fmt.Errorf("unable to parse input file %s: %w", icFile, err)
	}
	return
}

func runHelmholtz(ip *InputParameters.HelmholtzParameters) {
	d, err := Helmholtz2D.NewDomain(ip.Nx, ip.Ny, ip.Extent)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		return
	}
	d.ApplyPML(ip.NBL)

	var vel [][]float64
	switch ip.VelocityModel {
	case "layered":
		vel, err = Helmholtz2D.LayeredVelocity(d, ip.VelocityAbove, ip.VelocityBelow, ip.Interface)
	default:
		vel, err = Helmholtz2D.UniformVelocity(d, ip.Velocity)
	}
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		return
	}

	src := Helmholtz2D.GaussianSource{
		Amplitude: ip.Source.Amplitude,
		X0:        ip.Source.X0,
		Y0:        ip.Source.Y0,
		Sigma:     ip.Source.Sigma,
		Phase:     ip.Source.Phase,
	}
	sol, err := Helmholtz2D.Solve(d, ip.Frequency, vel, src.Eval, ip.Alpha)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		return
	}

	var uMax float64
	for _, u := range sol.U {
		if a := cmplx.Abs(u); a > uMax {
			uMax = a
		}
	}
	fmt.Printf("solved %d nodes (%d in PML collar), max |u| = %.6g\n",
		d.NumNodes(), d.NumNodes()-ip.Nx*ip.Ny, uMax)
}

func init() {
	rootCmd.AddCommand(HelmholtzCmd)
	HelmholtzCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML run-configuration file")
	HelmholtzCmd.Flags().Bool("profile", false, "write a CPU profile for the solve")
}
