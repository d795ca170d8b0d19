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

	"github.com/spf13/cobra"

	"github.com/gocem/gocem/model_problems/Waveguide2D"
)

// WaveguideCmd represents the waveguide command
var WaveguideCmd = &cobra.Command{
	Use:   "waveguide",
	Short: "Rectangular waveguide TE/TM cutoff eigenmodes",
	Long: `
Solves the transverse Helmholtz eigenproblem for a rectangular waveguide with
P1 finite elements and compares the computed cutoff wavenumber against the
analytic value,

gocem waveguide -k TE -m 1 -n 0`,
	Run: func(cmd *cobra.Command, args []string) {
		kind, _ := cmd.Flags().GetString("kind")
		m, _ := cmd.Flags().GetInt("m")
		n, _ := cmd.Flags().GetInt("n")
		nx, _ := cmd.Flags().GetInt("nx")
		ny, _ := cmd.Flags().GetInt("ny")
		w, _ := cmd.Flags().GetFloat64("width")
		h, _ := cmd.Flags().GetFloat64("height")
		kEigs, _ := cmd.Flags().GetInt("eigs")
		converge, _ := cmd.Flags().GetBool("converge")
		if converge {
			runConvergence(kind, m, n, w, h)
			return
		}
		sol, err := Waveguide2D.SolveMode(kind, m, n, nx, ny, w, h, kEigs)
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			return
		}
		fmt.Printf("%s%d%d mode on %gx%g guide, %dx%d mesh (h = %.4f, longest edge %.4f)\n",
			sol.Kind, sol.M, sol.N, w, h, nx, ny, sol.Mesh.H, sol.Mesh.MaxEdgeLength())
		fmt.Printf("kc_fem = %.6f 1/m, kc_analytic = %.6f 1/m, error = %.3f%%\n",
			sol.KcFEM, sol.KcAnalytic, sol.ErrPercent)
	},
}

func runConvergence(kind string, m, n int, w, h float64) {
	resolutions := [][2]int{{8, 6}, {16, 12}, {32, 24}, {64, 48}}
	results, err := Waveguide2D.ConvergenceStudy(kind, m, n, resolutions, w, h)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		return
	}
	fmt.Printf("%6s %6s %10s %12s %12s\n", "Nx", "Ny", "h", "kc_fem", "err %")
	for _, r := range results {
		fmt.Printf("%6d %6d %10.5f %12.6f %12.5f\n", r.Nx, r.Ny, r.H, r.KcFEM, r.ErrPercent)
	}
	for i, rate := range Waveguide2D.Rates(results) {
		fmt.Printf("observed order %d -> %d: %.3f\n", i, i+1, rate)
	}
}

func init() {
	rootCmd.AddCommand(WaveguideCmd)
	WaveguideCmd.Flags().StringP("kind", "k", "TE", "mode kind: TE or TM")
	WaveguideCmd.Flags().IntP("m", "m", 1, "mode index along x")
	WaveguideCmd.Flags().IntP("n", "n", 0, "mode index along y")
	WaveguideCmd.Flags().Int("nx", 40, "mesh nodes along x")
	WaveguideCmd.Flags().Int("ny", 20, "mesh nodes along y")
	WaveguideCmd.Flags().Float64("width", 1.0, "guide width [m]")
	WaveguideCmd.Flags().Float64("height", 0.5, "guide height [m]")
	WaveguideCmd.Flags().Int("eigs", 12, "eigenpairs to resolve near the analytic estimate")
	WaveguideCmd.Flags().Bool("converge", false, "run the mesh-refinement convergence study instead of a single solve")
}
