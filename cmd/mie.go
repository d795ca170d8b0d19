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
	"math"
	"math/cmplx"

	"github.com/spf13/cobra"

	"github.com/gocem/gocem/analytic2D"
)

// MieCmd represents the mie command
var MieCmd = &cobra.Command{
	Use:   "mie",
	Short: "Analytic Mie series for a PEC cylinder",
	Long: `
Evaluates the analytic Mie-series total field around a perfectly conducting
cylinder illuminated by a plane wave and prints the forward/backward field
profile,

gocem mie --radius 0.25`,
	Run: func(cmd *cobra.Command, args []string) {
		lam, _ := cmd.Flags().GetFloat64("lambda")
		aFrac, _ := cmd.Flags().GetFloat64("radius")
		e0, _ := cmd.Flags().GetFloat64("amplitude")
		var (
			a  = aFrac * lam
			k0 = 2 * math.Pi / lam
		)
		fmt.Printf("PEC cylinder: a = %.4g m, lambda = %.4g m, k0*a = %.4g, %d series terms\n",
			a, lam, k0*a, 2*analytic2D.MieTruncation(k0*a)+1)
		fmt.Printf("%10s %14s %14s\n", "r/a", "|Ez| forward", "|Ez| backward")
		for _, ra := range []float64{1.0, 1.5, 2.0, 3.0, 5.0} {
			fwd := cmplx.Abs(analytic2D.MieTotalField(k0, a, e0, ra*a, 0))
			bwd := cmplx.Abs(analytic2D.MieTotalField(k0, a, e0, ra*a, math.Pi))
			fmt.Printf("%10.2f %14.6f %14.6f\n", ra, fwd, bwd)
		}
	},
}

func init() {
	rootCmd.AddCommand(MieCmd)
	MieCmd.Flags().Float64("lambda", 1.0, "illumination wavelength [m]")
	MieCmd.Flags().Float64("radius", 0.25, "cylinder radius as a fraction of lambda")
	MieCmd.Flags().Float64("amplitude", 1.0, "incident field amplitude")
}
