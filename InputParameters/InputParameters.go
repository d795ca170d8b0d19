package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file for a Helmholtz-PML run
type HelmholtzParameters struct {
	Title         string     `yaml:"Title"`
	Nx            int        `yaml:"Nx"`
	Ny            int        `yaml:"Ny"`
	Extent        [4]float64 `yaml:"Extent"` // xmin, xmax, ymin, ymax
	NBL           int        `yaml:"NBL"`
	Alpha         float64    `yaml:"Alpha"`
	Frequency     float64    `yaml:"Frequency"`
	VelocityModel string     `yaml:"VelocityModel"` // "uniform" or "layered"
	Velocity      float64    `yaml:"Velocity"`
	VelocityAbove float64    `yaml:"VelocityAbove"`
	VelocityBelow float64    `yaml:"VelocityBelow"`
	Interface     float64    `yaml:"Interface"`
	Source        SourceSpec `yaml:"Source"`
}

type SourceSpec struct {
	Amplitude float64 `yaml:"Amplitude"`
	X0        float64 `yaml:"X0"`
	Y0        float64 `yaml:"Y0"`
	Sigma     float64 `yaml:"Sigma"`
	Phase     float64 `yaml:"Phase"`
}

func (ip *HelmholtzParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

func (ip *HelmholtzParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%d x %d]\t\t= Physical grid\n", ip.Nx, ip.Ny)
	fmt.Printf("%v\t= Extent\n", ip.Extent)
	fmt.Printf("[%d]\t\t\t= PML layer nodes\n", ip.NBL)
	fmt.Printf("%8.5f\t\t= Alpha\n", ip.Alpha)
	fmt.Printf("%8.5f\t\t= Frequency [Hz]\n", ip.Frequency)
	fmt.Printf("[%s]\t\t= Velocity model\n", ip.VelocityModel)
	fmt.Printf("Source = %+v\n", ip.Source)
}
