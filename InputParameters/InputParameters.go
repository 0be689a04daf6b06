package InputParameters

import (
	"fmt"
	"os"
	"strings"

	"github.com/ghodss/yaml"

	"github.com/notargets/gomesh/geometry3D"
)

// Parameters obtained from the YAML input file
type MeshParameters struct {
	Title            string     `json:"Title"`
	Subdomains       int        `json:"Subdomains"`       // numberOfSubdomains, also the MPI rank count
	Cells            [3]float64 `json:"Cells"`            // dx dy dz written into blockMeshDict
	Upstream         float64    `json:"Upstream"`         // Domain length ahead of the surface, in characteristic lengths
	Downstream       float64    `json:"Downstream"`       // Wake length behind the surface
	Lateral          float64    `json:"Lateral"`          // Clearance on the Y and Z sides
	RefinementMargin float64    `json:"RefinementMargin"` // Absolute padding of the refinementBox around the surface
	ParallelMesh     bool       `json:"ParallelMesh"`
	ParallelSolver   bool       `json:"ParallelSolver"`
	RunSolver        bool       `json:"RunSolver"`
	Solver           string     `json:"Solver"` // Overrides the controlDict application when set
}

// ghodss/yaml converts YAML to JSON before decoding, hence the json tags

func NewMeshParameters() *MeshParameters {
	ext := geometry3D.DefaultDomainExtents()
	return &MeshParameters{
		Title:            "gomesh case",
		Subdomains:       4,
		Cells:            [3]float64{0.35, 0.35, 1},
		Upstream:         ext.Upstream,
		Downstream:       ext.Downstream,
		Lateral:          ext.Lateral,
		RefinementMargin: 2,
		RunSolver:        true,
	}
}

// Parse overlays the YAML document on the receiver; absent keys keep their value
func (mp *MeshParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, mp)
}

// ReadMeshParameters returns the defaults overlaid with the file contents
func ReadMeshParameters(filename string) (mp *MeshParameters, err error) {
	var data []byte
	mp = NewMeshParameters()
	if filename == "" {
		return
	}
	if data, err = os.ReadFile(filename); err != nil {
		return nil, err
	}
	if err = mp.Parse(data); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}
	return
}

func (mp *MeshParameters) DomainExtents() geometry3D.DomainExtents {
	return geometry3D.DomainExtents{
		Upstream:   mp.Upstream,
		Downstream: mp.Downstream,
		Lateral:    mp.Lateral,
	}
}

func (mp *MeshParameters) Validate() error {
	var errs []string
	if mp.Subdomains < 1 {
		errs = append(errs, fmt.Sprintf("Subdomains must be at least 1, have %d", mp.Subdomains))
	}
	for i, c := range mp.Cells {
		if c <= 0 {
			errs = append(errs, fmt.Sprintf("Cells[%d] must be positive, have %g", i, c))
		}
	}
	// A zero extent puts the domain boundary on the surface box, and with it
	// the locationInMesh point
	for _, ext := range []struct {
		name string
		val  float64
	}{{"Upstream", mp.Upstream}, {"Downstream", mp.Downstream}, {"Lateral", mp.Lateral}} {
		if ext.val <= 0 {
			errs = append(errs, fmt.Sprintf("domain extents: %s must be positive, have %g", ext.name, ext.val))
		}
	}
	if mp.RefinementMargin < 0 {
		errs = append(errs, "RefinementMargin must not be negative")
	}
	if len(errs) != 0 {
		return fmt.Errorf("invalid mesh parameters: %s", strings.Join(errs, "; "))
	}
	return nil
}

func (mp *MeshParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", mp.Title)
	fmt.Printf("[%d]\t\t\t\t= Subdomains\n", mp.Subdomains)
	fmt.Printf("[%8.5f %8.5f %8.5f]\t= Cells\n", mp.Cells[0], mp.Cells[1], mp.Cells[2])
	fmt.Printf("%8.5f\t\t= Upstream\n", mp.Upstream)
	fmt.Printf("%8.5f\t\t= Downstream\n", mp.Downstream)
	fmt.Printf("%8.5f\t\t= Lateral\n", mp.Lateral)
	fmt.Printf("%8.5f\t\t= RefinementMargin\n", mp.RefinementMargin)
	fmt.Printf("[%v]\t\t\t= ParallelMesh\n", mp.ParallelMesh)
	fmt.Printf("[%v]\t\t\t= ParallelSolver\n", mp.ParallelSolver)
	fmt.Printf("[%v]\t\t\t= RunSolver\n", mp.RunSolver)
	if mp.Solver != "" {
		fmt.Printf("[%s]\t\t= Solver\n", mp.Solver)
	}
}
