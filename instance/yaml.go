package instance

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
	"q.log/cgcut/model"
)

// yamlProblem is the document layout:
//
//	names: [x, y]
//	maximize: [3, 5]
//	constraints:
//	  - coefficients: [1, 0]
//	    rhs: 4
//	integer: [x, y]
type yamlProblem struct {
	Names       []string         `yaml:"names"`
	Maximize    []float64        `yaml:"maximize"`
	Constraints []yamlConstraint `yaml:"constraints"`
	Integer     []string         `yaml:"integer"`
}

type yamlConstraint struct {
	Coefficients []float64 `yaml:"coefficients"`
	RHS          float64   `yaml:"rhs"`
}

// ReadYAML decodes a problem document. Variables without a name are
// called x1, x2, ...
func ReadYAML(r io.Reader) (*model.Problem, error) {
	var doc yamlProblem
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "decoding problem")
	}

	numCols := len(doc.Maximize)
	if numCols == 0 || len(doc.Constraints) == 0 {
		return nil, errors.WithStack(ErrEmptyProblem)
	}
	if len(doc.Names) != 0 && len(doc.Names) != numCols {
		return nil, errors.Wrapf(model.ErrDimensionMismatch, "%d names for %d variables", len(doc.Names), numCols)
	}

	p := model.NewProblem(len(doc.Constraints), numCols)
	if err := p.SetC(doc.Maximize); err != nil {
		return nil, err
	}

	aVec := make([]float64, 0, numCols*len(doc.Constraints))
	bVec := make([]float64, 0, len(doc.Constraints))
	for i, c := range doc.Constraints {
		if len(c.Coefficients) != numCols {
			return nil, errors.Wrapf(model.ErrDimensionMismatch, "constraint %d has %d coefficients, want %d", i+1, len(c.Coefficients), numCols)
		}
		aVec = append(aVec, c.Coefficients...)
		bVec = append(bVec, c.RHS)
	}
	if err := p.SetA(aVec); err != nil {
		return nil, err
	}
	if err := p.SetB(bVec); err != nil {
		return nil, err
	}

	byName := make(map[string]int, numCols)
	for i, v := range p.V {
		if len(doc.Names) != 0 {
			v.Name = doc.Names[i]
		}
		byName[v.Name] = i
	}
	for _, name := range doc.Integer {
		i, ok := byName[name]
		if !ok {
			return nil, errors.Wrapf(ErrUnknownVariable, "integer variable %q", name)
		}
		p.V[i].Integer = true
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}

func ReadYAMLFile(path string) (*model.Problem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening problem")
	}
	defer f.Close()

	return ReadYAML(f)
}

// Load reads a problem in the given format, "mps" or "yaml". An empty
// format is taken from the file extension.
func Load(path, format string) (*model.Problem, error) {
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}

	switch format {
	case "mps":
		return NewReader(path).ConstructModelFromFile()
	case "yaml", "yml":
		return ReadYAMLFile(path)
	}

	return nil, errors.Wrapf(ErrUnknownFormat, "%q", format)
}
