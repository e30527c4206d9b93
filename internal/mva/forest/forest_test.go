package forest_test

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/phomva/internal/mva/forest"
	. "github.com/smartystreets/goconvey/convey"
)

const twoTreeForest = `
method: BDTG
variables: [a, b]
initial_response: 0.1
trees:
  # a > 0.5 ? (b > 1 ? 0.3 : 0.2) : -0.4
  - cut_indices: [0, 1]
    cut_vals: [0.5, 1.0]
    left_indices: [-2, -1]
    right_indices: [1, 0]
    responses: [0.3, 0.2, -0.4]
  # stump
  - responses: [0.05]
`

func TestForestResponse(t *testing.T) {
	Convey("Given a two-tree forest", t, func() {
		f, err := forest.Parse([]byte(twoTreeForest))
		So(err, ShouldBeNil)
		So(f.Inputs(), ShouldResemble, []string{"a", "b"})
		So(f.Method, ShouldEqual, "BDTG")

		Convey("When a is below the first cut", func() {
			So(f.Response([]float64{0.2, 5}), ShouldAlmostEqual, 0.1-0.4+0.05, 1e-12)
		})

		Convey("When a is exactly on the cut it goes left", func() {
			So(f.Response([]float64{0.5, 5}), ShouldAlmostEqual, 0.1-0.4+0.05, 1e-12)
		})

		Convey("When a and b are above their cuts", func() {
			So(f.Response([]float64{0.9, 2}), ShouldAlmostEqual, 0.1+0.3+0.05, 1e-12)
		})

		Convey("When a is above and b below", func() {
			So(f.Response([]float64{0.9, 0.5}), ShouldAlmostEqual, 0.1+0.2+0.05, 1e-12)
		})

		Convey("Then Evaluate applies the classifier transform", func() {
			r := f.Response([]float64{0.9, 2})
			want := 2.0/(1.0+math.Exp(-2.0*r)) - 1
			got := f.Evaluate([]float64{0.9, 2})
			So(got, ShouldAlmostEqual, want, 1e-12)
			So(got, ShouldAlmostEqual, math.Tanh(r), 1e-12)
			So(got, ShouldBeBetween, -1, 1)
		})
	})
}

func TestForestValidation(t *testing.T) {
	Convey("Given malformed forests", t, func() {
		Convey("When no variables are declared", func() {
			_, err := forest.Parse([]byte("trees: [{responses: [1]}]"))
			So(errors.Is(err, forest.ErrMalformed), ShouldBeTrue)
		})

		Convey("When a node cuts on an undeclared variable", func() {
			_, err := forest.Parse([]byte(`
variables: [a]
trees:
  - cut_indices: [3]
    cut_vals: [0]
    left_indices: [0]
    right_indices: [-1]
    responses: [1, 2]
`))
			So(errors.Is(err, forest.ErrMalformed), ShouldBeTrue)
		})

		Convey("When a node points backwards", func() {
			_, err := forest.Parse([]byte(`
variables: [a]
trees:
  - cut_indices: [0, 0]
    cut_vals: [0, 1]
    left_indices: [1, 1]
    right_indices: [-1, 0]
    responses: [1, 2]
`))
			So(errors.Is(err, forest.ErrMalformed), ShouldBeTrue)
		})

		Convey("When a leaf index is out of range", func() {
			_, err := forest.Parse([]byte(`
variables: [a]
trees:
  - cut_indices: [0]
    cut_vals: [0]
    left_indices: [-5]
    right_indices: [0]
    responses: [1]
`))
			So(errors.Is(err, forest.ErrMalformed), ShouldBeTrue)
		})

		Convey("When node arrays differ in length", func() {
			_, err := forest.Parse([]byte(`
variables: [a]
trees:
  - cut_indices: [0]
    cut_vals: []
    left_indices: [0]
    right_indices: [0]
    responses: [1]
`))
			So(errors.Is(err, forest.ErrMalformed), ShouldBeTrue)
		})

		Convey("When the document is not YAML", func() {
			_, err := forest.Parse([]byte("variables: [a"))
			So(errors.Is(err, forest.ErrMalformed), ShouldBeTrue)
		})
	})
}

func TestLoad(t *testing.T) {
	Convey("Given a weight file on disk", t, func() {
		path := filepath.Join(t.TempDir(), "EB1.yaml")
		So(os.WriteFile(path, []byte(twoTreeForest), 0o600), ShouldBeNil)

		Convey("When loading it", func() {
			f, err := forest.Load(path)
			So(err, ShouldBeNil)
			So(len(f.Trees), ShouldEqual, 2)
		})

		Convey("When the file does not exist", func() {
			_, err := forest.Load(filepath.Join(t.TempDir(), "missing.yaml"))
			So(errors.Is(err, forest.ErrLoad), ShouldBeTrue)
		})
	})
}
