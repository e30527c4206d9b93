package category_test

import (
	"math"
	"testing"

	"github.com/okian/phomva/internal/domain/category"
	. "github.com/smartystreets/goconvey/convey"
)

func TestClassify(t *testing.T) {
	Convey("Given supercluster pseudorapidities", t, func() {
		Convey("When inside the central barrel", func() {
			So(category.Classify(0), ShouldEqual, category.EB1)
			So(category.Classify(0.5), ShouldEqual, category.EB1)
			So(category.Classify(-0.79), ShouldEqual, category.EB1)
		})

		Convey("When on or past the 0.8 boundary", func() {
			So(category.Classify(0.8), ShouldEqual, category.EB2)
			So(category.Classify(-0.8), ShouldEqual, category.EB2)
			So(category.Classify(1.2), ShouldEqual, category.EB2)
			So(category.Classify(1.4789), ShouldEqual, category.EB2)
		})

		Convey("When on or past the barrel/endcap split", func() {
			So(category.Classify(1.479), ShouldEqual, category.EE)
			So(category.Classify(-2.0), ShouldEqual, category.EE)
			So(category.Classify(2.5), ShouldEqual, category.EE)
			So(category.Classify(math.Inf(1)), ShouldEqual, category.EE)
		})

		Convey("When eta is NaN", func() {
			So(category.Classify(math.NaN()), ShouldEqual, category.Undefined)
		})

		Convey("Then classification is deterministic", func() {
			for _, eta := range []float64{-3, -1.479, -0.8, 0, 0.3, 0.8, 1.0, 1.479, 3} {
				So(category.Classify(eta), ShouldEqual, category.Classify(eta))
				So(category.Classify(eta).Valid(), ShouldBeTrue)
			}
		})
	})
}

func TestIsEndcap(t *testing.T) {
	Convey("Given every category value", t, func() {
		So(category.IsEndcap(category.EB1), ShouldBeFalse)
		So(category.IsEndcap(category.EB2), ShouldBeFalse)
		So(category.IsEndcap(category.EE), ShouldBeTrue)
		So(category.IsEndcap(category.Undefined), ShouldBeFalse)
	})
}

func TestCategories(t *testing.T) {
	Convey("Given the enumeration", t, func() {
		cats := category.Categories()

		Convey("Then it lists the real categories in order", func() {
			So(len(cats), ShouldEqual, category.Count)
			So(cats, ShouldResemble, []category.Category{category.EB1, category.EB2, category.EE})
			So(category.Undefined.Valid(), ShouldBeFalse)
			So(category.EE.String(), ShouldEqual, "EE")
			So(category.Undefined.String(), ShouldEqual, "UNDEFINED")
		})
	})
}
