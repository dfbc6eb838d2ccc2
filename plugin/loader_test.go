// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package plugin

import (
	"fmt"
	"reflect"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type shape interface{ Area() float64 }

type square struct{ side float64 }

func (s square) Area() float64 { return s.side * s.side }

type circle struct{ r float64 }

func (c *circle) Area() float64 { return 3 * c.r * c.r }

type base struct{}

type derived struct{ base }

type unrelated struct{}

func testProviders() []Provider {
	return []Provider{
		func() Module {
			return Module{
				Name:     "shapes",
				Location: "plugins/shapes",
				Classes: []*Class{
					{Name: "Square", Type: reflect.TypeOf(square{}), New: func() any { return square{side: 1} }},
					{Name: "Circle", Type: reflect.TypeOf(circle{}), New: func() any { return &circle{r: 1} }},
					{Name: "Derived", Module: "bases", Type: reflect.TypeOf(derived{})},
					{Name: "Unrelated", Type: reflect.TypeOf(unrelated{})},
				},
			}
		},
		func() Module {
			return Module{
				Name:     "shapes",
				Location: "contrib/shapes",
				Classes: []*Class{
					{Name: "Circle", Type: reflect.TypeOf(circle{})},
				},
			}
		},
		func() Module {
			return Module{
				Name:     "nested",
				Location: "plugins/more/nested",
			}
		},
	}
}

var _ = Describe("plugin loader", func() {

	It("resolves dotted names without search paths", func() {
		l := newLoader(testProviders)
		m, ok := l.Module("plugins.more.nested")
		Expect(ok).To(BeTrue())
		Expect(m.Name).To(Equal("nested"))
		Expect(l.Cache().Aliases()).To(ConsistOf("plugins.more.nested"))
	})

	It("resolves along the search paths in order", func() {
		l := newLoader(testProviders, "contrib", "plugins")
		m, ok := l.Module("shapes")
		Expect(ok).To(BeTrue())
		Expect(m.Location).To(Equal("contrib/shapes"))

		l = newLoader(testProviders)
		l.AddPaths([]string{"nowhere", "plugins/"})
		Expect(l.Paths()).To(Equal([]string{"nowhere", "plugins"}))
		m, ok = l.Module("shapes")
		Expect(ok).To(BeTrue())
		Expect(m.Location).To(Equal("plugins/shapes"))

		m, ok = l.Module("more.nested")
		Expect(ok).To(BeTrue())
		Expect(m.Name).To(Equal("nested"))
	})

	It("returns not found for unknown modules", func() {
		l := newLoader(testProviders, "plugins")
		m, ok := l.Module("triangles")
		Expect(ok).To(BeFalse())
		Expect(m).To(BeNil())
		Expect(l.Cache().IsEmpty()).To(BeTrue())

		m, ok = l.Module("")
		Expect(ok).To(BeFalse())
		Expect(m).To(BeNil())
	})

	It("caches modules under aliases and replaces on reload", func() {
		l := newLoader(testProviders)
		m1, ok := l.ModuleAs("plugins.shapes", "s")
		Expect(ok).To(BeTrue())
		m2, ok := l.ModuleAs("contrib.shapes", "s")
		Expect(ok).To(BeTrue())
		Expect(m2).NotTo(BeIdenticalTo(m1))
		cached, ok := l.Cache().Module("s")
		Expect(ok).To(BeTrue())
		Expect(cached).To(BeIdenticalTo(m2))
		_, ok = l.Cache().Class("s", "Square")
		Expect(ok).To(BeFalse())
		_, ok = l.Cache().Class("s", "Circle")
		Expect(ok).To(BeTrue())

		l.Cache().Clear()
		Expect(l.Cache().IsEmpty()).To(BeTrue())
	})

	It("lists all available modules", func() {
		l := newLoader(testProviders)
		Expect(l.Available()).To(Equal([]string{
			"plugins/shapes", "contrib/shapes", "plugins/more/nested"}))
	})

	It("lists classes in order, filtering by base and skipping re-exported ones", func() {
		l := newLoader(testProviders, "plugins")
		m, ok := l.Module("shapes")
		Expect(ok).To(BeTrue())

		names := func(classes []*Class) []string {
			n := []string{}
			for _, c := range classes {
				n = append(n, c.Name)
			}
			return n
		}
		Expect(names(l.Classes(m, nil, false))).To(Equal([]string{"Square", "Circle", "Unrelated"}))
		Expect(names(l.Classes(m, nil, true))).To(Equal([]string{"Square", "Circle", "Derived", "Unrelated"}))
		Expect(names(ClassesOf[shape](l, m, false))).To(Equal([]string{"Square", "Circle"}))
		Expect(names(ClassesOf[base](l, m, true))).To(Equal([]string{"Derived"}))
		Expect(names(ClassesOf[base](l, m, false))).To(BeEmpty())
		Expect(l.Classes(nil, nil, true)).To(BeNil())
	})

	It("finds classes by name", func() {
		l := newLoader(testProviders, "plugins")
		m, _ := l.Module("shapes")
		c, ok := l.Find(m, "Circle")
		Expect(ok).To(BeTrue())
		Expect(c.TypeName()).To(Equal("plugin.circle"))
		Expect(c.New().(shape).Area()).To(Equal(3.0))

		c, ok = l.Find(m, "Triangle")
		Expect(ok).To(BeFalse())
		Expect(c).To(BeNil())
	})

	It("loads classes", func() {
		l := newLoader(testProviders, "plugins")
		c, ok := l.Load("shapes", "Square")
		Expect(ok).To(BeTrue())
		Expect(fmt.Sprint(c.New().(shape).Area())).To(Equal("1"))

		_, ok = l.Load("shapes", "Triangle")
		Expect(ok).To(BeFalse())
		_, ok = l.Load("triangles", "Triangle")
		Expect(ok).To(BeFalse())
	})

})
