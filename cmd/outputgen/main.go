// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command outputgen generates the Int32x16x1 bindings of the output stages.
//
// Usage:
//
//	outputgen -output z_bindings.go -pkg output
//
// Or via go:generate:
//
//	//go:generate go run ../../../cmd/outputgen -output z_bindings.go
//
// Every stage gets a BindInt32x16 method. Stages listed with a hand-tuned
// kernel return it when the package's wideKernels switch is on and fall back
// to Decompose16 (or Decompose16Narrow) otherwise; the rest always decompose.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/template"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/tools/imports"
)

var (
	outputFile = flag.String("output", "z_bindings.go", "Output file")
	packageOut = flag.String("pkg", "output", "Output package name")
	noWide     = flag.Bool("no_wide", false, "Do not emit the hand-tuned kernel branches")
)

// stageDesc describes one stage. Name is written in words ("uniform rescale")
// and turned into Go identifiers by the casers.
type stageDesc struct {
	Name      string
	Narrowing bool
	Wide      bool
}

var stageTable = []stageDesc{
	{Name: "uniform rescale", Wide: true},
	{Name: "per channel rescale"},
	{Name: "fixed point rescale"},
	{Name: "saturating narrow", Narrowing: true, Wide: true},
	{Name: "bias add", Wide: true},
	{Name: "clamp", Wide: true},
	{Name: "tanh"},
}

// binding is the template view of a stageDesc.
type binding struct {
	Type      string // exported stage type, e.g. UniformRescale
	Receiver  string // receiver name, e.g. s
	Out       string // output fragment type
	Decompose string // fallback constructor
	Kernel    string // hand-tuned kernel constructor, empty when there is none
}

var (
	titleCaser = cases.Title(language.English)
	lowerCaser = cases.Lower(language.English)
)

// goName turns "uniform rescale" into "UniformRescale".
func goName(words string) string {
	return strings.ReplaceAll(titleCaser.String(words), " ", "")
}

func newBinding(s stageDesc, wide bool) binding {
	typ := goName(s.Name)
	b := binding{
		Type:      typ,
		Receiver:  lowerCaser.String(typ[:1]),
		Out:       "Int32x16x1",
		Decompose: "Decompose16",
	}
	if s.Narrowing {
		b.Out = "Uint8x16x1"
		b.Decompose = "Decompose16Narrow"
	}
	if s.Wide && wide {
		b.Kernel = "new" + typ + "Int32x16"
	}
	return b
}

var fileTemplate = template.Must(template.New("bindings").Parse(`// Code generated by outputgen. DO NOT EDIT.

package {{.Package}}

// WideOverrides lists the stages whose BindInt32x16 returns a hand-tuned
// kernel when WideKernels reports true.
var WideOverrides = []string{
{{- range .Bindings}}{{if .Kernel}}
	"{{.Type}}",
{{- end}}{{end}}
}
{{range .Bindings}}
{{- if .Kernel}}
// BindInt32x16 returns the hand-tuned sixteen-row kernel when wide kernels
// are enabled and {{.Decompose}} over BindInt32x4 otherwise.
func ({{.Receiver}} {{.Type}}) BindInt32x16() Evaluator[Int32x16x1, {{.Out}}] {
	if wideKernels {
		return {{.Kernel}}({{.Receiver}})
	}
	return {{.Decompose}}({{.Receiver}}.BindInt32x4())
}
{{else}}
// BindInt32x16 returns {{.Decompose}} over BindInt32x4.
func ({{.Receiver}} {{.Type}}) BindInt32x16() Evaluator[Int32x16x1, {{.Out}}] {
	return {{.Decompose}}({{.Receiver}}.BindInt32x4())
}
{{end}}
{{- end}}`))

// generate renders and formats the bindings file.
func generate(pkg string, wide bool) ([]byte, error) {
	data := struct {
		Package  string
		Bindings []binding
	}{Package: pkg}
	for _, s := range stageTable {
		data.Bindings = append(data.Bindings, newBinding(s, wide))
	}

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}
	src, err := imports.Process(*outputFile, buf.Bytes(), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return nil, fmt.Errorf("formatting generated code: %w\n%s", err, buf.Bytes())
	}
	return src, nil
}

func main() {
	flag.Parse()

	if *packageOut == "" {
		fmt.Fprintf(os.Stderr, "Error: -pkg must not be empty\n\n")
		flag.Usage()
		os.Exit(1)
	}

	src, err := generate(*packageOut, !*noWide)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*outputFile, src, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: writing %s: %v\n", *outputFile, err)
		os.Exit(1)
	}
	fmt.Printf("Generated: %s\n", *outputFile)
}
