// Copyright © 2019 mg
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Package workspace persists the per-project state an interactive
// front-end keeps between sessions. The analysis core writes the initial
// document; only the front-end reads it back.
package workspace

import (
	"encoding/json"
	"io/ioutil"

	"github.com/master-g/nesrev/pkg/analysis"
)

// VariableInfo is the editable view of one analyzed variable.
type VariableInfo struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// FunctionInfo is the editable view of one analyzed function.
type FunctionInfo struct {
	Name        string   `json:"name"`
	ReturnType  string   `json:"return_type"`
	Parameters  []string `json:"parameters"`
	Description string   `json:"description"`
}

// Document is the persisted workspace state.
type Document struct {
	CurrentFile    string                  `json:"current_file"`
	RecentFiles    []string                `json:"recent_files"`
	IsDisassembled bool                    `json:"is_disassembled"`
	IsDecompiled   bool                    `json:"is_decompiled"`
	Variables      map[string]VariableInfo `json:"variables"`
	Functions      map[string]FunctionInfo `json:"functions"`
}

// FromReport seeds a workspace document from an analysis report.
func FromReport(report *analysis.Report, file string) *Document {
	doc := &Document{
		CurrentFile:    file,
		RecentFiles:    []string{file},
		IsDisassembled: true,
		IsDecompiled:   true,
		Variables:      make(map[string]VariableInfo),
		Functions:      make(map[string]FunctionInfo),
	}
	for _, v := range report.SortedVariables() {
		doc.Variables[v.Name] = VariableInfo{
			Name: v.Name,
			Type: v.Type.String(),
		}
	}
	for _, fn := range report.SortedFunctions() {
		doc.Functions[fn.Name] = FunctionInfo{
			Name:       fn.Name,
			ReturnType: "void",
			Parameters: []string{},
		}
	}
	return doc
}

// Save writes the document as indented JSON.
func (d *Document) Save(path string) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return err
	}
	return ioutil.WriteFile(path, data, 0644)
}

// Load reads a document back from disk.
func Load(path string) (*Document, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc := &Document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, err
	}
	return doc, nil
}
