// Package versions emits the tool version manifest that accompanies every
// assembly run: a YAML document keyed by process label, mapping each tool
// involved to the version that produced the output. Pipeline frameworks
// collate these files across steps into a single software provenance report.
package versions

import (
	"os"

	"github.com/goccy/go-yaml"

	"github.com/omicstation/mtxkit/pkg/constants"
	pkgerrors "github.com/omicstation/mtxkit/pkg/errors"
)

// Tool is one tool/version pair in the manifest.
type Tool struct {
	Name    string
	Version string
}

// File is a version manifest for one process. Tool order is preserved in the
// rendered document.
type File struct {
	Process string
	Tools   []Tool
}

// New builds a manifest for the given process label. An empty label falls
// back to the default assemble process name.
func New(process string, tools ...Tool) *File {
	if process == "" {
		process = constants.DefaultProcessLabel
	}
	return &File{Process: process, Tools: tools}
}

// YAML renders the manifest, tools in declaration order.
func (f *File) YAML() ([]byte, error) {
	entries := make(yaml.MapSlice, 0, len(f.Tools))
	for _, t := range f.Tools {
		entries = append(entries, yaml.MapItem{Key: t.Name, Value: t.Version})
	}
	doc := yaml.MapSlice{{Key: f.Process, Value: entries}}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, pkgerrors.NewConfigError("versions", "marshaling version manifest", err)
	}
	return out, nil
}

// WriteFile renders the manifest and writes it to path.
func (f *File) WriteFile(path string) error {
	data, err := f.YAML()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
		return pkgerrors.WrapIO("write", path, err)
	}
	return nil
}
