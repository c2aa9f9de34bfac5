package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Harshitk-cp/consensus/internal/domain"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func ValidFormat(f string) bool {
	switch Format(f) {
	case FormatText, FormatJSON, FormatYAML:
		return true
	}
	return false
}

// Write renders rep to w in the requested format.
func Write(w io.Writer, rep *domain.Report, format Format) error {
	switch format {
	case FormatText, "":
		return NewTextRenderer(w).WriteReport(rep)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rep); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
