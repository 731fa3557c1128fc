package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vinay2231/Edututor-AI/internal/domain/model"
)

// Output formats.
const (
	formatYAML = "yaml"
	formatJSON = "json"
)

func addOutputFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", formatYAML, "Output format: yaml or json")
}

func writeOutput(cmd *cobra.Command, v any) error {
	format, _ := cmd.Flags().GetString("output")
	return encode(cmd.OutOrStdout(), format, v)
}

func encode(w io.Writer, format string, v any) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML, "":
		node, err := yamlNode(v)
		if err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(node); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// yamlNode renders v through its JSON tags so both formats share field names
// and order, then switches the tree to block style.
func yamlNode(v any) (*yaml.Node, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	blockStyle(&doc)
	return &doc, nil
}

func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}

// readVector decodes a subject-to-score YAML or JSON map. An empty path
// yields an empty vector.
func readVector(path string) (model.PerformanceVector, error) {
	v := model.PerformanceVector{}
	if path == "" {
		return v, nil
	}
	data, err := os.ReadFile(path) //nolint:gosec // operator-supplied path
	if err != nil {
		return nil, fmt.Errorf("read vector: %w", err)
	}
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("parse vector %s: %w", path, err)
	}
	return v, nil
}
