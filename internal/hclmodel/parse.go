package hclmodel

import (
	"fmt"
	"os"
	"sort"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/vk/physim/internal/expr"
	"github.com/vk/physim/internal/fsutil"
	"github.com/vk/physim/internal/model"
	"github.com/zclconf/go-cty/cty"
)

// Parse decodes HCL source into a model tree. The filename is used in
// diagnostics only.
func Parse(filename string, src []byte) (*model.Node, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, diags)
	}
	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("%s: unexpected body type %T", filename, file.Body)
	}
	return bodyToNode(body)
}

// LoadFile parses one model file.
func LoadFile(path string) (*model.Node, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model file %s: %w", path, err)
	}
	return Parse(path, src)
}

// Load parses a model from a single .hcl file or from every .hcl file under
// a directory. Multiple files merge into one root node, visited in sorted
// path order; a key defined in two files is an error.
func Load(path string) (*model.Node, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat model path %s: %w", path, err)
	}
	if !info.IsDir() {
		return LoadFile(path)
	}

	files, err := fsutil.FindFilesByExtension(path, ".hcl")
	if err != nil {
		return nil, fmt.Errorf("failed to scan model directory %s: %w", path, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl model files under %s", path)
	}
	sort.Strings(files)

	root := model.NewNode()
	for _, file := range files {
		node, err := LoadFile(file)
		if err != nil {
			return nil, err
		}
		for _, key := range node.Keys() {
			if root.Has(key) {
				return nil, fmt.Errorf("%s: duplicate top-level entry %q", file, key)
			}
			v, _ := node.Get(key)
			root.Set(key, v)
		}
	}
	return root, nil
}

// bodyToNode converts one HCL body into a tree node, interleaving attributes
// and blocks by their source position so the node's key order matches the
// file.
func bodyToNode(body *hclsyntax.Body) (*model.Node, error) {
	type entry struct {
		start int
		attr  *hclsyntax.Attribute
		block *hclsyntax.Block
	}

	entries := make([]entry, 0, len(body.Attributes)+len(body.Blocks))
	for _, attr := range body.Attributes {
		entries = append(entries, entry{start: attr.NameRange.Start.Byte, attr: attr})
	}
	for _, block := range body.Blocks {
		entries = append(entries, entry{start: block.TypeRange.Start.Byte, block: block})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].start < entries[j].start })

	node := model.NewNode()
	for _, item := range entries {
		if item.attr != nil {
			value, err := attrValue(item.attr)
			if err != nil {
				return nil, err
			}
			node.Set(item.attr.Name, value)
			continue
		}

		block := item.block
		key := block.Type
		child, err := bodyToNode(block.Body)
		if err != nil {
			return nil, err
		}
		switch len(block.Labels) {
		case 0:
			// key stays the block type
		case 1:
			key = block.Labels[0]
			child.Set(model.KeyClass, cty.StringVal(block.Type))
		default:
			return nil, fmt.Errorf("%s: block %q may carry at most one label", block.DefRange(), block.Type)
		}
		if node.Has(key) {
			return nil, fmt.Errorf("%s: duplicate entry %q", block.DefRange(), key)
		}
		node.Set(key, child)
	}
	return node, nil
}

// attrValue converts an attribute's expression into an entry value. A
// top-level tuple literal becomes a sequence-of-expressions leaf, which the
// evaluator treats differently from a single expression.
func attrValue(attr *hclsyntax.Attribute) (model.Value, error) {
	if tuple, ok := attr.Expr.(*hclsyntax.TupleConsExpr); ok {
		seq := make([]expr.Expr, len(tuple.Exprs))
		for i, el := range tuple.Exprs {
			elem, err := convertExpr(el)
			if err != nil {
				return nil, err
			}
			seq[i] = elem
		}
		return seq, nil
	}
	e, err := convertExpr(attr.Expr)
	if err != nil {
		return nil, err
	}
	return e, nil
}
