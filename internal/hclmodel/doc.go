// Package hclmodel is the textual front-end: it parses HCL model files into
// model trees. Attributes become expression leaves, blocks become sub-models
// (a labelled block contributes its label as the key and records its type as
// the class), and top-level tuple attributes become sequence leaves. Source
// order is preserved exactly, because key order is processing order.
package hclmodel
