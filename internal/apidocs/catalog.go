// Package apidocs exposes the backend's OpenAPI description so the console
// can document the endpoints it drives. A copy of the document is embedded
// in the binary; a newer one can be loaded from disk to document a backend
// that is ahead of this build.
package apidocs

import (
	"context"
	_ "embed"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/authway/adminctl/internal/errors"
)

//go:embed openapi.yaml
var embeddedSpec []byte

// Operation is one documented endpoint.
type Operation struct {
	Method      string
	Path        string
	Summary     string
	Tag         string
	OperationID string
	// RequiresAuth is true when the endpoint needs a bearer token.
	RequiresAuth bool
}

// Catalog is a parsed, validated OpenAPI document.
type Catalog struct {
	doc *openapi3.T
}

// Load parses the embedded OpenAPI document.
func Load() (*Catalog, error) {
	return load(embeddedSpec, "embedded openapi.yaml")
}

// LoadFile parses an OpenAPI document from disk, for documenting a backend
// newer than this build.
func LoadFile(path string) (*Catalog, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDocsLoadFailed, "failed to load API document: "+path, err)
	}
	return validate(doc, path)
}

func load(data []byte, source string) (*Catalog, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDocsLoadFailed, "failed to load API document", err)
	}
	return validate(doc, source)
}

func validate(doc *openapi3.T, source string) (*Catalog, error) {
	if err := doc.Validate(context.Background()); err != nil {
		return nil, errors.Wrap(errors.ErrCodeDocsInvalid, "invalid API document: "+source, err)
	}
	return &Catalog{doc: doc}, nil
}

// Title returns the API title and version from the document's info block.
func (c *Catalog) Title() string {
	if c.doc.Info == nil {
		return ""
	}
	return c.doc.Info.Title + " v" + c.doc.Info.Version
}

// Operations returns every documented endpoint, sorted by path then method.
func (c *Catalog) Operations() []Operation {
	var ops []Operation
	for path, item := range c.doc.Paths.Map() {
		for method, op := range item.Operations() {
			ops = append(ops, Operation{
				Method:       method,
				Path:         path,
				Summary:      op.Summary,
				Tag:          firstTag(op),
				OperationID:  op.OperationID,
				RequiresAuth: requiresAuth(op),
			})
		}
	}
	sort.Slice(ops, func(i, j int) bool {
		if ops[i].Path != ops[j].Path {
			return ops[i].Path < ops[j].Path
		}
		return ops[i].Method < ops[j].Method
	})
	return ops
}

// ByTag groups operations by their first tag, preserving the document's tag
// order. Untagged operations land under "other".
func (c *Catalog) ByTag() ([]string, map[string][]Operation) {
	groups := make(map[string][]Operation)
	for _, op := range c.Operations() {
		tag := op.Tag
		if tag == "" {
			tag = "other"
		}
		groups[tag] = append(groups[tag], op)
	}

	var order []string
	seen := make(map[string]bool)
	for _, tag := range c.doc.Tags {
		if _, ok := groups[tag.Name]; ok {
			order = append(order, tag.Name)
			seen[tag.Name] = true
		}
	}
	var rest []string
	for tag := range groups {
		if !seen[tag] {
			rest = append(rest, tag)
		}
	}
	sort.Strings(rest)
	return append(order, rest...), groups
}

// Find returns the operation for a method and path, matching path parameters
// literally ("/admin/users/{user_id}").
func (c *Catalog) Find(method, path string) (Operation, bool) {
	method = strings.ToUpper(method)
	for _, op := range c.Operations() {
		if op.Method == method && op.Path == path {
			return op, true
		}
	}
	return Operation{}, false
}

func firstTag(op *openapi3.Operation) string {
	if len(op.Tags) == 0 {
		return ""
	}
	return op.Tags[0]
}

func requiresAuth(op *openapi3.Operation) bool {
	if op.Security == nil {
		return false
	}
	for _, requirement := range *op.Security {
		if len(requirement) > 0 {
			return true
		}
	}
	return false
}
