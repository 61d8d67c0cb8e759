package hcl

import (
	"github.com/hashicorp/hcl/v2"
)

// fileRoot decodes all top-level blocks of one file. Any other block or
// attribute is a decode error.
type fileRoot struct {
	Nodes       []*nodeBlock     `hcl:"node,block"`
	Environment []*attributeBody `hcl:"environment,block"`
}

// nodeBlock is a `node "name" "identifier"` block.
type nodeBlock struct {
	Name             string         `hcl:"name,label"`
	Identifier       string         `hcl:"identifier,label"`
	Constants        *attributeBody `hcl:"constants,block"`
	ExternallyLinked []string       `hcl:"externally_linked,optional"`
	Links            []*linkBlock   `hcl:"link,block"`
}

// linkBlock connects an output of the enclosing node to an input of the
// node named by Target.
type linkBlock struct {
	Output string `hcl:"output"`
	Target string `hcl:"target"`
	Input  string `hcl:"input"`
}

// attributeBody is a block holding free-form attributes.
type attributeBody struct {
	Body hcl.Body `hcl:",remain"`
}
