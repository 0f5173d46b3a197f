package graph

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/matzehuels/visualencer/pkg/errors"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("typeid", func(fl validator.FieldLevel) bool {
			return errors.ValidateTypeID(fl.Field().String()) == nil
		})
	})
	return validate
}

// Validate checks the structural integrity of a document:
//   - every node has a well-formed type id
//   - node ids are unique
//   - every parent reference names an existing node other than itself
//
// Semantic problems (unknown types, a child under the wrong root family,
// children attached to children) are not validation errors. The compiler
// tolerates them by omission and reports them as diagnostics.
func Validate(doc *Document) error {
	if doc == nil {
		return errors.New(errors.ErrCodeInvalidGraph, "document is nil")
	}

	if err := getValidator().Struct(doc); err != nil {
		var msgs []string
		if ve, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range ve {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q", fe.Namespace(), fe.Tag()))
			}
		} else {
			msgs = append(msgs, err.Error())
		}
		return errors.New(errors.ErrCodeInvalidGraph, "%s", strings.Join(msgs, "; "))
	}

	seen := make(map[string]int, len(doc.Nodes))
	for i, n := range doc.Nodes {
		if n.ID == "" {
			continue
		}
		if j, dup := seen[n.ID]; dup {
			return errors.New(errors.ErrCodeInvalidGraph, "duplicate node id %q (nodes %d and %d)", n.ID, j, i)
		}
		seen[n.ID] = i
	}

	for i, n := range doc.Nodes {
		if n.Parent == "" {
			continue
		}
		if n.Parent == n.ID {
			return errors.New(errors.ErrCodeInvalidGraph, "node %q is its own parent", n.ID)
		}
		if _, ok := seen[n.Parent]; !ok {
			return errors.New(errors.ErrCodeInvalidGraph, "node %d (%s) references missing parent %q", i, n.Type, n.Parent)
		}
	}
	return nil
}

// nodeIDSpace is the namespace for ids derived by AssignIDs.
var nodeIDSpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/matzehuels/visualencer/node"))

// AssignIDs gives every node without an id a name-based UUID and returns
// the number of ids assigned. The id is derived from the node's position
// and type, so the same document always receives the same ids and hashes
// identically. Existing ids and parent links are untouched.
func AssignIDs(doc *Document) int {
	taken := make(map[string]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		if n.ID != "" {
			taken[n.ID] = true
		}
	}

	n := 0
	for i := range doc.Nodes {
		if doc.Nodes[i].ID != "" {
			continue
		}
		for attempt := 0; ; attempt++ {
			id := uuid.NewSHA1(nodeIDSpace, fmt.Appendf(nil, "%d/%s/%d", i, doc.Nodes[i].Type, attempt)).String()
			if !taken[id] {
				doc.Nodes[i].ID = id
				taken[id] = true
				break
			}
		}
		n++
	}
	return n
}
