// Package xmlschema validates small XML fragments against declared element models.
//
// Only the constructs needed for the CHOICES and MAPPINGS fragments of a GetList
// response are supported: sequences of child elements with occurrence bounds,
// typed attributes and simple text content.
package xmlschema

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// Outcome is the result of validating one fragment.
type Outcome struct {
	Errors []string
}

// Valid reports whether validation produced no diagnostics.
func (o Outcome) Valid() bool {
	return len(o.Errors) == 0
}

// String joins the diagnostics into a single message.
func (o Outcome) String() string {
	return strings.Join(o.Errors, "; ")
}

func (o *Outcome) addf(format string, args ...any) {
	o.Errors = append(o.Errors, fmt.Sprintf(format, args...))
}

// Validator validates fragments whose root element has a registered declaration.
// Elements must be unqualified or in the Lists web service namespace.
type Validator struct {
	roots map[string]*ElementDecl
}

// NewValidator registers decls as the allowed root elements.
func NewValidator(decls ...*ElementDecl) *Validator {
	v := &Validator{roots: make(map[string]*ElementDecl, len(decls))}
	for _, d := range decls {
		v.roots[d.Name] = d
	}
	return v
}

// namespaceOK reports whether el is unqualified or in TargetNamespace. A
// prefix without a binding is rejected.
func namespaceOK(el *etree.Element) bool {
	uri := el.NamespaceURI()
	if uri == "" {
		return el.Space == ""
	}
	return uri == TargetNamespace
}

// NewListFieldValidator returns a validator for CHOICES and MAPPINGS fragments.
func NewListFieldValidator() *Validator {
	return NewValidator(ChoicesDecl, MappingsDecl)
}

// Validate parses fragment and checks it against the declaration of its root element.
func (v *Validator) Validate(fragment string) Outcome {
	var o Outcome

	doc := etree.NewDocument()
	if err := doc.ReadFromString(fragment); err != nil {
		o.addf("malformed XML: %v", err)
		return o
	}

	root := doc.Root()
	if root == nil {
		o.addf("fragment has no root element")
		return o
	}

	if !namespaceOK(root) {
		o.addf("root element <%s> is in namespace %q, expected %q", root.FullTag(), root.NamespaceURI(), TargetNamespace)
		return o
	}

	decl, ok := v.roots[root.Tag]
	if !ok {
		o.addf("no schema declared for root element <%s>", root.Tag)
		return o
	}

	v.validateElement(decl, root, "/"+root.Tag, &o)
	return o
}

func (v *Validator) validateElement(decl *ElementDecl, el *etree.Element, path string, o *Outcome) {
	seen := make(map[string]bool, len(el.Attr))
	for _, a := range el.Attr {
		if a.Space == "xmlns" || (a.Space == "" && a.Key == "xmlns") {
			continue
		}
		ad, ok := decl.attribute(a.Key)
		if !ok || a.Space != "" {
			o.addf("%s: attribute %q is not declared", path, a.FullKey())
			continue
		}
		seen[a.Key] = true
		if ad.Type == TypeInteger && !isInteger(a.Value) {
			o.addf("%s: attribute %q value %q is not an integer", path, a.Key, a.Value)
		}
	}
	for _, ad := range decl.Attributes {
		if ad.Required && !seen[ad.Name] {
			o.addf("%s: missing required attribute %q", path, ad.Name)
		}
	}

	children := el.ChildElements()
	switch decl.Content {
	case ContentElementOnly:
		for _, tok := range el.Child {
			if cd, ok := tok.(*etree.CharData); ok {
				if text := strings.TrimSpace(cd.Data); text != "" {
					o.addf("%s: unexpected text %q", path, text)
				}
			}
		}
		v.validateSequence(decl, children, path, o)
	case ContentString, ContentInteger:
		for _, c := range children {
			o.addf("%s: unexpected element <%s>", path, c.Tag)
		}
		if decl.Content == ContentInteger {
			if text := strings.TrimSpace(el.Text()); !isInteger(text) {
				o.addf("%s: content %q is not an integer", path, text)
			}
		}
	}
}

// validateSequence matches children against the declared particles in order.
// A child that matches no remaining particle is reported and skipped without
// consuming the current particle.
func (v *Validator) validateSequence(decl *ElementDecl, children []*etree.Element, path string, o *Outcome) {
	i, count := 0, 0
	for _, child := range children {
		if !namespaceOK(child) {
			o.addf("%s: element <%s> is in namespace %q, expected %q", path, child.FullTag(), child.NamespaceURI(), TargetNamespace)
			continue
		}
		j := i
		for j < len(decl.Sequence) && decl.Sequence[j].Element.Name != child.Tag {
			j++
		}
		if j == len(decl.Sequence) {
			o.addf("%s: unexpected element <%s>", path, child.Tag)
			continue
		}
		for ; i < j; i++ {
			checkMin(decl.Sequence[i], count, path, o)
			count = 0
		}

		count++
		p := decl.Sequence[i]
		if p.MaxOccurs != Unbounded && count == p.MaxOccurs+1 {
			o.addf("%s: element <%s> occurs more than %d times", path, child.Tag, p.MaxOccurs)
		}
		v.validateElement(p.Element, child, fmt.Sprintf("%s/%s[%d]", path, child.Tag, count), o)
	}
	for ; i < len(decl.Sequence); i++ {
		checkMin(decl.Sequence[i], count, path, o)
		count = 0
	}
}

func checkMin(p Particle, count int, path string, o *Outcome) {
	if count < p.MinOccurs {
		o.addf("%s: element <%s> occurs %d times, expected at least %d", path, p.Element.Name, count, p.MinOccurs)
	}
}

// isInteger reports whether s is an xs:integer literal after whitespace
// collapsing.
func isInteger(s string) bool {
	_, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return err == nil
}
