package xmlschema

// TargetNamespace is the namespace of the Lists web service. Fragments cut
// from a GetList response inherit it.
const TargetNamespace = "http://schemas.microsoft.com/sharepoint/soap/"

// Unbounded marks a particle with no upper occurrence limit.
const Unbounded = -1

// ContentKind describes what character data an element may carry.
type ContentKind int

const (
	// ContentElementOnly allows child elements and whitespace only.
	ContentElementOnly ContentKind = iota
	// ContentString allows any text and no child elements.
	ContentString
	// ContentInteger allows an integer literal and no child elements.
	ContentInteger
)

// SimpleType is the value space of an attribute.
type SimpleType int

const (
	TypeString SimpleType = iota
	TypeInteger
)

// AttributeDecl declares one attribute of an element.
type AttributeDecl struct {
	Name     string
	Type     SimpleType
	Required bool
}

// Particle is one entry of an element's child sequence.
type Particle struct {
	Element   *ElementDecl
	MinOccurs int
	MaxOccurs int
}

// ElementDecl declares an element: its attributes, child sequence and content.
type ElementDecl struct {
	Name       string
	Attributes []AttributeDecl
	Sequence   []Particle
	Content    ContentKind
}

func (d *ElementDecl) attribute(name string) (AttributeDecl, bool) {
	for _, a := range d.Attributes {
		if a.Name == name {
			return a, true
		}
	}
	return AttributeDecl{}, false
}

// ChoiceDecl is a single CHOICE display string.
var ChoiceDecl = &ElementDecl{
	Name:    "CHOICE",
	Content: ContentString,
}

// ChoicesDecl is the CHOICES element: any number of CHOICE children.
var ChoicesDecl = &ElementDecl{
	Name: "CHOICES",
	Sequence: []Particle{
		{Element: ChoiceDecl, MinOccurs: 0, MaxOccurs: Unbounded},
	},
	Content: ContentElementOnly,
}

// MappingDecl is a single MAPPING: integer Value attribute, display string content.
var MappingDecl = &ElementDecl{
	Name: "MAPPING",
	Attributes: []AttributeDecl{
		{Name: "Value", Type: TypeInteger, Required: true},
	},
	Content: ContentString,
}

// MappingsDecl is the MAPPINGS element: any number of MAPPING children.
var MappingsDecl = &ElementDecl{
	Name: "MAPPINGS",
	Sequence: []Particle{
		{Element: MappingDecl, MinOccurs: 0, MaxOccurs: Unbounded},
	},
	Content: ContentElementOnly,
}
