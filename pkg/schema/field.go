package schema

import "strconv"

// FieldDefinition is the metadata of one list column as returned by GetList.
type FieldDefinition struct {
	Name        string       `xml:"Name,attr" yaml:"name"`
	ID          string       `xml:"ID,attr" yaml:"id"`
	Type        string       `xml:"Type,attr" yaml:"type"`
	DisplayName string       `xml:"DisplayName,attr,omitempty" yaml:"display_name,omitempty"`
	Required    string       `xml:"Required,attr,omitempty" yaml:"required,omitempty"`
	Choices     *ChoiceList  `xml:"CHOICES" yaml:"choices,omitempty"`
	Mappings    *MappingList `xml:"MAPPINGS" yaml:"mappings,omitempty"`
}

// ChoiceList is the CHOICES element. A nil *ChoiceList means the element was absent.
type ChoiceList struct {
	Items []ChoiceItem `xml:"CHOICE" yaml:"items"`
}

// ChoiceItem is a single CHOICE display string.
type ChoiceItem struct {
	Text string `xml:",chardata" yaml:"text"`
}

// MappingList is the MAPPINGS element. A nil *MappingList means the element was absent.
type MappingList struct {
	Items []MappingItem `xml:"MAPPING" yaml:"items"`
}

// MappingItem associates the integer token Value with a display string.
type MappingItem struct {
	Value string `xml:"Value,attr" yaml:"value"`
	Text  string `xml:",chardata" yaml:"text"`
}

// Len returns the number of choices; zero for an absent list.
func (c *ChoiceList) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Items)
}

// Len returns the number of mappings; zero for an absent list.
func (m *MappingList) Len() int {
	if m == nil {
		return 0
	}
	return len(m.Items)
}

// NewChoiceList builds a CHOICES list from display strings.
func NewChoiceList(texts ...string) *ChoiceList {
	items := make([]ChoiceItem, 0, len(texts))
	for _, t := range texts {
		items = append(items, ChoiceItem{Text: t})
	}
	return &ChoiceList{Items: items}
}

// NewMappingList builds a MAPPINGS list, numbering the texts from 1.
func NewMappingList(texts ...string) *MappingList {
	items := make([]MappingItem, 0, len(texts))
	for i, t := range texts {
		items = append(items, MappingItem{Value: strconv.Itoa(i + 1), Text: t})
	}
	return &MappingList{Items: items}
}

