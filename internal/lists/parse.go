package lists

import (
	"bytes"
	"encoding/xml"
	"strconv"
	"strings"

	"outsps/pkg/schema"
)

// ParseGetListResponse decodes a GetList SOAP response. The returned schema
// keeps raw as-is so fragment checks can work on the original document.
func ParseGetListResponse(raw []byte) (*schema.ListSchema, error) {
	var env getListEnvelope
	if err := xml.Unmarshal(raw, &env); err != nil {
		return nil, NewParseError(OpGetList, "response is not a SOAP envelope", err)
	}
	if env.Body.Fault != nil {
		return nil, NewFaultError(OpGetList, 0, env.Body.Fault)
	}
	if env.Body.Response == nil || env.Body.Response.Result == nil {
		return nil, NewParseError(OpGetList, "response has no GetListResult", nil)
	}
	list := env.Body.Response.Result.List
	if list == nil {
		return nil, NewParseError(OpGetList, "GetListResult has no List element", nil)
	}

	return &schema.ListSchema{
		ID:       list.ID,
		Title:    list.Title,
		Template: parseServerTemplate(list.ServerTemplate),
		Fields:   schema.NewFieldCollection(list.Fields),
		Raw:      bytes.Clone(raw),
	}, nil
}

func parseAddListResponse(raw []byte) (string, error) {
	var env addListEnvelope
	if err := xml.Unmarshal(raw, &env); err != nil {
		return "", NewParseError(OpAddList, "response is not a SOAP envelope", err)
	}
	if env.Body.Response == nil || env.Body.Response.Result == nil || env.Body.Response.Result.List == nil {
		return "", NewParseError(OpAddList, "response has no AddListResult list", nil)
	}
	id := env.Body.Response.Result.List.ID
	if id == "" {
		return "", NewParseError(OpAddList, "created list has no ID", nil)
	}
	return id, nil
}

// parseFault returns the SOAP fault in raw, or nil if raw does not hold one.
func parseFault(raw []byte) *Fault {
	if !bytes.Contains(raw, []byte("Fault")) {
		return nil
	}
	var env faultEnvelope
	if err := xml.Unmarshal(raw, &env); err != nil {
		return nil
	}
	return env.Body.Fault
}

func parseServerTemplate(s string) schema.ListTemplate {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return schema.ListTemplate(n)
}

// RenderGetListResponse builds a GetList SOAP response for list.
func RenderGetListResponse(id, title string, template schema.ListTemplate, fields []schema.FieldDefinition) ([]byte, error) {
	envelope, err := wrapEnvelope(getListResponseBody{List: newListElement(id, title, template, fields)})
	if err != nil {
		return nil, NewParseError(OpGetList, "encode response", err)
	}
	return []byte(envelope), nil
}

// RenderAddListResponse builds an AddList SOAP response for list.
func RenderAddListResponse(id, title string, template schema.ListTemplate, fields []schema.FieldDefinition) ([]byte, error) {
	envelope, err := wrapEnvelope(addListResponseBody{List: newListElement(id, title, template, fields)})
	if err != nil {
		return nil, NewParseError(OpAddList, "encode response", err)
	}
	return []byte(envelope), nil
}

// RenderFault builds a SOAP fault response.
func RenderFault(fault Fault) ([]byte, error) {
	type faultBody struct {
		XMLName xml.Name `xml:"soap:Fault"`
		Fault
	}
	envelope, err := wrapEnvelope(faultBody{Fault: fault})
	if err != nil {
		return nil, err
	}
	return []byte(envelope), nil
}

func newListElement(id, title string, template schema.ListTemplate, fields []schema.FieldDefinition) listElement {
	return listElement{
		ID:             id,
		Title:          title,
		ServerTemplate: strconv.Itoa(int(template)),
		Fields:         fields,
	}
}
