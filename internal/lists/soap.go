package lists

import (
	"encoding/xml"
	"fmt"
	"strings"

	"outsps/pkg/schema"
)

// Namespace is the XML namespace of the Lists web service messages.
const Namespace = "http://schemas.microsoft.com/sharepoint/soap/"

const soapEnvelopeNamespace = "http://schemas.xmlsoap.org/soap/envelope/"

const envelopeTemplate = `<?xml version="1.0" encoding="utf-8"?>` +
	`<soap:Envelope xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" ` +
	`xmlns:xsd="http://www.w3.org/2001/XMLSchema" ` +
	`xmlns:soap="` + soapEnvelopeNamespace + `">` +
	`<soap:Body>%s</soap:Body></soap:Envelope>`

// Operation names, also used to build the SOAPAction header.
const (
	OpAddList    = "AddList"
	OpGetList    = "GetList"
	OpDeleteList = "DeleteList"
)

func soapAction(op string) string {
	return `"` + Namespace + op + `"`
}

type addListRequest struct {
	XMLName     xml.Name `xml:"http://schemas.microsoft.com/sharepoint/soap/ AddList"`
	ListName    string   `xml:"listName"`
	Description string   `xml:"description"`
	TemplateID  int      `xml:"templateID"`
}

type getListRequest struct {
	XMLName  xml.Name `xml:"http://schemas.microsoft.com/sharepoint/soap/ GetList"`
	ListName string   `xml:"listName"`
}

type deleteListRequest struct {
	XMLName  xml.Name `xml:"http://schemas.microsoft.com/sharepoint/soap/ DeleteList"`
	ListName string   `xml:"listName"`
}

// wrapEnvelope marshals body and places it inside a SOAP 1.1 envelope.
func wrapEnvelope(body any) (string, error) {
	payload, err := xml.Marshal(body)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(envelopeTemplate, payload), nil
}

// Fault is a SOAP 1.1 fault. The server puts its own message and code in detail.
type Fault struct {
	Code        string `xml:"faultcode"`
	Reason      string `xml:"faultstring"`
	ErrorString string `xml:"detail>errorstring"`
	ErrorCode   string `xml:"detail>errorcode"`
}

func (f *Fault) String() string {
	parts := []string{}
	if f.ErrorString != "" {
		parts = append(parts, strings.TrimSpace(f.ErrorString))
	} else if f.Reason != "" {
		parts = append(parts, strings.TrimSpace(f.Reason))
	}
	if f.ErrorCode != "" {
		parts = append(parts, "("+strings.TrimSpace(f.ErrorCode)+")")
	}
	if len(parts) == 0 {
		return "SOAP fault " + f.Code
	}
	return strings.Join(parts, " ")
}

// listElement is the List element of AddList and GetList results.
type listElement struct {
	ID             string                   `xml:"ID,attr"`
	Title          string                   `xml:"Title,attr"`
	ServerTemplate string                   `xml:"ServerTemplate,attr"`
	Fields         []schema.FieldDefinition `xml:"Fields>Field"`
}

type getListEnvelope struct {
	Body struct {
		Fault    *Fault `xml:"Fault"`
		Response *struct {
			Result *struct {
				List *listElement `xml:"List"`
			} `xml:"GetListResult"`
		} `xml:"GetListResponse"`
	} `xml:"Body"`
}

type addListEnvelope struct {
	Body struct {
		Fault    *Fault `xml:"Fault"`
		Response *struct {
			Result *struct {
				List *listElement `xml:"List"`
			} `xml:"AddListResult"`
		} `xml:"AddListResponse"`
	} `xml:"Body"`
}

type faultEnvelope struct {
	Body struct {
		Fault *Fault `xml:"Fault"`
	} `xml:"Body"`
}

type getListResponseBody struct {
	XMLName xml.Name    `xml:"http://schemas.microsoft.com/sharepoint/soap/ GetListResponse"`
	List    listElement `xml:"GetListResult>List"`
}

type addListResponseBody struct {
	XMLName xml.Name    `xml:"http://schemas.microsoft.com/sharepoint/soap/ AddListResponse"`
	List    listElement `xml:"AddListResult>List"`
}
