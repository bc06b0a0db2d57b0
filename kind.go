package receipts

import (
	"fmt"
	"strings"
)

// Kind identifies a document type.
type Kind int

// Document kinds.
const (
	KindReceipt Kind = iota + 1
	KindInvoice
	KindStatement
	KindCustomsDocument
	KindDeclaration
	KindPackingList
	KindCommercialInvoice
	KindCertificateOfOrigin
)

var kindNames = map[Kind]string{
	KindReceipt:             "receipt",
	KindInvoice:             "invoice",
	KindStatement:           "statement",
	KindCustomsDocument:     "customs_document",
	KindDeclaration:         "declaration",
	KindPackingList:         "packing_list",
	KindCommercialInvoice:   "commercial_invoice",
	KindCertificateOfOrigin: "certificate_of_origin",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Kinds lists every document kind.
func Kinds() []Kind {
	return []Kind{
		KindReceipt, KindInvoice, KindStatement, KindCustomsDocument,
		KindDeclaration, KindPackingList, KindCommercialInvoice, KindCertificateOfOrigin,
	}
}

// ParseKind maps a name such as "packing_list", "packing-list" or
// "Packing List" to its Kind.
func ParseKind(s string) (Kind, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("-", "_", " ", "_").Replace(norm)
	for k, name := range kindNames {
		if name == norm {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}
