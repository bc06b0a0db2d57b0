package compose

import "strings"

// Party is a company or person printed in address blocks.
type Party struct {
	Name         string
	Address      string
	CityStateZip string
	Country      string
	Phone        string
	Email        string
	TaxID        string
	EORI         string
	Logo         any // path, URL, reader or bytes
}

// IsZero reports whether no printable field is set.
func (p Party) IsZero() bool {
	return p.Name == "" && p.Address == "" && p.CityStateZip == "" && p.Country == "" &&
		p.Phone == "" && p.Email == "" && p.TaxID == "" && p.EORI == ""
}

func joinLines(lines ...string) string {
	out := lines[:0]
	for _, l := range lines {
		if l != "" {
			out = append(out, l)
		}
	}
	return strings.Join(out, "\n")
}

func labelled(label, v string) string {
	if v == "" {
		return ""
	}
	return label + v
}

// AddressBlock joins name, address, city, country, phone and optionally
// email, skipping empty fields.
func (p Party) AddressBlock(includeEmail bool) string {
	email := ""
	if includeEmail {
		email = p.Email
	}
	return joinLines(p.Name, p.Address, p.CityStateZip, p.Country, p.Phone, email)
}

// CompanyBlock is the address block followed by the tax identifiers.
func (p Party) CompanyBlock() string {
	return joinLines(p.Name, p.Address, p.CityStateZip, p.Country, p.Phone,
		labelled("Tax ID/VAT: ", p.TaxID), labelled("EORI: ", p.EORI))
}

// RecipientBlock lists the fields printed for a consignee.
func (p Party) RecipientBlock() string {
	return joinLines(p.Name, p.Address, p.CityStateZip, p.Country, p.Email)
}

// billingBlock is the letterhead text: bold name over address, phone and email.
func (p Party) billingBlock() string {
	name := ""
	if p.Name != "" {
		name = "<b>" + p.Name + "</b>"
	}
	return joinLines(name, p.Address, p.Phone, p.Email)
}
