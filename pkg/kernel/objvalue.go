package kernel

import (
	"net/mail"
	"strings"
)

type Email string

func NewEmail(s string) Email  { return Email(strings.TrimSpace(s)) }
func (e Email) String() string { return string(e) }

// IsValid reports whether the address parses as a single RFC 5322 mailbox
func (e Email) IsValid() bool {
	if e == "" {
		return false
	}
	addr, err := mail.ParseAddress(string(e))
	return err == nil && addr.Address == string(e)
}

type PersonName string

func (n PersonName) String() string { return strings.TrimSpace(string(n)) }

type CompanyName string

func (n CompanyName) String() string { return strings.TrimSpace(string(n)) }
