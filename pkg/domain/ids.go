// Package domain defines the typed identities shared by every module.
//
// Identities are 20-byte addresses. MemberID and ModuleID are distinct types
// so a module identity can never be passed where an airline is expected.
package domain

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/sha3"

	dErrors "surety/pkg/domain-errors"
)

// AddressLength is the byte length of an identity.
const AddressLength = 20

// Address is a 20-byte account identity.
type Address [AddressLength]byte

// MemberID identifies an airline (member or candidate).
type MemberID Address

// ModuleID identifies a module allowed to call privileged ledger entry points.
type ModuleID Address

// ParseAddress parses a 0x-prefixed 40 hex character address.
// All-lowercase and all-uppercase inputs are accepted as-is; mixed-case inputs
// must carry a valid EIP-55 checksum. The zero address is rejected.
func ParseAddress(s string) (Address, error) {
	var a Address
	if len(s) != 2+2*AddressLength {
		return a, dErrors.New(dErrors.CodeInvalidInput, "address must be 0x followed by 40 hex characters")
	}
	if s[0] != '0' || (s[1] != 'x' && s[1] != 'X') {
		return a, dErrors.New(dErrors.CodeInvalidInput, "address must start with 0x")
	}
	body := s[2:]
	if _, err := hex.Decode(a[:], []byte(body)); err != nil {
		return Address{}, dErrors.New(dErrors.CodeInvalidInput, "address contains non-hex characters")
	}
	if a.IsZero() {
		return Address{}, dErrors.New(dErrors.CodeInvalidInput, "address must not be zero")
	}
	if isMixedCase(body) && a.Checksum() != "0x"+body {
		return Address{}, dErrors.New(dErrors.CodeInvalidInput, "address checksum mismatch")
	}
	return a, nil
}

func (a Address) IsZero() bool {
	return a == Address{}
}

// String renders the lowercase hex form used for storage keys.
func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// Checksum renders the EIP-55 mixed-case form.
func (a Address) Checksum() string {
	lower := hex.EncodeToString(a[:])
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(lower))
	digest := h.Sum(nil)

	out := []byte(lower)
	for i := range out {
		if out[i] < 'a' {
			continue
		}
		nibble := digest[i/2]
		if i%2 == 0 {
			nibble >>= 4
		}
		if nibble&0x0f >= 8 {
			out[i] -= 'a' - 'A'
		}
	}
	return "0x" + string(out)
}

func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.Checksum()), nil
}

func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := ParseAddress(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

func isMixedCase(s string) bool {
	return strings.ToLower(s) != s && strings.ToUpper(s) != s
}

// ParseMemberID parses an airline identity.
func ParseMemberID(s string) (MemberID, error) {
	a, err := ParseAddress(strings.TrimSpace(s))
	if err != nil {
		return MemberID{}, err
	}
	return MemberID(a), nil
}

func (id MemberID) String() string               { return Address(id).String() }
func (id MemberID) Checksum() string             { return Address(id).Checksum() }
func (id MemberID) IsZero() bool                 { return Address(id).IsZero() }
func (id MemberID) MarshalText() ([]byte, error) { return Address(id).MarshalText() }

func (id *MemberID) UnmarshalText(text []byte) error {
	return (*Address)(id).UnmarshalText(text)
}

// ParseModuleID parses a module identity.
func ParseModuleID(s string) (ModuleID, error) {
	a, err := ParseAddress(strings.TrimSpace(s))
	if err != nil {
		return ModuleID{}, err
	}
	return ModuleID(a), nil
}

func (id ModuleID) String() string               { return Address(id).String() }
func (id ModuleID) Checksum() string             { return Address(id).Checksum() }
func (id ModuleID) IsZero() bool                 { return Address(id).IsZero() }
func (id ModuleID) MarshalText() ([]byte, error) { return Address(id).MarshalText() }

func (id *ModuleID) UnmarshalText(text []byte) error {
	return (*Address)(id).UnmarshalText(text)
}
