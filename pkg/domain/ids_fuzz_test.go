//go:build go1.18

package domain

import (
	"testing"
)

// FuzzParseMemberID checks that parsing never panics and that every accepted
// identity round-trips through both of its renderings.
func FuzzParseMemberID(f *testing.F) {
	f.Add("")
	f.Add("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed")
	f.Add("0x0000000000000000000000000000000000000000")
	f.Add("not-an-address")
	f.Add(string([]byte{0x00, 0x01, 0x02}))

	f.Fuzz(func(t *testing.T, input string) {
		id, err := ParseMemberID(input)
		if err != nil {
			return
		}
		if id.IsZero() {
			t.Error("zero address accepted")
		}
		for _, rendered := range []string{id.String(), id.Checksum()} {
			again, err := ParseMemberID(rendered)
			if err != nil {
				t.Errorf("rendered form %q rejected: %v", rendered, err)
			}
			if again != id {
				t.Errorf("round-trip of %q changed value", rendered)
			}
		}
	})
}
