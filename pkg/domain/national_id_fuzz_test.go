package domain

import "testing"

// FuzzParseNationalID checks that parsing never panics and that every accepted
// value round-trips.
func FuzzParseNationalID(f *testing.F) {
	f.Add("")
	f.Add("111122223333")
	f.Add("000000000000")
	f.Add("not-an-id")
	f.Add(string([]byte{0x00, 0x01, 0x02}))

	f.Fuzz(func(t *testing.T, input string) {
		id, err := ParseNationalID(input)
		if err != nil {
			return
		}
		if len(id) != NationalIDLength {
			t.Errorf("accepted identifier of length %d", len(id))
		}
		again, err := ParseNationalID(id.String())
		if err != nil || again != id {
			t.Errorf("round-trip failed for %q", input)
		}
	})
}
