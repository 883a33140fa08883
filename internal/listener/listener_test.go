package listener

import "testing"

func TestParseYesNo(t *testing.T) {
	testCases := []struct {
		ans    string
		want   bool
		wantOK bool
	}{
		{ans: "y", want: true, wantOK: true},
		{ans: " YES ", want: true, wantOK: true},
		{ans: "n", want: false, wantOK: true},
		{ans: "No", want: false, wantOK: true},
		{ans: "maybe", want: false, wantOK: false},
		{ans: "", want: false, wantOK: false},
	}

	for _, tc := range testCases {
		t.Run(tc.ans, func(t *testing.T) {
			got, ok := parseYesNo(tc.ans)
			if got != tc.want || ok != tc.wantOK {
				t.Errorf("parseYesNo(%q) = (%v, %v), want (%v, %v)", tc.ans, got, ok, tc.want, tc.wantOK)
			}
		})
	}
}
