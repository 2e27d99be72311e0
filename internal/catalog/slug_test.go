package catalog

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Gaming", "GAMING"},
		{"eSIM Premium", "ESIM_PREMIUM"},
		{"  Gift Cards & Vouchers  ", "GIFT_CARDS_VOUCHERS"},
		{"TV / Streaming", "TV_STREAMING"},
		{"---", ""},
		{"1 Month", "1_MONTH"},
	}
	for _, c := range cases {
		if got := Slugify(c.in); got != c.want {
			t.Errorf("Slugify(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestValidIcon(t *testing.T) {
	if !ValidIcon("gamepad") {
		t.Error("gamepad should be a valid icon token")
	}
	if ValidIcon("FaGamepad") {
		t.Error("library-style identifiers are not part of the icon set")
	}
	if len(Icons()) == 0 {
		t.Error("icon set should not be empty")
	}
}
