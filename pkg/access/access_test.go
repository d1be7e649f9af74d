package access

import "testing"

func TestParseRole(t *testing.T) {
	cases := []struct {
		in  string
		out Role
	}{
		{"", -1},
		{"foo", -1},
		{Member.String(), Member},
		{Moderator.String(), Moderator},
		{Manager.String(), Manager},
		{Owner.String(), Owner},
	}

	for _, c := range cases {
		out := ParseRole(c.in)
		if out != c.out {
			t.Errorf("ParseRole(%q) => %d, want %d", c.in, out, c.out)
		}
	}
}

func TestParseAction(t *testing.T) {
	cases := []struct {
		in  string
		out Action
	}{
		{"", -1},
		{"foo", -1},
		{View.String(), View},
		{Update.String(), Update},
		{Delete.String(), Delete},
		{Members.String(), Members},
	}

	for _, c := range cases {
		out := ParseAction(c.in)
		if out != c.out {
			t.Errorf("ParseAction(%q) => %d, want %d", c.in, out, c.out)
		}
	}
}
