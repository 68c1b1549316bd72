package download

import "testing"

func TestMakeValid(t *testing.T) {
	cases := map[string]string{
		"A:/<bad>|name?* with\\chars'": "A___bad__name___with_chars_",
		`  "Quoted"  `:                  "_Quoted_",
		"..":                            "album",
		"":                              "album",
	}
	for in, want := range cases {
		if got := MakeValid(in); got != want {
			t.Fatalf("MakeValid(%q) = %q, want %q", in, got, want)
		}
	}
}
