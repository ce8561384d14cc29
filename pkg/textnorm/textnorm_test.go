package textnorm

import "testing"

func TestNormalizeDefault(t *testing.T) {
	opts := DefaultOptions()
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain", "kitap", "kitap"},
		{"uppercase", "KITAP", "kitap"},
		{"accents", "Café", "cafe"},
		{"decomposed accent", "Cafe\u0301", "cafe"},
		{"soft hyphen", "inter\u00ADnational", "international"},
		{"hyphen newline", "inter-\nnational", "international"},
		{"en dash", "1990–1995", "19901995"},
		{"small hyphen-minus", "a\uFE63b", "ab"},
		{"fullwidth hyphen-minus", "a\uFF0Db", "ab"},
		{"zero width space", "bir\u200Blik", "birlik"},
		{"bom and rlm", "\uFEFFsalam\u200F", "salam"},
		{"whitespace collapse", "  machine   learning ", "machine learning"},
		{"tabs and newlines", "machine\tlearning\nmodels", "machinelearningmodels"},
		{"ligature fold", "ﬁne", "fine"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input, opts); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeOptions(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  Options
		want  string
	}{
		{
			"keep accents",
			"Café",
			Options{Lowercase: true, CollapseWhitespace: true},
			"café",
		},
		{
			"keep case",
			"CAFÉ",
			Options{RemoveAccents: true, CollapseWhitespace: true},
			"CAFE",
		},
		{
			"no whitespace collapse",
			"a  b",
			Options{Lowercase: true, RemoveAccents: true},
			"a  b",
		},
		{
			// Combining marks are invisible content and go away even when
			// accent removal is off; only precomposed accents survive.
			"combining mark stripped regardless",
			"cafe\u0301",
			Options{Lowercase: true, CollapseWhitespace: true},
			"cafe",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input, tt.opts); got != tt.want {
				t.Errorf("Normalize(%q, %+v) = %q, want %q", tt.input, tt.opts, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"kitap",
		"Café au lait",
		"inter-\nnational",
		"  spaced   out  ",
		"محمد",
		"ﻣﺤﻤﺪ",
		"Straße ﬁn 1990–1995",
		"a\uFE63b a\uFF0Db",
	}
	variants := []Options{
		DefaultOptions(),
		{Lowercase: true},
		{RemoveAccents: true},
		{CollapseWhitespace: true},
		{},
	}
	for _, in := range inputs {
		for _, opts := range variants {
			once := Normalize(in, opts)
			twice := Normalize(once, opts)
			if once != twice {
				t.Errorf("not idempotent for %q %+v: %q != %q", in, opts, once, twice)
			}
		}
	}
}

func TestNormalizeArabicPresentationForms(t *testing.T) {
	// The same name in logical letters and in shaped presentation forms
	// must land on identical normalized text.
	logical := "محمد"
	shaped := "ﻣﺤﻤﺪ"
	opts := DefaultOptions()
	if got, want := Normalize(shaped, opts), Normalize(logical, opts); got != want {
		t.Errorf("shaped %q != logical %q", got, want)
	}
}

func TestTrailingHyphen(t *testing.T) {
	tests := []struct {
		input string
		ends  bool
		trim  string
	}{
		{"inter-", true, "inter"},
		{"inter\u00AD", true, "inter"},
		{"inter\u2014", true, "inter"},
		{"inter", false, "inter"},
		{"", false, ""},
		{"-", true, ""},
	}
	for _, tt := range tests {
		if got := EndsWithHyphen(tt.input); got != tt.ends {
			t.Errorf("EndsWithHyphen(%q) = %v, want %v", tt.input, got, tt.ends)
		}
		if got := TrimTrailingHyphen(tt.input); got != tt.trim {
			t.Errorf("TrimTrailingHyphen(%q) = %q, want %q", tt.input, got, tt.trim)
		}
	}
}
