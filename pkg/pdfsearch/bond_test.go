package pdfsearch

import "testing"

func box(x float64) BoundingBox {
	return BoundingBox{X1: x, Y1: 0, X2: x + 10, Y2: 12}
}

func TestBondHyphenated(t *testing.T) {
	tests := []struct {
		name  string
		words []Word
		want  []WordRun
	}{
		{
			"no hyphens",
			[]Word{{"kitap", box(0)}, {"okumak", box(20)}},
			[]WordRun{{"kitap", box(0)}, {"okumak", box(20)}},
		},
		{
			"line wrap join",
			[]Word{{"inter-", box(0)}, {"national", box(20)}},
			[]WordRun{{"international", box(0)}},
		},
		{
			"soft hyphen join",
			[]Word{{"inter\u00AD", box(0)}, {"national", box(20)}},
			[]WordRun{{"international", box(0)}},
		},
		{
			"chained fragments",
			[]Word{{"multi-", box(0)}, {"frag-", box(20)}, {"ment", box(40)}},
			[]WordRun{{"multifragment", box(0)}},
		},
		{
			"join keeps first box only",
			[]Word{{"left", box(0)}, {"mid-", box(20)}, {"dle", box(40)}, {"right", box(60)}},
			[]WordRun{{"left", box(0)}, {"middle", box(20)}, {"right", box(60)}},
		},
		{
			"trailing hyphen at page end stays",
			[]Word{{"kitap", box(0)}, {"son-", box(20)}},
			[]WordRun{{"kitap", box(0)}, {"son-", box(20)}},
		},
		{
			"empty input",
			nil,
			[]WordRun{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BondHyphenated(tt.words)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d runs, want %d: %v", len(got), len(tt.want), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("run[%d] = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestBondHyphenatedDoesNotMutateInput(t *testing.T) {
	words := []Word{{"inter-", box(0)}, {"national", box(20)}}
	BondHyphenated(words)
	if words[0].Text != "inter-" || words[1].Text != "national" {
		t.Errorf("input mutated: %v", words)
	}
}
