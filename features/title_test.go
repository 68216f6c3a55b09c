package features

import "testing"

func TestInspectTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  TitleShape
	}{
		{
			name:  "plain title",
			title: "Plain Book",
			want:  TitleShape{Length: 10, WordCount: 2},
		},
		{
			name:  "subtitle",
			title: "Soumission: A Novel",
			want:  TitleShape{HasSubtitle: true, Length: 19, WordCount: 3},
		},
		{
			name:  "series marker",
			title: "Libertarianism for Beginners (Politics #1)",
			want:  TitleShape{HasSeries: true, HasNumbers: true, Length: 42, WordCount: 5},
		},
		{
			name:  "the prefix",
			title: "The Requiem Red",
			want:  TitleShape{StartsWithThe: true, Length: 15, WordCount: 3},
		},
		{
			name:  "the without space is not a prefix match",
			title: "Theory of Everything",
			want:  TitleShape{Length: 20, WordCount: 3},
		},
		{
			name:  "digits",
			title: "1984",
			want:  TitleShape{HasNumbers: true, Length: 4, WordCount: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InspectTitle(tt.title)
			if got != tt.want {
				t.Fatalf("shape = %+v, want %+v", got, tt.want)
			}
		})
	}
}
