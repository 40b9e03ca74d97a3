package restclient

import "testing"

func Test_PathBuilder_Resolve_Golden(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		build func() *PathBuilder
		base  string
		want  string
	}{
		{
			name: "simple segments",
			build: func() *PathBuilder {
				return NewPathBuilder().Add("rest_v2").Add("serverInfo")
			},
			base: "http://bi.example.com",
			want: "http://bi.example.com/rest_v2/serverInfo",
		},
		{
			name: "repository uri expands per segment",
			build: func() *PathBuilder {
				return NewPathBuilder().
					Add("rest_v2").
					Add("reports").
					AddURI("/reports/samples/AllAccounts").
					Add("inputControls")
			},
			base: "http://bi.example.com/helio",
			want: "http://bi.example.com/helio/rest_v2/reports/reports/samples/AllAccounts/inputControls",
		},
		{
			name: "empty segments dropped",
			build: func() *PathBuilder {
				return NewPathBuilder().Add("rest_v2").Add("").AddURI("//reports//x")
			},
			base: "http://bi.example.com/",
			want: "http://bi.example.com/rest_v2/reports/x",
		},
		{
			name: "raw segment keeps matrix separators",
			build: func() *PathBuilder {
				return NewPathBuilder().
					Add("rest_v2").
					AddURI("/reports/sales").
					Add("inputControls").
					AddRaw("region;year")
			},
			base: "http://bi.example.com",
			want: "http://bi.example.com/rest_v2/reports/sales/inputControls/region;year",
		},
		{
			name: "segments escaped",
			build: func() *PathBuilder {
				return NewPathBuilder().Add("rest_v2").AddURI("/my reports/q1")
			},
			base: "http://bi.example.com",
			want: "http://bi.example.com/rest_v2/my%20reports/q1",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.build().Resolve(tt.base); got != tt.want {
				t.Fatalf("Resolve()=%q; want %q", got, tt.want)
			}
		})
	}
}
