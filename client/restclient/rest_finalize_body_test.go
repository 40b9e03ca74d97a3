package restclient

import (
	"reflect"
	"strings"
	"testing"
)

func Test_RestRequest_FinalizeBody_golden(t *testing.T) {
	type golden struct {
		bodyBytes   []byte
		contentType string
	}
	type tc struct {
		name string
		req  RestRequest
		want golden
		err  string
	}

	cases := []tc{
		{
			name: "json body builds bytes and sets content-type",
			req: RestRequest{
				Body:     map[string]any{"a": "b"},
				BodyType: "application/json",
			},
			want: golden{
				bodyBytes:   mustJSON(t, map[string]any{"a": "b"}),
				contentType: "application/json",
			},
		},
		{
			name: "form body encodes and sets content-type",
			req: RestRequest{
				Body:     map[string]any{"j_username": "joeuser", "j_password": "pw"},
				BodyType: "application/x-www-form-urlencoded",
			},
			want: golden{
				contentType: "application/x-www-form-urlencoded",
			},
		},
		{
			name: "nil body returns nil bytes and empty content-type",
			req: RestRequest{
				Body:     nil,
				BodyType: "application/json",
			},
			want: golden{
				bodyBytes:   nil,
				contentType: "",
			},
		},
		{
			name: "unsupported body type errors",
			req: RestRequest{
				Body:     map[string]any{"a": "b"},
				BodyType: "text/plain",
			},
			err: "unsupported body_type",
		},
		{
			name: "if BodyBytes already set, do not overwrite",
			req: RestRequest{
				Body:        map[string]any{"a": "b"},
				BodyType:    "application/json",
				BodyBytes:   []byte("raw"),
				ContentType: "",
			},
			want: golden{
				bodyBytes:   []byte("raw"),
				contentType: "",
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.req.FinalizeBody()
			if c.err != "" {
				if err == nil || !strings.Contains(err.Error(), c.err) {
					t.Fatalf("FinalizeBody err=%v; want contains %q", err, c.err)
				}
				return
			}
			if err != nil {
				t.Fatalf("FinalizeBody unexpected error: %v", err)
			}

			if c.name == "form body encodes and sets content-type" {
				s := string(c.req.BodyBytes)
				if !(strings.Contains(s, "j_username=joeuser") && strings.Contains(s, "j_password=pw")) {
					t.Fatalf("form encoding=%q; want credentials encoded", s)
				}
			} else if !reflect.DeepEqual(c.req.BodyBytes, c.want.bodyBytes) {
				t.Fatalf("BodyBytes=%q; want %q", c.req.BodyBytes, c.want.bodyBytes)
			}

			if c.req.ContentType != c.want.contentType {
				t.Fatalf("ContentType=%q; want %q", c.req.ContentType, c.want.contentType)
			}
		})
	}
}
