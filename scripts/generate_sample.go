//go:build ignore

// generate_sample writes a deterministic Notion block export to stdout,
// for trying out `notion2md convert` and `notion2md preview` on a large page.
//
//	go run scripts/generate_sample.go > sample.json
package main

import (
	"encoding/json"
	"fmt"
	mrand "math/rand"
	"os"
)

type richText struct {
	PlainText   string          `json:"plain_text"`
	Href        string          `json:"href,omitempty"`
	Annotations map[string]bool `json:"annotations,omitempty"`
}

type block map[string]any

func main() {
	// Deterministic seed for reproducible output
	mr := mrand.New(mrand.NewSource(42))

	words := []string{"deploy", "review", "backlog", "quarter", "sync", "release", "incident", "roadmap", "budget", "hiring"}
	kinds := []string{"paragraph", "bulleted_list_item", "numbered_list_item", "to_do", "quote", "callout", "toggle"}

	const sections = 50
	out := make([]block, 0, sections*6)
	for i := 0; i < sections; i++ {
		out = append(out, textBlock("heading_2", []richText{{PlainText: fmt.Sprintf("Section %03d", i+1)}}))

		n := 2 + mr.Intn(4)
		for j := 0; j < n; j++ {
			kind := kinds[mr.Intn(len(kinds))]
			b := textBlock(kind, sentence(mr, words))
			if kind == "to_do" {
				b[kind].(block)["checked"] = mr.Float64() < 0.5
			}
			if kind == "toggle" || mr.Float64() < 0.15 {
				b["children"] = []block{textBlock("paragraph", sentence(mr, words))}
			}
			out = append(out, b)
		}
		if i%10 == 9 {
			out = append(out, block{"type": "code", "code": block{
				"rich_text": []richText{{PlainText: "make release"}},
				"language":  "shell",
			}})
		}
		out = append(out, block{"type": "divider", "divider": block{}})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(block{"object": "list", "results": out}); err != nil {
		panic(err)
	}
}

func textBlock(kind string, text []richText) block {
	return block{"type": kind, kind: block{"rich_text": text}}
}

// sentence builds a few segments with random annotations and links.
func sentence(r *mrand.Rand, words []string) []richText {
	k := 2 + r.Intn(4)
	out := make([]richText, 0, k)
	for i := 0; i < k; i++ {
		rt := richText{PlainText: words[r.Intn(len(words))] + " "}
		switch r.Intn(6) {
		case 0:
			rt.Annotations = map[string]bool{"bold": true}
		case 1:
			rt.Annotations = map[string]bool{"italic": true}
		case 2:
			rt.Annotations = map[string]bool{"code": true}
		case 3:
			rt.Href = "https://example.com/" + words[r.Intn(len(words))]
		}
		out = append(out, rt)
	}
	return out
}
