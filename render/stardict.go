// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package render

import (
	"context"
	"fmt"
	"strings"

	"github.com/ianlewis/go-glossary"
	"github.com/ianlewis/go-glossary/internal/stardict"
)

type stardictRenderer struct {
	opts Options
}

// Render implements Renderer. The path names the .ifo file.
func (r *stardictRenderer) Render(_ context.Context, g *glossary.Glossary, path string) error {
	bookname := r.opts.Title
	if bookname == "" {
		bookname = "glossary"
	}
	if _, err := stardict.Write(path, Articles(g), stardict.Options{Bookname: bookname}); err != nil {
		return fmt.Errorf("writing stardict: %w", err)
	}
	return nil
}

// Articles returns one dictionary article per entry. The article text is the
// meaning followed by the text of each referenced footnote.
func Articles(g *glossary.Glossary) []stardict.Article {
	var articles []stardict.Article
	for _, group := range g.Groups() {
		for _, e := range group.Entries {
			var b strings.Builder
			b.WriteString(e.Meaning)
			for _, n := range e.Footnotes {
				if text, ok := g.Footnotes[n]; ok {
					fmt.Fprintf(&b, "\n[%d] %s", n, text)
				}
			}
			articles = append(articles, stardict.Article{
				Word: e.Word,
				Text: b.String(),
			})
		}
	}
	return articles
}
