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
	"encoding/csv"
	"errors"
	"fmt"

	"github.com/ianlewis/go-glossary"
)

// csvHeader is the header row of CSV output.
var csvHeader = []string{"letter", "word", "meaning", "footnotes"}

// renderCSV writes one row per entry.
func renderCSV(_ context.Context, g *glossary.Glossary, path string) (err error) {
	f, err := createFile(path)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	for _, group := range g.Groups() {
		for _, e := range group.Entries {
			if err := w.Write([]string{group.Letter, e.Word, e.Meaning, footnoteRefs(e.Footnotes)}); err != nil {
				return fmt.Errorf("writing csv: %w", err)
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	return nil
}
