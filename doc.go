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

// Package glossary implements a library for working with bilingual computing
// term glossaries in pure Go.
//
// A glossary holds English terms with their Chinese meanings, grouped by the
// first letter of the term, together with numbered footnotes that entries can
// reference. Glossaries move between several representations:
//  1. A canonical line-oriented text file, the single source of truth. See
//     package canonical.
//  2. A human maintained Markdown source document with a table per letter.
//     See package extract.
//  3. Rendered artifacts (CSV, Markdown, HTML, Word, PDF, SQLite, StarDict).
//     See package render.
//
// Package validate implements consistency checks over a parsed glossary and
// over rendered artifacts.
package glossary
